package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	eventModel "github.com/ehub-platform/event-service/internal/event/model"
	"github.com/ehub-platform/event-service/internal/statistics/model"
	"github.com/ehub-platform/event-service/internal/statistics/service"
)

// mockService is a mock implementation of service.Service for unit tests.
type mockService struct {
	mock.Mock
}

func (m *mockService) GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatisticsResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventStatisticsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/events/:id/statistics", h.GetEventStatistics)
	return r
}

func TestHandler_GetEventStatistics(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		mockSvc.On("GetEventStatistics", mock.Anything, "e1").Return(&model.EventStatisticsResponse{
			Statistics: model.EventStatistics{
				EventID:   "e1",
				EventName: "Spring Hack",
				Status:    "ONGOING",
				Registrations: model.RegistrationStatistics{
					Total: 10, Pending: 2, Approved: 7, Rejected: 1,
				},
				Teams: model.TeamStatistics{
					Total: 3, Submitted: 2, TopScore: 90, TopTeamName: "Rustaceans",
				},
			},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/events/e1/statistics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.EventStatisticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.Statistics.Registrations.Approved)
		assert.Equal(t, "Rustaceans", resp.Statistics.Teams.TopTeamName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("event not found", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		mockSvc.On("GetEventStatistics", mock.Anything, "missing").Return(nil, eventModel.ErrEventNotFound)

		req := httptest.NewRequest(http.MethodGet, "/events/missing/statistics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		mockSvc.On("GetEventStatistics", mock.Anything, "e1").Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/events/e1/statistics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
