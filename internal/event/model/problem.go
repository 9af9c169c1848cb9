package model

// ProblemStatement represents an organizer-authored challenge prompt.
// Matches the problem_statements table schema.
type ProblemStatement struct {
	ID          string `gorm:"primaryKey;column:id;type:varchar(64)"                                              json:"id"`
	EventID     string `gorm:"column:event_id;type:varchar(64);not null;index:idx_problem_statements_event_id"    json:"event_id"`
	StatementID string `gorm:"column:statement_id;type:varchar(16);not null"                                      json:"statement_id"`
	Statement   string `gorm:"column:statement;type:text;not null"                                                json:"statement"`
}

// TableName specifies the table name for GORM.
func (ProblemStatement) TableName() string {
	return "problem_statements"
}
