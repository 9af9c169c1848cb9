package config

import (
	"fmt"
	"time"
)

// SchedulerConfig holds event status scheduler configuration.
type SchedulerConfig struct {
	// Interval is the period between status evaluation ticks.
	Interval time.Duration
	// Enabled disables the background loop entirely when false
	// (useful when several instances run and only one should tick).
	Enabled bool
}

// LoadSchedulerConfigFromEnv loads scheduler configuration from environment variables.
func LoadSchedulerConfigFromEnv() SchedulerConfig {
	return SchedulerConfig{
		Interval: GetEnvDuration("SCHEDULER_INTERVAL", 60*time.Second),
		Enabled:  GetEnv("SCHEDULER_ENABLED", "true") == "true",
	}
}

// Validate validates scheduler configuration.
func (c SchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("Interval must be greater than 0")
	}
	return nil
}
