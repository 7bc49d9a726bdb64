package orchestrator

import (
	"os"
	"time"
)

// DefaultWorkflowTimeout bounds a whole build run, tag fetch included.
var DefaultWorkflowTimeout = getTimeoutOrDefault("MODVER_TIMEOUT", 5*time.Minute)

// getTimeoutOrDefault returns the duration in envVar, or def when unset or unparsable.
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil && duration > 0 {
			return duration
		}
	}
	return def
}
