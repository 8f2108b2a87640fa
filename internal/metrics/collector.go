package metrics

import (
	"context"
	"log/slog"
	"time"
)

// DB interface for training state queries
type DB interface {
	CountSessions() (int, error)
	CountCompletedSessions() (int, error)
	CountActivities() (int, error)
}

// StartStateCollector starts a background goroutine that periodically
// collects training state gauges from the database
func StartStateCollector(ctx context.Context, db DB, interval time.Duration) {
	logger := slog.Default()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately
	collectState(db, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Training state collector stopping")
			return
		case <-ticker.C:
			collectState(db, logger)
		}
	}
}

func collectState(db DB, logger *slog.Logger) {
	if total, err := db.CountSessions(); err != nil {
		logger.Error("Failed to count sessions", "error", err)
	} else {
		SessionsByState.WithLabelValues(SessionStatePlanned).Set(float64(total))
	}

	if completed, err := db.CountCompletedSessions(); err != nil {
		logger.Error("Failed to count completed sessions", "error", err)
	} else {
		SessionsByState.WithLabelValues(SessionStateCompleted).Set(float64(completed))
	}

	if activities, err := db.CountActivities(); err != nil {
		logger.Error("Failed to count activities", "error", err)
	} else {
		ActivitiesArchived.Set(float64(activities))
	}
}
