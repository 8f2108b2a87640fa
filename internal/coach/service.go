// Package coach exposes the operation surface producers call: plan ingestion,
// per-field session updates, activity import with pace segmentation, and the
// weekly rollup. Producers never touch storage directly.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"runcoach/internal/cache"
	"runcoach/internal/database"
	"runcoach/internal/domain"
	"runcoach/internal/metrics"
	"runcoach/internal/normalize"
	"runcoach/internal/segment"
	"runcoach/internal/weekly"
)

// Service wires the session and activity stores to the segmenter and an
// optional read-through cache. All operations are synchronous; a call returns
// only once the underlying read-modify-write has completed.
type Service struct {
	db        *database.DB
	cache     cache.Cache // nil disables caching
	segmenter *segment.Segmenter
	weekly    *weekly.Aggregator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates the service. The cache may be nil.
func NewService(db *database.DB, c cache.Cache) *Service {
	return &Service{
		db:        db,
		cache:     c,
		segmenter: segment.New(),
		weekly:    weekly.NewAggregator(db),
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// ImportPlan bulk-inserts one session record per plan entry, replacing any
// existing records for the same dates. The batch is all-or-nothing.
func (s *Service) ImportPlan(ctx context.Context, entries []domain.PlanEntry) error {
	if err := s.db.CreateOrReplaceSessions(entries); err != nil {
		return err
	}
	metrics.SessionsImportedTotal.Add(float64(len(entries)))

	for _, entry := range entries {
		s.invalidate(ctx, entry.Date)
	}
	s.logger.Info("Imported training plan", "sessions", len(entries))
	return nil
}

// ImportPlanPayload normalizes a raw plan payload and imports it.
func (s *Service) ImportPlanPayload(ctx context.Context, payload json.RawMessage) error {
	return s.ImportPlan(ctx, normalize.PlanEntries(payload))
}

// Session returns the record for a date, or (nil, nil) when none exists.
func (s *Service) Session(ctx context.Context, date string) (*domain.SessionRecord, error) {
	if s.cache != nil {
		var rec domain.SessionRecord
		err := s.cache.GetJSON(ctx, sessionKey(date), &rec)
		if err == nil {
			metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheOpSession, metrics.CacheHit).Inc()
			return &rec, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Cache read failed", "key", sessionKey(date), "error", err)
		}
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheOpSession, metrics.CacheMiss).Inc()
	}

	rec, err := s.db.GetSessionByDate(date)
	if err != nil || rec == nil {
		return rec, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, sessionKey(date), rec); err != nil {
			s.logger.Warn("Cache write failed", "key", sessionKey(date), "error", err)
		}
	}
	return rec, nil
}

// TodaysSession returns the record for the current date.
func (s *Service) TodaysSession(ctx context.Context) (*domain.SessionRecord, error) {
	return s.Session(ctx, s.now().Format(domain.DateFormat))
}

// UpdateCalendar normalizes a calendar payload and replaces the session's
// calendar field wholesale.
func (s *Service) UpdateCalendar(ctx context.Context, date string, payload json.RawMessage) error {
	if err := s.db.UpdateCalendar(date, normalize.CalendarEvents(payload)); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}

// UpdateWeather normalizes a weather payload and replaces the session's
// weather field, filtered to the canonical forecast hours.
func (s *Service) UpdateWeather(ctx context.Context, date string, payload json.RawMessage) error {
	if err := s.db.UpdateWeather(date, normalize.WeatherEntries(payload)); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}

// UpdateTimeScheduled normalizes a scheduling payload and replaces the
// session's time_scheduled list. Incomplete items are dropped silently.
func (s *Service) UpdateTimeScheduled(ctx context.Context, date string, payload json.RawMessage) error {
	if err := s.db.UpdateTimeScheduled(date, normalize.ScheduledItems(payload)); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}

// StoreAnalysis persists coach feedback for a date, leaving every other field
// untouched.
func (s *Service) StoreAnalysis(ctx context.Context, date string, feedback string) error {
	if err := s.db.StoreAnalysis(date, feedback); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}

// ImportActivity runs the completion pipeline for a recorded activity:
// archive the raw telemetry, segment the laps by pace, mark the session
// completed with the measured distance and start time, and merge the segment
// labels back into the session's laps.
//
// When date is empty it is derived from the activity's start_date metadata.
func (s *Service) ImportActivity(ctx context.Context, date string, rec *domain.ActivityRecord) error {
	if date == "" {
		date = dateFromMetadata(rec)
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("cannot determine session date for activity %d: %w", rec.ActivityID, err)
	}

	if err := s.db.PutActivity(rec); err != nil {
		return err
	}

	var laps []domain.Lap
	if rec.DataPoints != nil {
		laps = rec.DataPoints.Laps
	}
	result := s.SegmentLaps(laps)

	actualKm := rec.DataPoints.TotalLapDistanceKm()
	actualStart := rec.MetadataString("actual_start")
	if err := s.db.MarkCompleted(date, rec.ActivityID, actualKm, actualStart, rec.DataPoints); err != nil {
		return err
	}

	if result.Status == segment.StatusSegmented || result.Status == segment.StatusAlreadySegmented {
		if err := s.db.StoreSegmentedLaps(date, result.Laps); err != nil {
			return err
		}
	} else {
		s.logger.Warn("Skipping segment storage", "date", date, "activity_id", rec.ActivityID, "status", result.Status)
	}

	s.invalidate(ctx, date)
	s.logger.Info("Imported activity", "date", date, "activity_id", rec.ActivityID,
		"laps", len(laps), "segmentation", result.Status)
	return nil
}

// SegmentLaps runs the pace segmenter and records the outcome.
func (s *Service) SegmentLaps(laps []domain.Lap) segment.Result {
	result := s.segmenter.Segment(laps)
	metrics.SegmentationRunsTotal.WithLabelValues(string(result.Status)).Inc()
	metrics.SegmentationLapCount.Observe(float64(len(laps)))
	return result
}

// Activity returns the archived telemetry for an activity id, or (nil, nil)
// when none exists.
func (s *Service) Activity(activityID int64) (*domain.ActivityRecord, error) {
	return s.db.GetActivity(activityID)
}

// Weekly computes the 7-day rollup starting at weekStart.
func (s *Service) Weekly(ctx context.Context, weekStart string) (*domain.WeeklySummary, error) {
	if s.cache != nil {
		var summary domain.WeeklySummary
		err := s.cache.GetJSON(ctx, weeklyKey(weekStart), &summary)
		if err == nil {
			metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheOpWeekly, metrics.CacheHit).Inc()
			return &summary, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Cache read failed", "key", weeklyKey(weekStart), "error", err)
		}
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheOpWeekly, metrics.CacheMiss).Inc()
	}

	summary, err := s.weekly.Summarize(weekStart)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, weeklyKey(weekStart), summary); err != nil {
			s.logger.Warn("Cache write failed", "key", weeklyKey(weekStart), "error", err)
		}
	}
	return summary, nil
}

// invalidate drops the cached session for a date and the weekly summary of
// the week containing it.
func (s *Service) invalidate(ctx context.Context, date string) {
	if s.cache == nil {
		return
	}
	keys := []string{sessionKey(date)}
	if monday, ok := weekStartOf(date); ok {
		keys = append(keys, weeklyKey(monday))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Cache invalidation failed", "date", date, "error", err)
	}
}

func sessionKey(date string) string {
	return "session:" + date
}

func weeklyKey(weekStart string) string {
	return "weekly:" + weekStart
}

// weekStartOf returns the Monday of the week containing date.
func weekStartOf(date string) (string, bool) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return "", false
	}
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset).Format(domain.DateFormat), true
}

// dateFromMetadata derives the session date from the activity's start_date
// metadata ("YYYY-MM-DD HH:MM").
func dateFromMetadata(rec *domain.ActivityRecord) string {
	start := rec.MetadataString("start_date")
	if len(start) >= len(domain.DateFormat) {
		return start[:len(domain.DateFormat)]
	}
	return ""
}
