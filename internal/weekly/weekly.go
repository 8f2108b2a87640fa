// Package weekly computes the 7-day training rollup from session records.
// The summary is derived on demand and never persisted.
package weekly

import (
	"errors"
	"fmt"
	"time"

	"runcoach/internal/domain"
	"runcoach/internal/metrics"
)

// ErrInvalidDate is returned when the week start date is not a valid
// YYYY-MM-DD string. This is the only validation failure the aggregator
// surfaces; absent data degrades to zeroes and placeholders.
var ErrInvalidDate = errors.New("invalid week start date")

// SessionGetter is the narrow read surface the aggregator needs from the
// session store.
type SessionGetter interface {
	GetSessionByDate(date string) (*domain.SessionRecord, error)
}

// Aggregator composes read-only weekly summaries over the session store.
type Aggregator struct {
	sessions SessionGetter
	now      func() time.Time
}

// NewAggregator creates an aggregator reading from the given store.
func NewAggregator(sessions SessionGetter) *Aggregator {
	return &Aggregator{sessions: sessions, now: time.Now}
}

// Summarize aggregates the 7 days starting at weekStart (the week's Monday).
// The returned summary always has exactly 7 day entries in date order; days
// without a session record appear as explicit placeholders. Only non-rest
// sessions with a positive planned distance count towards totals.
func (a *Aggregator) Summarize(weekStart string) (*domain.WeeklySummary, error) {
	start, err := time.Parse(domain.DateFormat, weekStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, weekStart)
	}

	today := a.now().Format(domain.DateFormat)
	summary := &domain.WeeklySummary{
		WeekStart: weekStart,
		Days:      make([]domain.DaySummary, 0, 7),
	}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(domain.DateFormat)

		entry := domain.DaySummary{
			Date:    date,
			DayName: day.Weekday().String(),
			IsToday: date == today,
		}

		rec, err := a.sessions.GetSessionByDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to read session for %s: %w", date, err)
		}
		if rec == nil {
			summary.Days = append(summary.Days, entry)
			continue
		}

		entry.HasSession = true
		entry.SessionType = rec.Type
		entry.PlannedKm = rec.PlannedDistanceKm
		entry.SessionCompleted = rec.SessionCompleted
		entry.HasActivity = rec.ActivityID != nil
		if rec.ActualDistanceKm != nil {
			entry.ActualKm = *rec.ActualDistanceKm
		}

		if !rec.Type.IsRest() && rec.PlannedDistanceKm > 0 {
			summary.TotalSessions++
			summary.TotalDistancePlanned += rec.PlannedDistanceKm
			if rec.SessionCompleted {
				summary.CompletedSessions++
				summary.TotalDistanceCompleted += entry.ActualKm
			}
		}

		summary.Days = append(summary.Days, entry)
	}

	if summary.TotalSessions > 0 {
		summary.CompletionRate = float64(summary.CompletedSessions) / float64(summary.TotalSessions) * 100
	}

	metrics.WeeklySummariesTotal.Inc()
	return summary, nil
}
