package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"runcoach/internal/domain"
	"runcoach/internal/metrics"
)

// CreateOrReplaceSessions bulk-inserts one session record per plan entry.
// Existing records for the same dates are replaced. The batch is atomic: if
// any entry is malformed or any insert fails, no records are written.
func (db *DB) CreateOrReplaceSessions(entries []domain.PlanEntry) (err error) {
	start := time.Now()
	defer func() { observe(metrics.DBOpCreateSessions, start, err) }()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, entry := range entries {
		day, err := time.Parse(domain.DateFormat, entry.Date)
		if err != nil {
			return fmt.Errorf("invalid plan entry date %q: %w", entry.Date, err)
		}
		if entry.Distance < 0 {
			return fmt.Errorf("invalid plan entry distance %v for %s", entry.Distance, entry.Date)
		}

		sessionType, ok := domain.ParseSessionType(entry.Type)
		if !ok {
			return fmt.Errorf("unknown session type %q for %s", entry.Type, entry.Date)
		}

		dayOfWeek := entry.Day
		if dayOfWeek == "" {
			dayOfWeek = day.Weekday().String()
		}

		_, err = tx.Exec(`
			INSERT OR REPLACE INTO sessions (
				date, day_of_week, session_type, planned_distance_km, notes,
				calendar_json, weather_json, time_scheduled_json,
				session_completed, activity_id, actual_distance_km,
				data_points_json, coach_feedback,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, '[]', '[]', '[]', 0, NULL, NULL, NULL, NULL, ?, ?)
		`, entry.Date, dayOfWeek, string(sessionType), entry.Distance, entry.Notes, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert session for %s: %w", entry.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session batch: %w", err)
	}
	return nil
}

// GetSessionByDate retrieves the session record for a date. Returns (nil, nil)
// when no record exists.
func (db *DB) GetSessionByDate(date string) (rec *domain.SessionRecord, err error) {
	start := time.Now()
	defer func() { observe(metrics.DBOpGetSession, start, err) }()
	return db.getSession(date)
}

// UpdateCalendar replaces the session's calendar field wholesale. All other
// fields are preserved.
func (db *DB) UpdateCalendar(date string, events []domain.CalendarEvent) error {
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	return db.updateSession(metrics.DBOpUpdateCalendar, date, func(rec *domain.SessionRecord) {
		rec.Calendar = events
	})
}

// UpdateWeather replaces the session's weather field, keeping only entries
// for the canonical forecast hours. Non-canonical entries are discarded, not
// errored.
func (db *DB) UpdateWeather(date string, entries []domain.WeatherEntry) error {
	filtered := domain.FilterCanonicalHours(entries)
	return db.updateSession(metrics.DBOpUpdateWeather, date, func(rec *domain.SessionRecord) {
		rec.Weather = filtered
	})
}

// UpdateTimeScheduled replaces the session's time_scheduled list. Items
// missing any of the six required fields are dropped without failing the
// operation.
func (db *DB) UpdateTimeScheduled(date string, items []domain.ScheduledItem) error {
	kept := make([]domain.ScheduledItem, 0, len(items))
	for _, item := range items {
		if item.Complete() {
			kept = append(kept, item)
		}
	}
	if dropped := len(items) - len(kept); dropped > 0 {
		slog.Debug("Dropped incomplete time_scheduled items", "date", date, "dropped", dropped)
	}
	return db.updateSession(metrics.DBOpUpdateScheduled, date, func(rec *domain.SessionRecord) {
		rec.TimeScheduled = kept
	})
}

// MarkCompleted marks the session as completed, linking the activity and
// storing the measured distance and telemetry. When an actual start time is
// supplied and a time_scheduled entry exists, the first entry is patched with
// it; an unparseable start time is logged and swallowed.
func (db *DB) MarkCompleted(date string, activityID int64, actualDistanceKm float64, actualStart string, dataPoints *domain.DataPoints) error {
	// A completed session must always carry its activity link and telemetry.
	if dataPoints == nil {
		return fmt.Errorf("cannot mark %s completed without data points", date)
	}
	return db.updateSession(metrics.DBOpMarkCompleted, date, func(rec *domain.SessionRecord) {
		rec.SessionCompleted = true
		rec.ActivityID = &activityID
		rec.ActualDistanceKm = &actualDistanceKm
		rec.DataPoints = dataPoints

		if actualStart == "" || len(rec.TimeScheduled) == 0 {
			return
		}
		if _, err := time.Parse(domain.ClockFormat, actualStart); err != nil {
			slog.Warn("Ignoring unparseable actual start time", "date", date, "actual_start", actualStart)
			return
		}
		rec.TimeScheduled[0].ActualStart = actualStart
	})
}

// StoreAnalysis sets the coach feedback field only.
func (db *DB) StoreAnalysis(date string, coachFeedback string) error {
	return db.updateSession(metrics.DBOpStoreAnalysis, date, func(rec *domain.SessionRecord) {
		rec.CoachFeedback = coachFeedback
	})
}

// StoreSegmentedLaps merges segment labels into the session's existing laps
// without disturbing other data_points content. When the session has no
// data_points yet, one is created from the supplied laps.
func (db *DB) StoreSegmentedLaps(date string, segmented []domain.Lap) error {
	return db.updateSession(metrics.DBOpStoreSegmentedLaps, date, func(rec *domain.SessionRecord) {
		if rec.DataPoints == nil || len(rec.DataPoints.Laps) == 0 {
			if rec.DataPoints == nil {
				rec.DataPoints = &domain.DataPoints{}
			}
			rec.DataPoints.Laps = segmented
			return
		}
		for i := range rec.DataPoints.Laps {
			if i < len(segmented) {
				rec.DataPoints.Laps[i].Segment = segmented[i].Segment
			}
		}
	})
}

// updateSession implements the read-modify-write cycle shared by all partial
// updates: fetch the full record, mutate only the relevant subtree, write the
// full record back. Naive partial-field writes would silently drop other
// producers' data.
func (db *DB) updateSession(operation, date string, mutate func(*domain.SessionRecord)) (err error) {
	start := time.Now()
	defer func() { observe(operation, start, err) }()

	rec, err := db.getSession(date)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, date)
	}

	mutate(rec)
	return db.writeSession(rec)
}

// getSession retrieves and unmarshals a full session row.
func (db *DB) getSession(date string) (*domain.SessionRecord, error) {
	var (
		rec            domain.SessionRecord
		sessionType    string
		calendarJSON   string
		weatherJSON    string
		scheduledJSON  string
		activityID     sql.NullInt64
		actualDistance sql.NullFloat64
		dataPointsJSON sql.NullString
		coachFeedback  sql.NullString
	)

	err := db.conn.QueryRow(`
		SELECT date, day_of_week, session_type, planned_distance_km, notes,
		       calendar_json, weather_json, time_scheduled_json,
		       session_completed, activity_id, actual_distance_km,
		       data_points_json, coach_feedback,
		       created_at, updated_at
		FROM sessions WHERE date = ?
	`, date).Scan(
		&rec.Date, &rec.DayOfWeek, &sessionType, &rec.PlannedDistanceKm, &rec.Notes,
		&calendarJSON, &weatherJSON, &scheduledJSON,
		&rec.SessionCompleted, &activityID, &actualDistance,
		&dataPointsJSON, &coachFeedback,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	rec.Type = domain.SessionType(sessionType)
	if err := json.Unmarshal([]byte(calendarJSON), &rec.Calendar); err != nil {
		return nil, fmt.Errorf("failed to decode calendar for %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(weatherJSON), &rec.Weather); err != nil {
		return nil, fmt.Errorf("failed to decode weather for %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(scheduledJSON), &rec.TimeScheduled); err != nil {
		return nil, fmt.Errorf("failed to decode time_scheduled for %s: %w", date, err)
	}
	if activityID.Valid {
		rec.ActivityID = &activityID.Int64
	}
	if actualDistance.Valid {
		rec.ActualDistanceKm = &actualDistance.Float64
	}
	if dataPointsJSON.Valid && dataPointsJSON.String != "" {
		var dp domain.DataPoints
		if err := json.Unmarshal([]byte(dataPointsJSON.String), &dp); err != nil {
			return nil, fmt.Errorf("failed to decode data_points for %s: %w", date, err)
		}
		rec.DataPoints = &dp
	}
	if coachFeedback.Valid {
		rec.CoachFeedback = coachFeedback.String
	}

	return &rec, nil
}

// writeSession persists the full record back in a single statement.
func (db *DB) writeSession(rec *domain.SessionRecord) error {
	calendarJSON, err := marshalList(rec.Calendar)
	if err != nil {
		return fmt.Errorf("failed to encode calendar for %s: %w", rec.Date, err)
	}
	weatherJSON, err := marshalList(rec.Weather)
	if err != nil {
		return fmt.Errorf("failed to encode weather for %s: %w", rec.Date, err)
	}
	scheduledJSON, err := marshalList(rec.TimeScheduled)
	if err != nil {
		return fmt.Errorf("failed to encode time_scheduled for %s: %w", rec.Date, err)
	}

	var dataPointsJSON *string
	if rec.DataPoints != nil {
		encoded, err := json.Marshal(rec.DataPoints)
		if err != nil {
			return fmt.Errorf("failed to encode data_points for %s: %w", rec.Date, err)
		}
		s := string(encoded)
		dataPointsJSON = &s
	}

	var coachFeedback *string
	if rec.CoachFeedback != "" {
		coachFeedback = &rec.CoachFeedback
	}

	result, err := db.conn.Exec(`
		UPDATE sessions
		SET day_of_week = ?, session_type = ?, planned_distance_km = ?, notes = ?,
		    calendar_json = ?, weather_json = ?, time_scheduled_json = ?,
		    session_completed = ?, activity_id = ?, actual_distance_km = ?,
		    data_points_json = ?, coach_feedback = ?,
		    updated_at = ?
		WHERE date = ?
	`, rec.DayOfWeek, string(rec.Type), rec.PlannedDistanceKm, rec.Notes,
		calendarJSON, weatherJSON, scheduledJSON,
		rec.SessionCompleted, rec.ActivityID, rec.ActualDistanceKm,
		dataPointsJSON, coachFeedback,
		time.Now().Unix(), rec.Date)
	if err != nil {
		return fmt.Errorf("failed to write session for %s: %w", rec.Date, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, rec.Date)
	}
	return nil
}

// marshalList encodes a slice as JSON, mapping nil to the empty list so that
// absent subtrees round-trip as [] rather than null.
func marshalList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
