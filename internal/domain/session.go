package domain

import "strings"

// DateFormat is the canonical date key format for session records.
const DateFormat = "2006-01-02"

// ClockFormat is the format for HH:MM times carried by calendar events,
// weather entries and scheduled items.
const ClockFormat = "15:04"

// SessionType classifies a planned training session.
type SessionType string

const (
	SessionEasyRun      SessionType = "Easy Run"
	SessionLongRun      SessionType = "Long Run"
	SessionSpeedSession SessionType = "Speed Session"
	SessionHillSession  SessionType = "Hill Session"
	SessionTempo        SessionType = "Tempo"
	SessionRest         SessionType = "Rest"
	SessionRace         SessionType = "Race"
)

// ParseSessionType maps producer-supplied type strings (which vary in casing
// and spacing) onto the canonical set. The second return value is false for
// unknown types.
func ParseSessionType(s string) (SessionType, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch key {
	case "easy run", "easy":
		return SessionEasyRun, true
	case "long run", "long":
		return SessionLongRun, true
	case "speed session", "speed", "intervals":
		return SessionSpeedSession, true
	case "hill session", "hills", "hill":
		return SessionHillSession, true
	case "tempo", "tempo run":
		return SessionTempo, true
	case "rest", "rest day":
		return SessionRest, true
	case "race":
		return SessionRace, true
	}
	return "", false
}

// IsRest reports whether the session is a rest day. Rest days never count
// towards weekly volume or completion totals.
func (t SessionType) IsRest() bool {
	return t == SessionRest
}

// ScheduledStatus values for time-scheduled entries.
const (
	StatusScheduled   = "scheduled"
	StatusRescheduled = "rescheduled"
)

// CalendarEvent is one entry in a session's calendar field. Start and End are
// HH:MM 24-hour strings. The calendar field is replaced wholesale on every
// sync, never merged item-by-item.
type CalendarEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeatherEntry is one hourly forecast entry. Time is restricted to the
// canonical hour set after normalization.
type WeatherEntry struct {
	Time        string  `json:"time"`
	TempC       float64 `json:"temp_c"`
	Description string  `json:"description"`
}

// CanonicalHours is the fixed set of forecast hours kept at write time.
// Entries for any other hour are discarded, not errored.
var CanonicalHours = []string{"06:00", "09:00", "12:00", "15:00", "18:00"}

// IsCanonicalHour reports whether t is one of the canonical forecast hours.
func IsCanonicalHour(t string) bool {
	for _, h := range CanonicalHours {
		if t == h {
			return true
		}
	}
	return false
}

// FilterCanonicalHours returns only the entries whose time is canonical,
// preserving input order.
func FilterCanonicalHours(entries []WeatherEntry) []WeatherEntry {
	filtered := make([]WeatherEntry, 0, len(entries))
	for _, e := range entries {
		if IsCanonicalHour(e.Time) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ScheduledItem is one entry in a session's time_scheduled list. TempC is a
// string because scheduling producers pass the forecast through verbatim.
type ScheduledItem struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	TempC       string `json:"temp_c"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ActualStart string `json:"actual_start,omitempty"`
}

// Complete reports whether the item carries all six required fields.
// Incomplete items are dropped at write time rather than failing the batch.
func (s ScheduledItem) Complete() bool {
	return s.Title != "" && s.Start != "" && s.End != "" &&
		s.TempC != "" && s.Description != "" && s.Status != ""
}

// PlanEntry is one parsed training-plan row, the input shape for bulk session
// creation.
type PlanEntry struct {
	Date     string  `json:"date"`
	Day      string  `json:"day"`
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
	Notes    string  `json:"notes,omitempty"`
}

// SessionRecord is the per-date planning and execution document. Exactly one
// record exists per calendar date. Fields are owned by independent producers;
// every partial update round-trips the full record so one producer never
// clobbers another's data.
type SessionRecord struct {
	Date              string          `json:"date"`
	DayOfWeek         string          `json:"day_of_week"`
	Type              SessionType     `json:"session_type"`
	PlannedDistanceKm float64         `json:"planned_distance_km"`
	Notes             string          `json:"notes,omitempty"`
	Calendar          []CalendarEvent `json:"calendar"`
	Weather           []WeatherEntry  `json:"weather"`
	TimeScheduled     []ScheduledItem `json:"time_scheduled"`
	SessionCompleted  bool            `json:"session_completed"`
	ActivityID        *int64          `json:"activity_id,omitempty"`
	ActualDistanceKm  *float64        `json:"actual_distance_km,omitempty"`
	DataPoints        *DataPoints     `json:"data_points,omitempty"`
	CoachFeedback     string          `json:"coach_feedback,omitempty"`
	CreatedAt         int64           `json:"-"`
	UpdatedAt         int64           `json:"-"`
}
