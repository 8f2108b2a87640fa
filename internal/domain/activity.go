package domain

// Segment labels applied to laps by the pace segmenter. The wire values match
// what chart and analysis consumers already expect.
type Segment string

const (
	SegmentWarmUp   Segment = "Warm up"
	SegmentMain     Segment = "Main"
	SegmentCoolDown Segment = "Cool down"
)

// Lap is one measured sub-interval of a run. Pace is meters per second.
// Optional telemetry fields are pointers so that absence survives a
// marshal/unmarshal round trip.
type Lap struct {
	LapIndex       int      `json:"lap_index"`
	DistanceMeters float64  `json:"distance_meters"`
	PaceMS         *float64 `json:"pace_ms,omitempty"`
	HeartrateBPM   *float64 `json:"heartrate_bpm,omitempty"`
	Cadence        *float64 `json:"cadence,omitempty"`
	ElapsedTime    *int     `json:"elapsed_time,omitempty"`
	Segment        Segment  `json:"segment,omitempty"`
}

// StreamPoint is one sample of a raw activity time series.
type StreamPoint struct {
	Index          int      `json:"index"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	VelocityMS     *float64 `json:"velocity_ms,omitempty"`
	HeartrateBPM   *float64 `json:"heartrate_bpm,omitempty"`
	AltitudeMeters *float64 `json:"altitude_meters,omitempty"`
	Cadence        *float64 `json:"cadence,omitempty"`
}

// DataPoints is the telemetry payload carried by both session and activity
// records. An activity may carry laps, raw streams, or both.
type DataPoints struct {
	Laps    []Lap         `json:"laps,omitempty"`
	Streams []StreamPoint `json:"streams,omitempty"`
}

// TotalLapDistanceKm sums lap distances in kilometers.
func (d *DataPoints) TotalLapDistanceKm() float64 {
	if d == nil {
		return 0
	}
	var meters float64
	for _, lap := range d.Laps {
		meters += lap.DistanceMeters
	}
	return meters / 1000
}

// ActivityRecord is the per-activity raw telemetry archive document. The
// activity id is globally unique and immutable once written; metadata and
// data points are stored as a single atomic write.
type ActivityRecord struct {
	ActivityID int64          `json:"activity_id"`
	Metadata   map[string]any `json:"metadata"`
	DataPoints *DataPoints    `json:"data_points,omitempty"`
	CreatedAt  int64          `json:"-"`
	UpdatedAt  int64          `json:"-"`
}

// MetadataString returns a string metadata value, or "" when absent or not a
// string. Activity metadata is a free-form map; callers must not assume shape.
func (a *ActivityRecord) MetadataString(key string) string {
	if a == nil || a.Metadata == nil {
		return ""
	}
	s, _ := a.Metadata[key].(string)
	return s
}

// WeeklySummary is the derived 7-day rollup. It is computed on demand and
// never persisted.
type WeeklySummary struct {
	WeekStart              string       `json:"week_start"`
	TotalSessions          int          `json:"total_sessions"`
	CompletedSessions      int          `json:"completed_sessions"`
	CompletionRate         float64      `json:"completion_rate"`
	TotalDistancePlanned   float64      `json:"total_distance_planned"`
	TotalDistanceCompleted float64      `json:"total_distance_completed"`
	Days                   []DaySummary `json:"days"`
}

// DaySummary is one day of a weekly summary. Days without a session record
// are represented explicitly with HasSession false, never omitted.
type DaySummary struct {
	Date             string      `json:"date"`
	DayName          string      `json:"day_name"`
	HasSession       bool        `json:"has_session"`
	SessionType      SessionType `json:"session_type,omitempty"`
	PlannedKm        float64     `json:"planned_distance_km"`
	ActualKm         float64     `json:"actual_distance_km"`
	SessionCompleted bool        `json:"session_completed"`
	HasActivity      bool        `json:"has_activity"`
	IsToday          bool        `json:"is_today"`
}
