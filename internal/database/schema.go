package database

// Schema contains all SQL statements for creating tables and indexes
const Schema = `
-- Sessions table: One planning+execution document per calendar date.
-- Producer-owned subtrees are stored as JSON so a partial update can
-- round-trip the full document without interpreting other producers' data.
CREATE TABLE IF NOT EXISTS sessions (
    date TEXT PRIMARY KEY,  -- ISO YYYY-MM-DD
    day_of_week TEXT NOT NULL,
    session_type TEXT NOT NULL,
    planned_distance_km REAL NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',

    -- Producer-owned subtrees (JSON)
    calendar_json TEXT NOT NULL DEFAULT '[]',
    weather_json TEXT NOT NULL DEFAULT '[]',
    time_scheduled_json TEXT NOT NULL DEFAULT '[]',

    -- Completion state
    session_completed BOOLEAN NOT NULL DEFAULT 0,
    activity_id INTEGER,
    actual_distance_km REAL,
    data_points_json TEXT,
    coach_feedback TEXT,

    -- Metadata
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Activities table: Raw telemetry archive keyed by activity id.
-- Payloads are opaque to this store; only full overwrites are supported.
CREATE TABLE IF NOT EXISTS activities (
    activity_id INTEGER PRIMARY KEY,
    metadata_json TEXT NOT NULL,
    data_points_json TEXT,

    -- Metadata
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Indexes for sessions table
CREATE INDEX IF NOT EXISTS idx_sessions_completed ON sessions(session_completed);
CREATE INDEX IF NOT EXISTS idx_sessions_activity_id ON sessions(activity_id);
`
