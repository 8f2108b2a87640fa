package database

import "fmt"

// CountSessions returns the total number of session records.
func (db *DB) CountSessions() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// CountCompletedSessions returns the number of completed session records.
func (db *DB) CountCompletedSessions() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions WHERE session_completed = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed sessions: %w", err)
	}
	return count, nil
}

// CountActivities returns the total number of archived activity records.
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}
