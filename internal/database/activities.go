package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"runcoach/internal/domain"
	"runcoach/internal/metrics"
)

// PutActivity upserts an activity record in a single atomic write. The store
// does not interpret metadata or data points; they are serialized opaquely.
// There are no partial-update operations for activities.
func (db *DB) PutActivity(rec *domain.ActivityRecord) (err error) {
	start := time.Now()
	defer func() { observe(metrics.DBOpPutActivity, start, err) }()

	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	var dataPointsJSON *string
	if rec.DataPoints != nil {
		encoded, err := json.Marshal(rec.DataPoints)
		if err != nil {
			return fmt.Errorf("failed to encode activity data_points: %w", err)
		}
		s := string(encoded)
		dataPointsJSON = &s
	}

	now := time.Now().Unix()
	_, err = db.conn.Exec(`
		INSERT INTO activities (activity_id, metadata_json, data_points_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(activity_id) DO UPDATE SET
			metadata_json = excluded.metadata_json,
			data_points_json = excluded.data_points_json,
			updated_at = excluded.updated_at
	`, rec.ActivityID, string(metadataJSON), dataPointsJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to put activity %d: %w", rec.ActivityID, err)
	}
	return nil
}

// GetActivity retrieves an activity record by id. Returns (nil, nil) when no
// record exists.
func (db *DB) GetActivity(activityID int64) (rec *domain.ActivityRecord, err error) {
	start := time.Now()
	defer func() { observe(metrics.DBOpGetActivity, start, err) }()

	var (
		result         domain.ActivityRecord
		metadataJSON   string
		dataPointsJSON sql.NullString
	)

	err = db.conn.QueryRow(`
		SELECT activity_id, metadata_json, data_points_json, created_at, updated_at
		FROM activities WHERE activity_id = ?
	`, activityID).Scan(
		&result.ActivityID, &metadataJSON, &dataPointsJSON,
		&result.CreatedAt, &result.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity %d: %w", activityID, err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &result.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for activity %d: %w", activityID, err)
	}
	if dataPointsJSON.Valid && dataPointsJSON.String != "" {
		var dp domain.DataPoints
		if err := json.Unmarshal([]byte(dataPointsJSON.String), &dp); err != nil {
			return nil, fmt.Errorf("failed to decode data_points for activity %d: %w", activityID, err)
		}
		result.DataPoints = &dp
	}

	return &result, nil
}
