package database

import (
	"testing"

	"runcoach/internal/domain"
)

func TestPutAndGetActivity(t *testing.T) {
	db := setupSessionDB(t)

	pace := 3.1
	rec := &domain.ActivityRecord{
		ActivityID: 1234567890,
		Metadata: map[string]any{
			"name":       "Morning Run",
			"start_date": "2025-06-02 06:42",
		},
		DataPoints: &domain.DataPoints{
			Laps: []domain.Lap{{LapIndex: 1, DistanceMeters: 1000, PaceMS: &pace}},
			Streams: []domain.StreamPoint{
				{Index: 0, VelocityMS: &pace},
			},
		},
	}

	if err := db.PutActivity(rec); err != nil {
		t.Fatalf("Failed to put activity: %v", err)
	}

	retrieved, err := db.GetActivity(1234567890)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Expected activity, got nil")
	}
	if retrieved.MetadataString("name") != "Morning Run" {
		t.Errorf("Expected name 'Morning Run', got %q", retrieved.MetadataString("name"))
	}
	if retrieved.DataPoints == nil || len(retrieved.DataPoints.Laps) != 1 {
		t.Fatal("Expected 1 lap")
	}
	if len(retrieved.DataPoints.Streams) != 1 {
		t.Errorf("Expected 1 stream point, got %d", len(retrieved.DataPoints.Streams))
	}
}

func TestGetNonexistentActivity(t *testing.T) {
	db := setupSessionDB(t)

	rec, err := db.GetActivity(99999)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec != nil {
		t.Error("Expected nil activity, got non-nil")
	}
}

func TestPutActivityOverwrites(t *testing.T) {
	db := setupSessionDB(t)

	first := &domain.ActivityRecord{
		ActivityID: 42,
		Metadata:   map[string]any{"name": "Draft"},
	}
	if err := db.PutActivity(first); err != nil {
		t.Fatalf("Failed to put activity: %v", err)
	}

	second := &domain.ActivityRecord{
		ActivityID: 42,
		Metadata:   map[string]any{"name": "Final"},
		DataPoints: &domain.DataPoints{Laps: []domain.Lap{{LapIndex: 1, DistanceMeters: 5000}}},
	}
	if err := db.PutActivity(second); err != nil {
		t.Fatalf("Failed to overwrite activity: %v", err)
	}

	retrieved, err := db.GetActivity(42)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved.MetadataString("name") != "Final" {
		t.Errorf("Expected overwritten name 'Final', got %q", retrieved.MetadataString("name"))
	}
	if retrieved.DataPoints == nil || len(retrieved.DataPoints.Laps) != 1 {
		t.Error("Expected data_points replaced on overwrite")
	}
}

func TestPutActivityNilMetadata(t *testing.T) {
	db := setupSessionDB(t)

	rec := &domain.ActivityRecord{ActivityID: 7}
	if err := db.PutActivity(rec); err != nil {
		t.Fatalf("Failed to put activity: %v", err)
	}

	retrieved, err := db.GetActivity(7)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved.Metadata == nil {
		t.Error("Expected empty metadata map, got nil")
	}
	if retrieved.DataPoints != nil {
		t.Error("Expected nil data_points")
	}
}
