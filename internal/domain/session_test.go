package domain

import "testing"

func TestParseSessionType(t *testing.T) {
	cases := []struct {
		in   string
		want SessionType
	}{
		{"Easy Run", SessionEasyRun},
		{"easy run", SessionEasyRun},
		{"EASY  RUN", SessionEasyRun},
		{"easy", SessionEasyRun},
		{"Long Run", SessionLongRun},
		{"intervals", SessionSpeedSession},
		{"hills", SessionHillSession},
		{"tempo run", SessionTempo},
		{"Rest Day", SessionRest},
		{"race", SessionRace},
	}
	for _, tc := range cases {
		got, ok := ParseSessionType(tc.in)
		if !ok {
			t.Errorf("ParseSessionType(%q): expected ok", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSessionType(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"", "Swim", "yoga"} {
		if _, ok := ParseSessionType(bad); ok {
			t.Errorf("ParseSessionType(%q): expected not ok", bad)
		}
	}
}

func TestIsRest(t *testing.T) {
	if !SessionRest.IsRest() {
		t.Error("Expected Rest to be a rest day")
	}
	if SessionEasyRun.IsRest() {
		t.Error("Expected Easy Run not to be a rest day")
	}
}

func TestFilterCanonicalHours(t *testing.T) {
	entries := []WeatherEntry{
		{Time: "05:00"},
		{Time: "06:00"},
		{Time: "09:00"},
		{Time: "10:30"},
		{Time: "18:00"},
		{Time: "21:00"},
	}
	filtered := FilterCanonicalHours(entries)
	if len(filtered) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(filtered))
	}
	if filtered[0].Time != "06:00" || filtered[1].Time != "09:00" || filtered[2].Time != "18:00" {
		t.Errorf("Expected canonical entries in order, got %+v", filtered)
	}
}

func TestScheduledItemComplete(t *testing.T) {
	full := ScheduledItem{
		Title: "Easy Run", Start: "06:30", End: "07:15",
		TempC: "15", Description: "Clear", Status: StatusScheduled,
	}
	if !full.Complete() {
		t.Error("Expected item with all six fields to be complete")
	}

	// Dropping any required field makes the item incomplete
	mutations := []func(*ScheduledItem){
		func(s *ScheduledItem) { s.Title = "" },
		func(s *ScheduledItem) { s.Start = "" },
		func(s *ScheduledItem) { s.End = "" },
		func(s *ScheduledItem) { s.TempC = "" },
		func(s *ScheduledItem) { s.Description = "" },
		func(s *ScheduledItem) { s.Status = "" },
	}
	for i, mutate := range mutations {
		item := full
		mutate(&item)
		if item.Complete() {
			t.Errorf("Mutation %d: expected incomplete", i)
		}
	}

	// ActualStart is optional
	withStart := full
	withStart.ActualStart = "06:42"
	if !withStart.Complete() {
		t.Error("Expected item with actual_start to remain complete")
	}
}

func TestTotalLapDistanceKm(t *testing.T) {
	dp := &DataPoints{Laps: []Lap{
		{DistanceMeters: 1000},
		{DistanceMeters: 2500},
		{DistanceMeters: 500},
	}}
	if got := dp.TotalLapDistanceKm(); got != 4 {
		t.Errorf("Expected 4km, got %v", got)
	}

	var nilDP *DataPoints
	if got := nilDP.TotalLapDistanceKm(); got != 0 {
		t.Errorf("Expected 0 for nil data points, got %v", got)
	}
}

func TestMetadataString(t *testing.T) {
	rec := &ActivityRecord{Metadata: map[string]any{
		"name":  "Morning Run",
		"laps":  8,
		"speed": 3.5,
	}}
	if got := rec.MetadataString("name"); got != "Morning Run" {
		t.Errorf("Expected 'Morning Run', got %q", got)
	}
	if got := rec.MetadataString("laps"); got != "" {
		t.Errorf("Expected empty for non-string value, got %q", got)
	}
	if got := rec.MetadataString("missing"); got != "" {
		t.Errorf("Expected empty for missing key, got %q", got)
	}

	var nilRec *ActivityRecord
	if got := nilRec.MetadataString("name"); got != "" {
		t.Errorf("Expected empty for nil record, got %q", got)
	}
}
