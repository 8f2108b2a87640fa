package segment

import (
	"testing"

	"runcoach/internal/domain"
)

func lapsFromPaces(paces []float64) []domain.Lap {
	laps := make([]domain.Lap, len(paces))
	for i, p := range paces {
		pace := p
		laps[i] = domain.Lap{LapIndex: i + 1, DistanceMeters: 1000, PaceMS: &pace}
	}
	return laps
}

func segmentsOf(laps []domain.Lap) []domain.Segment {
	out := make([]domain.Segment, len(laps))
	for i, lap := range laps {
		out[i] = lap.Segment
	}
	return out
}

func TestSegmentTypicalRun(t *testing.T) {
	// Slow start, faster middle block, fast finish. The middle-half mean is
	// 3.6175 m/s, so laps 3-6 fall inside the 10% band.
	paces := []float64{3.06, 3.15, 3.61, 3.53, 3.61, 3.72, 2.94, 2.68}
	result := New().Segment(lapsFromPaces(paces))

	if result.Status != StatusSegmented {
		t.Fatalf("Expected status %q, got %q", StatusSegmented, result.Status)
	}
	if result.MainStart != 2 || result.MainEnd != 5 {
		t.Errorf("Expected main segment [2,5], got [%d,%d]", result.MainStart, result.MainEnd)
	}

	want := []domain.Segment{
		domain.SegmentWarmUp, domain.SegmentWarmUp,
		domain.SegmentMain, domain.SegmentMain, domain.SegmentMain, domain.SegmentMain,
		domain.SegmentCoolDown, domain.SegmentCoolDown,
	}
	got := segmentsOf(result.Laps)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lap %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
}

func TestSegmentEveryLapLabeled(t *testing.T) {
	paces := []float64{3.0, 3.3, 3.6, 3.6, 3.5, 3.1}
	result := New().Segment(lapsFromPaces(paces))

	if result.Status != StatusSegmented {
		t.Fatalf("Expected status %q, got %q", StatusSegmented, result.Status)
	}
	for i, lap := range result.Laps {
		if lap.Segment == "" {
			t.Errorf("Lap %d has no segment label", i+1)
		}
	}
}

func TestSegmentZonesAreContiguous(t *testing.T) {
	paces := []float64{2.9, 3.0, 3.5, 3.6, 3.55, 3.5, 3.0, 2.8, 2.7}
	result := New().Segment(lapsFromPaces(paces))

	// Warm-up laps must all precede main laps, which precede cool-down laps.
	order := map[domain.Segment]int{
		domain.SegmentWarmUp:   0,
		domain.SegmentMain:     1,
		domain.SegmentCoolDown: 2,
	}
	prev := -1
	for i, lap := range result.Laps {
		rank, ok := order[lap.Segment]
		if !ok {
			t.Fatalf("Lap %d has unexpected segment %q", i+1, lap.Segment)
		}
		if rank < prev {
			t.Fatalf("Segments out of order at lap %d: %v", i+1, segmentsOf(result.Laps))
		}
		prev = rank
	}
}

func TestSegmentUniformPacesAllMain(t *testing.T) {
	paces := []float64{3.5, 3.5, 3.5, 3.5, 3.5, 3.5}
	result := New().Segment(lapsFromPaces(paces))

	if result.Status != StatusSegmented {
		t.Fatalf("Expected status %q, got %q", StatusSegmented, result.Status)
	}
	for i, lap := range result.Laps {
		if lap.Segment != domain.SegmentMain {
			t.Errorf("Lap %d: expected Main, got %q", i+1, lap.Segment)
		}
	}
}

func TestSegmentFewLapsAllMain(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		paces := make([]float64, n)
		for i := range paces {
			paces[i] = 3.0
		}
		result := New().Segment(lapsFromPaces(paces))
		if result.Status != StatusSegmented {
			t.Fatalf("n=%d: expected status %q, got %q", n, StatusSegmented, result.Status)
		}
		for i, lap := range result.Laps {
			if lap.Segment != domain.SegmentMain {
				t.Errorf("n=%d lap %d: expected Main, got %q", n, i+1, lap.Segment)
			}
		}
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	result := New().Segment(nil)
	if result.Status != StatusNoLaps {
		t.Errorf("Expected status %q, got %q", StatusNoLaps, result.Status)
	}
	if len(result.Laps) != 0 {
		t.Errorf("Expected no laps, got %d", len(result.Laps))
	}
}

func TestSegmentMissingPace(t *testing.T) {
	laps := []domain.Lap{
		{LapIndex: 1, DistanceMeters: 1000},
		{LapIndex: 2, DistanceMeters: 1000},
	}
	result := New().Segment(laps)

	if result.Status != StatusMissingPace {
		t.Fatalf("Expected status %q, got %q", StatusMissingPace, result.Status)
	}
	for i, lap := range result.Laps {
		if lap.Segment != "" {
			t.Errorf("Lap %d: expected unlabeled, got %q", i+1, lap.Segment)
		}
	}
}

func TestSegmentIsIdempotent(t *testing.T) {
	paces := []float64{3.06, 3.15, 3.61, 3.53, 3.61, 3.72, 2.94, 2.68}
	s := New()

	first := s.Segment(lapsFromPaces(paces))
	if first.Status != StatusSegmented {
		t.Fatalf("Expected status %q, got %q", StatusSegmented, first.Status)
	}

	second := s.Segment(first.Laps)
	if second.Status != StatusAlreadySegmented {
		t.Fatalf("Expected status %q, got %q", StatusAlreadySegmented, second.Status)
	}
	for i := range first.Laps {
		if second.Laps[i].Segment != first.Laps[i].Segment {
			t.Errorf("Lap %d: label changed on re-run", i+1)
		}
	}
}

func TestSegmentDoesNotModifyInput(t *testing.T) {
	laps := lapsFromPaces([]float64{3.0, 3.5, 3.5, 3.5, 3.5, 3.0})
	New().Segment(laps)

	for i, lap := range laps {
		if lap.Segment != "" {
			t.Errorf("Lap %d of input slice was labeled in place", i+1)
		}
	}
}

func TestSegmentFirstMaximalRunWins(t *testing.T) {
	// Two candidate runs of equal length separated by an outlier; the earlier
	// run is labeled Main.
	paces := []float64{3.5, 3.5, 3.5, 4.3, 3.5, 3.5, 3.5}
	result := New().Segment(lapsFromPaces(paces))

	if result.Status != StatusSegmented {
		t.Fatalf("Expected status %q, got %q", StatusSegmented, result.Status)
	}
	if result.MainStart != 0 || result.MainEnd != 2 {
		t.Errorf("Expected first run [0,2] to win, got [%d,%d]", result.MainStart, result.MainEnd)
	}
	if result.Laps[4].Segment != domain.SegmentCoolDown {
		t.Errorf("Expected later run labeled cool-down, got %q", result.Laps[4].Segment)
	}
}
