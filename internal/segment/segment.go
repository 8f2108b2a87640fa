// Package segment classifies an ordered sequence of laps into warm-up, main
// and cool-down zones from lap pace.
//
// The reference pace for the main effort is the mean pace of the middle half
// of the laps, on the assumption that the main effort dominates the middle of
// a session. Laps within a tolerance band around the reference are candidates
// for the main segment, and the longest contiguous run of candidates wins.
// Everything before the run is warm-up, everything after is cool-down.
package segment

import (
	"runcoach/internal/domain"
)

// DefaultTolerance is the acceptance band around the reference pace. A lap
// whose pace is within reference*(1±tolerance) is a candidate main lap.
const DefaultTolerance = 0.10

// Status describes the outcome of a segmentation run. Malformed input never
// produces an error; it degrades to a status with the laps returned unchanged.
type Status string

const (
	// StatusSegmented means labels were derived and applied.
	StatusSegmented Status = "segmented"
	// StatusAlreadySegmented means every lap already carried a label and the
	// input was passed through unchanged.
	StatusAlreadySegmented Status = "already_segmented"
	// StatusNoLaps means the input was empty.
	StatusNoLaps Status = "no_laps"
	// StatusMissingPace means the laps do not carry the pace field.
	StatusMissingPace Status = "missing_pace"
)

// Result carries the labeled laps and the outcome of a run. MainStart and
// MainEnd are the inclusive bounds of the main segment when the status is
// StatusSegmented.
type Result struct {
	Laps      []domain.Lap
	Status    Status
	MainStart int
	MainEnd   int
}

// Segmenter holds the tunable parameters of the classification heuristic.
type Segmenter struct {
	// Tolerance is the fractional deviation from the reference pace accepted
	// for main-segment candidates.
	Tolerance float64
}

// New returns a Segmenter with the default tolerance.
func New() *Segmenter {
	return &Segmenter{Tolerance: DefaultTolerance}
}

// Segment labels every lap with exactly one of the three segments. The input
// slice is not modified. Segmentation is idempotent: laps that already carry
// labels are returned as-is rather than re-derived.
func (s *Segmenter) Segment(laps []domain.Lap) Result {
	if len(laps) == 0 {
		return Result{Laps: laps, Status: StatusNoLaps}
	}

	out := make([]domain.Lap, len(laps))
	copy(out, laps)

	if allLabeled(out) {
		return Result{Laps: out, Status: StatusAlreadySegmented}
	}
	if out[0].PaceMS == nil {
		return Result{Laps: out, Status: StatusMissingPace}
	}

	mainStart, mainEnd := s.mainRun(out)

	for i := range out {
		switch {
		case i < mainStart:
			out[i].Segment = domain.SegmentWarmUp
		case i <= mainEnd:
			out[i].Segment = domain.SegmentMain
		default:
			out[i].Segment = domain.SegmentCoolDown
		}
	}

	return Result{Laps: out, Status: StatusSegmented, MainStart: mainStart, MainEnd: mainEnd}
}

// mainRun returns the inclusive bounds of the main segment.
func (s *Segmenter) mainRun(laps []domain.Lap) (int, int) {
	n := len(laps)

	// Reference pace: mean of the middle half [n/4, n-n/4). With fewer than
	// 4 laps the window spans the whole sequence.
	windowStart := n / 4
	windowEnd := n - windowStart

	var sum float64
	var count int
	for i := windowStart; i < windowEnd; i++ {
		if laps[i].PaceMS != nil {
			sum += *laps[i].PaceMS
			count++
		}
	}
	if count == 0 {
		return 0, n - 1
	}
	reference := sum / float64(count)

	minPace := reference * (1 - s.Tolerance)
	maxPace := reference * (1 + s.Tolerance)

	// Longest contiguous run of candidate laps; the first maximal run wins.
	bestStart, bestEnd, bestLen := -1, -1, 0
	runStart := -1
	for i := 0; i <= n; i++ {
		candidate := i < n && laps[i].PaceMS != nil &&
			*laps[i].PaceMS >= minPace && *laps[i].PaceMS <= maxPace
		if candidate {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			if length := i - runStart; length > bestLen {
				bestStart, bestEnd, bestLen = runStart, i-1, length
			}
			runStart = -1
		}
	}

	// No lap qualified: fail open, the whole sequence is the main segment.
	if bestLen == 0 {
		return 0, n - 1
	}
	return bestStart, bestEnd
}

func allLabeled(laps []domain.Lap) bool {
	for _, lap := range laps {
		if lap.Segment == "" {
			return false
		}
	}
	return true
}
