package game

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

var ErrInvalidEvent = errors.New("invalid event")

// Event is a single scoring sub-event as recorded during play. Several events
// may share a target time, e.g. an enemy kill and the vibe it awards.
type Event struct {
	Time      float64 // Target time in seconds
	Beat      float64 // Target beat, used instead of Time when HasBeat is set
	HasBeat   bool
	Score     int
	GivesVibe bool
}

// Hit is every event at one target time folded together.
type Hit struct {
	Time      float64 `json:"time"`
	Beat      float64 `json:"beat"`
	Score     int     `json:"score"`
	GivesVibe bool    `json:"vibe"`
}

// MergeEvents sorts events by target time and folds those sharing a time into
// a single hit. Folded hits that neither score nor give vibe are dropped.
func MergeEvents(timing *Timing, events []Event) ([]Hit, error) {
	if nil == timing {
		return nil, errors.Wrap(ErrInvalidTiming, "events have no timing")
	}
	resolved := make([]Event, len(events))
	for i, e := range events {
		if e.HasBeat {
			if math.IsNaN(e.Beat) || math.IsInf(e.Beat, 0) {
				return nil, errors.Wrapf(ErrInvalidEvent, "event %d has beat %v", i, e.Beat)
			}
			e.Time = timing.TimeFromBeat(e.Beat)
		}
		if math.IsNaN(e.Time) || math.IsInf(e.Time, 0) {
			return nil, errors.Wrapf(ErrInvalidEvent, "event %d has time %v", i, e.Time)
		}
		if e.Score < 0 {
			return nil, errors.Wrapf(ErrInvalidEvent, "event %d has negative score %d", i, e.Score)
		}
		resolved[i] = e
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Time < resolved[j].Time
	})

	hits := []Hit{}
	for i := 0; i < len(resolved); {
		hit := Hit{Time: resolved[i].Time}
		for ; i < len(resolved) && resolved[i].Time == hit.Time; i++ {
			hit.Score += resolved[i].Score
			hit.GivesVibe = hit.GivesVibe || resolved[i].GivesVibe
		}
		if hit.Score == 0 && !hit.GivesVibe {
			continue
		}
		hit.Beat = timing.BeatFromTime(hit.Time)
		hits = append(hits, hit)
	}
	return hits, nil
}

// CheckHits ensures hits are already in the merged form MergeEvents produces.
func CheckHits(hits []Hit) error {
	for i, h := range hits {
		if math.IsNaN(h.Time) || math.IsInf(h.Time, 0) {
			return errors.Wrapf(ErrInvalidEvent, "hit %d has time %v", i, h.Time)
		}
		if h.Score < 0 {
			return errors.Wrapf(ErrInvalidEvent, "hit %d has negative score %d", i, h.Score)
		}
		if i > 0 && h.Time <= hits[i-1].Time {
			return errors.Wrapf(ErrInvalidEvent, "hit %d at %vs does not follow hit %d at %vs", i, h.Time, i-1, hits[i-1].Time)
		}
	}
	return nil
}
