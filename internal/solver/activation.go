package solver

import (
	"math"

	"git.lost.host/meutraa/riftvibe/internal/game"
)

// activations scores every span that can be activated with vibesUsed vibes.
// An activation cannot begin until the vibes it uses have been granted.
func (d *data) activations(vibesUsed int) []game.Activation {
	from := d.nextVibe(0)
	if vibesUsed == 2 {
		from = d.nextVibe(from + 1)
	}
	if from >= d.count() {
		return nil
	}

	spans := newSpanFinder(d, vibesUsed).find(from)
	activations := make([]game.Activation, 0, len(spans))
	previousStart := d.hitTime(from)
	for i, s := range spans {
		tolerance := s.startTime - previousStart
		if i == 0 {
			tolerance = math.Max(0, tolerance)
		}
		previousStart = s.startTime
		if s.startIndex <= from {
			continue
		}

		activations = append(activations, game.Activation{
			StartTime:  s.startTime,
			EndTime:    s.endTime,
			StartBeat:  d.timing.BeatFromTime(s.startTime),
			EndBeat:    d.timing.BeatFromTime(s.endTime),
			StartIndex: s.startIndex,
			EndIndex:   s.endIndex,
			Score:      d.score(s.startIndex, s.endIndex),
			VibesUsed:  vibesUsed,
			Tolerance:  tolerance,
		})
	}
	return activations
}

// allActivations is every single and double vibe activation ordered by start.
func (d *data) allActivations() []game.Activation {
	all := append(d.activations(1), d.activations(2)...)
	game.SortActivations(all)
	return all
}
