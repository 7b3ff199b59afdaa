package solver

import (
	"math"
	"sort"

	"git.lost.host/meutraa/riftvibe/internal/game"
)

// Seconds of activation granted by one vibe
const vibeLength = 5.0

// data is everything a single solve reads, built once from an immutable session.
type data struct {
	timing *game.Timing
	hits   []game.Hit

	// nextVibes[i] is the first vibe hit at or after i, len(hits) if none
	nextVibes []int
	// previousVibes[i] is the last vibe hit before i, -1 if none
	previousVibes []int
	// prefix[i] is the summed score of hits[:i]
	prefix []int
}

func newData(timing *game.Timing, hits []game.Hit) *data {
	n := len(hits)
	d := &data{
		timing:        timing,
		hits:          hits,
		nextVibes:     make([]int, n+1),
		previousVibes: make([]int, n+1),
		prefix:        make([]int, n+1),
	}

	next := n
	d.nextVibes[n] = n
	for i := n - 1; i >= 0; i-- {
		if hits[i].GivesVibe {
			next = i
		}
		d.nextVibes[i] = next
	}

	previous := -1
	for i := 0; i <= n; i++ {
		d.previousVibes[i] = previous
		if i < n {
			if hits[i].GivesVibe {
				previous = i
			}
			d.prefix[i+1] = d.prefix[i] + hits[i].Score
		}
	}
	return d
}

func (d *data) count() int {
	return len(d.hits)
}

func (d *data) nextVibe(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(d.hits) {
		return len(d.hits)
	}
	return d.nextVibes[i]
}

func (d *data) previousVibe(i int) int {
	if i > len(d.hits) {
		i = len(d.hits)
	}
	if i < 0 {
		return -1
	}
	return d.previousVibes[i]
}

// hitTime is the time of hit i, or an infinity past either end.
func (d *data) hitTime(i int) float64 {
	if i < 0 {
		return math.Inf(-1)
	}
	if i >= len(d.hits) {
		return math.Inf(1)
	}
	return d.hits[i].Time
}

func (d *data) firstHitAfter(time float64) int {
	return sort.Search(len(d.hits), func(i int) bool {
		return d.hits[i].Time > time
	})
}

func (d *data) firstHitAtOrAfter(time float64) int {
	return sort.Search(len(d.hits), func(i int) bool {
		return d.hits[i].Time >= time
	})
}

// score of the hits in [start, end)
func (d *data) score(start, end int) int {
	return d.prefix[end] - d.prefix[start]
}

// expiry resolves the moment the vibe meter reaches zero into the true end of
// the activation. The grace extension lets at most one more hit land, and the
// returned end index is the first hit that is not covered.
func (d *data) expiry(zero float64) (float64, int) {
	grace := zero
	extension := d.timing.VibeExtension(d.timing.BeatLengthAtTime(zero))
	if extension > 0 {
		grace = math.Max(zero, d.timing.TimeFromBeat(d.timing.BeatFromTime(zero)+extension))
	}
	k := d.firstHitAtOrAfter(zero)
	end := math.Min(grace, d.hitTime(k+1))
	return end, d.firstHitAtOrAfter(end)
}

func clampVibe(remaining float64) float64 {
	return math.Max(vibeLength, math.Min(remaining, 2*vibeLength))
}
