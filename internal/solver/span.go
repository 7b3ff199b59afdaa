package solver

import (
	"math"
	"sort"
)

// span is an unscored activation covering hits [startIndex, endIndex).
// startTime is the earliest activation time giving exactly this coverage.
type span struct {
	startTime  float64
	endTime    float64
	startIndex int
	endIndex   int
}

// spanStartingAt simulates an activation begun at start whose first covered
// hit is first.
func (d *data) spanStartingAt(start float64, first int, vibesUsed int) span {
	current := start
	remaining := float64(vibesUsed) * vibeLength
	end, endIndex := d.expiry(current + remaining)

	for next := d.nextVibe(first); next < endIndex; next = d.nextVibe(next + 1) {
		t := d.hits[next].Time
		remaining = clampVibe(remaining - (t - current) + vibeLength)
		current = t
		end, endIndex = d.expiry(current + remaining)
	}

	return span{startTime: start, endTime: end, startIndex: first, endIndex: endIndex}
}

// spanFinder collects every span for one vibe count.
type spanFinder struct {
	*data
	vibesUsed int
	// afterHit[i] is the single vibe span activated on hit i
	afterHit []span
	spans    []span
}

func newSpanFinder(d *data, vibesUsed int) *spanFinder {
	f := &spanFinder{data: d, vibesUsed: vibesUsed, afterHit: make([]span, d.count())}
	for i := range d.hits {
		f.afterHit[i] = d.spanStartingAt(d.hits[i].Time, i+1, 1)
	}
	return f
}

func (f *spanFinder) find(from int) []span {
	f.spans = make([]span, 0, 2*(f.count()-from))

	for i := from; i < f.count(); i++ {
		if f.vibesUsed == 1 {
			f.spans = append(f.spans, f.afterHit[i])
		} else {
			f.spans = append(f.spans, f.spanStartingAt(f.hits[i].Time, i+1, f.vibesUsed))
		}
	}
	for j := from; j < f.count(); j++ {
		f.spansEndingOnHit(j)
	}
	f.spansEndingOnBeats()

	return f.merge()
}

// endAfter is where an activation ends when hit j is its last hit to land
// with the meter at zero. A vibe on j starts it back up with one vibe.
func (f *spanFinder) endAfter(j int, zero float64) (float64, int) {
	if f.hits[j].GivesVibe {
		return f.afterHit[j].endTime, f.afterHit[j].endIndex
	}
	end, _ := f.expiry(zero)
	return math.Max(end, f.hits[j].Time), j + 1
}

// spansEndingOnHit finds the latest moments the meter may run out and still
// have hit j land in the grace extension.
func (f *spanFinder) spansEndingOnHit(j int) {
	t := f.timing
	endTime := f.hits[j].Time
	endBeat := t.BeatFromTime(endTime)
	previousHitTime := f.hitTime(j - 1)

	whole := int(math.Floor(endBeat))
	for beat := whole; beat >= whole-1; beat-- {
		beatTime := t.TimeFromBeatNumber(beat)
		nextBeatTime := t.TimeFromBeatNumber(beat + 1)
		zero := t.TimeFromBeat(endBeat - t.VibeExtension(nextBeatTime-beatTime))
		zero = math.Max(zero, previousHitTime)

		// The extension only applies to a zero inside the beat it was measured on
		if zero < beatTime || zero >= nextBeatTime {
			continue
		}
		end, endIndex := f.endAfter(j, zero)
		f.spansWhereVibeHitsZeroAt(zero, end, endIndex)
	}
}

// spansEndingOnBeats handles a meter running out exactly on a tempo change,
// where the extensions of the beats either side disagree about the next hit.
func (f *spanFinder) spansEndingOnBeats() {
	t := f.timing
	timings := t.BeatTimings
	if !t.HasBeatTimings() {
		return
	}

	for i := 1; i < len(timings)-1; i++ {
		beatTime := timings[i]
		withPrevious := t.TimeFromBeat(float64(i+1) + t.VibeExtension(beatTime-timings[i-1]))
		withNext := t.TimeFromBeat(float64(i+1) + t.VibeExtension(timings[i+1]-beatTime))
		k := f.firstHitAtOrAfter(beatTime)
		nextHitTime := f.hitTime(k)

		reachedWithPrevious := nextHitTime < withPrevious
		reachedWithNext := nextHitTime < withNext
		if reachedWithPrevious == reachedWithNext {
			continue
		}

		hitIndex := k
		if !reachedWithNext {
			hitIndex--
		}
		if hitIndex < 0 {
			continue
		}
		end, endIndex := f.endAfter(hitIndex, beatTime)
		f.spansWhereVibeHitsZeroAt(beatTime, end, endIndex)
	}
}

// spansWhereVibeHitsZeroAt walks back through earlier vibe hits, emitting a
// span for every start that runs the meter down to zero at exactly zero.
func (f *spanFinder) spansWhereVibeHitsZeroAt(zero float64, endTime float64, endIndex int) {
	current := zero
	needed := 0.0
	previous := f.previousVibe(f.firstHitAfter(current))

	for {
		previousTime := f.hitTime(previous)
		start := current - (float64(f.vibesUsed)*vibeLength - needed)

		// Starting on the previous vibe hit itself still leaves it uncovered
		if start >= previousTime {
			f.spans = append(f.spans, span{
				startTime:  start,
				endTime:    endTime,
				startIndex: f.firstHitAfter(start),
				endIndex:   endIndex,
			})
		}

		// A recharge never leaves more than two vibes
		if previousTime < current-(2*vibeLength-needed) {
			break
		}
		needed = math.Min(needed+(current-previousTime)-vibeLength, 2*vibeLength)
		if needed <= 0 {
			break
		}

		current = previousTime
		previous = f.previousVibe(previous)
		if previous < 0 {
			break
		}
	}
}

type spanKey struct {
	startIndex int
	endIndex   int
}

// merge sorts spans by start time, keeping one span per reachable range with
// strictly increasing start times.
func (f *spanFinder) merge() []span {
	spans := f.spans
	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.startTime != b.startTime {
			return a.startTime < b.startTime
		}
		if a.endIndex != b.endIndex {
			return a.endIndex > b.endIndex
		}
		return a.startIndex < b.startIndex
	})

	merged := []span{}
	seen := map[spanKey]bool{}
	for _, s := range spans {
		key := spanKey{s.startIndex, s.endIndex}
		if seen[key] {
			continue
		}
		if len(merged) > 0 {
			last := merged[len(merged)-1]
			if s.startTime <= last.startTime {
				continue
			}
			// Starting later for less coverage and the same next vibe is never better
			if s.startIndex == last.startIndex && s.endIndex <= last.endIndex &&
				f.nextVibe(s.endIndex) == f.nextVibe(last.endIndex) {
				continue
			}
		}
		seen[key] = true
		merged = append(merged, s)
	}
	return merged
}
