package game

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

const (
	// The after-beat hit window of the game, in seconds
	DefaultHitWindow     = 0.175
	DefaultBeatDivisions = 4
)

var ErrInvalidTiming = errors.New("invalid timing")

// Timing maps beat numbers to seconds. Beat 1 is the first entry of
// BeatTimings; with fewer than two entries the tempo is a constant BPM.
type Timing struct {
	BPM           int
	BeatDivisions int       // Grid resolution, 4 = quarter beats
	HitWindow     float64   // Seconds a hit may land after its beat
	BeatTimings   []float64 // Onset of every beat, in seconds
}

func NewTiming(bpm int, beatDivisions int, hitWindow float64, beatTimings []float64) (*Timing, error) {
	t := &Timing{
		BPM:           bpm,
		BeatDivisions: beatDivisions,
		HitWindow:     hitWindow,
		BeatTimings:   append([]float64(nil), beatTimings...),
	}
	if err := t.Validate(); nil != err {
		return nil, err
	}
	return t, nil
}

func (t *Timing) Validate() error {
	if t.BPM <= 0 {
		return errors.Wrapf(ErrInvalidTiming, "bpm must be positive, got %d", t.BPM)
	}
	if t.BeatDivisions <= 0 {
		return errors.Wrapf(ErrInvalidTiming, "beat divisions must be positive, got %d", t.BeatDivisions)
	}
	if math.IsNaN(t.HitWindow) || math.IsInf(t.HitWindow, 0) || t.HitWindow < 0 {
		return errors.Wrapf(ErrInvalidTiming, "hit window must be a non-negative number, got %v", t.HitWindow)
	}
	for i, bt := range t.BeatTimings {
		if math.IsNaN(bt) || math.IsInf(bt, 0) {
			return errors.Wrapf(ErrInvalidTiming, "beat %d has time %v", i+1, bt)
		}
		// Equal neighbours would make a beat of zero length
		if i > 0 && bt <= t.BeatTimings[i-1] {
			return errors.Wrapf(ErrInvalidTiming, "beat %d at %vs does not follow beat %d at %vs", i+1, bt, i, t.BeatTimings[i-1])
		}
	}
	return nil
}

func (t *Timing) HasBeatTimings() bool {
	return len(t.BeatTimings) > 1
}

func (t *Timing) secondsPerBeat() float64 {
	return 60 / float64(t.BPM)
}

// BeatNumberFromTime returns the index into BeatTimings of the beat interval
// containing time. Times outside the known range use the first or last interval.
func (t *Timing) BeatNumberFromTime(time float64) int {
	n := len(t.BeatTimings)
	i := sort.Search(n, func(i int) bool {
		return t.BeatTimings[i] > time
	}) - 1
	if i > n-2 {
		i = n - 2
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (t *Timing) BeatFromTime(time float64) float64 {
	if math.IsInf(time, 0) {
		return time
	}
	if !t.HasBeatTimings() {
		return time/t.secondsPerBeat() + 1
	}
	i := t.BeatNumberFromTime(time)
	previous, next := t.BeatTimings[i], t.BeatTimings[i+1]
	return float64(i) + 1 + (time-previous)/(next-previous)
}

func (t *Timing) TimeFromBeat(beat float64) float64 {
	if math.IsInf(beat, 0) {
		return beat
	}
	if !t.HasBeatTimings() {
		return t.secondsPerBeat() * (beat - 1)
	}

	n := len(t.BeatTimings)
	if beat <= 1 {
		first, second := t.BeatTimings[0], t.BeatTimings[1]
		return first - (second-first)*(1-beat)
	}
	if beat < float64(n) {
		whole, frac := math.Modf(beat)
		previous, next := t.BeatTimings[int(whole)-1], t.BeatTimings[int(whole)]
		return previous + (next-previous)*frac
	}
	last, secondToLast := t.BeatTimings[n-1], t.BeatTimings[n-2]
	return last + (last-secondToLast)*(beat-float64(n))
}

// TimeFromBeatNumber is TimeFromBeat for whole beats, reading known onsets exactly.
func (t *Timing) TimeFromBeatNumber(beat int) float64 {
	if !t.HasBeatTimings() {
		return t.secondsPerBeat() * float64(beat-1)
	}

	n := len(t.BeatTimings)
	if beat < 1 {
		first, second := t.BeatTimings[0], t.BeatTimings[1]
		return first - (second-first)*float64(1-beat)
	}
	if beat <= n {
		return t.BeatTimings[beat-1]
	}
	last, secondToLast := t.BeatTimings[n-1], t.BeatTimings[n-2]
	return last + (last-secondToLast)*float64(beat-n)
}

func (t *Timing) BeatLengthAtTime(time float64) float64 {
	if !t.HasBeatTimings() {
		return t.secondsPerBeat()
	}
	i := t.BeatNumberFromTime(time)
	return t.BeatTimings[i+1] - t.BeatTimings[i]
}

func (t *Timing) BeatLengthForBeat(beat int) float64 {
	if !t.HasBeatTimings() {
		return t.secondsPerBeat()
	}

	n := len(t.BeatTimings)
	if beat < 1 {
		return t.BeatTimings[1] - t.BeatTimings[0]
	}
	if beat < n {
		return t.BeatTimings[beat] - t.BeatTimings[beat-1]
	}
	return t.BeatTimings[n-1] - t.BeatTimings[n-2]
}

// VibeExtension is how many beats past the moment the vibe runs out a hit can
// still be counted: the hit window in beats, less its floor on the beat grid.
func (t *Timing) VibeExtension(beatLength float64) float64 {
	hitWindowInBeats := t.HitWindow / beatLength
	divisions := float64(t.BeatDivisions)
	return hitWindowInBeats - math.Floor(hitWindowInBeats*divisions)/divisions
}
