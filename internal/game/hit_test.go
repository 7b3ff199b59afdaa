package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEvents(t *testing.T) {
	timing, err := NewTiming(120, 4, DefaultHitWindow, nil)
	require.NoError(t, err)

	hits, err := MergeEvents(timing, []Event{
		{Time: 2, Score: 20},
		{Time: 1, Score: 5},
		{Beat: 3, HasBeat: true, Score: 7},
		{Time: 1, GivesVibe: true},
		{Time: 3},
		{Time: 2, Score: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, []Hit{
		{Time: 1, Beat: 3, Score: 12, GivesVibe: true},
		{Time: 2, Beat: 5, Score: 21},
	}, hits)
}

func TestMergeEventsIsOrderIndependent(t *testing.T) {
	timing, err := NewTiming(100, 4, DefaultHitWindow, nil)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(1))
	events := make([]Event, 60)
	for i := range events {
		events[i] = Event{
			Time:      float64(r.Intn(10)),
			Score:     r.Intn(4) * 50,
			GivesVibe: r.Intn(5) == 0,
		}
	}
	expected, err := MergeEvents(timing, events)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		r.Shuffle(len(events), func(i, j int) {
			events[i], events[j] = events[j], events[i]
		})
		hits, err := MergeEvents(timing, events)
		require.NoError(t, err)
		assert.Equal(t, expected, hits)
		assert.NoError(t, CheckHits(hits))
	}
}

func TestMergeEventsRejects(t *testing.T) {
	timing, err := NewTiming(120, 4, DefaultHitWindow, nil)
	require.NoError(t, err)

	tests := map[string]Event{
		"negative score": {Time: 1, Score: -10},
		"nan time":       {Time: math.NaN()},
		"infinite beat":  {Beat: math.Inf(1), HasBeat: true},
	}
	for name, event := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := MergeEvents(timing, []Event{{Time: 0, Score: 1}, event})
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestMissingTiming(t *testing.T) {
	_, err := MergeEvents(nil, []Event{{Time: 1, Score: 1}})
	assert.ErrorIs(t, err, ErrInvalidTiming)

	_, err = NewSession("no timing", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTiming)

	assert.ErrorIs(t, (&Session{}).Validate(), ErrInvalidTiming)
}

func TestCheckHits(t *testing.T) {
	assert.NoError(t, CheckHits(nil))
	assert.NoError(t, CheckHits([]Hit{{Time: 0}, {Time: 1}}))
	assert.ErrorIs(t, CheckHits([]Hit{{Time: 1}, {Time: 1}}), ErrInvalidEvent)
	assert.ErrorIs(t, CheckHits([]Hit{{Time: 1, Score: -1}}), ErrInvalidEvent)
}

func TestActivationString(t *testing.T) {
	a := Activation{StartBeat: 12, EndBeat: 20.5, Tolerance: 0.25, VibesUsed: 2, Score: 1400}
	assert.Equal(t, "Beat 12.00 -> 20.50 (-0.25s) [2 vibes -> 1400 points]", a.String())

	a.VibesUsed = 1
	assert.Equal(t, "Beat 12.00 -> 20.50 (-0.25s) [1 vibe -> 1400 points]", a.String())
}
