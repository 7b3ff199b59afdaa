package history

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var compactTests = map[string]struct {
	activations []game.Activation
	compact     []ActivationsCompact
}{
	"empty": {[]game.Activation{}, []ActivationsCompact{}},
	"single": {
		[]game.Activation{{StartTime: 1, EndTime: 6, StartIndex: 1, EndIndex: 3, Score: 50, VibesUsed: 1}},
		[]ActivationsCompact{{VibesUsed: 1, Spans: []SpanCompact{{Start: 1, End: 6, StartIndex: 1, EndIndex: 3, Score: 50}}}},
	},
	"double only": {
		[]game.Activation{{StartTime: 2, VibesUsed: 2, Tolerance: 0.5}},
		[]ActivationsCompact{
			{VibesUsed: 1, Spans: []SpanCompact{}},
			{VibesUsed: 2, Spans: []SpanCompact{{Start: 2, Tolerance: 0.5}}},
		},
	},
	"mixed": {
		[]game.Activation{
			{StartTime: 1, VibesUsed: 1},
			{StartTime: 1, VibesUsed: 2},
			{StartTime: 3, VibesUsed: 1},
		},
		[]ActivationsCompact{
			{VibesUsed: 1, Spans: []SpanCompact{{Start: 1}, {Start: 3}}},
			{VibesUsed: 2, Spans: []SpanCompact{{Start: 1}}},
		},
	},
}

func TestCompactActivations(t *testing.T) {
	for name, test := range compactTests {
		out := compactActivations(test.activations)
		if !assert.Equal(t, test.compact, out, name) {
			t.Log("in      ", test.activations)
		}
	}
}

func TestUncompactActivations(t *testing.T) {
	for name, test := range compactTests {
		assert.Equal(t, test.activations, uncompactActivations(test.compact), name)
	}
}

func TestSaveAndLoad(t *testing.T) {
	p := &parser.DefaultParser{HitWindow: game.DefaultHitWindow, BeatDivisions: game.DefaultBeatDivisions}
	session, err := p.Parse(filepath.Join("..", "testdata", "ties.json"))
	require.NoError(t, err)
	other, err := p.Parse(filepath.Join("..", "testdata", "example.json"))
	require.NoError(t, err)

	s := &solver.DefaultSolver{}
	result, err := s.Solve(session)
	require.NoError(t, err)

	h := &DefaultHistory{Path: filepath.Join(t.TempDir(), "history.db")}
	require.NoError(t, h.Init())
	defer h.Deinit()

	first, err := h.Save(session, result)
	require.NoError(t, err)
	second, err := h.Save(session, result)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	records, err := h.Load(session)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].Run)
	assert.Equal(t, second, records[1].Run)
	assert.Equal(t, result.Score, records[0].Score)
	assert.Equal(t, result.Activations, records[0].Activations)
	assert.Equal(t, records[0].Sum, records[1].Sum)

	records, err = h.Load(other)
	require.NoError(t, err)
	assert.Empty(t, records)
}
