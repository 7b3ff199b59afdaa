package solver

import (
	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
)

// An activation's start time is the infimum of its window. Starting exactly
// there leaves the last hit on the exclusive end, so traces begin just after.
const insideWindow = 1e-9

type DefaultSolver struct{}

func (s *DefaultSolver) Solve(session *game.Session) (*Result, error) {
	if err := session.Validate(); nil != err {
		return nil, errors.Wrap(err, "unable to solve session")
	}

	result := &Result{Activations: []game.Activation{}, Candidates: []game.Activation{}}
	if session.VibeCount() == 0 {
		return result, nil
	}

	d := newData(session.Timing, session.Hits)
	result.Candidates = d.allActivations()

	o := newOptimizer(d, result.Candidates)
	root := o.run()
	result.Score = root.score
	result.Activations = o.collect(root)
	return result, nil
}

func (s *DefaultSolver) Path(session *game.Session, startTime float64, vibesUsed int) (*game.VibePath, error) {
	if vibesUsed != 1 && vibesUsed != 2 {
		return nil, errors.Errorf("an activation uses 1 or 2 vibes, not %d", vibesUsed)
	}
	if err := session.Validate(); nil != err {
		return nil, errors.Wrap(err, "unable to trace session")
	}

	d := newData(session.Timing, session.Hits)
	first := d.firstHitAfter(startTime)
	sp := d.spanStartingAt(startTime, first, vibesUsed)

	current := startTime
	remaining := float64(vibesUsed) * vibeLength
	segments := []game.VibeSegment{}
	for i := d.nextVibe(sp.startIndex); i < sp.endIndex; i = d.nextVibe(i + 1) {
		t := d.hits[i].Time
		left := remaining - (t - current)
		if left < 0 {
			left = 0
		}
		segments = append(segments, game.VibeSegment{StartTime: current, EndTime: t, StartVibe: remaining, EndVibe: left})
		remaining = clampVibe(remaining - (t - current) + vibeLength)
		current = t
	}
	segments = append(segments, game.VibeSegment{StartTime: current, EndTime: current + remaining, StartVibe: remaining})

	return &game.VibePath{
		StartTime:  startTime,
		EndTime:    sp.endTime,
		StartIndex: sp.startIndex,
		EndIndex:   sp.endIndex,
		Score:      d.score(sp.startIndex, sp.endIndex),
		Segments:   segments,
	}, nil
}

func (s *DefaultSolver) Trace(session *game.Session, a game.Activation) (*game.VibePath, error) {
	path, err := s.Path(session, a.StartTime+insideWindow, a.VibesUsed)
	if nil != err {
		return nil, err
	}
	path.StartTime = a.StartTime
	path.Segments[0].StartTime = a.StartTime
	return path, nil
}
