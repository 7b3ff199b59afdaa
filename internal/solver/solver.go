package solver

import "git.lost.host/meutraa/riftvibe/internal/game"

type Solver interface {
	// Solve finds the best total score and every activation on a path reaching it
	Solve(session *game.Session) (*Result, error)

	// Path simulates the vibe meter over an activation begun at startTime
	Path(session *game.Session, startTime float64, vibesUsed int) (*game.VibePath, error)

	// Trace is the Path of a solved activation, simulated from inside its window
	Trace(session *game.Session, a game.Activation) (*game.VibePath, error)
}

type Result struct {
	Score       int               `json:"score"`
	Activations []game.Activation `json:"activations"`
	// Every activation considered, optimal or not
	Candidates []game.Activation `json:"candidates,omitempty"`
}

// Optimal reports whether a is one of the activations of an optimal path.
func (r *Result) Optimal(a game.Activation) bool {
	for _, b := range r.Activations {
		if a == b {
			return true
		}
	}
	return false
}
