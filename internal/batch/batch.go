package batch

import (
	"context"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/solver"
)

type Batch interface {
	// Solve every file, at most Jobs at a time. A file that fails does not
	// stop the others; its error is kept in its outcome.
	Solve(ctx context.Context, files []string) ([]Outcome, error)
}

type Outcome struct {
	File    string
	Session *game.Session
	Result  *solver.Result
	Err     error
}
