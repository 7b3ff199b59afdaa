package render

import (
	"io"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/history"
	"git.lost.host/meutraa/riftvibe/internal/solver"
)

type Renderer interface {
	// Report writes the optimal activations of a solved session
	Report(w io.Writer, session *game.Session, result *solver.Result) error
	History(w io.Writer, session *game.Session, records []history.Record) error
}
