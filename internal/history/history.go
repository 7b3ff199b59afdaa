package history

import (
	"time"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/solver"
)

type History interface {
	Init() error
	Deinit()

	// Save the result of solving this session, returning the run id
	Save(session *game.Session, result *solver.Result) (string, error)

	// Load every earlier result for the session, oldest first
	Load(session *game.Session) ([]Record, error)
}

type Record struct {
	Run         string
	Sum         string
	Score       int
	Activations []game.Activation
	Created     time.Time
}
