package parser

import (
	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown session format")

type Parser interface {
	// Parse reads a recorded session from file
	Parse(file string) (*game.Session, error)
}
