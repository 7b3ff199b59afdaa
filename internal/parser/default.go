package parser

import (
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
)

// DefaultParser picks a parser by file extension.
type DefaultParser struct {
	HitWindow     float64
	BeatDivisions int
}

// IsSession reports whether file looks like something Parse can read.
func IsSession(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bin", ".json":
		return true
	}
	return false
}

func (p *DefaultParser) Parse(file string) (*game.Session, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bin":
		return (&SnapshotParser{}).Parse(file)
	case ".json":
		jp := &JSONParser{HitWindow: p.HitWindow, BeatDivisions: p.BeatDivisions}
		return jp.Parse(file)
	}
	return nil, errors.Wrap(ErrUnknownFormat, file)
}
