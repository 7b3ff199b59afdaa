package theme

import "git.lost.host/meutraa/riftvibe/internal/game"

type Theme interface {
	RenderActivation(a game.Activation, optimal bool) string
	// RenderMeter draws vibe seconds left as a bar of width cells
	RenderMeter(vibe float64, width int) string
	RenderScore(score int) string
}
