package theme

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"git.lost.host/meutraa/riftvibe/internal/game"
)

type DefaultTheme struct {
	Color bool
}

func (t *DefaultTheme) paint(c color.RGBA, s string) string {
	if !t.Color {
		return s
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderActivation(a game.Activation, optimal bool) string {
	sym := otherSym
	if optimal {
		sym = optimalSym
	}
	return t.paint(getVibeColor(a.VibesUsed), sym+" "+a.String())
}

func (t *DefaultTheme) RenderMeter(vibe float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(vibe / maxVibe * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat(meterSym, filled) + strings.Repeat(emptySym, width-filled)
	return t.paint(getVibeColor(int(math.Ceil(vibe/(maxVibe/2)))), bar)
}

func (t *DefaultTheme) RenderScore(score int) string {
	return t.paint(scoreColor, fmt.Sprint(score))
}

const (
	optimalSym = "★"
	otherSym   = "·"
	meterSym   = "█"
	emptySym   = "░"
	maxVibe    = 10.0 // Seconds held by two vibes
)

var (
	scoreColor = color.RGBA{236, 195, 0, 255}
	vibeColors = map[int]color.RGBA{
		0:  {106, 106, 106, 255}, // empty grey
		1:  {0, 236, 128, 255},   // single green
		2:  {236, 0, 106, 255},   // double pink
		-1: {255, 255, 255, 255}, // other white
	}
)

func getVibeColor(vibes int) color.RGBA {
	col, ok := vibeColors[vibes]
	if !ok {
		return vibeColors[-1]
	}
	return col
}
