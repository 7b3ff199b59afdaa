package theme

import (
	"testing"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestRenderMeter(t *testing.T) {
	th := &DefaultTheme{}
	meters := map[float64]string{
		0:   "░░░░░",
		2:   "█░░░░",
		5:   "███░░",
		10:  "█████",
		-1:  "░░░░░",
		100: "█████",
	}
	for vibe, expected := range meters {
		if got := th.RenderMeter(vibe, 5); got != expected {
			t.Log("Vibe    ", vibe)
			t.Log("Meter   ", got)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
	assert.Equal(t, "", th.RenderMeter(5, 0))
}

func TestRenderActivation(t *testing.T) {
	a := game.Activation{StartBeat: 3, EndBeat: 5, VibesUsed: 2, Score: 10}

	plain := &DefaultTheme{}
	assert.Equal(t, "★ Beat 3.00 -> 5.00 (-0.00s) [2 vibes -> 10 points]", plain.RenderActivation(a, true))
	assert.Equal(t, "· Beat 3.00 -> 5.00 (-0.00s) [2 vibes -> 10 points]", plain.RenderActivation(a, false))

	colored := &DefaultTheme{Color: true}
	assert.Equal(t, "\033[38;2;236;0;106m★ Beat 3.00 -> 5.00 (-0.00s) [2 vibes -> 10 points]\033[0m", colored.RenderActivation(a, true))
	assert.Equal(t, "\033[38;2;236;195;0m42\033[0m", colored.RenderScore(42))
}
