package game

import (
	"fmt"
	"sort"
)

// Activation is a window over which a vibe activation is continuously active.
// Hits in [StartIndex, EndIndex) are covered.
type Activation struct {
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	StartBeat  float64 `json:"startBeat"`
	EndBeat    float64 `json:"endBeat"`
	StartIndex int     `json:"startIndex"`
	EndIndex   int     `json:"endIndex"`
	Score      int     `json:"score"`
	VibesUsed  int     `json:"vibesUsed"`
	Tolerance  float64 `json:"tolerance"` // Seconds of slack before the start time
}

func (a Activation) String() string {
	plural := ""
	if a.VibesUsed > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Beat %.2f -> %.2f (-%.2fs) [%d vibe%s -> %d points]", a.StartBeat, a.EndBeat, a.Tolerance, a.VibesUsed, plural, a.Score)
}

// Before orders activations by start time, then by the vibes they use.
func (a Activation) Before(b Activation) bool {
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	return a.VibesUsed < b.VibesUsed
}

func SortActivations(activations []Activation) {
	sort.SliceStable(activations, func(i, j int) bool {
		return activations[i].Before(activations[j])
	})
}

type VibeSegment struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	StartVibe float64 `json:"startVibe"` // Seconds of vibe left at StartTime
	EndVibe   float64 `json:"endVibe"`
}

// VibePath is the course of the vibe meter over one activation.
type VibePath struct {
	StartTime  float64       `json:"startTime"`
	EndTime    float64       `json:"endTime"`
	StartIndex int           `json:"startIndex"`
	EndIndex   int           `json:"endIndex"`
	Score      int           `json:"score"`
	Segments   []VibeSegment `json:"segments"`
}
