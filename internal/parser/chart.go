package parser

import (
	"io/ioutil"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Tempo is a #BPMS entry: Value beats per minute from StartingBeat on.
type Tempo struct {
	StartingBeat float64
	Value        float64
}

// Chart is the tempo section of a StepMania chart.
type Chart struct {
	Offset float64 // Seconds of the first beat
	Tempos []Tempo
}

// BPM is the opening tempo, rounded.
func (c *Chart) BPM() int {
	return int(math.Round(c.Tempos[0].Value))
}

// TimeOfBeat is when the beat counted from zero lands.
func (c *Chart) TimeOfBeat(beat float64) float64 {
	seconds := c.Offset
	for i, tempo := range c.Tempos {
		if beat <= tempo.StartingBeat {
			break
		}
		end := beat
		if i+1 < len(c.Tempos) && c.Tempos[i+1].StartingBeat < end {
			end = c.Tempos[i+1].StartingBeat
		}
		seconds += (end - tempo.StartingBeat) * 60 / tempo.Value
	}
	return seconds
}

const (
	// Longest session a chart is expanded for, in seconds
	maxSongLength = 24 * 60 * 60
	maxBeats      = 1 << 20
)

// BeatTimings lists the onset of every beat until both more than minBeats
// have been listed and the last one is past until.
func (c *Chart) BeatTimings(until float64, minBeats int) ([]float64, error) {
	if until > maxSongLength {
		return nil, errors.Errorf("chart timings needed until %vs, past the %vs limit", until, maxSongLength)
	}
	if minBeats > maxBeats {
		return nil, errors.Errorf("chart timings needed for %v beats, past the %v limit", minBeats, maxBeats)
	}
	timings := []float64{}
	for beat := 0; beat < minBeats || len(timings) < 2 || timings[len(timings)-1] <= until; beat++ {
		if beat > maxBeats {
			return nil, errors.Errorf("chart needs more than %v beats to reach %vs", maxBeats, until)
		}
		timings = append(timings, c.TimeOfBeat(float64(beat)))
	}
	return timings, nil
}

type ChartParser struct{}

func (p *ChartParser) Parse(file string) (*Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}
	chart, err := p.Read(string(data))
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse chart %v", file)
	}
	return chart, nil
}

func (p *ChartParser) Read(data string) (*Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	meta := strings.Split(str, "#NOTES:")[0]

	chart := &Chart{}
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if strings.HasPrefix(mdl, "OFFSET:") {
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, errors.Wrap(err, "offset")
			}
			// A positive offset means the music starts before the first beat
			chart.Offset = -offs
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			for _, bpm := range strings.Split(strings.TrimSuffix(mdl, ";"), ",") {
				as := strings.Split(bpm, "=")
				if len(as) != 2 {
					return nil, errors.Errorf("malformed bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "bpm beat")
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "bpm value")
				}
				if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
					return nil, errors.Errorf("bpm at beat %v must be positive, got %v", sb, value)
				}
				chart.Tempos = append(chart.Tempos, Tempo{StartingBeat: sb, Value: value})
			}
		}
	}

	if len(chart.Tempos) == 0 {
		return nil, errors.New("chart has no #BPMS")
	}
	sort.SliceStable(chart.Tempos, func(i, j int) bool {
		return chart.Tempos[i].StartingBeat < chart.Tempos[j].StartingBeat
	})
	// The opening tempo holds from the very first beat
	chart.Tempos[0].StartingBeat = 0
	return chart, nil
}
