package parser

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// JSONParser reads a session written by hand or exported by a tool:
//
//	{
//	  "bpm": 120, "beatDivisions": 4, "hitWindow": 0.175,
//	  "beatTimings": [0, 0.5, ...], "chart": "song.sm",
//	  "events": [{"time": 1.5, "score": 100, "vibe": true}, {"beat": 9, "score": 50}]
//	}
//
// Only events are required. A chart, relative to the session file, replaces
// bpm and beatTimings. Missing values fall back to the parser's.
type JSONParser struct {
	HitWindow     float64
	BeatDivisions int
}

func (p *JSONParser) Parse(file string) (*game.Session, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	session, err := p.Read(name, filepath.Dir(file), data)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse session %v", file)
	}
	return session, nil
}

// Read parses a JSON session. Chart paths are relative to dir.
func (p *JSONParser) Read(name string, dir string, data []byte) (*game.Session, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}
	doc := gjson.ParseBytes(data)

	events := []game.Event{}
	var err error
	lastTime, lastBeat := 0.0, 0.0
	doc.Get("events").ForEach(func(key, v gjson.Result) bool {
		e := game.Event{
			Score:     int(v.Get("score").Int()),
			GivesVibe: v.Get("vibe").Bool(),
		}
		if beat := v.Get("beat"); beat.Exists() {
			e.Beat, e.HasBeat = beat.Float(), true
			lastBeat = math.Max(lastBeat, e.Beat)
		} else if time := v.Get("time"); time.Exists() {
			e.Time = time.Float()
			lastTime = math.Max(lastTime, e.Time)
		} else {
			err = errors.Errorf("event %v has neither time nor beat", key.Int())
			return false
		}
		events = append(events, e)
		return true
	})
	if nil != err {
		return nil, err
	}

	bpm := int(doc.Get("bpm").Int())
	beatTimings := []float64{}
	doc.Get("beatTimings").ForEach(func(_, v gjson.Result) bool {
		beatTimings = append(beatTimings, v.Float())
		return true
	})
	if chartFile := doc.Get("chart"); chartFile.Exists() {
		path := chartFile.String()
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		chart, err := (&ChartParser{}).Parse(path)
		if nil != err {
			return nil, err
		}
		bpm = chart.BPM()
		beatTimings, err = chart.BeatTimings(lastTime, int(math.Ceil(lastBeat))+1)
		if nil != err {
			return nil, err
		}
	}
	if bpm == 0 && len(beatTimings) > 1 && beatTimings[1] > beatTimings[0] {
		bpm = int(math.Max(1, math.Round(60/(beatTimings[1]-beatTimings[0]))))
	}

	hitWindow := p.HitWindow
	if v := doc.Get("hitWindow"); v.Exists() {
		hitWindow = v.Float()
	}
	beatDivisions := p.BeatDivisions
	if v := doc.Get("beatDivisions"); v.Exists() {
		beatDivisions = int(v.Int())
	}

	timing, err := game.NewTiming(bpm, beatDivisions, hitWindow, beatTimings)
	if nil != err {
		return nil, err
	}
	if v := doc.Get("name"); v.Exists() {
		name = v.String()
	}
	return game.NewSession(name, timing, events)
}
