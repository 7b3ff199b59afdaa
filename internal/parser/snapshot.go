package parser

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"github.com/pkg/errors"
)

// Snapshots are little endian, as written by the game plugin.
//
//	int32   bpm
//	int32   beat divisions
//	float32 hit window
//	int32   beat timing count, then float64 per beat
//	int32   hit count, then per hit:
//	  float64 time
//	  float64 beat
//	  int32   score
//	  bool    gives vibe (1 byte)
type SnapshotParser struct{}

type snapshotHeader struct {
	BPM           int32
	BeatDivisions int32
	HitWindow     float32
}

type snapshotHit struct {
	Time      float64
	Beat      float64
	Score     int32
	GivesVibe bool
}

func (p *SnapshotParser) Parse(file string) (*game.Session, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	session, err := p.Read(bufio.NewReader(f))
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read snapshot %v", file)
	}
	session.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return session, nil
}

func (p *SnapshotParser) Read(r io.Reader) (*game.Session, error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); nil != err {
		return nil, errors.Wrap(err, "header")
	}

	count, err := readCount(r)
	if nil != err {
		return nil, errors.Wrap(err, "beat timing count")
	}
	beatTimings := []float64{}
	for i := 0; i < count; i++ {
		var bt float64
		if err := binary.Read(r, binary.LittleEndian, &bt); nil != err {
			return nil, errors.Wrapf(err, "beat timing %d", i)
		}
		beatTimings = append(beatTimings, bt)
	}

	timing, err := game.NewTiming(int(header.BPM), int(header.BeatDivisions), float64(header.HitWindow), beatTimings)
	if nil != err {
		return nil, err
	}

	count, err = readCount(r)
	if nil != err {
		return nil, errors.Wrap(err, "hit count")
	}
	hits := []game.Hit{}
	for i := 0; i < count; i++ {
		var h snapshotHit
		if err := binary.Read(r, binary.LittleEndian, &h); nil != err {
			return nil, errors.Wrapf(err, "hit %d", i)
		}
		hits = append(hits, game.Hit{Time: h.Time, Beat: h.Beat, Score: int(h.Score), GivesVibe: h.GivesVibe})
	}
	if err := game.CheckHits(hits); nil != err {
		return nil, err
	}

	return &game.Session{Timing: timing, Hits: hits}, nil
}

func readCount(r io.Reader) (int, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); nil != err {
		return 0, err
	}
	if count < 0 {
		return 0, errors.Errorf("negative count %d", count)
	}
	return int(count), nil
}

func (p *SnapshotParser) Write(w io.Writer, session *game.Session) error {
	t := session.Timing
	header := snapshotHeader{
		BPM:           int32(t.BPM),
		BeatDivisions: int32(t.BeatDivisions),
		HitWindow:     float32(t.HitWindow),
	}
	if err := binary.Write(w, binary.LittleEndian, header); nil != err {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(t.BeatTimings))); nil != err {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, t.BeatTimings); nil != err {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(session.Hits))); nil != err {
		return err
	}
	for _, h := range session.Hits {
		sh := snapshotHit{Time: h.Time, Beat: h.Beat, Score: int32(h.Score), GivesVibe: h.GivesVibe}
		if err := binary.Write(w, binary.LittleEndian, sh); nil != err {
			return err
		}
	}
	return nil
}

// Save writes the session to file as a snapshot.
func (p *SnapshotParser) Save(file string, session *game.Session) error {
	f, err := os.Create(file)
	if nil != err {
		return err
	}
	w := bufio.NewWriter(f)
	if err := p.Write(w, session); nil != err {
		f.Close()
		return errors.Wrapf(err, "unable to write snapshot %v", file)
	}
	if err := w.Flush(); nil != err {
		f.Close()
		return err
	}
	return f.Close()
}
