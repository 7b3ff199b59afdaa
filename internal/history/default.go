package history

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DefaultHistory struct {
	Path string
	db   *sql.DB
}

// ActivationsCompact holds every activation using the same number of vibes.
type ActivationsCompact struct {
	VibesUsed int
	Spans     []SpanCompact
}

type SpanCompact struct {
	Start, End           float64
	StartBeat, EndBeat   float64
	StartIndex, EndIndex int
	Score                int
	Tolerance            float64
}

func compactActivations(activations []game.Activation) []ActivationsCompact {
	maxVibes := 0
	for _, a := range activations {
		if a.VibesUsed > maxVibes {
			maxVibes = a.VibesUsed
		}
	}
	acs := make([]ActivationsCompact, maxVibes)
	for i := range acs {
		acs[i] = ActivationsCompact{VibesUsed: i + 1, Spans: []SpanCompact{}}
	}
	for _, a := range activations {
		ac := &acs[a.VibesUsed-1]
		ac.Spans = append(ac.Spans, SpanCompact{
			Start:      a.StartTime,
			End:        a.EndTime,
			StartBeat:  a.StartBeat,
			EndBeat:    a.EndBeat,
			StartIndex: a.StartIndex,
			EndIndex:   a.EndIndex,
			Score:      a.Score,
			Tolerance:  a.Tolerance,
		})
	}
	return acs
}

// uncompactActivations restores the activations in the order the solver reports them.
func uncompactActivations(acs []ActivationsCompact) []game.Activation {
	activations := []game.Activation{}
	for _, ac := range acs {
		for _, s := range ac.Spans {
			activations = append(activations, game.Activation{
				StartTime:  s.Start,
				EndTime:    s.End,
				StartBeat:  s.StartBeat,
				EndBeat:    s.EndBeat,
				StartIndex: s.StartIndex,
				EndIndex:   s.EndIndex,
				Score:      s.Score,
				VibesUsed:  ac.VibesUsed,
				Tolerance:  s.Tolerance,
			})
		}
	}
	game.SortActivations(activations)
	return activations
}

func (h *DefaultHistory) Init() error {
	path := h.Path
	if path == "" {
		path = "./riftvibe.db"
	}
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  run text not null,
		  sum text not null,
		  score integer not null,
		  activations bytearray,
		  created integer not null
	  );
	create index if not exists results_sum on results(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create results table")
	}

	h.db = db
	return nil
}

func (h *DefaultHistory) Deinit() {
	if nil != h.db {
		h.db.Close()
	}
}

// hashSession keys results by the snapshot encoding, so the same performance
// is matched whichever format it was read from.
func (h *DefaultHistory) hashSession(session *game.Session) (string, error) {
	var buf bytes.Buffer
	if err := (&parser.SnapshotParser{}).Write(&buf, session); nil != err {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h *DefaultHistory) Save(session *game.Session, result *solver.Result) (string, error) {
	sum, err := h.hashSession(session)
	if nil != err {
		return "", errors.Wrap(err, "unable to hash session")
	}
	data, err := json.Marshal(compactActivations(result.Activations))
	if nil != err {
		return "", errors.Wrap(err, "unable to marshal activations")
	}

	run := uuid.New().String()
	_, err = h.db.Exec("insert into results(run, sum, score, activations, created) values(?, ?, ?, ?, ?)",
		run, sum, result.Score, data, time.Now().UnixNano())
	if nil != err {
		return "", errors.Wrap(err, "unable to save result")
	}
	return run, nil
}

func (h *DefaultHistory) Load(session *game.Session) ([]Record, error) {
	records := []Record{}
	sum, err := h.hashSession(session)
	if nil != err {
		return records, errors.Wrap(err, "unable to hash session")
	}

	rows, err := h.db.Query("select run, sum, score, activations, created from results where sum = ? order by id", sum)
	if nil != err {
		return records, errors.Wrap(err, "unable to load results")
	}
	defer rows.Close()
	for rows.Next() {
		var record Record
		var data []byte
		var created int64
		if err := rows.Scan(&record.Run, &record.Sum, &record.Score, &data, &created); nil != err {
			return records, errors.Wrap(err, "unable to read result")
		}
		var acs []ActivationsCompact
		if err := json.Unmarshal(data, &acs); nil != err {
			log.Println("unable to unmarshal activations of run", record.Run, err)
			continue
		}
		record.Activations = uncompactActivations(acs)
		record.Created = time.Unix(0, created)
		records = append(records, record)
	}
	return records, rows.Err()
}
