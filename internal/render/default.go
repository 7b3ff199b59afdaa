package render

import (
	"fmt"
	"io"
	"os"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/history"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"git.lost.host/meutraa/riftvibe/internal/theme"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	// Room left of the meter for times and vibe figures
	meterMargin = 32
	maxMeter    = 40
)

type DefaultRenderer struct {
	Theme      theme.Theme
	Solver     solver.Solver
	Candidates bool // List every activation considered, not only the optimal ones
	Width      int
}

// Terminal reports whether f is a terminal and how wide it is.
func Terminal(f *os.File) (bool, int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if nil != err || width <= 0 {
		return true, defaultWidth
	}
	return true, width
}

// UseColor resolves an auto, always or never colour mode for f.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	isTerminal, _ := Terminal(f)
	return isTerminal
}

func (r *DefaultRenderer) meterWidth() int {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	width -= meterMargin
	if width > maxMeter {
		width = maxMeter
	}
	if width < 0 {
		width = 0
	}
	return width
}

func (r *DefaultRenderer) Report(w io.Writer, session *game.Session, result *solver.Result) error {
	if _, err := fmt.Fprintf(w, "%v: %v hits, %v vibes\n", session.Name, len(session.Hits), session.VibeCount()); nil != err {
		return err
	}
	fmt.Fprintf(w, "Best score %v\n", r.Theme.RenderScore(result.Score))

	width := r.meterWidth()
	for _, a := range result.Activations {
		fmt.Fprintln(w, r.Theme.RenderActivation(a, true))
		if nil == r.Solver {
			continue
		}
		path, err := r.Solver.Trace(session, a)
		if nil != err {
			return err
		}
		for _, s := range path.Segments {
			fmt.Fprintf(w, "    %8.2fs %v %5.2f -> %5.2f\n", s.StartTime, r.Theme.RenderMeter(s.StartVibe, width), s.StartVibe, s.EndVibe)
		}
		fmt.Fprintf(w, "    %8.2fs end, hits [%v, %v)\n", path.EndTime, path.StartIndex, path.EndIndex)
	}

	if r.Candidates {
		fmt.Fprintf(w, "%v activations considered\n", len(result.Candidates))
		for _, a := range result.Candidates {
			fmt.Fprintln(w, r.Theme.RenderActivation(a, result.Optimal(a)))
		}
	}
	return nil
}

func (r *DefaultRenderer) History(w io.Writer, session *game.Session, records []history.Record) error {
	if _, err := fmt.Fprintf(w, "%v: %v earlier results\n", session.Name, len(records)); nil != err {
		return err
	}
	for _, record := range records {
		fmt.Fprintf(w, "%v  %v  %v points, %v activations\n",
			record.Run, record.Created.Format("2006-01-02 15:04:05"), r.Theme.RenderScore(record.Score), len(record.Activations))
	}
	return nil
}
