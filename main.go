package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"git.lost.host/meutraa/riftvibe/internal/batch"
	"git.lost.host/meutraa/riftvibe/internal/config"
	"git.lost.host/meutraa/riftvibe/internal/history"
	"git.lost.host/meutraa/riftvibe/internal/input"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/render"
	"git.lost.host/meutraa/riftvibe/internal/server"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"git.lost.host/meutraa/riftvibe/internal/theme"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

type program struct {
	cfg *config.Config

	// Ensure our Default implementations are used as interfaces
	parser   parser.Parser
	solver   solver.Solver
	renderer render.Renderer
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	s := &solver.DefaultSolver{}
	_, width := render.Terminal(os.Stdout)
	p := &program{
		cfg:    cfg,
		parser: &parser.DefaultParser{HitWindow: cfg.HitWindow, BeatDivisions: cfg.BeatDivisions},
		solver: s,
		renderer: &render.DefaultRenderer{
			Theme:      &theme.DefaultTheme{Color: render.UseColor(cfg.Color, os.Stdout)},
			Solver:     s,
			Candidates: cfg.Candidates,
			Width:      width,
		},
	}

	switch cfg.Command {
	case "solve":
		return p.solveFiles(cfg.Files)
	case "batch":
		return p.batch()
	case "pick":
		return p.pick()
	case "convert":
		return p.convert()
	case "history":
		return p.history()
	case "serve":
		return p.serve()
	}
	return fmt.Errorf("unknown command %v", cfg.Command)
}

func (p *program) openHistory() (history.History, error) {
	h := &history.DefaultHistory{Path: p.cfg.Database}
	if err := h.Init(); nil != err {
		return nil, fmt.Errorf("unable to open history database: %w", err)
	}
	return h, nil
}

func (p *program) solveFiles(files []string) error {
	var h history.History
	if p.cfg.Save {
		var err error
		if h, err = p.openHistory(); nil != err {
			return err
		}
		defer h.Deinit()
	}

	for _, file := range files {
		session, err := p.parser.Parse(file)
		if nil != err {
			return err
		}
		result, err := p.solver.Solve(session)
		if nil != err {
			return fmt.Errorf("unable to solve %v: %w", file, err)
		}
		if err := p.renderer.Report(os.Stdout, session, result); nil != err {
			return err
		}
		if nil != h {
			run, err := h.Save(session, result)
			if nil != err {
				return fmt.Errorf("unable to save result: %w", err)
			}
			log.Println("saved run", run)
		}
	}
	return nil
}

func (p *program) batch() error {
	files, err := batch.Files(p.cfg.Directory)
	if nil != err {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var b batch.Batch = &batch.DefaultBatch{Parser: p.parser, Solver: p.solver, Jobs: p.cfg.Jobs}
	outcomes, err := b.Solve(ctx, files)
	if nil != err {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if nil != o.Err {
			failed++
			log.Println(o.Err)
			continue
		}
		if err := p.renderer.Report(os.Stdout, o.Session, o.Result); nil != err {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%v of %v sessions failed", failed, len(outcomes))
	}
	return nil
}

func (p *program) pick() error {
	files, err := batch.Files(p.cfg.Directory)
	if nil != err {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no sessions in %v", p.cfg.Directory)
	}

	for i, file := range files {
		rel, err := filepath.Rel(p.cfg.Directory, file)
		if nil != err {
			rel = file
		}
		fmt.Printf("%v) %v\n", input.Label(i), rel)
	}
	index, err := input.Pick(len(files))
	if nil != err {
		return err
	}
	return p.solveFiles(files[index : index+1])
}

func (p *program) convert() error {
	session, err := p.parser.Parse(p.cfg.In)
	if nil != err {
		return err
	}
	if err := (&parser.SnapshotParser{}).Save(p.cfg.Out, session); nil != err {
		return fmt.Errorf("unable to write snapshot: %w", err)
	}
	log.Printf("wrote %v hits to %v\n", len(session.Hits), p.cfg.Out)
	return nil
}

func (p *program) history() error {
	session, err := p.parser.Parse(p.cfg.In)
	if nil != err {
		return err
	}
	h, err := p.openHistory()
	if nil != err {
		return err
	}
	defer h.Deinit()

	records, err := h.Load(session)
	if nil != err {
		return fmt.Errorf("unable to load history: %w", err)
	}
	return p.renderer.History(os.Stdout, session, records)
}

func (p *program) serve() error {
	var s server.Server = &server.DefaultServer{
		Parser: &parser.JSONParser{HitWindow: p.cfg.HitWindow, BeatDivisions: p.cfg.BeatDivisions},
		Solver: p.solver,
	}
	log.Println("listening on", p.cfg.Address)
	return s.Run(p.cfg.Address)
}

