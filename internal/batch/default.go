package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type DefaultBatch struct {
	Parser parser.Parser
	Solver solver.Solver
	Jobs   int
}

// Files lists every session file below directory in path order.
func Files(directory string) ([]string, error) {
	files := []string{}
	err := filepath.Walk(directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if !info.IsDir() && parser.IsSession(p) {
			files = append(files, p)
		}
		return nil
	})
	if nil != err {
		return nil, errors.Wrapf(err, "unable to walk session directory %v", directory)
	}
	sort.Strings(files)
	return files, nil
}

func (b *DefaultBatch) Solve(ctx context.Context, files []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	jobs := b.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); nil != err {
				return err
			}
			outcomes[i].File = file
			session, err := b.Parser.Parse(file)
			if nil != err {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Session = session
			outcomes[i].Result, outcomes[i].Err = b.Solver.Solve(session)
			return nil
		})
	}

	if err := g.Wait(); nil != err {
		return nil, err
	}
	return outcomes, nil
}
