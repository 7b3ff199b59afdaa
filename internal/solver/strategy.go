package solver

import "git.lost.host/meutraa/riftvibe/internal/game"

// strategy is taking one activation then continuing optimally.
type strategy struct {
	total int
	// The continuation taken after this activation, see continuation
	next int
}

// continuation is the best follow up once the next vibe available is a given
// hit. next holds every activation tied for the best score, in order.
type continuation struct {
	score int
	next  []int
	done  bool
}

// optimizer runs the strategy table from the last activation to the first.
// A continuation depends only on the next vibe hit, so the table is indexed
// by it and every entry is filled once.
type optimizer struct {
	*data
	activations   []game.Activation
	strategies    []strategy
	continuations []continuation
}

func newOptimizer(d *data, activations []game.Activation) *optimizer {
	return &optimizer{
		data:          d,
		activations:   activations,
		strategies:    make([]strategy, len(activations)),
		continuations: make([]continuation, d.count()+1),
	}
}

// best is the best continuation when the next vibe is the hit first. Only
// strategies starting after first are read, and they are always complete.
func (o *optimizer) best(first int) *continuation {
	c := &o.continuations[first]
	if c.done || first >= o.count() {
		c.done = true
		return c
	}

	second := o.nextVibe(first + 1)
	for j := len(o.activations) - 1; j >= 0 && o.activations[j].StartIndex > first; j-- {
		a := o.activations[j]
		eligible := 2
		if a.StartIndex <= second {
			eligible = 1
		}
		if a.VibesUsed != eligible {
			continue
		}

		v := o.strategies[j].total
		if v > c.score {
			c.score = v
			c.next = c.next[:0]
		}
		// A tie at zero would list every activation that scores nothing, so
		// only scoring continuations are kept
		if v == c.score && v > 0 {
			c.next = append(c.next, j)
		}
	}

	for l, r := 0, len(c.next)-1; l < r; l, r = l+1, r-1 {
		c.next[l], c.next[r] = c.next[r], c.next[l]
	}
	c.done = true
	return c
}

// run fills every strategy and returns the best opening.
func (o *optimizer) run() *continuation {
	for i := len(o.activations) - 1; i >= 0; i-- {
		a := o.activations[i]
		first := o.nextVibe(a.EndIndex)
		o.strategies[i] = strategy{
			total: a.Score + o.best(first).score,
			next:  first,
		}
	}
	return o.best(o.nextVibe(0))
}

// collect visits every strategy reachable from root, each once.
func (o *optimizer) collect(root *continuation) []game.Activation {
	visited := make([]bool, len(o.activations))
	stack := append([]int(nil), root.next...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			continue
		}
		visited[i] = true
		stack = append(stack, o.continuations[o.strategies[i].next].next...)
	}

	best := []game.Activation{}
	for i, ok := range visited {
		if ok {
			best = append(best, o.activations[i])
		}
	}
	return best
}
