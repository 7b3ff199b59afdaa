package game

import "github.com/pkg/errors"

// Session is one recorded performance: the chart timing and every merged hit.
type Session struct {
	Name   string
	Timing *Timing
	Hits   []Hit
}

func NewSession(name string, timing *Timing, events []Event) (*Session, error) {
	hits, err := MergeEvents(timing, events)
	if nil != err {
		return nil, err
	}
	return &Session{Name: name, Timing: timing, Hits: hits}, nil
}

func (s *Session) Validate() error {
	if nil == s.Timing {
		return errors.Wrap(ErrInvalidTiming, "session has no timing")
	}
	if err := s.Timing.Validate(); nil != err {
		return err
	}
	return CheckHits(s.Hits)
}

func (s *Session) VibeCount() int {
	count := 0
	for _, h := range s.Hits {
		if h.GivesVibe {
			count++
		}
	}
	return count
}
