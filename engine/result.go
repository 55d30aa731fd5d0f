package engine

import "github.com/ardnew/tabry/conf"

// Result is the outcome of running a [Machine]: the configuration, the final
// state, and the chain of subcommands the state selects, root first.
type Result struct {
	Conf  *conf.Conf
	State *State
	Subs  []*conf.ConcreteSub
}

// NewResult resolves the subcommand chain selected by s.
func NewResult(c *conf.Conf, s *State) (*Result, error) {
	subs, err := c.DigSubs(s.Subs)
	if err != nil {
		return nil, err
	}

	return &Result{Conf: c, State: s, Subs: subs}, nil
}

// Current returns the innermost selected subcommand.
func (r *Result) Current() *conf.ConcreteSub {
	return r.Subs[len(r.Subs)-1]
}
