package importer

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Strategy is one step of a fallback chain.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) core.Result
	// Accept decides whether the result ends the chain. Nil accepts any
	// successful result.
	Accept func(core.Result) bool
}

// Attempt records one strategy run, to explain why a fallback happened.
type Attempt struct {
	Strategy string
	Success  bool
	Accepted bool
	Kind     core.ErrorKind
	Elapsed  time.Duration
}

// Chain is an ordered list of strategies.
type Chain []Strategy

// Run tries each strategy in order and returns the first accepted result.
// When none is accepted it returns the earliest successful result, and
// when every strategy failed, the last failure.
func (c Chain) Run(ctx context.Context) (core.Result, []Attempt) {
	var (
		attempts []Attempt
		best     *core.Result
		last     = core.Failure(core.KindExtraction, core.MsgNoRecipeOnPage)
	)
	for _, s := range c {
		start := time.Now()
		res := s.Run(ctx)
		accepted := res.Success
		if s.Accept != nil {
			accepted = s.Accept(res)
		}
		attempts = append(attempts, Attempt{
			Strategy: s.Name,
			Success:  res.Success,
			Accepted: accepted,
			Kind:     res.Kind,
			Elapsed:  time.Since(start),
		})
		if accepted {
			return res, attempts
		}
		if res.Success && best == nil {
			r := res
			best = &r
		}
		last = res
	}
	if best != nil {
		return *best, attempts
	}
	return last, attempts
}
