package earlyrepair

import (
	"context"
	"math/rand"
	"time"
)

// Engine owns one covering grammar derived from a learned right-linear
// grammar, and runs error-correcting Earley parses against it (§4.3).
// A single Engine value is reused across every repair attempt against
// the same grammar; building the covering grammar is done once, not
// per-attempt.
type Engine struct {
	cfg      *Config
	grammar  Grammar
	start    string
	alphabet []string

	covering Grammar
	cstart   string
	earley   *earleyEngine
}

// NewEngine builds the covering grammar from grammar/start/alphabet and
// prepares the Earley machinery to run against it.
func NewEngine(cfg *Config, grammar Grammar, start string, alphabet []string) *Engine {
	covering, cstart := AugmentGrammar(grammar, start, alphabet)
	return &Engine{
		cfg:      cfg,
		grammar:  grammar,
		start:    start,
		alphabet: alphabet,
		covering: covering,
		cstart:   cstart,
		earley:   newEarleyEngine(covering),
	}
}

// CorrectResult is the outcome of one successful Correct call.
type CorrectResult struct {
	Repaired string
	Penalty  int
}

// Correct runs the EC-Earley pipeline end to end: build the chart over
// input, extract the minimum-penalty (or TargetPenalty, when set)
// parse, and project it back to a string accepted by the original
// grammar (§4.3's full state sequence).
//
// If chart building times out against cfg.ParseTimeout, the attempt is
// retried with the penalty cap halved, down to a floor of 1 — a
// smaller cap shrinks the chart's branching factor dramatically, so
// this is usually enough to finish well inside the same wall-clock
// budget the first attempt blew through (§4.3's halving retry ladder).
// ParseTimeoutError is only returned once every rung of the ladder has
// also timed out.
func (e *Engine) Correct(ctx context.Context, input string, targetPenalty *int) (*CorrectResult, error) {
	cap := e.cfg.MaxPenalty
	if cap < 0 {
		cap = 0
	}

	var lastErr error
	for {
		res, err := e.attempt(ctx, input, cap, targetPenalty)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !IsParseTimeout(err) || cap <= 1 {
			return nil, lastErr
		}
		cap /= 2
	}
}

func (e *Engine) attempt(ctx context.Context, input string, cap int, targetPenalty *int) (*CorrectResult, error) {
	attemptCtx := ctx
	if e.cfg.ParseTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, e.cfg.ParseTimeout)
		defer cancel()
	}

	cols, err := e.earley.buildChart(attemptCtx, input, e.cstart, cap)
	if err != nil {
		return nil, err
	}

	tree, penalty, err := e.earley.extract(cols, e.cstart, targetPenalty, e.rng())
	if err != nil {
		return nil, err
	}

	return &CorrectResult{Repaired: Project(tree), Penalty: penalty}, nil
}

// rng returns a seeded generator when cfg.Seed is set (reproducible
// tie-breaking across runs, §9), or one seeded from wall-clock time
// otherwise. Every call gets its own *rand.Rand; there is no shared
// package-level generator.
func (e *Engine) rng() *rand.Rand {
	if e.cfg.Seed != nil {
		return rand.New(rand.NewSource(*e.cfg.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
