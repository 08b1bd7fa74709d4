package earlyrepair

import "context"

// RepairOutcome is the terminal state of one RepairLoop.Run call.
type RepairOutcome int

const (
	Repaired RepairOutcome = iota
	Failed
)

func (o RepairOutcome) String() string {
	if o == Repaired {
		return "repaired"
	}
	return "failed"
}

// RepairStatus reports what a RepairLoop.Run call produced: the
// repaired string and its penalty on success, or nothing but the
// attempt count on exhaustion (§4.4, §8's "monotone negatives" and
// "bounded attempts" properties).
type RepairStatus struct {
	Outcome  RepairOutcome
	Result   string
	Penalty  int
	Attempts int
}

// RepairLoop wires grammar inference, EC-Earley correction, and oracle
// validation into the cache-or-learn / correct / validate / relearn
// cycle of §4.4. It holds no state between Run calls beyond what's on
// disk at cachePath; two RepairLoop values never share a grammar.
type RepairLoop struct {
	cfg       *Config
	oracle    Oracle
	log       Logger
	cachePath string // empty disables cache persistence
}

// NewRepairLoop builds a RepairLoop. A nil log defaults to NopLogger;
// an empty cachePath means every Run starts from a fresh RPNI learn.
func NewRepairLoop(cfg *Config, oracle Oracle, log Logger, cachePath string) *RepairLoop {
	if log == nil {
		log = NopLogger{}
	}
	return &RepairLoop{cfg: cfg, oracle: oracle, log: log, cachePath: cachePath}
}

// Run attempts to repair broken so that the oracle accepts it, given
// positive and negative examples of the target language. On each
// oracle rejection the rejected candidate is folded into the negative
// set and the grammar is relearned (§4.4's "Correct -> Validate ->
// (failure) -> relearn" cycle), up to cfg.MaxAttempts.
func (r *RepairLoop) Run(ctx context.Context, positives, negatives []string, broken string) (*RepairStatus, error) {
	negatives = append([]string(nil), negatives...)

	grammar, start, alphabet, err := r.loadOrLearn(positives, negatives)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		r.log.Info("attempt %d/%d: correcting %q", attempt, r.cfg.MaxAttempts, broken)

		engine := NewEngine(r.cfg, grammar, start, alphabet)
		res, err := engine.Correct(ctx, broken, nil)
		if err != nil {
			r.log.Warn("attempt %d: %v", attempt, err)
			negatives = append(negatives, broken)
			grammar, start, alphabet, err = r.relearn(positives, negatives)
			if err != nil {
				return nil, err
			}
			continue
		}

		ok, oerr := r.oracle.Validate(ctx, res.Repaired)
		if oerr != nil {
			r.log.Warn("attempt %d: oracle error on %q: %v", attempt, res.Repaired, oerr)
		}
		if ok {
			r.log.Success("repaired %q -> %q (penalty %d)", broken, res.Repaired, res.Penalty)
			return &RepairStatus{Outcome: Repaired, Result: res.Repaired, Penalty: res.Penalty, Attempts: attempt}, nil
		}

		r.log.Warn("attempt %d: oracle rejected %q, relearning", attempt, res.Repaired)
		negatives = append(negatives, res.Repaired)
		grammar, start, alphabet, err = r.relearn(positives, negatives)
		if err != nil {
			return nil, err
		}
	}

	return &RepairStatus{Outcome: Failed, Attempts: r.cfg.MaxAttempts}, nil
}

// loadOrLearn and relearn both funnel their result through
// NormalizeGrammar before returning it: a cache-loaded grammar and a
// freshly RPNI-learned grammar are otherwise handed to the EC-Earley
// engine by two different paths, and §4.4 step 2 names a single
// normalize-then-assert checkpoint both must pass through.
func (r *RepairLoop) loadOrLearn(positives, negatives []string) (Grammar, string, []string, error) {
	if r.cachePath != "" {
		if g, start, alphabet, err := LoadGrammarCache(r.cachePath); err == nil {
			r.log.Debug("loaded grammar cache %s", r.cachePath)
			return normalizeOrFail(g, start, alphabet)
		} else if IsCacheCorruption(err) {
			return nil, "", nil, err
		}
	}
	return r.relearn(positives, negatives)
}

func (r *RepairLoop) relearn(positives, negatives []string) (Grammar, string, []string, error) {
	grammar, start, alphabet := LearnGrammar(positives, negatives)
	if r.cachePath != "" {
		if err := SaveGrammarCache(r.cachePath, grammar, start, alphabet); err != nil {
			return nil, "", nil, err
		}
	}
	return normalizeOrFail(grammar, start, alphabet)
}

func normalizeOrFail(grammar Grammar, start string, alphabet []string) (Grammar, string, []string, error) {
	normalized, err := NormalizeGrammar(grammar)
	if err != nil {
		return nil, "", nil, err
	}
	return normalized, start, alphabet, nil
}
