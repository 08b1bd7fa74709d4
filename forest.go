package earlyrepair

import "math/rand"

// parseNode is one node of the extracted parse tree: either a leaf
// holding a concrete matched character, or an interior node named
// after the covering-grammar symbol it derives, with one child per
// production-term (§3's "Parse forest node").
type parseNode struct {
	name     string
	isTerm   bool
	term     string
	children []*parseNode
}

// pathStep is one element of a candidate derivation path for a
// production's right-hand side: either a literal terminal match, or a
// reference to a finished sub-state covering some later span (§3).
type pathStep struct {
	isTerm   bool
	term     string
	child    *earleyState
	childEnd int
}

// parsePaths enumerates every way expr can span cols[frm:til], by
// walking its symbols left to right: a terminal consumes exactly one
// input position, a nonterminal matches any finished state in the
// chart sharing its name and start column. This is what gives the
// engine genuine forest behaviour — ambiguous grammars surface as
// multiple paths here, all carrying their own accumulated penalty via
// the finished child states they reference.
func (e *earleyEngine) parsePaths(expr Production, cols []*earleyColumn, frm, til int) [][]pathStep {
	if len(expr) == 0 {
		if frm == til {
			return [][]pathStep{{}}
		}
		return nil
	}

	term := expr[0]
	rest := expr[1:]
	var results [][]pathStep

	if !IsNonterminal(term) {
		if frm >= til || cols[frm+1].letter != term {
			return nil
		}
		for _, sub := range e.parsePaths(rest, cols, frm+1, til) {
			path := make([]pathStep, 0, len(sub)+1)
			path = append(path, pathStep{isTerm: true, term: term})
			path = append(path, sub...)
			results = append(results, path)
		}
		return results
	}

	for k := frm; k <= til; k++ {
		for _, st := range cols[k].states {
			if st.name != term || st.start != frm || !st.finished() {
				continue
			}
			for _, sub := range e.parsePaths(rest, cols, k, til) {
				path := make([]pathStep, 0, len(sub)+1)
				path = append(path, pathStep{child: st, childEnd: k})
				path = append(path, sub...)
				results = append(results, path)
			}
		}
	}
	return results
}

// bestPathFor picks, among every way to derive st's own production
// over [st.start, end), the path(s) of minimum cumulative penalty
// (summing only the penalty carried by nonterminal sub-states, per
// §4.3's cost definition) and builds the corresponding parse node,
// breaking ties uniformly at random via rng (§4.3, §9).
func (e *earleyEngine) bestPathFor(st *earleyState, end int, cols []*earleyColumn, rng *rand.Rand) *parseNode {
	paths := e.parsePaths(st.expr, cols, st.start, end)
	if len(paths) == 0 {
		return &parseNode{name: st.name}
	}

	best := -1
	costs := make([]int, len(paths))
	for i, p := range paths {
		cost := 0
		for _, step := range p {
			if !step.isTerm {
				cost += step.child.penalty
			}
		}
		costs[i] = cost
		if best == -1 || cost < best {
			best = cost
		}
	}

	var tiedIdx []int
	for i, c := range costs {
		if c == best {
			tiedIdx = append(tiedIdx, i)
		}
	}
	chosen := paths[tiedIdx[rng.Intn(len(tiedIdx))]]

	node := &parseNode{name: st.name}
	for _, step := range chosen {
		if step.isTerm {
			node.children = append(node.children, &parseNode{isTerm: true, term: step.term})
		} else {
			node.children = append(node.children, e.bestPathFor(step.child, step.childEnd, cols, rng))
		}
	}
	return node
}

// extract runs the "Extract" state of §4.3: collect every finished
// state of the augmented start symbol at the last column, pick the
// minimum-penalty one (or the one at exactly targetPenalty if given,
// falling back to the minimum when no such parse exists — §9's
// supplemented target-penalty selection mode), build its tree, and
// report the penalty of the state actually chosen, so a caller never
// has to re-derive it (and risk it disagreeing with the tree it's
// paired with).
func (e *earleyEngine) extract(cols []*earleyColumn, start string, targetPenalty *int, rng *rand.Rand) (*parseNode, int, error) {
	last := cols[len(cols)-1]
	var finals []*earleyState
	for _, st := range last.states {
		if st.name == start && st.start == 0 && st.finished() {
			finals = append(finals, st)
		}
	}
	if len(finals) == 0 {
		return nil, 0, &NoParseError{Input: last.index}
	}

	chosen := minPenaltyState(finals)
	if targetPenalty != nil {
		if exact := stateWithPenalty(finals, *targetPenalty); exact != nil {
			chosen = exact
		}
	}
	return e.bestPathFor(chosen, len(cols)-1, cols, rng), chosen.penalty, nil
}

func minPenaltyState(states []*earleyState) *earleyState {
	best := states[0]
	for _, st := range states[1:] {
		if st.penalty < best.penalty {
			best = st
		}
	}
	return best
}

func stateWithPenalty(states []*earleyState, penalty int) *earleyState {
	for _, st := range states {
		if st.penalty == penalty {
			return st
		}
	}
	return nil
}
