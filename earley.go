package earlyrepair

import (
	"context"
	"fmt"
	"strings"
)

// earleyState is a dotted Earley item extended with a correction
// penalty (§3, §4.3). expr holds the production's symbols; once a
// generic covering terminal (anyTerm or an AnyNot marker) is scanned,
// the matched dot position is rewritten in place to the concrete
// character observed, so later forest extraction can read the actual
// repaired character straight off the state.
type earleyState struct {
	name    string
	expr    Production
	dot     int
	start   int
	penalty int
}

func (s *earleyState) finished() bool { return s.dot == len(s.expr) }

func (s *earleyState) atDot() (string, bool) {
	if s.dot >= len(s.expr) {
		return "", false
	}
	return s.expr[s.dot], true
}

// advance returns a copy of s with the dot moved one position forward,
// optionally rewriting expr (non-nil to substitute, e.g. after a scan)
// and adding extraPenalty (from a completion or a nullable skip).
func (s *earleyState) advance(newExpr Production, extraPenalty int) *earleyState {
	expr := s.expr
	if newExpr != nil {
		expr = newExpr
	}
	return &earleyState{name: s.name, expr: expr, dot: s.dot + 1, start: s.start, penalty: s.penalty + extraPenalty}
}

// intrinsicPenalty is the cost baked into a state the moment it is
// predicted, based purely on which covering nonterminal it derives:
// Empty, AnyOne and any AnyNot(x) each represent a one-symbol
// correction (§3); everything else (ordinary grammar nonterminals,
// ThisSym, AnyPlus, the start wrapper) costs nothing on its own — any
// cost they carry comes from a corrective child completing into them.
func intrinsicPenalty(name string) int {
	if name == Empty || name == AnyOne {
		return 1
	}
	if isAnyNot(name) {
		return 1
	}
	return 0
}

// earleyColumn holds the states ending at one input position, de-
// duplicated by (name, rule, dot, startCol) with the lower-penalty
// state of a colliding pair winning (§3, §4.3).
type earleyColumn struct {
	index  int
	letter string // the character consumed to reach this column; "" for column 0
	states []*earleyState
	index2 map[string]int
	// lowered is set when add replaces a state with a cheaper one, so
	// buildChart knows to run the column's predict/complete pass again.
	lowered bool
}

func newEarleyColumn(index int, letter string) *earleyColumn {
	return &earleyColumn{index: index, letter: letter, index2: map[string]int{}}
}

func stateKey(name string, expr Production, dot, start int) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('\x1f')
	for _, sym := range expr {
		b.WriteString(sym)
		b.WriteByte('\x1e')
	}
	fmt.Fprintf(&b, "\x1f%d\x1f%d", dot, start)
	return b.String()
}

// add inserts st into the column, honoring the penalty cap (states
// above maxPenalty are silently dropped, §4.3's pruning rule) and the
// lower-penalty-wins de-duplication policy. A replaced state is flagged
// through lowered so its cheaper penalty is propagated again.
func (c *earleyColumn) add(st *earleyState, maxPenalty int) {
	if st.penalty > maxPenalty {
		return
	}
	key := stateKey(st.name, st.expr, st.dot, st.start)
	if idx, ok := c.index2[key]; ok {
		if st.penalty < c.states[idx].penalty {
			c.states[idx] = st
			c.lowered = true
		}
		return
	}
	c.index2[key] = len(c.states)
	c.states = append(c.states, st)
}

// earleyEngine drives the chart-building phase of error-correcting
// Earley parsing over a covering grammar (§4.3's "Init ->
// Chart-building" state).
type earleyEngine struct {
	grammar  Grammar
	nullable map[string]int
}

func newEarleyEngine(grammar Grammar) *earleyEngine {
	return &earleyEngine{grammar: grammar, nullable: NullableTable(grammar)}
}

// buildChart runs predict/scan/complete to a fixed point over every
// column of input, seeded from start's productions in column 0. The
// deadline carried by ctx is checked once per column rather than once
// per state, since a column's predict/complete fixpoint is the unit of
// work that can blow up on a pathological input (§4.3's wall-clock
// guard).
func (e *earleyEngine) buildChart(ctx context.Context, input string, start string, maxPenalty int) ([]*earleyColumn, error) {
	n := len(input)
	cols := make([]*earleyColumn, n+1)
	cols[0] = newEarleyColumn(0, "")
	for i := 1; i <= n; i++ {
		cols[i] = newEarleyColumn(i, string(input[i-1]))
	}

	for _, prod := range e.grammar[start] {
		st := &earleyState{name: start, expr: prod, dot: 0, start: 0, penalty: intrinsicPenalty(start)}
		cols[0].add(st, maxPenalty)
	}

	for i := 0; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &ParseTimeoutError{Deadline: err.Error()}
		}
		col := cols[i]
		for again := true; again; again = col.lowered {
			col.lowered = false
			for idx := 0; idx < len(col.states); idx++ {
				st := col.states[idx]
				if st.finished() {
					e.complete(cols, col, st, maxPenalty)
					continue
				}
				sym, _ := st.atDot()
				if IsNonterminal(sym) {
					e.predict(col, sym, st, maxPenalty)
				}
			}
		}
		if i < n {
			e.scan(col, cols[i+1], maxPenalty)
		}
	}
	return cols, nil
}

// predict adds dot=0 states for every production of sym at col, and
// (§4.3) if sym is nullable, directly advances the waiting parent
// state with its nullable penalty added — an epsilon-derivation never
// needs to wait for a separate completion step.
func (e *earleyEngine) predict(col *earleyColumn, sym string, parent *earleyState, maxPenalty int) {
	for _, prod := range e.grammar[sym] {
		ns := &earleyState{name: sym, expr: prod, dot: 0, start: col.index, penalty: intrinsicPenalty(sym)}
		col.add(ns, maxPenalty)
	}
	if pen, ok := e.nullable[sym]; ok {
		col.add(parent.advance(nil, pen), maxPenalty)
	}
}

// scan matches every incomplete state in col against the letter
// leading into next, rewriting generic markers ($. and !x) to the
// concrete character observed (§4.3).
func (e *earleyEngine) scan(col, next *earleyColumn, maxPenalty int) {
	for _, st := range col.states {
		if st.finished() {
			continue
		}
		sym, _ := st.atDot()
		if IsNonterminal(sym) {
			continue
		}
		concrete, ok := matchTerminal(sym, next.letter)
		if !ok {
			continue
		}
		newExpr := append(Production(nil), st.expr...)
		newExpr[st.dot] = concrete
		next.add(st.advance(newExpr, 0), maxPenalty)
	}
}

// matchTerminal reports whether rule matches input, and if so the
// concrete symbol to record at the dot position. "$." matches any
// character; "!x" matches any character other than x; anything else
// must match input exactly (§4.3).
func matchTerminal(rule, input string) (string, bool) {
	if rule == anyTerm {
		return input, true
	}
	if len(rule) > 1 && rule[0] == '!' {
		except := rule[1:]
		if input != except {
			return input, true
		}
		return "", false
	}
	if rule == input {
		return rule, true
	}
	return "", false
}

// complete advances every state in state's start column that was
// waiting on state.name, adding state's own penalty to each (§4.3's
// "penalty of a completed state equals the sum of penalties of all its
// contributing substates" invariant).
func (e *earleyEngine) complete(cols []*earleyColumn, col *earleyColumn, state *earleyState, maxPenalty int) {
	startCol := cols[state.start]
	for _, parent := range startCol.states {
		sym, ok := parent.atDot()
		if !ok || sym != state.name {
			continue
		}
		col.add(parent.advance(nil, state.penalty), maxPenalty)
	}
}
