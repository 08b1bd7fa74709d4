package earlyrepair

import "golang.org/x/exp/slices"

// DFA is a deterministic finite automaton with integer state
// identifiers (§3). delta is total once Complete has run; before that
// it may be partial, with missing transitions meaning "no such edge".
type DFA struct {
	Start  int
	Delta  []map[byte]int
	Accept []bool
	// Alphabet is the full symbol set the DFA was completed over, not
	// just the symbols that happen to label a transition.
	Alphabet []byte
}

// Accepts reports whether the DFA accepts w, following delta and
// rejecting as soon as a transition is missing.
func (d *DFA) Accepts(w string) bool {
	q := d.Start
	for i := 0; i < len(w); i++ {
		next, ok := d.Delta[q][w[i]]
		if !ok {
			return false
		}
		q = next
	}
	return d.Accept[q]
}

// Complete adds a sink state absorbing every transition missing from
// the known alphabet, so that simulating a negative sample against an
// incomplete DFA rejects explicitly instead of merely running out of
// transitions (§4.2). It is a no-op if the DFA is already total or the
// alphabet is empty.
func (d *DFA) Complete() {
	n := len(d.Delta)
	if len(d.Alphabet) == 0 {
		return
	}
	needsSink := false
	for s := 0; s < n && !needsSink; s++ {
		for _, a := range d.Alphabet {
			if _, ok := d.Delta[s][a]; !ok {
				needsSink = true
				break
			}
		}
	}
	if !needsSink {
		return
	}
	sink := n
	d.Delta = append(d.Delta, map[byte]int{})
	d.Accept = append(d.Accept, false)
	for _, a := range d.Alphabet {
		d.Delta[sink][a] = sink
	}
	for s := 0; s < n; s++ {
		for _, a := range d.Alphabet {
			if _, ok := d.Delta[s][a]; !ok {
				d.Delta[s][a] = sink
			}
		}
	}
}

// transitionPairs returns the (symbol, target) pairs out of state s in
// deterministic ascending-symbol order, used when emitting grammar
// productions (§4.2's "lexicographic order" tie-break rule).
func (d *DFA) transitionPairs(s int) []struct {
	Symbol byte
	Target int
} {
	syms := make([]byte, 0, len(d.Delta[s]))
	for a := range d.Delta[s] {
		syms = append(syms, a)
	}
	slices.Sort(syms)
	out := make([]struct {
		Symbol byte
		Target int
	}, 0, len(syms))
	for _, a := range syms {
		out = append(out, struct {
			Symbol byte
			Target int
		}{a, d.Delta[s][a]})
	}
	return out
}
