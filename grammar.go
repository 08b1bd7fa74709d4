package earlyrepair

import "fmt"

// Production is a single right-hand side of a grammar rule: a
// sequence of terminal/nonterminal symbols, or an empty slice for an
// epsilon production (§3).
type Production []string

// Grammar maps a nonterminal name to its list of productions. Right-
// linear grammars produced by DFAToGrammar only ever contain
// productions of the form []  or  [a, <Qj>] (§3); the covering
// grammar built in covering.go extends this with longer alternatives.
type Grammar map[string][]Production

// NT formats the right-linear nonterminal name for DFA state i.
func NT(i int) string {
	return fmt.Sprintf("<Q%d>", i)
}

// IsNonterminal reports whether s is a bracketed nonterminal name
// (e.g. "<Q3>", "<$[a]>") as opposed to a single-character terminal.
func IsNonterminal(s string) bool {
	return len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>'
}

// DFAToGrammar converts a DFA into a right-linear CFG: <Qi> -> a <Qj>
// for each transition i --a--> j, and <Qi> -> [] for each accepting
// state i. Productions within a nonterminal are emitted in ascending
// symbol order for reproducibility (§4.2). The returned alphabet is
// the DFA's full symbol set as single-character strings.
func DFAToGrammar(dfa *DFA) (Grammar, string, []string) {
	g := Grammar{}
	for i := range dfa.Delta {
		nt := NT(i)
		var prods []Production
		if dfa.Accept[i] {
			prods = append(prods, Production{})
		}
		for _, tr := range dfa.transitionPairs(i) {
			prods = append(prods, Production{string(tr.Symbol), NT(tr.Target)})
		}
		g[nt] = prods
	}
	start := NT(dfa.Start)

	alphabet := make([]string, len(dfa.Alphabet))
	for i, a := range dfa.Alphabet {
		alphabet[i] = string(a)
	}
	return g, start, alphabet
}

// LearnGrammar is the composition of RPNI inference and grammar
// conversion: learn(P, N) from spec §4.2 followed directly by the
// right-linear CFG projection used by the rest of the pipeline.
func LearnGrammar(positives, negatives []string) (Grammar, string, []string) {
	dfa := NewRPNI(positives, negatives).Learn()
	return DFAToGrammar(dfa)
}

// NormalizeGrammar is the step the EC-Earley engine relies on before
// augmenting any grammar into a covering grammar (§4.4 step 2): it
// asserts the string-only invariant via AssertStringOnly and returns a
// defensive deep copy, so the engine never shares production slices
// with whatever built the grammar. Go's type system already rules out
// the original's set-valued terminals structurally, so there is
// nothing to expand here the way the original's normalize step did —
// this exists so every Grammar, whether RPNI-learned, loaded from
// cache, or hand-built by an embedder, passes through the same single
// checkpoint before reaching the parser.
func NormalizeGrammar(g Grammar) (Grammar, error) {
	if err := AssertStringOnly(g); err != nil {
		return nil, err
	}
	out := make(Grammar, len(g))
	for nt, prods := range g {
		cp := make([]Production, len(prods))
		for i, p := range prods {
			cp[i] = append(p[:0:0], p...)
		}
		out[nt] = cp
	}
	return out, nil
}

// AssertStringOnly walks every production of g, checking that every
// right-hand-side symbol is non-empty and that anything opening with
// '<' is a well-formed bracketed nonterminal name (§4.4 step 2, §7's
// "string-only invariant"). It never runs into a non-string symbol —
// Production is already []string — so this is purely a structural
// sanity check against malformed symbols in a hand-built or corrupted
// Grammar.
func AssertStringOnly(g Grammar) error {
	for nt, prods := range g {
		if nt == "" {
			return &InvalidGrammarError{Reason: "empty nonterminal name"}
		}
		for _, p := range prods {
			for _, sym := range p {
				if sym == "" {
					return &InvalidGrammarError{Reason: "empty symbol in a production of " + nt}
				}
				if sym[0] == '<' && !IsNonterminal(sym) {
					return &InvalidGrammarError{Reason: "malformed nonterminal-like symbol " + sym}
				}
			}
		}
	}
	return nil
}
