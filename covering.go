package earlyrepair

import "golang.org/x/exp/slices"

// Covering-grammar nonterminal and terminal vocabulary (§3). Terminal
// markers anyTerm/anyNotTerm are longer than one character so the
// Earley engine's scan step (earley.go) can tell a generic "match
// anything" or "match anything but X" production term apart from an
// ordinary single-character terminal without a separate tag field.
const (
	AnyOne = "<$.>"  // matches any single symbol, penalty 1
	AnyPlus = "<$.+>" // one or more symbols (Kleene-plus over AnyOne)
	Empty   = "<$>"   // epsilon, penalty 1

	anyTerm = "$."
)

// ThisSym is the covering nonterminal standing in for an expected
// terminal a: exact match, insertion, deletion, or substitution.
func ThisSym(a string) string { return "<$[" + a + "]>" }

// AnyNot is the covering nonterminal matching any symbol other than a.
func AnyNot(a string) string { return "<$![" + a + "]>" }

func anyNotTerm(a string) string { return "!" + a }

// isThisSym/isAnyNot extract the wrapped terminal from a ThisSym/AnyNot
// nonterminal name, used by projection (project.go) and by the chart's
// intrinsic-penalty rule (earley.go).
func isThisSym(nt string) (string, bool) {
	if len(nt) > 3 && nt[:3] == "<$[" && nt[len(nt)-2:] == "]>" {
		return nt[3 : len(nt)-2], true
	}
	return "", false
}

func isAnyNot(nt string) bool {
	return len(nt) > 4 && nt[:4] == "<$!["
}

// corruptStart names the wrapped start symbol for the trailing-junk
// wrapper <$start'> -> <start> | <start> <$.+> (§3). Each learned
// grammar may have a different start nonterminal (e.g. "<Q0>"), so the
// wrapper name is derived per-grammar rather than being a single fixed
// string.
func corruptStart(old string) string {
	inner := old
	if len(old) >= 2 {
		inner = old[1 : len(old)-1]
	}
	return "<@# " + inner + ">"
}

// AugmentGrammar builds the covering grammar from a right-linear
// grammar g with start symbol start, over the given terminal alphabet
// symbols. It is deterministic: given the same g/start/symbols it
// produces byte-identical productions every time (§4.3 "deterministic
// augment").
func AugmentGrammar(g Grammar, start string, symbols []string) (Grammar, string) {
	covering := Grammar{}

	for nt, prods := range g {
		translated := make([]Production, len(prods))
		for i, p := range prods {
			np := make(Production, len(p))
			for j, sym := range p {
				if IsNonterminal(sym) {
					np[j] = sym
				} else {
					np[j] = ThisSym(sym)
				}
			}
			translated[i] = np
		}
		covering[nt] = translated
	}

	cstart := corruptStart(start)
	covering[cstart] = []Production{
		{start},
		{start, AnyPlus},
	}

	covering[AnyOne] = []Production{{anyTerm}}
	covering[AnyPlus] = []Production{
		{AnyOne},
		{AnyPlus, AnyOne},
	}
	covering[Empty] = []Production{{}}

	for _, a := range symbols {
		covering[AnyNot(a)] = []Production{{anyNotTerm(a)}}
		covering[ThisSym(a)] = []Production{
			{a},
			{AnyPlus, a},
			{Empty},
			{AnyNot(a)},
		}
	}

	return covering, cstart
}

// TerminalsOf collects every terminal symbol occurring anywhere in g's
// productions (used to derive an alphabet when one isn't already
// tracked alongside the grammar, e.g. after loading a cache — §6).
func TerminalsOf(g Grammar) []string {
	seen := map[string]struct{}{}
	for _, prods := range g {
		for _, p := range prods {
			for _, sym := range p {
				if !IsNonterminal(sym) {
					seen[sym] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
