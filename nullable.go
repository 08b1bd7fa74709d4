package earlyrepair

// NullableTable computes, for every nonterminal of a covering grammar,
// whether it can derive epsilon and at what minimum penalty (§4.3).
//
// A nonterminal is nullable with penalty P if some production's
// right-hand side consists entirely of nullable symbols with summed
// penalty P; the minimum over all of that nonterminal's productions
// wins. Terminals (plain characters and the internal anyTerm/anyNot
// markers) are never nullable — they always consume one input symbol.
// Empty is nullable with intrinsic penalty 1 (a deletion correction);
// every other nonterminal's own epsilon production contributes penalty
// 0, since plain acceptance is not a correction (§9's open-question
// resolution: minimum over alternatives, not a sum across terminals).
func NullableTable(g Grammar) map[string]int {
	nullable := map[string]int{}
	for nt, prods := range g {
		for _, p := range prods {
			if len(p) == 0 {
				penalty := 0
				if nt == Empty {
					penalty = 1
				}
				if cur, ok := nullable[nt]; !ok || penalty < cur {
					nullable[nt] = penalty
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for nt, prods := range g {
			for _, p := range prods {
				if len(p) == 0 {
					continue // already seeded above
				}
				sum := 0
				ok := true
				for _, sym := range p {
					if !IsNonterminal(sym) {
						ok = false
						break
					}
					pen, known := nullable[sym]
					if !known {
						ok = false
						break
					}
					sum += pen
				}
				if !ok {
					continue
				}
				if cur, known := nullable[nt]; !known || sum < cur {
					nullable[nt] = sum
					changed = true
				}
			}
		}
	}
	return nullable
}
