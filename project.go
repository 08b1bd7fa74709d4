package earlyrepair

import "strings"

// Project walks a chosen covering-grammar parse tree and emits the
// repaired string: every ThisSym(a) node emits its expected terminal a
// regardless of which corrective alternative actually fired (exact
// match, insertion, deletion, or substitution), the correction
// machinery nodes (AnyOne, AnyPlus, Empty, AnyNot) are dropped
// entirely along with their subtrees, and every other nonterminal is
// recursed through transparently (§4.3's "Projection" state).
//
// The result is guaranteed accepted by the original (non-covering)
// grammar, since every symbol it can ever emit is exactly a terminal
// that grammar's productions expect.
func Project(tree *parseNode) string {
	var b strings.Builder
	projectVisit(tree, &b)
	return b.String()
}

func projectVisit(n *parseNode, b *strings.Builder) {
	if n == nil || n.isTerm {
		return
	}
	if expected, ok := isThisSym(n.name); ok {
		b.WriteString(expected)
		return
	}
	if n.name == AnyOne || n.name == AnyPlus || n.name == Empty || isAnyNot(n.name) {
		return
	}
	for _, child := range n.children {
		projectVisit(child, b)
	}
}
