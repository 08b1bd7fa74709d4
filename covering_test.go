package earlyrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleABGrammar() (Grammar, string) {
	return Grammar{
		"<Q0>": {{"a", "<Q1>"}},
		"<Q1>": {{"b", "<Q1>"}, {}},
	}, "<Q0>"
}

func TestThisSymAndIsThisSymRoundTrip(t *testing.T) {
	nt := ThisSym("a")
	assert.Equal(t, "<$[a]>", nt)

	inner, ok := isThisSym(nt)
	require.True(t, ok)
	assert.Equal(t, "a", inner)
}

func TestIsThisSymRejectsOtherNonterminals(t *testing.T) {
	_, ok := isThisSym("<Q0>")
	assert.False(t, ok)
}

func TestIsAnyNotRecognizesOnlyAnyNotNonterminals(t *testing.T) {
	assert.True(t, isAnyNot(AnyNot("a")))
	assert.False(t, isAnyNot(ThisSym("a")))
	assert.False(t, isAnyNot(AnyOne))
}

func TestAugmentGrammarWrapsStartWithTrailingJunkOption(t *testing.T) {
	g, start := simpleABGrammar()
	covering, cstart := AugmentGrammar(g, start, []string{"a", "b"})

	require.Contains(t, covering, cstart)
	assert.Contains(t, covering[cstart], Production{start})
	assert.Contains(t, covering[cstart], Production{start, AnyPlus})
}

func TestAugmentGrammarTranslatesTerminalsToThisSym(t *testing.T) {
	g, start := simpleABGrammar()
	covering, _ := AugmentGrammar(g, start, []string{"a", "b"})

	assert.Contains(t, covering[start], Production{ThisSym("a"), "<Q1>"})
}

func TestAugmentGrammarBuildsFourWayThisSymAlternatives(t *testing.T) {
	g, start := simpleABGrammar()
	covering, _ := AugmentGrammar(g, start, []string{"a", "b"})

	prods := covering[ThisSym("a")]
	assert.Contains(t, prods, Production{"a"})
	assert.Contains(t, prods, Production{AnyPlus, "a"})
	assert.Contains(t, prods, Production{Empty})
	assert.Contains(t, prods, Production{AnyNot("a")})
}

func TestTerminalsOfCollectsOnlyTerminalSymbols(t *testing.T) {
	g, start := simpleABGrammar()
	terms := TerminalsOf(g)
	assert.Equal(t, []string{"a", "b"}, terms)
	_ = start
}
