package earlyrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPTAAddPathSharesPrefixes(t *testing.T) {
	tree := NewPTA()
	n1 := tree.AddPath("ab", true)
	n2 := tree.AddPath("ac", true)

	require.NotEqual(t, n1, n2)
	assert.Equal(t, 4, tree.NumNodes()) // root, a, ab, ac
}

func TestPTAAcceptingOnlyOnTerminalNode(t *testing.T) {
	tree := NewPTA()
	tree.AddPath("ab", true)

	for _, n := range tree.nodes[:len(tree.nodes)-1] {
		assert.False(t, n.accept)
	}
	assert.True(t, tree.nodes[len(tree.nodes)-1].accept)
}

func TestPTAAddAlphabetDoesNotInsertNodes(t *testing.T) {
	tree := NewPTA()
	before := tree.NumNodes()
	tree.AddAlphabet("xyz")

	assert.Equal(t, before, tree.NumNodes())
	assert.Equal(t, []byte{'x', 'y', 'z'}, tree.Alphabet())
}

func TestPTAAlphabetIsSortedAndDeduplicated(t *testing.T) {
	tree := NewPTA()
	tree.AddPath("baba", true)

	assert.Equal(t, []byte{'a', 'b'}, tree.Alphabet())
}
