package earlyrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRPNILearnsConsistentDFA(t *testing.T) {
	positives := []string{"a", "b", "ab", "ba"}
	negatives := []string{"", "aa", "bb", "aba", "bab"}

	dfa := NewRPNI(positives, negatives).Learn()

	for _, p := range positives {
		assert.True(t, dfa.Accepts(p), "expected %q to be accepted", p)
	}
	for _, n := range negatives {
		assert.False(t, dfa.Accepts(n), "expected %q to be rejected", n)
	}
}

func TestRPNIMergesReduceStateCount(t *testing.T) {
	positives := []string{"a", "aa", "aaa"}
	dfa := NewRPNI(positives, nil).Learn()

	// with no negatives every merge is consistent, so the four-node PTA
	// collapses to a single accepting state looping on "a".
	assert.LessOrEqual(t, len(dfa.Delta), 3)
}

func TestRPNIEmptyPositivesAcceptsOnlyEmptyOrNothing(t *testing.T) {
	dfa := NewRPNI([]string{""}, []string{"a"}).Learn()

	assert.True(t, dfa.Accepts(""))
	assert.False(t, dfa.Accepts("a"))
}

func TestRPNIStaysConsistentWhenMergesConflict(t *testing.T) {
	// "ab" and "ba" both positive but differ at every position force
	// the learner to keep enough structure apart that it must still
	// reject "aa"/"bb" even if no merge beyond the trivial one holds.
	positives := []string{"ab", "ba"}
	negatives := []string{"aa", "bb", "a", "b"}

	dfa := NewRPNI(positives, negatives).Learn()
	for _, n := range negatives {
		assert.False(t, dfa.Accepts(n))
	}
	for _, p := range positives {
		assert.True(t, dfa.Accepts(p))
	}
}
