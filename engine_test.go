package earlyrepair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateLikeGrammar() (Grammar, string, []string) {
	positives := []string{"2024-01-05", "2024-11-05", "1999-12-31", "2000-01-01"}
	return LearnGrammar(positives, nil)
}

func TestEngineCorrectFixesOneCharSubstitution(t *testing.T) {
	grammar, start, alphabet := dateLikeGrammar()
	cfg := DefaultConfig()
	seed := int64(7)
	cfg.Seed = &seed

	eng := NewEngine(cfg, grammar, start, alphabet)
	res, err := eng.Correct(context.Background(), "2024-1a-05", nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Penalty, 2)
	assert.Len(t, res.Repaired, len("2024-01-05"))
}

func TestEngineCorrectIsIdempotentOnAlreadyAcceptedInput(t *testing.T) {
	grammar, start, alphabet := dateLikeGrammar()
	cfg := DefaultConfig()
	seed := int64(1)
	cfg.Seed = &seed

	eng := NewEngine(cfg, grammar, start, alphabet)
	res, err := eng.Correct(context.Background(), "2024-11-05", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-05", res.Repaired)
	assert.Equal(t, 0, res.Penalty)
}

func TestEngineCorrectTrimsTrailingJunk(t *testing.T) {
	grammar, start, alphabet := dateLikeGrammar()
	cfg := DefaultConfig()
	seed := int64(3)
	cfg.Seed = &seed

	eng := NewEngine(cfg, grammar, start, alphabet)
	res, err := eng.Correct(context.Background(), "2024-11-05   ", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-05", res.Repaired)
}

func TestEngineCorrectSurfacesTimeoutAfterEveryCapRetry(t *testing.T) {
	grammar, start, alphabet := dateLikeGrammar()
	cfg := DefaultConfig()
	cfg.ParseTimeout = 0 // disable per-attempt timeout so the outer deadline below governs
	cfg.MaxPenalty = 8

	eng := NewEngine(cfg, grammar, start, alphabet)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already expired: every attempt, even at cap 1, must surface the timeout

	_, err := eng.Correct(ctx, "2024-11-05", nil)
	require.Error(t, err)
	assert.True(t, IsParseTimeout(err))
}
