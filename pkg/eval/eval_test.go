package eval_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/board/fen"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, f string) *board.Position {
	t.Helper()
	zt := board.NewSeededZobristTable(1)
	p, err := fen.Decode(zt, f)
	require.NoError(t, err)
	return p
}

func TestStandardEvaluateSymmetricStartingPosition(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	assert.Equal(t, board.Score(0), eval.Standard{}.Evaluate(pos))
}

func TestStandardEvaluateFavorsMaterialAdvantage(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	score := eval.Standard{}.Evaluate(pos)
	assert.Greater(t, int(score), 0)
}

func TestStandardEvaluateNegatesForBlackAdvantage(t *testing.T) {
	pos := mustDecode(t, "4k2r/8/8/8/8/8/8/4K3 w - - 0 1")
	score := eval.Standard{}.Evaluate(pos)
	assert.Less(t, int(score), 0)
}

func TestStandardEvaluateEndgameDrivesKingToEdge(t *testing.T) {
	centered := mustDecode(t, "8/8/3k4/8/3K4/3Q4/8/8 w - - 0 1")
	cornered := mustDecode(t, "k7/8/8/8/3K4/3Q4/8/8 w - - 0 1")

	assert.Greater(t, int(eval.Standard{}.Evaluate(cornered)), int(eval.Standard{}.Evaluate(centered)))
}
