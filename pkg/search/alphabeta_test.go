package search_test

import (
	"context"
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/board/fen"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/corvid-labs/corvus/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, f string) *board.Position {
	t.Helper()
	zt := board.NewSeededZobristTable(42)
	p, err := fen.Decode(zt, f)
	require.NoError(t, err)
	return p
}

func newSearcher() *search.Searcher {
	return &search.Searcher{TT: search.NewTranspositionTable(1 << 16), Eval: eval.Standard{}}
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos := mustDecode(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	res := newSearcher().Search(context.Background(), pos, 2)

	want, err := board.ParseMove("a1a8")
	require.NoError(t, err)
	assert.True(t, want.Equals(res.Best), "expected a1a8, got %v", res.Best)
	assert.GreaterOrEqual(t, int(res.Score), int(board.MateScore)-10)
}

func TestSearchAvoidsHangingAPiece(t *testing.T) {
	// White to move: Qd1 sits on the same diagonal as the black bishop on g4 with nothing in
	// between. A reasonable search must not leave the queen there for the taking.
	pos := mustDecode(t, "4k3/8/8/8/6b1/8/8/3QK3 w - - 0 1")
	res := newSearcher().Search(context.Background(), pos, 3)

	assert.Greater(t, int(res.Score), -500, "search should not choose to hang the queen")
}

func TestSearchStalemateScoresZero(t *testing.T) {
	pos := mustDecode(t, "7k/8/6QK/8/8/8/8/8 b - - 0 1")
	res := newSearcher().Search(context.Background(), pos, 1)
	assert.Equal(t, board.Score(0), res.Score)
}

func TestIterativeCommitsOnlyCompletedDepths(t *testing.T) {
	pos := mustDecode(t, fen.Initial)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled: no depth should ever complete

	it := &search.Iterative{TT: search.NewTranspositionTable(1 << 10), Eval: eval.Standard{}}
	res := it.Run(ctx, pos)

	assert.Equal(t, board.Move{}, res.Best)
}

type recordingReporter struct {
	depths []int
	scores []board.Score
}

func (r *recordingReporter) ReportScore(depth int, score board.Score) {
	r.depths = append(r.depths, depth)
	r.scores = append(r.scores, score)
}

func TestIterativeReportsEveryCompletedDepth(t *testing.T) {
	pos := mustDecode(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	reporter := &recordingReporter{}

	it := &search.Iterative{TT: search.NewTranspositionTable(1 << 12), Eval: eval.Standard{}, Reporter: reporter}
	res := it.Run(context.Background(), pos)

	require.NotEmpty(t, reporter.depths)
	assert.Equal(t, len(reporter.depths), reporter.depths[len(reporter.depths)-1])
	assert.GreaterOrEqual(t, int(res.Score), int(board.MateScore)-10)
}
