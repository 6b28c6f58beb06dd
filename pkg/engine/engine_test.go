package engine_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New("corvus-test", engine.WithZobristSeed(42))
}

func TestNewStartsAtInitialPosition(t *testing.T) {
	e := newTestEngine(t)

	assert.True(t, e.WhiteTurn())
	assert.Equal(t, board.FullCastingRights, e.CastleStatus())
	assert.Equal(t, board.NoSquare, e.EnPassantSquare())
	assert.Len(t, e.ValidMoves(), 20)
	assert.False(t, e.InCheck())
}

func TestParseFENRejectsMalformedWithoutMutatingState(t *testing.T) {
	e := newTestEngine(t)
	before := e.Position()

	ok := e.ParseFEN("not a fen")
	assert.False(t, ok)
	assert.Equal(t, before, e.Position())
}

func TestParseFENLoadsPosition(t *testing.T) {
	e := newTestEngine(t)

	ok := e.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.True(t, ok)
	assert.True(t, e.WhiteTurn())
	assert.Equal(t, board.ZeroCastling, e.CastleStatus())
}

func TestAttemptMoveRejectsIllegalMove(t *testing.T) {
	e := newTestEngine(t)

	ok := e.AttemptMove(board.NewSquare(4, 6), board.NewSquare(4, 3)) // e2e5, a three-square pawn push
	assert.False(t, ok)
}

func TestAttemptMoveAppliesLegalMoveAndSwitchesTurn(t *testing.T) {
	e := newTestEngine(t)

	from, err := board.ParseSquareStr("e2")
	require.NoError(t, err)
	to, err := board.ParseSquareStr("e4")
	require.NoError(t, err)

	ok := e.AttemptMove(from, to)
	require.True(t, ok)
	assert.False(t, e.WhiteTurn())

	wantEP, err := board.ParseSquareStr("e3")
	require.NoError(t, err)
	assert.Equal(t, wantEP, e.EnPassantSquare())
}

func TestAttemptMoveAutoPromotesToQueen(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ParseFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1"))

	from, err := board.ParseSquareStr("a7")
	require.NoError(t, err)
	to, err := board.ParseSquareStr("a8")
	require.NoError(t, err)

	ok := e.AttemptMove(from, to)
	require.True(t, ok)

	locs := e.PieceLocations(board.QueenW)
	assert.Contains(t, locs, to)
}

func TestEvalBotMoveFindsMateInOne(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	ok := e.EvalBotMove(2)
	require.True(t, ok)

	want, err := board.ParseMove("a1a8")
	require.NoError(t, err)
	assert.True(t, want.Equals(e.BestMove()))
	assert.Equal(t, 2, e.DepthSearchedLastTurn())
}

func TestEvalBotMoveDeclinesOnAlreadyDrawnPosition(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ParseFEN("4k3/8/4K3/8/8/8/8/8 w - - 50 1"))

	ok := e.EvalBotMove(2)
	assert.False(t, ok)
}

func TestEvalBotMoveIterativeCommitsAMove(t *testing.T) {
	e := newTestEngine(t)
	e.UpdateMaxSearchTime(50)

	require.True(t, e.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	ok := e.EvalBotMoveIterative()
	require.True(t, ok)
	assert.False(t, e.BestMove().Equals(board.Move{}))
}

func TestCalculateAllPossibleMovesMatchesKnownPerftCounts(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, uint64(20), e.CalculateAllPossibleMoves(1))
	assert.Equal(t, uint64(400), e.CalculateAllPossibleMoves(2))
}

func TestMutatorsRequireUseHistoricalBoardToTakeEffect(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	sq, err := board.ParseSquareStr("h8")
	require.NoError(t, err)
	e.SetSquare(sq, board.QueenB)
	e.UseHistoricalBoard()

	assert.Contains(t, e.PieceLocations(board.QueenB), sq)
}

type capturingReporter struct {
	tags   []string
	scores []int32
}

func (r *capturingReporter) PostEval(tag string, scoreFromWhitePOV int32) {
	r.tags = append(r.tags, tag)
	r.scores = append(r.scores, scoreFromWhitePOV)
}

func TestEvalBotMoveIterativeReportsScores(t *testing.T) {
	reporter := &capturingReporter{}
	e := engine.New("corvus-test", engine.WithZobristSeed(42), engine.WithScoreReporter(reporter))
	e.UpdateMaxSearchTime(50)
	require.True(t, e.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	ok := e.EvalBotMoveIterative()
	require.True(t, ok)
	assert.NotEmpty(t, reporter.tags)
}
