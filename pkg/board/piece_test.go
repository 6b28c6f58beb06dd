package board_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestPieceColorAndKind(t *testing.T) {
	assert.True(t, board.KingW.IsWhite())
	assert.False(t, board.KingB.IsWhite())
	assert.True(t, board.PawnB.IsBlack())
	assert.False(t, board.Empty.IsWhite())
	assert.False(t, board.Empty.IsBlack())

	assert.Equal(t, board.King, board.KingW.Kind())
	assert.Equal(t, board.Pawn, board.PawnB.Kind())
	assert.Equal(t, board.NoKind, board.Empty.Kind())

	assert.Equal(t, board.White, board.QueenW.Color())
	assert.Equal(t, board.Black, board.QueenB.Color())
}

func TestOf(t *testing.T) {
	assert.Equal(t, board.RookW, board.Of(board.White, board.Rook))
	assert.Equal(t, board.RookB, board.Of(board.Black, board.Rook))
	assert.Equal(t, board.Empty, board.Of(board.White, board.NoKind))
}

func TestParsePieceChar(t *testing.T) {
	p, ok := board.ParsePieceChar('Q')
	assert.True(t, ok)
	assert.Equal(t, board.QueenW, p)

	p, ok = board.ParsePieceChar('n')
	assert.True(t, ok)
	assert.Equal(t, board.KnightB, p)

	_, ok = board.ParsePieceChar('x')
	assert.False(t, ok)
}

func TestPieceString(t *testing.T) {
	assert.Equal(t, "K", board.KingW.String())
	assert.Equal(t, "p", board.PawnB.String())
	assert.Equal(t, ".", board.Empty.String())
}
