package board_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquare(t *testing.T) {
	assert.True(t, board.A8.IsValid())
	assert.True(t, board.H1.IsValid())
	assert.False(t, board.NoSquare.IsValid())
	assert.False(t, board.Square(64).IsValid())

	assert.Equal(t, board.A8, board.NewSquare(0, 0))
	assert.Equal(t, board.H1, board.NewSquare(7, 7))
	assert.Equal(t, 0, board.A8.File())
	assert.Equal(t, 8, board.A8.Rank())
	assert.Equal(t, 1, board.A1.Rank())
}

func TestParseSquareStr(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	require.NoError(t, err)
	assert.Equal(t, board.Square(36), sq)

	sq, err = board.ParseSquareStr("a8")
	require.NoError(t, err)
	assert.Equal(t, board.A8, sq)

	_, err = board.ParseSquareStr("i9")
	assert.Error(t, err)
	_, err = board.ParseSquareStr("e")
	assert.Error(t, err)
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a8", board.A8.String())
	assert.Equal(t, "h1", board.H1.String())
	assert.Equal(t, "e4", board.Square(36).String())
	assert.Equal(t, "-", board.NoSquare.String())
}
