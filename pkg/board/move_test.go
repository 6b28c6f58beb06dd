package board_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, board.Square(52), m.From)
	assert.Equal(t, board.Square(36), m.To)
	assert.Equal(t, board.Empty, m.Promotion)

	m, err = board.ParseMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, board.QueenW, m.Promotion)

	_, err = board.ParseMove("a7a8k")
	assert.Error(t, err)
	_, err = board.ParseMove("e2")
	assert.Error(t, err)
}

func TestMoveEquals(t *testing.T) {
	a, _ := board.ParseMove("e2e4")
	b, _ := board.ParseMove("e2e4")
	c, _ := board.ParseMove("e2e3")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoveString(t *testing.T) {
	m, _ := board.ParseMove("e7e8q")
	assert.Equal(t, "e7e8Q", m.String())

	m, _ = board.ParseMove("e2e4")
	assert.Equal(t, "e2e4", m.String())
}
