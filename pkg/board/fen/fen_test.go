package fen_test

import (
	"testing"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3k4/8/8/8/4K2R b K - 12 34",
	}

	zt := board.NewSeededZobristTable(1)
	for _, tt := range tests {
		p, err := fen.Decode(zt, tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(p))
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKzNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}

	zt := board.NewSeededZobristTable(1)
	for _, tt := range tests {
		_, err := fen.Decode(zt, tt)
		assert.Error(t, err)
	}
}

func TestDecodeInitialPosition(t *testing.T) {
	zt := board.NewSeededZobristTable(1)
	p, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.RookW, p.At(board.A1))
	assert.Equal(t, board.KingW, p.At(board.E1))
	assert.Equal(t, board.PawnB, p.At(board.A7))
	assert.Equal(t, board.Empty, p.At(board.E4))
	assert.Equal(t, board.White, p.Turn())
	assert.Equal(t, board.FullCastingRights, p.Castling())
	assert.Equal(t, board.NoSquare, p.EnPassant())
	assert.Len(t, p.Locations(board.PawnW), 8)
	assert.Equal(t, board.E1, p.King(board.White))
}
