// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-labs/corvus/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a fresh Position tied to zt. A FEN record has six
// space-separated fields: piece placement, active color, castling availability, en-passant
// target, halfmove clock, and fullmove number. Decode validates every field before
// returning; on error it returns nil, leaving any position the caller already has
// untouched.
func Decode(zt *board.ZobristTable, fen string) (*board.Position, error) {
	fields := strings.Split(strings.TrimSpace(fen), " ")
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %v: %q", len(fields), fen)
	}

	pos := board.NewPosition(zt)

	if err := decodePlacement(pos, fields[0]); err != nil {
		return nil, fmt.Errorf("fen: %w: %q", err, fen)
	}

	turn, ok := parseColor(fields[1])
	if !ok {
		return nil, fmt.Errorf("fen: invalid active color %q: %q", fields[1], fen)
	}
	pos.SetTurn(turn)

	castling, ok := parseCastling(fields[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling %q: %q", fields[2], fen)
	}
	pos.SetCastling(castling)

	ep := board.NoSquare
	if fields[3] != "-" {
		sq, err := board.ParseSquareStr(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en-passant square %q: %q", fields[3], fen)
		}
		ep = sq
	}
	pos.SetEnPassant(ep)

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock %q: %q", fields[4], fen)
	}
	pos.SetHalfmoveClock(halfmove)

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number %q: %q", fields[5], fen)
	}
	pos.SetPly(fullmove*2 - 2)

	pos.Rehash()
	return pos, nil
}

func decodePlacement(pos *board.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid number of ranks %q", field)
	}

	for row, rank := range ranks {
		file := 0
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				file += int(r - '0')
			default:
				pc, ok := board.ParsePieceChar(r)
				if !ok {
					return fmt.Errorf("invalid piece %q", string(r))
				}
				if file >= 8 {
					return fmt.Errorf("invalid rank %q", rank)
				}
				pos.SetSquare(board.NewSquare(file, row), pc)
				file++
			}
		}
		if file != 8 {
			return fmt.Errorf("invalid rank %q", rank)
		}
	}
	return nil
}

// Encode serializes pos back into a FEN record.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		blanks := 0
		for file := 0; file < 8; file++ {
			pc := pos.At(board.NewSquare(file, row))
			if pc == board.Empty {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(pc.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if row < 7 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if pos.EnPassant() != board.NoSquare {
		ep = pos.EnPassant().String()
	}

	fullmove := pos.Ply()/2 + 1
	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), pos.Turn(), pos.Castling(), ep, pos.HalfmoveClock(), fullmove)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}
