package board

import "fmt"

// Square is a signed index into the 64-square board array: index 0 = a8, index 63 = h1,
// row-major and top-down (x = index mod 8 is the file, y = index div 8 is the row counted
// from rank 8). NoSquare (-1) marks "no square", used for the en-passant target and for
// BoardDelta sentinels. 8 bits, signed.
type Square int8

const NoSquare Square = -1

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
)

// Named squares used by castling, move generation and the tests.
const (
	A8 Square = 8 * iota
	A7
	A6
	A5
	A4
	A3
	A2
	A1
)

const (
	E8 Square = 4
	E1 Square = 60
	H8 Square = 7
	H1 Square = 63
	F8 Square = 5
	F1 Square = 61
	G8 Square = 6
	G1 Square = 62
	D8 Square = 3
	D1 Square = 59
	C8 Square = 2
	C1 Square = 58
	B8 Square = 1
	B1 Square = 57
	D4 Square = 35
	E4 Square = 36
	E3 Square = 44
)

// NewSquare builds a square from a zero-based file (0=a..7=h) and row counted down from
// the top (0=rank8..7=rank1).
func NewSquare(file, row int) Square {
	return Square(row*8 + file)
}

// File returns the zero-based file, 0=a .. 7=h.
func (s Square) File() int {
	return int(s) % 8
}

// Row returns the zero-based row counted from the top, 0=rank8 .. 7=rank1.
func (s Square) Row() int {
	return int(s) / 8
}

// Rank returns the one-based rank, 1..8.
func (s Square) Rank() int {
	return 8 - s.Row()
}

func (s Square) IsValid() bool {
	return s >= ZeroSquare && s < NumSquares
}

// ParseSquareStr parses algebraic notation, such as "e4".
func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %v", str)
	}

	file := runes[0]
	rank := runes[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square: %v", str)
	}

	row := 7 - int(rank-'1')
	return NewSquare(int(file-'a'), row), nil
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '0'+rune(s.Rank()))
}
