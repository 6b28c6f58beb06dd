package board

// Piece is a colored piece code, 0..=12: Empty, then the six black kinds, then the
// six white kinds, in King/Queen/Rook/Bishop/Knight/Pawn order. The layout lets
// "is white" be tested as code >= KingW and lets both colors share one table index
// space. 4 bits.
type Piece uint8

const (
	Empty Piece = iota
	KingB
	QueenB
	RookB
	BishopB
	KnightB
	PawnB
	KingW
	QueenW
	RookW
	BishopW
	KnightW
	PawnW

	NumPieces = 13
)

// Kind is a colorless piece kind, used for value and piece-square table lookups.
type Kind uint8

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// Of returns the piece code for the given color and kind.
func Of(c Color, k Kind) Piece {
	if k == NoKind {
		return Empty
	}
	if c == White {
		return Piece(uint8(k) + 6)
	}
	return Piece(k)
}

func (p Piece) IsValid() bool {
	return p < NumPieces
}

// IsWhite returns true iff the piece is a white piece. Empty is neither color.
func (p Piece) IsWhite() bool {
	return p >= KingW
}

// IsBlack returns true iff the piece is a black piece.
func (p Piece) IsBlack() bool {
	return p >= KingB && p < KingW
}

// Color returns the piece's color. Undefined for Empty.
func (p Piece) Color() Color {
	if p.IsWhite() {
		return White
	}
	return Black
}

// Kind returns the colorless kind of the piece. Empty maps to NoKind.
func (p Piece) Kind() Kind {
	switch p {
	case KingB, KingW:
		return King
	case QueenB, QueenW:
		return Queen
	case RookB, RookW:
		return Rook
	case BishopB, BishopW:
		return Bishop
	case KnightB, KnightW:
		return Knight
	case PawnB, PawnW:
		return Pawn
	default:
		return NoKind
	}
}

// ParsePieceChar parses a FEN piece letter (KQRBNP upper for white, lower for black).
func ParsePieceChar(r rune) (Piece, bool) {
	switch r {
	case 'K':
		return KingW, true
	case 'Q':
		return QueenW, true
	case 'R':
		return RookW, true
	case 'B':
		return BishopW, true
	case 'N':
		return KnightW, true
	case 'P':
		return PawnW, true
	case 'k':
		return KingB, true
	case 'q':
		return QueenB, true
	case 'r':
		return RookB, true
	case 'b':
		return BishopB, true
	case 'n':
		return KnightB, true
	case 'p':
		return PawnB, true
	default:
		return Empty, false
	}
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "."
	case KingB:
		return "k"
	case QueenB:
		return "q"
	case RookB:
		return "r"
	case BishopB:
		return "b"
	case KnightB:
		return "n"
	case PawnB:
		return "p"
	case KingW:
		return "K"
	case QueenW:
		return "Q"
	case RookW:
		return "R"
	case BishopW:
		return "B"
	case KnightW:
		return "N"
	case PawnW:
		return "P"
	default:
		return "?"
	}
}
