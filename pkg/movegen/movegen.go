// Package movegen generates legal chess moves for a board.Position: pseudo-legal moves per
// piece kind, attack detection for check/castling-through-check, and the king-safety filter
// that turns pseudo-legal moves into fully legal ones.
package movegen

import "github.com/corvid-labs/corvus/pkg/board"

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

var promotionKinds = [4]board.Kind{board.Queen, board.Rook, board.Bishop, board.Knight}

func onBoard(file, row int) bool {
	return file >= 0 && file < 8 && row >= 0 && row < 8
}

// Generate returns every fully legal move for the side to move: every pseudo-legal move is
// tried via Make/Unmake and kept only if it does not leave the mover's own king in check.
// This always pays the make/unmake cost rather than the in-check/pinned/king-move fast path
// the teacher's pin-detection scheme uses, specifically to avoid the discovered-check-via-
// en-passant corner case that fast path is prone to miss.
func Generate(pos *board.Position) []board.Move {
	turn := pos.Turn()
	pseudo := PseudoLegal(pos)
	legal := make([]board.Move, 0, len(pseudo))

	for _, m := range pseudo {
		pos.Make(m)
		if !IsAttacked(pos, pos.King(turn), turn.Opponent()) {
			legal = append(legal, m)
		}
		pos.Unmake()
	}
	return legal
}

// PseudoLegal returns every move available to the side to move without regard to whether it
// leaves the mover's own king in check: ray/knight/king steps clipped at the board edge,
// pawn pushes and captures (including en passant), promotion fan-out, and castling filtered
// by empty-transit-squares and not-through-check.
func PseudoLegal(pos *board.Position) []board.Move {
	turn := pos.Turn()
	var moves []board.Move

	for kind := board.King; kind <= board.Pawn; kind++ {
		pc := board.Of(turn, kind)
		for _, from := range pos.Locations(pc) {
			switch kind {
			case board.King:
				moves = append(moves, kingMoves(pos, from, turn)...)
			case board.Queen:
				moves = append(moves, rayMoves(pos, from, turn, append(append([][2]int{}, rookDirs[:]...), bishopDirs[:]...))...)
			case board.Rook:
				moves = append(moves, rayMoves(pos, from, turn, rookDirs[:])...)
			case board.Bishop:
				moves = append(moves, rayMoves(pos, from, turn, bishopDirs[:])...)
			case board.Knight:
				moves = append(moves, knightMoves(pos, from, turn)...)
			case board.Pawn:
				moves = append(moves, pawnMoves(pos, from, turn)...)
			}
		}
	}
	return moves
}

func appendIfPermitted(pos *board.Position, moves []board.Move, from, to board.Square, turn board.Color) []board.Move {
	target := pos.At(to)
	if target == board.Empty || target.Color() != turn {
		return append(moves, board.Move{From: from, To: to})
	}
	return moves
}

func kingMoves(pos *board.Position, from board.Square, turn board.Color) []board.Move {
	var moves []board.Move
	file, row := from.File(), from.Row()
	for _, d := range kingOffsets {
		nf, nr := file+d[0], row+d[1]
		if onBoard(nf, nr) {
			moves = appendIfPermitted(pos, moves, from, board.NewSquare(nf, nr), turn)
		}
	}
	return append(moves, castlingMoves(pos, from, turn)...)
}

func knightMoves(pos *board.Position, from board.Square, turn board.Color) []board.Move {
	var moves []board.Move
	file, row := from.File(), from.Row()
	for _, d := range knightOffsets {
		nf, nr := file+d[0], row+d[1]
		if onBoard(nf, nr) {
			moves = appendIfPermitted(pos, moves, from, board.NewSquare(nf, nr), turn)
		}
	}
	return moves
}

func rayMoves(pos *board.Position, from board.Square, turn board.Color, dirs [][2]int) []board.Move {
	var moves []board.Move
	file, row := from.File(), from.Row()
	for _, d := range dirs {
		nf, nr := file+d[0], row+d[1]
		for onBoard(nf, nr) {
			to := board.NewSquare(nf, nr)
			target := pos.At(to)
			if target == board.Empty {
				moves = append(moves, board.Move{From: from, To: to})
			} else {
				if target.Color() != turn {
					moves = append(moves, board.Move{From: from, To: to})
				}
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
	return moves
}

// castlingMoves returns the still-available castling moves for the king on from, encoded as
// a single king-two-squares move; it checks that the squares between king and rook are
// empty and that neither the king's current square nor any square it crosses is attacked.
func castlingMoves(pos *board.Position, from board.Square, turn board.Color) []board.Move {
	var moves []board.Move
	opp := turn.Opponent()

	// transit is every square that must be empty (the knight square next to a rook, b1/b8,
	// is included here but never attacked-checked: the king never passes through it).
	// kingPath is the king's own start square plus every square it crosses or lands on,
	// all of which must be unattacked.
	try := func(right board.Castling, kingTo, rookFrom board.Square, transit, kingPath []board.Square, rook board.Piece) {
		if !pos.Castling().IsAllowed(right) {
			return
		}
		if pos.At(rookFrom) != rook {
			return
		}
		for _, sq := range transit {
			if sq != from && pos.At(sq) != board.Empty {
				return
			}
		}
		for _, sq := range kingPath {
			if IsAttacked(pos, sq, opp) {
				return
			}
		}
		moves = append(moves, board.Move{From: from, To: kingTo})
	}

	if turn == board.White {
		try(board.WhiteKingSideCastle, board.G1, board.H1,
			[]board.Square{board.E1, board.F1, board.G1}, []board.Square{board.E1, board.F1, board.G1}, board.RookW)
		try(board.WhiteQueenSideCastle, board.C1, board.A1,
			[]board.Square{board.E1, board.D1, board.C1, board.B1}, []board.Square{board.E1, board.D1, board.C1}, board.RookW)
	} else {
		try(board.BlackKingSideCastle, board.G8, board.H8,
			[]board.Square{board.E8, board.F8, board.G8}, []board.Square{board.E8, board.F8, board.G8}, board.RookB)
		try(board.BlackQueenSideCastle, board.C8, board.A8,
			[]board.Square{board.E8, board.D8, board.C8, board.B8}, []board.Square{board.E8, board.D8, board.C8}, board.RookB)
	}
	return moves
}

func pawnForward(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

func homeRow(c board.Color) int {
	if c == board.White {
		return 6
	}
	return 1
}

func lastRow(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 7
}

func pawnMoves(pos *board.Position, from board.Square, turn board.Color) []board.Move {
	var moves []board.Move
	file, row := from.File(), from.Row()
	dir := pawnForward(turn)

	oneRow := row + dir
	if onBoard(file, oneRow) {
		oneSq := board.NewSquare(file, oneRow)
		if pos.At(oneSq) == board.Empty {
			moves = appendPawnMove(moves, from, oneSq, turn)

			if row == homeRow(turn) {
				twoSq := board.NewSquare(file, row+2*dir)
				if pos.At(twoSq) == board.Empty {
					moves = append(moves, board.Move{From: from, To: twoSq})
				}
			}
		}
	}

	for _, df := range []int{-1, 1} {
		nf := file + df
		if !onBoard(nf, oneRow) {
			continue
		}
		to := board.NewSquare(nf, oneRow)
		target := pos.At(to)
		if (target != board.Empty && target.Color() != turn) || to == pos.EnPassant() {
			moves = appendPawnMove(moves, from, to, turn)
		}
	}
	return moves
}

// appendPawnMove expands a pawn move reaching the back rank into the four promotion choices;
// otherwise it is a single ordinary move.
func appendPawnMove(moves []board.Move, from, to board.Square, turn board.Color) []board.Move {
	if to.Row() != lastRow(turn) {
		return append(moves, board.Move{From: from, To: to})
	}
	for _, k := range promotionKinds {
		moves = append(moves, board.Move{From: from, To: to, Promotion: board.Of(turn, k)})
	}
	return moves
}

// IsAttacked reports whether sq is attacked by any piece of color by, on the position as it
// currently stands. Used for check detection, castling-through-check, and the king-safety
// filter in Generate.
func IsAttacked(pos *board.Position, sq board.Square, by board.Color) bool {
	file, row := sq.File(), sq.Row()

	pawnRow := row + pawnForward(by.Opponent())
	for _, df := range []int{-1, 1} {
		nf := file + df
		if onBoard(nf, pawnRow) && pos.At(board.NewSquare(nf, pawnRow)) == board.Of(by, board.Pawn) {
			return true
		}
	}

	for _, d := range knightOffsets {
		nf, nr := file+d[0], row+d[1]
		if onBoard(nf, nr) && pos.At(board.NewSquare(nf, nr)) == board.Of(by, board.Knight) {
			return true
		}
	}

	for _, d := range kingOffsets {
		nf, nr := file+d[0], row+d[1]
		if onBoard(nf, nr) && pos.At(board.NewSquare(nf, nr)) == board.Of(by, board.King) {
			return true
		}
	}

	if rayAttacked(pos, file, row, rookDirs[:], by, board.Rook, board.Queen) {
		return true
	}
	if rayAttacked(pos, file, row, bishopDirs[:], by, board.Bishop, board.Queen) {
		return true
	}
	return false
}

func rayAttacked(pos *board.Position, file, row int, dirs [][2]int, by board.Color, kinds ...board.Kind) bool {
	for _, d := range dirs {
		nf, nr := file+d[0], row+d[1]
		for onBoard(nf, nr) {
			pc := pos.At(board.NewSquare(nf, nr))
			if pc != board.Empty {
				if pc.Color() == by {
					k := pc.Kind()
					for _, want := range kinds {
						if k == want {
							return true
						}
					}
				}
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func InCheck(pos *board.Position) bool {
	turn := pos.Turn()
	return IsAttacked(pos, pos.King(turn), turn.Opponent())
}

// GenerateCaptures returns the legal subset of moves that capture a piece, including en
// passant. Used by quiescence search, which only ever wants to extend through captures.
func GenerateCaptures(pos *board.Position) []board.Move {
	turn := pos.Turn()
	pseudo := PseudoLegal(pos)
	captures := make([]board.Move, 0, len(pseudo))

	for _, m := range pseudo {
		if !isCapture(pos, m) {
			continue
		}
		pos.Make(m)
		if !IsAttacked(pos, pos.King(turn), turn.Opponent()) {
			captures = append(captures, m)
		}
		pos.Unmake()
	}
	return captures
}

func isCapture(pos *board.Position, m board.Move) bool {
	if pos.At(m.To) != board.Empty {
		return true
	}
	return m.To == pos.EnPassant() && pos.At(m.From).Kind() == board.Pawn
}
