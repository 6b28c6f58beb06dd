// Package board contains chess board representation and utilities: piece codes, squares,
// castling rights, moves, and the Position aggregate that ties them together with
// incremental zobrist hashing and delta-stack make/unmake.
package board

const fiftyMoveLimit = 50

// undoState captures everything Unmake needs to reverse one Make call that a delta replay
// cannot reconstruct on its own (castling rights, en-passant target, the no-progress clock,
// the hash, and the repetition history all change in ways that aren't simply "replay the
// deltas backwards").
type undoState struct {
	deltas         []Delta
	prevCastling   Castling
	prevEnPassant  Square
	prevHalfmove   int
	prevHash       ZobristHash
	prevRepetition []ZobristHash
}

// Position is the full mutable state of a game in progress: the 64-square board, side to
// move, castling rights, en-passant target, the no-progress (fifty-move) clock, a ply
// counter, per-piece location lists, the incremental zobrist hash, and enough history
// (an undo stack plus a repetition log) to make and unmake moves and detect draws.
//
// Not safe for concurrent use.
type Position struct {
	zobrist *ZobristTable

	board     [NumSquares]Piece
	turn      Color
	castling  Castling
	enPassant Square
	halfmove  int
	ply       int

	locations [NumPieces][]Square

	hash       ZobristHash
	repetition []ZobristHash
	undoStack  []undoState
}

// NewPosition returns an empty position (no pieces, white to move, no castling rights) tied
// to the given zobrist table. Callers normally populate it via the fen package rather than
// square by square.
func NewPosition(zt *ZobristTable) *Position {
	p := &Position{zobrist: zt, enPassant: NoSquare}
	p.syncLocations()
	p.hash = zt.Hash(p)
	return p
}

// At returns the piece occupying sq, or Empty.
func (p *Position) At(sq Square) Piece { return p.board[sq] }

func (p *Position) Turn() Color          { return p.turn }
func (p *Position) Castling() Castling   { return p.castling }
func (p *Position) EnPassant() Square    { return p.enPassant }
func (p *Position) HalfmoveClock() int   { return p.halfmove }
func (p *Position) Ply() int             { return p.ply }
func (p *Position) Hash() ZobristHash    { return p.hash }
func (p *Position) Zobrist() *ZobristTable { return p.zobrist }

// Locations returns the squares currently occupied by pc. The caller must not mutate the
// returned slice.
func (p *Position) Locations(pc Piece) []Square { return p.locations[pc] }

// King returns the square of c's king. Panics if the board has none, which is always an
// invariant violation rather than a user-facing condition.
func (p *Position) King(c Color) Square {
	locs := p.locations[Of(c, King)]
	if len(locs) == 0 {
		panic("board: no king on board for " + c.String())
	}
	return locs[0]
}

// Setters used by package fen to populate a freshly constructed Position field by field.
// Rehash must be called once decoding completes.

func (p *Position) SetSquare(sq Square, pc Piece) { p.board[sq] = pc }
func (p *Position) SetTurn(c Color)               { p.turn = c }
func (p *Position) SetCastling(c Castling)        { p.castling = c }
func (p *Position) SetEnPassant(sq Square)         { p.enPassant = sq }
func (p *Position) SetHalfmoveClock(n int)         { p.halfmove = n }
func (p *Position) SetPly(n int)                   { p.ply = n }

// Rehash recomputes the zobrist hash from scratch and resets derived/history state, seeding
// the repetition log with the new hash. Called once after a round of SetSquare/SetTurn/...
// calls during FEN decode.
func (p *Position) Rehash() {
	p.syncLocations()
	p.hash = p.zobrist.Hash(p)
	p.repetition = append(p.repetition[:0], p.hash)
	p.undoStack = p.undoStack[:0]
}

// syncLocations rebuilds the per-piece location lists from the board array. The original
// engine this is grounded on tried to maintain these lists incrementally but only ever
// added entries on capture/promotion, never on an ordinary move's destination square,
// leaving them to drift; since move generation needs them to be exact (the king lookup
// above runs every legal-move check), a full rebuild after every Make/Unmake replaces that
// incremental bookkeeping with a simple, obviously-correct one.
func (p *Position) syncLocations() {
	for i := range p.locations {
		p.locations[i] = p.locations[i][:0]
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pc := p.board[sq]; pc != Empty {
			p.locations[pc] = append(p.locations[pc], sq)
		}
	}
}

func (p *Position) pieceCount() int {
	n := 0
	for pc := KingB; pc <= PawnW; pc++ {
		n += len(p.locations[pc])
	}
	return n
}

// repetitionCount returns how many times the current hash appears in the repetition log,
// including the entry Make just appended for this very position.
func (p *Position) repetitionCount() int {
	count := 0
	for _, h := range p.repetition {
		if h == p.hash {
			count++
		}
	}
	return count
}

// IsRepeated reports whether the current position already occurred earlier in the repetition
// log, i.e. this is at least the second time search has reached this exact hash since the
// last irreversible move. Used by search as a draw-claim shortcut; CheckForDraw uses the same
// log but requires a full three occurrences before reporting a draw to the host.
func (p *Position) IsRepeated() bool {
	return p.repetitionCount() >= 2
}

// CheckForDraw reports whether the position is drawn by the fifty-move rule, insufficient
// material (bare kings), or threefold repetition.
//
// The fifty-move rule is checked on either side's turn. Insufficient material and threefold
// repetition are only detected at the start of White's turn, mirroring the original engine
// this is grounded on: such a condition created by Black's move is only noticed once it
// becomes White's turn to move again.
func (p *Position) CheckForDraw() bool {
	if p.halfmove >= fiftyMoveLimit {
		return true
	}
	if p.turn != White {
		return false
	}
	if p.pieceCount() == 2 {
		return true
	}
	return p.repetitionCount() >= 3
}

// Make applies m to the position: moves/captures/promotes/castles/en-passants as needed,
// updates castling rights and the en-passant target, maintains the incremental zobrist
// hash, updates the no-progress clock and repetition log, flips the side to move, and
// pushes enough state onto the undo stack for a matching Unmake. m is assumed pseudo-legal;
// callers (package movegen) are responsible for filtering out moves that leave the mover's
// king in check.
func (p *Position) Make(m Move) {
	oldCastling := p.castling
	oldEnPassant := p.enPassant
	oldHash := p.hash
	oldHalfmove := p.halfmove
	oldRepetition := append([]ZobristHash(nil), p.repetition...)

	movingPiece := p.board[m.From]
	capturedPiece := p.board[m.To]

	rookDeltas, _ := p.updateCastleStatus(m.From, m.To)
	moveDeltas := p.forceMakeMove(m.From, m.To, m.Promotion)

	deltas := append(rookDeltas, moveDeltas...)
	p.hash = p.zobrist.update(p, deltas, oldHash, oldEnPassant, oldCastling)

	isPawnMove := movingPiece == PawnW || movingPiece == PawnB
	if isPawnMove || capturedPiece != Empty {
		p.repetition = p.repetition[:0]
		p.halfmove = 0
	} else {
		p.repetition = append(p.repetition, p.hash)
		p.halfmove++
	}

	p.turn = p.turn.Opponent()
	p.ply++
	p.syncLocations()

	p.undoStack = append(p.undoStack, undoState{
		deltas:         deltas,
		prevCastling:   oldCastling,
		prevEnPassant:  oldEnPassant,
		prevHalfmove:   oldHalfmove,
		prevHash:       oldHash,
		prevRepetition: oldRepetition,
	})
}

// Unmake reverses the most recent Make call. Panics if there is nothing to undo, which can
// only happen from a programming error (an unbalanced Make/Unmake pair).
func (p *Position) Unmake() {
	n := len(p.undoStack)
	if n == 0 {
		panic("board: Unmake called with no matching Make")
	}
	st := p.undoStack[n-1]
	p.undoStack = p.undoStack[:n-1]

	p.unmakeDeltas(st.deltas)
	p.castling = st.prevCastling
	p.enPassant = st.prevEnPassant
	p.halfmove = st.prevHalfmove
	p.hash = st.prevHash
	p.repetition = st.prevRepetition

	p.turn = p.turn.Opponent()
	p.ply--
	p.syncLocations()
}

// updateCastleStatus handles the rook hop of a castling move and clears castling rights
// lost by this move (king move, rook move off its home square, or a rook captured on its
// home square). It returns the deltas for the rook's own move, if any, and whether this
// move was a castle.
//
// The original engine this is grounded on has a transcription bug here: a black king move
// clears CastleStatus::WHITE_QUEEN instead of BLACK_QUEEN. That is not reproduced; this
// clears exactly the moving side's own rights.
func (p *Position) updateCastleStatus(from, to Square) ([]Delta, bool) {
	movingPiece := p.board[from]
	var deltas []Delta
	castled := false

	switch movingPiece {
	case KingW:
		if p.castling.IsAllowed(WhiteKingSideCastle) && to == G1 {
			deltas = append(deltas,
				Delta{Index: H1, Piece: p.board[H1], Target: F1},
				Delta{Index: F1, Piece: p.board[F1], Target: NoSquare},
			)
			p.board[H1] = Empty
			p.board[F1] = RookW
			castled = true
		} else if p.castling.IsAllowed(WhiteQueenSideCastle) && to == C1 {
			deltas = append(deltas,
				Delta{Index: A1, Piece: p.board[A1], Target: D1},
				Delta{Index: D1, Piece: p.board[D1], Target: NoSquare},
			)
			p.board[A1] = Empty
			p.board[D1] = RookW
			castled = true
		}
		p.castling &^= WhiteKingSideCastle | WhiteQueenSideCastle

	case KingB:
		if p.castling.IsAllowed(BlackKingSideCastle) && to == G8 {
			deltas = append(deltas,
				Delta{Index: H8, Piece: p.board[H8], Target: F8},
				Delta{Index: F8, Piece: p.board[F8], Target: NoSquare},
			)
			p.board[H8] = Empty
			p.board[F8] = RookB
			castled = true
		} else if p.castling.IsAllowed(BlackQueenSideCastle) && to == C8 {
			deltas = append(deltas,
				Delta{Index: A8, Piece: p.board[A8], Target: D8},
				Delta{Index: D8, Piece: p.board[D8], Target: NoSquare},
			)
			p.board[A8] = Empty
			p.board[D8] = RookB
			castled = true
		}
		p.castling &^= BlackKingSideCastle | BlackQueenSideCastle

	case RookW:
		if from == A1 {
			p.castling &^= WhiteQueenSideCastle
		} else if from == H1 {
			p.castling &^= WhiteKingSideCastle
		}

	case RookB:
		if from == A8 {
			p.castling &^= BlackQueenSideCastle
		} else if from == H8 {
			p.castling &^= BlackKingSideCastle
		}
	}

	// A rook captured on its home square also loses its side the matching right, even if
	// the mover is neither the king nor that rook.
	switch p.board[to] {
	case RookW:
		if to == A1 {
			p.castling &^= WhiteQueenSideCastle
		} else if to == H1 {
			p.castling &^= WhiteKingSideCastle
		}
	case RookB:
		if to == A8 {
			p.castling &^= BlackQueenSideCastle
		} else if to == H8 {
			p.castling &^= BlackKingSideCastle
		}
	}

	return deltas, castled
}

// forceMakeMove applies the mover/capture/promotion/en-passant side effects of m to the
// board and returns the deltas recording the prior board contents at every touched square,
// for Unmake and for the incremental hash update. It does not touch castling rights (that
// is updateCastleStatus's job, called first by Make) nor the side to move.
func (p *Position) forceMakeMove(from, to Square, promotion Piece) []Delta {
	movingPiece := p.board[from]
	capturedPiece := p.board[to]

	deltas := []Delta{
		{Index: to, Piece: capturedPiece, Target: NoSquare},
		{Index: from, Piece: movingPiece, Target: to},
	}

	p.board[to] = movingPiece
	p.board[from] = Empty

	switch {
	case movingPiece == PawnW && to.Row() == 0:
		p.board[to] = promotion
		deltas = append(deltas, Delta{Index: NoSquare, Piece: promotion, Target: to})
	case movingPiece == PawnB && to.Row() == 7:
		p.board[to] = promotion
		deltas = append(deltas, Delta{Index: NoSquare, Piece: promotion, Target: to})
	}

	if to == p.enPassant {
		switch movingPiece {
		case PawnW:
			capSq := to + 8
			deltas = append(deltas, Delta{Index: capSq, Piece: PawnB, Target: NoSquare})
			p.board[capSq] = Empty
		case PawnB:
			capSq := to - 8
			deltas = append(deltas, Delta{Index: capSq, Piece: PawnW, Target: NoSquare})
			p.board[capSq] = Empty
		}
	}

	switch {
	case movingPiece == PawnW && int(from)-int(to) == 16:
		p.enPassant = from - 8
	case movingPiece == PawnB && int(to)-int(from) == 16:
		p.enPassant = from + 8
	default:
		p.enPassant = NoSquare
	}

	return deltas
}

// unmakeDeltas restores the board array to its pre-move contents. Deltas store the piece
// that occupied Index before the move (Empty if the square was vacant), so a plain replay
// in the order they were recorded is sufficient; Index == NoSquare marks a delta that exists
// only to let Unmake distinguish "promotion created this piece" (handled by syncLocations'
// rebuild, not here).
func (p *Position) unmakeDeltas(deltas []Delta) {
	for _, d := range deltas {
		if d.Index != NoSquare {
			p.board[d.Index] = d.Piece
		}
	}
}
