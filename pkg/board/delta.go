package board

// Delta is a single reversible board edit, the unit Make/Unmake replay to undo a move. It
// keeps the shape of the original engine's BoardDelta record:
//
//   - Index is the board index the delta restores a piece at, or NoSquare for the delta that
//     records a promotion's created piece (it has no prior occupant to restore).
//   - Piece is the piece to place back at Index (for a promotion delta, the created piece).
//   - Target is the board index the piece moved to or was created on, or NoSquare for a
//     record of a square's prior occupant (a capture, or a square a castling rook lands on).
//
// A move always pushes a delta for its destination's prior occupant (Empty for a quiet move)
// and one for the mover, plus a promotion delta, an en-passant capture delta, or two rook
// deltas for castling, as applicable. Target is consulted neither by Unmake -- location-list
// bookkeeping is handled by a full rebuild (Position.syncLocations) -- nor by the zobrist
// incremental update, which reads only Index and Piece; it is kept so a Delta still records
// the move's "from/to" shape.
type Delta struct {
	Index  Square
	Piece  Piece
	Target Square
}
