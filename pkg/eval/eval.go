package eval

import "github.com/corvid-labs/corvus/pkg/board"

// Evaluator is a static position evaluator, returning a score in centipawns from White's
// point of view.
type Evaluator interface {
	Evaluate(pos *board.Position) board.Score
}

// Standard combines material, piece-square tables, and a per-side endgame king-chase term.
// This is the engine's default evaluator.
type Standard struct{}

// endgameMaterialScale is 2*Rook + Bishop + Knight, the non-pawn material a side needs on the
// board to count as a full middlegame; endgame weight rises linearly as that material is
// traded away and saturates at 1 once the side has none of it left.
var endgameMaterialScale = 2*Value[board.Rook] + Value[board.Bishop] + Value[board.Knight]

func (Standard) Evaluate(pos *board.Position) board.Score {
	whiteWeight := endgameWeight(pos, board.White)
	blackWeight := endgameWeight(pos, board.Black)

	var whiteMaterial, blackMaterial, whitePSQT, blackPSQT board.Score

	for kind := board.King; kind <= board.Pawn; kind++ {
		for _, sq := range pos.Locations(board.Of(board.White, kind)) {
			whiteMaterial += Value[kind]
			whitePSQT += kingScaledBonus(board.White, kind, sq, whiteWeight)
		}
		for _, sq := range pos.Locations(board.Of(board.Black, kind)) {
			blackMaterial += Value[kind]
			blackPSQT += kingScaledBonus(board.Black, kind, sq, blackWeight)
		}
	}

	whiteEndgame := endgameChaseTerm(pos, board.White, whiteWeight)
	blackEndgame := endgameChaseTerm(pos, board.Black, blackWeight)

	return (whiteMaterial + whitePSQT + whiteEndgame) - (blackMaterial + blackPSQT + blackEndgame)
}

// kingScaledBonus is pieceSquareBonus, except the King table is scaled down by (1-weight): the
// castled-corner safety bonus fades out as the position empties into an endgame, where the king
// belongs in the center rather than tucked behind a pawn shield.
func kingScaledBonus(c board.Color, k board.Kind, sq board.Square, weight float64) board.Score {
	bonus := pieceSquareBonus(c, k, sq)
	if k != board.King {
		return bonus
	}
	return board.Score(float64(bonus) * (1 - weight))
}

// endgameWeight is c's own distance from a full middlegame material count: 0 at or above
// endgameMaterialScale in non-pawn material, rising to 1 as that material is captured away.
func endgameWeight(pos *board.Position, c board.Color) float64 {
	var material board.Score
	for _, kind := range [4]board.Kind{board.Queen, board.Rook, board.Bishop, board.Knight} {
		material += board.Score(len(pos.Locations(board.Of(c, kind)))) * Value[kind]
	}

	ratio := float64(material) / float64(endgameMaterialScale)
	if ratio > 1 {
		ratio = 1
	}
	return 1 - ratio
}

// endgameChaseTerm rewards c for driving the opposing king away from the center and for
// keeping the kings close together, scaled by c's own endgame weight so the term only bites
// once c is actually down to an endgame's worth of material.
func endgameChaseTerm(pos *board.Position, c board.Color, weight float64) board.Score {
	opponentKing := pos.King(c.Opponent())
	ownKing := pos.King(c)

	bonus := float64(centerManhattanDistance(opponentKing)+(14-manhattanDistance(ownKing, opponentKing))) * 20 * weight
	return board.Score(bonus)
}

// centerManhattanDistance sums sq's file distances to the two center files (d, e) and its row
// distances to the two center rows, i.e. 2 plus twice the taxicab distance to the nearest of
// the four center squares, ranging from 2 (center) to 14 (corners).
func centerManhattanDistance(sq board.Square) int {
	file, row := sq.File(), sq.Row()
	return abs(3-file) + abs(4-file) + abs(3-row) + abs(4-row)
}

func manhattanDistance(a, b board.Square) int {
	return abs(a.File()-b.File()) + abs(a.Row()-b.Row())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
