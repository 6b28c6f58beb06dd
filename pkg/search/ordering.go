package search

import (
	"sort"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/corvid-labs/corvus/pkg/movegen"
)

// ttFirstBonus outranks any ordinary ordering score so the transposition table's best move
// from a previous, shallower probe is always tried first.
const ttFirstBonus = 1 << 20

// orderMoves sorts moves in place, best-expected-first: captures score by
// 10*value(captured) - value(mover), moving to an attacked square costs value(mover), landing
// a promotion adds value(promotion). ttMove (the zero Move if none) is always tried first.
//
// Ties are broken deterministically by from*64+to rather than left to sort stability, since a
// stable sort over moves generated in a different order from one run to the next would make
// search behavior depend on incidental move-generation order.
func orderMoves(pos *board.Position, moves []board.Move, ttMove board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		si, sj := moveOrderScore(pos, moves[i], ttMove), moveOrderScore(pos, moves[j], ttMove)
		if si != sj {
			return si > sj
		}
		return tieBreakKey(moves[i]) < tieBreakKey(moves[j])
	})
}

func tieBreakKey(m board.Move) int {
	return int(m.From)*64 + int(m.To)
}

func moveOrderScore(pos *board.Position, m board.Move, ttMove board.Move) int {
	if m.Equals(ttMove) {
		return ttFirstBonus
	}

	mover := pos.At(m.From)
	target := pos.At(m.To)

	var score int
	if target != board.Empty {
		score += 10*int(eval.Value[target.Kind()]) - int(eval.Value[mover.Kind()])
	} else if mover.Kind() == board.Pawn && m.To == pos.EnPassant() {
		score += 10*int(eval.Value[board.Pawn]) - int(eval.Value[mover.Kind()])
	}

	if movegen.IsAttacked(pos, m.To, mover.Color().Opponent()) {
		score -= int(eval.Value[mover.Kind()])
	}

	if m.Promotion != board.Empty {
		score += int(eval.Value[m.Promotion.Kind()])
	}

	return score
}
