package search

import (
	"context"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/movegen"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// quiescence extends the search past the horizon through captures only, to avoid misjudging
// a position in the middle of an exchange. It has no depth limit; it terminates because the
// capture-only move set shrinks to nothing. Unlike negamax it neither probes nor stores to the
// transposition table, which keeps quiescence cheap.
func (r *run) quiescence(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	if contextx.IsCancelled(ctx) {
		return 0
	}

	r.nodes++

	standPat := r.pos.Turn().Unit() * r.eval.Evaluate(r.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := movegen.GenerateCaptures(r.pos)
	orderMoves(r.pos, captures, board.Move{})

	for _, m := range captures {
		r.pos.Make(m)
		score := -r.quiescence(ctx, ply+1, -beta, -alpha)
		r.pos.Unmake()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
