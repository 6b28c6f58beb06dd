package search

import (
	"context"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/corvid-labs/corvus/pkg/movegen"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Searcher runs a single fixed-depth negamax/alpha-beta search, extended by quiescence at the
// horizon and backed by a transposition table. Not safe for concurrent use; it shares the
// Position it is given with Make/Unmake as it recurses.
type Searcher struct {
	TT   TranspositionTable
	Eval eval.Evaluator
}

// Result is one completed search: the best move found, its score from the side-to-move's
// point of view, and the node count.
type Result struct {
	Best  board.Move
	Score board.Score
	Nodes uint64
}

// Search runs negamax to the given depth from pos's current position, returning 0 and no
// move if ctx is already cancelled partway through -- the caller (the iterative driver) is
// responsible for discarding such a result rather than committing it.
func (s *Searcher) Search(ctx context.Context, pos *board.Position, depth int) Result {
	run := &run{tt: s.TT, eval: s.Eval, pos: pos}
	score, best := run.negamax(ctx, depth, 0, board.MinScore, board.MaxScore)
	return Result{Best: best, Score: score, Nodes: run.nodes}
}

type run struct {
	tt    TranspositionTable
	eval  eval.Evaluator
	pos   *board.Position
	nodes uint64
}

// negamax returns the score of pos from the side-to-move's point of view, searched to depth
// plies (extended by quiescence beyond that), and the best move found at this node.
func (r *run) negamax(ctx context.Context, depth, ply int, alpha, beta board.Score) (board.Score, board.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, board.Move{}
	}
	if depth <= 0 {
		return r.quiescence(ctx, ply, alpha, beta), board.Move{}
	}
	if ply > 0 && r.pos.IsRepeated() {
		return 0, board.Move{}
	}

	// Mate-distance pruning: a mate found deeper than ply can never beat one already within
	// reach, so tighten the window to reflect that before doing any other work.
	alpha = board.Max(alpha, board.MinScore+board.Score(ply)+1)
	beta = board.Min(beta, board.MaxScore-board.Score(ply)-1)
	if alpha >= beta {
		return alpha, board.Move{}
	}

	hash := r.pos.Hash()
	var ttMove board.Move
	if e, ok := r.tt.Read(hash); ok {
		ttMove = e.Best
		if e.Depth >= depth {
			switch e.Bound {
			case ExactBound:
				return e.Score, e.Best
			case AlphaBound:
				if e.Score <= alpha {
					return alpha, e.Best
				}
			case BetaBound:
				if e.Score >= beta {
					return beta, e.Best
				}
			}
		}
	}

	r.nodes++

	moves := movegen.Generate(r.pos)
	if len(moves) == 0 {
		if movegen.InCheck(r.pos) {
			return board.MinScore + board.Score(ply), board.Move{}
		}
		return 0, board.Move{}
	}
	orderMoves(r.pos, moves, ttMove)

	best := moves[0]
	bound := AlphaBound

	for _, m := range moves {
		r.pos.Make(m)
		score, _ := r.negamax(ctx, depth-1, ply+1, -beta, -alpha)
		score = -score
		r.pos.Unmake()

		if score >= beta {
			r.tt.Write(hash, Entry{Depth: depth, Score: beta, Best: m, Bound: BetaBound})
			return beta, m
		}
		if score > alpha {
			alpha = score
			best = m
			bound = ExactBound
		}
	}

	r.tt.Write(hash, Entry{Depth: depth, Score: alpha, Best: best, Bound: bound})
	return alpha, best
}
