package search

import (
	"context"
	"time"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// maxIterativeDepth bounds how many plies the driver will try to reach, independent of the
// time budget -- a backstop against ever running forever on a position where every depth
// finishes well inside the budget.
const maxIterativeDepth = 30

// ScoreReporter receives a one-way notification after each depth the iterative driver fully
// completes. Scores are always reported from White's point of view, regardless of whose turn
// it is, so a host UI can display one consistent sign convention.
type ScoreReporter interface {
	ReportScore(depth int, scoreFromWhitesPOV board.Score)
}

// NopScoreReporter discards every report; the zero value of Iterative uses it implicitly.
type NopScoreReporter struct{}

func (NopScoreReporter) ReportScore(int, board.Score) {}

// Iterative drives fixed-depth Searcher.Search at increasing depth until ctx is cancelled
// (the caller arranges this, typically with context.WithDeadline from the host's configured
// search-time budget), a forced mate is found, or maxIterativeDepth is reached.
type Iterative struct {
	TT       TranspositionTable
	Eval     eval.Evaluator
	Reporter ScoreReporter
}

// Run returns the result of the last depth that finished before ctx was cancelled. Because
// Searcher.Search only returns a meaningful result once its recursion bottoms out normally
// (an internal cancellation check makes every in-flight node return 0 instead), a depth that
// was aborted partway through is simply never used to overwrite the previous commit -- the
// single most important property of this driver (see the ordering-guarantees note on the
// concurrency model this implements).
func (it *Iterative) Run(ctx context.Context, pos *board.Position) Result {
	reporter := it.Reporter
	if reporter == nil {
		reporter = NopScoreReporter{}
	}
	searcher := &Searcher{TT: it.TT, Eval: it.Eval}

	var best Result
	var bestDepth int

	for depth := 1; depth <= maxIterativeDepth; depth++ {
		start := time.Now()
		res := searcher.Search(ctx, pos, depth)

		if contextx.IsCancelled(ctx) {
			logw.Debugf(ctx, "search: depth %v aborted after %v, keeping depth %v result", depth, time.Since(start), bestDepth)
			break
		}

		best = res
		bestDepth = depth
		logw.Debugf(ctx, "search: depth %v complete in %v, score=%v nodes=%v best=%v", depth, time.Since(start), res.Score, res.Nodes, res.Best)

		fromWhite := best.Score
		if pos.Turn() != board.White {
			fromWhite = -fromWhite
		}
		reporter.ReportScore(depth, fromWhite)

		if isForcedMate(best.Score) {
			break
		}
	}
	return best
}

func isForcedMate(s board.Score) bool {
	if s < 0 {
		s = -s
	}
	return s >= board.MateScore
}
