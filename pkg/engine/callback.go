package engine

import (
	"context"
	"time"

	"github.com/seekerror/logw"
)

// Clock abstracts the host's monotonic millisecond clock. The engine only ever subtracts
// two readings, so any monotonic source works; a host embedding the engine via FFI
// typically supplies its own rather than depending on this process's wall clock.
type Clock interface {
	NowMillis() uint32
}

// WallClock is the default Clock, backed by time.Now. Used whenever a host does not
// supply its own, including in every test in this package.
type WallClock struct{}

func (WallClock) NowMillis() uint32 {
	return uint32(time.Now().UnixMilli())
}

// Logger is a one-way diagnostic sink. AttemptMove, ParseFEN, EvalBotMove and friends each log
// exactly one line through it per call.
type Logger interface {
	Logf(format string, args ...any)
}

// LogwLogger adapts Logger to the teacher's structured logging library, at info level.
type LogwLogger struct{}

func (LogwLogger) Logf(format string, args ...any) {
	logw.Infof(context.Background(), format, args...)
}

// ScoreReporter receives a one-way notification after each completed search depth, mirroring
// the host's post_eval_message callback. Scores are always reported from White's point of
// view. NopScoreReporter is the default and discards every report.
type ScoreReporter interface {
	PostEval(tag string, scoreFromWhitePOV int32)
}

type NopScoreReporter struct{}

func (NopScoreReporter) PostEval(string, int32) {}
