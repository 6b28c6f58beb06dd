// Package engine exposes the embeddable engine facade: the public surface a host (UI,
// FFI boundary, test harness) drives to play a game against the search in this module.
// Engine owns the current board.Position, the transposition table, and the time budget,
// and serializes access with a mutex since a host may poll accessors from one goroutine
// while a search is being prepared on another.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/board/fen"
	"github.com/corvid-labs/corvus/pkg/eval"
	"github.com/corvid-labs/corvus/pkg/movegen"
	"github.com/corvid-labs/corvus/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

const defaultSearchMaxTimeMS = 5000

// Options are engine creation options.
type Options struct {
	// Hash is the transposition table size in units of 2^20 entries (rounded up to a power of
	// two), not in bytes. If zero, the engine will not use one.
	Hash uint
	// SearchMaxTimeMS is the initial time budget for EvalBotMoveIterative, in milliseconds.
	// If unset, defaultSearchMaxTimeMS is used. Adjustable afterwards via
	// UpdateMaxSearchTime.
	SearchMaxTimeMS lang.Optional[uint32]
}

func (o Options) String() string {
	ms, _ := o.SearchMaxTimeMS.V()
	return fmt.Sprintf("{hash=%vMB, searchMaxTimeMS=%v}", o.Hash, ms)
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets the engine's creation options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithClock configures the host's monotonic clock callback. Defaults to WallClock.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger configures the host's diagnostic sink. Defaults to LogwLogger.
func WithLogger(logger Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScoreReporter configures the host's post_eval_message callback, invoked once per
// completed iterative-deepening depth. Defaults to NopScoreReporter.
func WithScoreReporter(reporter ScoreReporter) Option {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// WithZobristSeed configures the engine to use a fixed zobrist seed instead of one
// generated with a secure PRNG. Intended for reproducible tests; a real host should leave
// this unset.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = lang.Some(seed)
	}
}

// Engine encapsulates game-playing logic: position, search, and the host callbacks.
type Engine struct {
	name string

	zt   *board.ZobristTable
	seed lang.Optional[int64]
	opts Options

	clock    Clock
	logger   Logger
	reporter ScoreReporter

	pos             *board.Position
	tt              search.TranspositionTable
	validMoves      []board.Move
	bestMove        board.Move
	timeTakenLastMS uint32
	depthSearched   int
	searchMaxTimeMS uint32

	mu sync.Mutex
}

// New constructs an engine with a fresh Zobrist table and resets it to the initial
// position. The table uses a securely random seed unless WithZobristSeed overrides it.
func New(name string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		clock:    WallClock{},
		logger:   LogwLogger{},
		reporter: NopScoreReporter{},
	}
	for _, fn := range opts {
		fn(e)
	}

	if seed, ok := e.seed.V(); ok {
		e.zt = board.NewSeededZobristTable(seed)
	} else {
		e.zt = board.NewZobristTable()
	}

	if ms, ok := e.opts.SearchMaxTimeMS.V(); ok {
		e.searchMaxTimeMS = ms
	} else {
		e.searchMaxTimeMS = defaultSearchMaxTimeMS
	}

	e.resetLocked(fen.Initial)

	e.logger.Logf("Initialized engine: %v %v, options=%v", e.name, version, e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// ParseFEN loads a position in FEN notation and regenerates the legal move list. A
// malformed FEN leaves the engine's state untouched and returns false -- FEN decoding is a
// total function, never an error the host must unwind.
func (e *Engine) ParseFEN(f string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := fen.Decode(e.zt, f)
	if err != nil {
		e.logger.Logf("ParseFEN %v: rejected: %v", f, err)
		return false
	}

	e.pos = pos
	e.refreshValidMovesLocked()
	e.bestMove = board.Move{}

	e.logger.Logf("ParseFEN %v", f)
	return true
}

func (e *Engine) resetLocked(f string) {
	pos, err := fen.Decode(e.zt, f)
	if err != nil {
		panic(fmt.Sprintf("engine: invalid built-in starting position %q: %v", f, err))
	}

	e.pos = pos
	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = search.NewTranspositionTable(int(e.opts.Hash) << 20)
	}
	e.refreshValidMovesLocked()
	e.bestMove = board.Move{}
}

// refreshValidMovesLocked regenerates the legal move cache. Called after every state
// change (ParseFEN, AttemptMove, EvalBotMove, a host's bulk mutation via
// UseHistoricalBoard), matching the requirement that the host must trigger regeneration
// itself after restoring a historical position field by field.
func (e *Engine) refreshValidMovesLocked() {
	e.validMoves = movegen.Generate(e.pos)
}

// UseHistoricalBoard rehashes the position and regenerates legal moves after a host has
// restored historical state via the mutator accessors. Host code using the
// setter-per-field API must call this once after a bulk restore; AttemptMove and the
// eval/perft operations already do so on their own.
func (e *Engine) UseHistoricalBoard() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.Rehash()
	e.refreshValidMovesLocked()
}

// AttemptMove applies a human move from "from" to "to", auto-promoting pawns reaching the
// back rank to a queen. Returns whether the move was legal and applied; an illegal or
// wrong-turn move leaves state untouched.
func (e *Engine) AttemptMove(from, to board.Square) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate := board.Move{From: from, To: to}
	if mover := e.pos.At(from); mover.Kind() == board.Pawn && (to.Row() == 0 || to.Row() == 7) {
		candidate.Promotion = board.Of(e.pos.Turn(), board.Queen)
	}

	for _, m := range e.validMoves {
		if !m.Equals(candidate) {
			continue
		}

		e.pos.Make(m)
		e.bestMove = m
		e.refreshValidMovesLocked()

		e.logger.Logf("AttemptMove %v: applied", m)
		return true
	}

	e.logger.Logf("AttemptMove %v->%v: illegal", from, to)
	return false
}

// EvalBotMove runs a fixed-depth search and commits the best move found. Returns false
// without searching if the position is already drawn.
func (e *Engine) EvalBotMove(depth int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pos.CheckForDraw() {
		e.logger.Logf("EvalBotMove: position already drawn, no move played")
		return false
	}

	start := e.clock.NowMillis()
	searcher := &search.Searcher{TT: e.tt, Eval: eval.Standard{}}
	res := searcher.Search(context.Background(), e.pos, depth)
	e.timeTakenLastMS = e.clock.NowMillis() - start
	e.depthSearched = depth

	return e.commitSearchResultLocked(res.Best, res.Score)
}

// EvalBotMoveIterative runs iterative deepening within the configured time budget (stopping
// early on a found mate or at the driver's depth limit) and commits the best move of the
// deepest completed depth. Returns false on a position already drawn, when no depth completed
// within the budget, or when the current position already occurred earlier since the last
// irreversible move (Position.IsRepeated).
func (e *Engine) EvalBotMoveIterative() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pos.CheckForDraw() {
		e.logger.Logf("EvalBotMoveIterative: position already drawn, no move played")
		return false
	}

	budget := time.Duration(e.searchMaxTimeMS) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	start := e.clock.NowMillis()
	driver := &search.Iterative{TT: e.tt, Eval: eval.Standard{}, Reporter: reporterAdapter{e.reporter}}
	res := driver.Run(ctx, e.pos)
	e.timeTakenLastMS = e.clock.NowMillis() - start
	e.depthSearched = 0

	if res.Best.Equals(board.Move{}) && len(e.validMoves) > 0 {
		e.logger.Logf("EvalBotMoveIterative: no depth completed within %v", budget)
		return false
	}

	if e.pos.IsRepeated() {
		e.logger.Logf("EvalBotMoveIterative: repeated position, declining to commit")
		return false
	}

	return e.commitSearchResultLocked(res.Best, res.Score)
}

func (e *Engine) commitSearchResultLocked(m board.Move, score board.Score) bool {
	if m.Equals(board.Move{}) {
		e.logger.Logf("EvalBotMove: no legal move found")
		return false
	}

	e.pos.Make(m)
	e.bestMove = m
	e.refreshValidMovesLocked()

	e.logger.Logf("EvalBotMove: %v (score=%v)", m, score)
	return true
}

// reporterAdapter adapts the search package's per-depth ScoreReporter to the host-facing
// ScoreReporter, which tags each report with the depth it was completed at.
type reporterAdapter struct {
	r ScoreReporter
}

func (a reporterAdapter) ReportScore(depth int, scoreFromWhitesPOV board.Score) {
	a.r.PostEval(fmt.Sprintf("depth %d", depth), int32(scoreFromWhitesPOV))
}

// CalculateAllPossibleMoves is the perft reference correctness check: it counts legal leaf
// nodes reachable in exactly depth plies from the current position.
func (e *Engine) CalculateAllPossibleMoves(depth int) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return movegen.Perft(e.pos, depth)
}

// UpdateMaxSearchTime adjusts the time budget used by EvalBotMoveIterative.
func (e *Engine) UpdateMaxSearchTime(ms uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searchMaxTimeMS = ms
	e.logger.Logf("UpdateMaxSearchTime: %vms", ms)
}

// Accessors, per the engine's external interface: board state, the legal move list, turn,
// castling rights, en-passant target, move counters, check status, the last move played,
// per-piece locations, and the last search's timing/depth. DepthSearchedLastTurn reports the
// depth of the last EvalBotMove; EvalBotMoveIterative does not record the depth it reached and
// sets it to 0.

func (e *Engine) Board() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos
}

func (e *Engine) ValidMoves() []board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.validMoves
}

func (e *Engine) WhiteTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Turn() == board.White
}

func (e *Engine) CastleStatus() board.Castling {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Castling()
}

func (e *Engine) EnPassantSquare() board.Square {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.EnPassant()
}

func (e *Engine) MoveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Ply()
}

func (e *Engine) MoveRepCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.HalfmoveClock()
}

func (e *Engine) InCheck() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return movegen.InCheck(e.pos)
}

func (e *Engine) BestMove() board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.bestMove
}

func (e *Engine) PieceLocations(p board.Piece) []board.Square {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Locations(p)
}

func (e *Engine) CheckForDraw() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.CheckForDraw()
}

func (e *Engine) TimeTakenLastTurn() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.timeTakenLastMS
}

func (e *Engine) DepthSearchedLastTurn() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.depthSearched
}

// Position returns the current position in FEN notation.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Mutators, used by a host restoring a historical position field by field. After a batch
// of these, the host must call UseHistoricalBoard to rehash and regenerate moves.

func (e *Engine) SetSquare(sq board.Square, p board.Piece) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetSquare(sq, p)
}

func (e *Engine) SetTurn(c board.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetTurn(c)
}

func (e *Engine) SetCastleStatus(c board.Castling) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetCastling(c)
}

func (e *Engine) SetEnPassantSquare(sq board.Square) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetEnPassant(sq)
}

func (e *Engine) SetMoveRepCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetHalfmoveClock(n)
}

func (e *Engine) SetMoveCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pos.SetPly(n)
}
