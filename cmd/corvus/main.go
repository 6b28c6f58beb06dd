// corvus is a minimal line-oriented console for the engine: it reads commands from stdin
// and prints results to stdout, for manual play and debugging without a full host binding.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/engine"
	"github.com/seekerror/logw"
)

var hash = flag.Uint("hash", 0, "Transposition table size in units of 2^20 entries")

func main() {
	ctx := context.Background()
	flag.Parse()

	e := engine.New("corvus", engine.WithOptions(engine.Options{Hash: *hash}))
	logw.Infof(ctx, "corvus console ready: %v", e.Name())

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !handle(ctx, e, strings.TrimSpace(scanner.Text())) {
			break
		}
	}
}

func handle(ctx context.Context, e *engine.Engine, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "quit", "exit":
		return false

	case "fen":
		if ok := e.ParseFEN(strings.Join(fields[1:], " ")); !ok {
			fmt.Println("invalid fen")
		}

	case "move":
		if len(fields) != 2 || len(fields[1]) < 4 {
			fmt.Println("usage: move <from><to> (pawns promote to a queen)")
			break
		}
		from, err1 := board.ParseSquareStr(fields[1][0:2])
		to, err2 := board.ParseSquareStr(fields[1][2:4])
		if err1 != nil || err2 != nil {
			fmt.Println("invalid move")
			break
		}
		if !e.AttemptMove(from, to) {
			fmt.Println("illegal move")
		}

	case "go":
		depth := 6
		if len(fields) == 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				depth = n
			}
		}
		if !e.EvalBotMove(depth) {
			fmt.Println("no move played (draw or no legal move)")
			break
		}
		fmt.Println(e.BestMove())

	case "goiterative":
		if !e.EvalBotMoveIterative() {
			fmt.Println("no move played (draw or no legal move)")
			break
		}
		fmt.Println(e.BestMove())

	case "perft":
		depth := 4
		if len(fields) == 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				depth = n
			}
		}
		fmt.Println(e.CalculateAllPossibleMoves(depth))

	case "position":
		fmt.Println(e.Position())

	case "maxtime":
		if len(fields) == 2 {
			if ms, err := strconv.Atoi(fields[1]); err == nil {
				e.UpdateMaxSearchTime(uint32(ms))
			}
		}

	default:
		logw.Infof(ctx, "unknown command: %v", line)
	}
	return true
}
