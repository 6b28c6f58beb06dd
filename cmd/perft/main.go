// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/corvid-labs/corvus/pkg/board"
	"github.com/corvid-labs/corvus/pkg/board/fen"
	"github.com/corvid-labs/corvus/pkg/movegen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	zt := board.NewZobristTable()
	pos, err := fen.Decode(zt, *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := run(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}

func run(pos *board.Position, depth int, d bool) uint64 {
	if !d {
		return movegen.Perft(pos, depth)
	}

	var nodes uint64
	for _, m := range movegen.Generate(pos) {
		pos.Make(m)
		count := movegen.Perft(pos, depth-1)
		pos.Unmake()

		fmt.Printf("%v: %v\n", m, count)
		nodes += count
	}
	return nodes
}
