package movegen

import "github.com/corvid-labs/corvus/pkg/board"

// Perft counts the legal leaf nodes reachable from pos at exactly depth plies, recursing
// through Generate/Make/Unmake. Used as a reference correctness check against tabulated node
// counts rather than for anything search needs.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range Generate(pos) {
		pos.Make(m)
		nodes += Perft(pos, depth-1)
		pos.Unmake()
	}
	return nodes
}
