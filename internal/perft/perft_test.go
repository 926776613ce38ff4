package perft

import (
	"testing"

	"github.com/chess-engines/zurigen/internal/position"
)

// Well-known perft reference positions and their expected leaf counts
// per depth (index 0 unused, index d holds depth d's Counters).
var cases = []struct {
	name     string
	fen      string
	expected []Counters
}{
	{
		name: "startpos",
		fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		expected: []Counters{
			{},
			{Nodes: 20},
			{Nodes: 400},
			{Nodes: 8902, Captures: 34},
			{Nodes: 197281, Captures: 1576},
			{Nodes: 4865609, Captures: 82719, Enpassant: 258},
		},
	},
	{
		name: "kiwipete",
		fen:  "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		expected: []Counters{
			{},
			{Nodes: 48, Captures: 8, Castles: 2},
			{Nodes: 2039, Captures: 351, Enpassant: 1, Castles: 91},
			{Nodes: 97862, Captures: 17102, Enpassant: 45, Castles: 3162},
			{Nodes: 4085603, Captures: 757163, Enpassant: 1929, Castles: 128013, Promotions: 15172},
		},
	},
	{
		name: "duplain",
		fen:  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		expected: []Counters{
			{},
			{Nodes: 14, Captures: 1},
			{Nodes: 191, Captures: 14},
			{Nodes: 2812, Captures: 209, Enpassant: 2},
			{Nodes: 43238, Captures: 3348, Enpassant: 123},
			{Nodes: 674624, Captures: 52051, Enpassant: 1165},
			{Nodes: 11030083, Captures: 940350, Enpassant: 33325, Promotions: 7552},
		},
	},
}

// nodeCountOnly holds required seed positions whose total node counts
// are part of the required pass bar but whose per-category breakdown
// (captures/en passant/castles/promotions) isn't independently
// confirmed here, so only Nodes is asserted.
var nodeCountOnly = []struct {
	name  string
	fen   string
	depth int
	nodes uint64
}{
	{
		name:  "position4",
		fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		depth: 5,
		nodes: 15833292,
	},
}

func TestPerft(t *testing.T) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := position.FromFEN(tc.fen)
			if err != nil {
				t.Fatalf("FromFEN(%q): %v", tc.fen, err)
			}
			for depth := 1; depth < len(tc.expected); depth++ {
				got := Perft(pos, depth)
				want := tc.expected[depth]
				if got != want {
					t.Errorf("%s depth %d: got %+v, want %+v", tc.name, depth, got, want)
				}
			}
		})
	}
}

func TestPerftNodeCountOnly(t *testing.T) {
	for _, tc := range nodeCountOnly {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := position.FromFEN(tc.fen)
			if err != nil {
				t.Fatalf("FromFEN(%q): %v", tc.fen, err)
			}
			got := Perft(pos, tc.depth).Nodes
			if got != tc.nodes {
				t.Errorf("%s depth %d: got %d nodes, want %d", tc.name, tc.depth, got, tc.nodes)
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos, err := position.FromFEN(cases[0].fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	const depth = 3
	div := Divide(pos, depth)
	var sum uint64
	for _, c := range div {
		sum += c.Nodes
	}
	if want := Perft(pos, depth).Nodes; sum != want {
		t.Errorf("divide sum = %d, want %d", sum, want)
	}
}
