// Package perft counts leaf nodes of the legal move tree to a fixed
// depth, the standard correctness and performance benchmark for move
// generation: depth 1 is just the legal move count, and every deeper
// level exercises DoMove/UndoMove, check detection and castling/
// en-passant/promotion bookkeeping against widely published reference
// counts.
package perft

import (
	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/movegen"
	"github.com/chess-engines/zurigen/internal/position"
)

// Counters tallies the leaf statistics conventionally reported
// alongside a perft node count.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	Enpassant  uint64
	Castles    uint64
	Promotions uint64
}

// Add accumulates ot into co.
func (co *Counters) Add(ot Counters) {
	co.Nodes += ot.Nodes
	co.Captures += ot.Captures
	co.Enpassant += ot.Enpassant
	co.Castles += ot.Castles
	co.Promotions += ot.Promotions
}

// Perft walks pos's legal move tree to depth plies and returns the
// leaf statistics. depth 0 counts the current position itself as a
// single node.
func Perft(pos *position.Position, depth int) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	moves := make([]board.Move, 0, 48)
	movegen.Generate(pos, movegen.All, &moves)

	r := Counters{}
	for _, m := range moves {
		pos.DoMove(m)
		if pos.IsChecked(pos.Them()) {
			pos.UndoMove(m)
			continue
		}

		if depth == 1 {
			if m.Capture != board.NoPiece {
				r.Captures++
			}
			switch m.Type {
			case board.Enpassant:
				r.Enpassant++
			case board.Castling:
				r.Castles++
			case board.Promotion:
				r.Promotions++
			}
		}

		r.Add(Perft(pos, depth-1))
		pos.UndoMove(m)
	}
	return r
}

// Divide runs Perft one ply at a time from pos and returns, for every
// legal move, the subtree count rooted at that move. Used to isolate
// a move generation bug to a specific branch when a Perft total
// disagrees with a known-good count.
func Divide(pos *position.Position, depth int) map[string]Counters {
	result := make(map[string]Counters)
	if depth == 0 {
		return result
	}

	moves := make([]board.Move, 0, 48)
	movegen.Generate(pos, movegen.All, &moves)

	for _, m := range moves {
		pos.DoMove(m)
		if pos.IsChecked(pos.Them()) {
			pos.UndoMove(m)
			continue
		}
		result[m.UCI()] = Perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return result
}
