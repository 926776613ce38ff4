package picker

import "github.com/chess-engines/zurigen/internal/board"

// History accumulates how often a quiet (piece, destination) pair has
// produced an alpha improvement, depth-weighted so a cutoff found deep
// in the tree counts for more than a shallow one. It is a soft hint
// the picker consumes to order otherwise-unordered quiet moves.
type History struct {
	score [board.PieceArraySize][board.SquareArraySize]int64
}

// NewHistory returns an empty history table.
func NewHistory() *History { return &History{} }

// Add records an alpha improvement by m at depth, scaled 2^min(depth, 32) the way
// the spec's search update does.
func (h *History) Add(m board.Move, depth int) {
	if m.IsQuiet() {
		if depth > 32 {
			depth = 32
		}
		h.score[m.Piece()][m.To] += int64(1) << uint(depth)
	}
}

// Get returns m's accumulated history score.
func (h *History) Get(m board.Move) int64 {
	return h.score[m.Piece()][m.To]
}

// Clear resets every counter, used on ucinewgame.
func (h *History) Clear() {
	for p := range h.score {
		for sq := range h.score[p] {
			h.score[p][sq] = 0
		}
	}
}
