package movegen

import "github.com/chess-engines/zurigen/internal/board"

// betweenBb[a][b] is the set of squares strictly between a and b when they
// share a rank, file or diagonal; zero otherwise (including when a and b
// are adjacent, or unrelated). Used both to build the mask a pinned piece
// may move within and the mask that blocks a single checking slider.
var betweenBb [board.SquareArraySize][board.SquareArraySize]board.Bitboard

var rayDeltas = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func init() {
	for sq := board.SquareMinValue; sq <= board.SquareMaxValue; sq++ {
		r, f := sq.Rank(), sq.File()
		for _, d := range rayDeltas {
			var acc board.Bitboard
			r0, f0 := r, f
			for {
				r0, f0 = r0+d[0], f0+d[1]
				if r0 < 0 || r0 >= 8 || f0 < 0 || f0 >= 8 {
					break
				}
				to := board.RankFile(r0, f0)
				betweenBb[sq][to] = acc
				acc |= to.Bitboard()
			}
		}
	}
}
