// Package eval defines the leaf-scoring contract search consults and
// ships a compact default implementation. The hand-tuned feature set
// (pawn structure, king safety, mobility terms) a full-strength
// evaluator would carry is out of scope here; this package exists to
// give search a real opponent to prune against and a stable interface
// an NNUE-backed evaluator could later occupy.
package eval

import (
	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

// Score bounds used throughout search and the transposition table.
const (
	// KnownWinScore is strictly greater than any non-mate evaluation.
	KnownWinScore int32 = 25000
	// KnownLossScore is strictly smaller than any non-mate evaluation.
	KnownLossScore int32 = -KnownWinScore
	// MateScore minus the mating ply is the score reported for "mate in
	// ply plies".
	MateScore int32 = 30000
	// MatedScore plus the ply is the score reported for "mated in ply".
	MatedScore int32 = -MateScore
	// InfinityScore is larger in magnitude than any real score,
	// including mate scores; used to seed alpha-beta windows.
	InfinityScore int32 = 32000
)

// Evaluator scores a position from White's point of view, in
// centipawns. Search negates and adds the side-to-move multiplier
// itself; implementations stay color-symmetric.
type Evaluator interface {
	Evaluate(pos *position.Position) int32
}

// Accumulator is the opaque per-position incremental state an
// Evaluator may thread through do/undo move, e.g. an NNUE hidden-layer
// accumulator. The default evaluator below needs none of it; the hook
// exists so Position's do/undo call sites have somewhere to plug an
// NNUE-backed Evaluator in without search code changing shape.
type Accumulator interface {
	Update(pos *position.Position, move board.Move)
	Undo(pos *position.Position, move board.Move)
}

// Default is a material + piece-square-table evaluator, tapered
// between a middle-game and an end-game set of weights by a simple
// phase counter. It is not Texel-tuned; values are hand-set to the
// conventional centipawn scale.
type Default struct{}

// NewDefault returns the default evaluator.
func NewDefault() *Default { return &Default{} }

// pairScore is a tapered (middle game, end game) pair, summed the way
// the teacher's Eval{M,E,Phase} blends features.
type pairScore struct{ M, E int32 }

var figureValue = [board.FigureArraySize]pairScore{
	board.NoFigure: {0, 0},
	board.Pawn:     {100, 120},
	board.Knight:   {320, 290},
	board.Bishop:   {330, 300},
	board.Rook:     {500, 520},
	board.Queen:    {900, 940},
	board.King:     {0, 0},
}

// phaseWeight[fig] contributes to the 0 (full endgame) .. 24 (full
// middlegame) phase counter used to blend M and E.
var phaseWeight = [board.FigureArraySize]int32{
	board.NoFigure: 0,
	board.Pawn:     0,
	board.Knight:   1,
	board.Bishop:   1,
	board.Rook:     2,
	board.Queen:    4,
	board.King:     0,
}

const totalPhase = 2*(1+1+2) + 4 // two knights, two bishops, two rooks, one queen, per side... see phase()

func phase(pos *position.Position) int32 {
	var p int32
	for fig := board.FigureMinValue; fig <= board.FigureMaxValue; fig++ {
		n := int32((pos.ByFigure[fig]).Popcnt())
		p += n * phaseWeight[fig]
	}
	if p > 24 {
		p = 24
	}
	return p
}

// Evaluate implements Evaluator.
func (*Default) Evaluate(pos *position.Position) int32 {
	var m, e int32
	ph := phase(pos)

	for fig := board.FigureMinValue; fig <= board.FigureMaxValue; fig++ {
		wv := figureValue[fig]
		for bb := pos.ByPiece(board.White, fig); bb != 0; {
			sq := bb.Pop()
			m += wv.M + pstValue(fig, board.White, sq, true)
			e += wv.E + pstValue(fig, board.White, sq, false)
		}
		for bb := pos.ByPiece(board.Black, fig); bb != 0; {
			sq := bb.Pop()
			m -= wv.M + pstValue(fig, board.Black, sq, true)
			e -= wv.E + pstValue(fig, board.Black, sq, false)
		}
	}

	// ph is out of 24 (all minor/major pieces present); blend mid/end
	// the way Eval.Feed() does, with ph inverted relative to the
	// teacher's 0..256 "endgame-ness" phase.
	return (m*ph + e*(24-ph)) / 24
}

// pstValue returns the placement bonus for fig of color col on sq,
// mirrored for Black so both colors share one table oriented from
// White's side of the board.
func pstValue(fig board.Figure, col board.Color, sq board.Square, mid bool) int32 {
	r, f := sq.Rank(), sq.File()
	if col == board.Black {
		r = 7 - r
	}
	idx := r*8 + f
	tbl := pstMid[fig]
	if !mid {
		tbl = pstEnd[fig]
	}
	return int32(tbl[idx])
}

// pstMid/pstEnd are hand-set piece-square tables, indexed a1..h8 from
// White's perspective (rank 0 = White's back rank). Values favor
// central knights/bishops, advanced connected pawns, and a sheltered
// king in the middlegame that activates in the endgame.
var pstMid = [board.FigureArraySize][64]int8{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	board.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

var pstEnd = [board.FigureArraySize][64]int8{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		20, 20, 20, 20, 20, 20, 20, 20,
		35, 35, 35, 35, 35, 35, 35, 35,
		55, 55, 55, 55, 55, 55, 55, 55,
		80, 80, 80, 80, 80, 80, 80, 80,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: pstMid[board.Knight],
	board.Bishop: pstMid[board.Bishop],
	board.Rook:   pstMid[board.Rook],
	board.Queen:  pstMid[board.Queen],
	board.King: {
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	},
}
