// Package search implements iterative-deepening principal-variation
// search over internal/position, ordered by internal/picker, pruned by
// internal/tt and internal/see, and stopped cooperatively by
// internal/timecontrol.
package search

import (
	"math"
	"sort"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/eval"
	"github.com/chess-engines/zurigen/internal/movegen"
	"github.com/chess-engines/zurigen/internal/picker"
	"github.com/chess-engines/zurigen/internal/position"
	"github.com/chess-engines/zurigen/internal/see"
	"github.com/chess-engines/zurigen/internal/timecontrol"
	"github.com/chess-engines/zurigen/internal/tt"
)

// MaxPly bounds recursion: iterative deepening never requests a depth
// anywhere near this, but check extensions and late-move reductions can
// push the actual ply some distance past the requested depth, and the
// PV/killer tables must be sized for the worst case.
const MaxPly = 128

// nullMoveMinDepth is the shallowest depth at which a null-move probe is
// attempted.
const nullMoveMinDepth = 3

// qSeeThreshold is the static-exchange cutoff below which quiescence
// search ignores a capture entirely (it is assumed any reasonable
// defense will not let a clearly losing capture matter).
const qSeeThreshold = 0

// InfoFunc is called once per completed iterative-deepening depth, and
// may be nil.
type InfoFunc func(info Info)

// Info is one iteration's progress report, shaped for direct relay as a
// UCI "info" line.
type Info struct {
	Depth    int
	SelDepth int
	Score    int32
	Mate     bool
	Nodes    uint64
	Elapsed  float64 // seconds
	PV       []board.Move
}

// Result is the final outcome of a Search call.
type Result struct {
	BestMove board.Move
	PonderMove board.Move
	Score    int32
	Depth    int
	Nodes    uint64
	PV       []board.Move
}

// Engine runs a search against one position, reusing a caller-owned
// transposition table and evaluator across searches so warm entries and
// PST setup survive between moves.
type Engine struct {
	Pos     *position.Position
	TT      *tt.Table
	Eval    eval.Evaluator
	History *picker.History
	Info    InfoFunc

	killers [MaxPly][2]board.Move
	pvTable [MaxPly][MaxPly]board.Move
	pvLen   [MaxPly]int

	nodes    uint64
	selDepth int
	rootDepth int

	tc *timecontrol.Control
}

// New returns an Engine bound to pos, reusing table, evaluator and
// history across calls to Search.
func New(pos *position.Position, table *tt.Table, evaluator eval.Evaluator, history *picker.History) *Engine {
	return &Engine{Pos: pos, TT: table, Eval: evaluator, History: history}
}

// Search runs iterative deepening until tc signals it should stop,
// returning the best line found at the deepest completed iteration.
func (e *Engine) Search(tc *timecontrol.Control) Result {
	e.tc = tc
	e.nodes = 0
	e.selDepth = 0
	e.TT.NewGeneration()

	maxDepth := tc.Depth
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	var result Result
	var prevScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && !tc.ShouldStartNextIteration() {
			break
		}
		e.rootDepth = depth

		var score int32
		if depth >= 5 {
			score = e.aspirationSearch(depth, prevScore)
		} else {
			score = e.negamax(-eval.InfinityScore, eval.InfinityScore, depth, 0, true, false)
		}

		if tc.Interrupted() && depth > 1 {
			break
		}
		prevScore = score

		pv := e.extractPV()
		result = Result{Score: score, Depth: depth, Nodes: e.nodes, PV: pv}
		if len(pv) > 0 {
			result.BestMove = pv[0]
		}
		if len(pv) > 1 {
			result.PonderMove = pv[1]
		}

		if e.Info != nil {
			e.Info(Info{
				Depth:    depth,
				SelDepth: e.selDepth,
				Score:    score,
				Mate:     isMateScore(score),
				Nodes:    e.nodes,
				Elapsed:  tc.Elapsed().Seconds(),
				PV:       pv,
			})
		}

		if tc.HardExpired() {
			break
		}
	}

	return result
}

// aspirationSearch re-searches with a window centered on the previous
// iteration's score, widening on either side whenever the result falls
// outside it, and falling back to a full window once the widening has
// grown unreasonably large.
func (e *Engine) aspirationSearch(depth int, prevScore int32) int32 {
	delta := int32(25)
	alpha := prevScore - delta
	beta := prevScore + delta
	if alpha < -eval.InfinityScore {
		alpha = -eval.InfinityScore
	}
	if beta > eval.InfinityScore {
		beta = eval.InfinityScore
	}

	for {
		score := e.negamax(alpha, beta, depth, 0, true, false)
		if e.tc.Interrupted() {
			return score
		}
		if score <= alpha {
			beta = (alpha + beta) / 2
			alpha -= delta
			if alpha < -eval.InfinityScore {
				alpha = -eval.InfinityScore
			}
		} else if score >= beta {
			beta += delta
			if beta > eval.InfinityScore {
				beta = eval.InfinityScore
			}
		} else {
			return score
		}
		delta += delta/3 + 1
		if delta > eval.InfinityScore {
			alpha, beta = -eval.InfinityScore, eval.InfinityScore
		}
	}
}

func isMateScore(score int32) bool {
	return score >= eval.KnownWinScore || score <= eval.KnownLossScore
}

// drawScore returns a small jitter around zero so repeated positions
// aren't systematically preferred or avoided by a search that would
// otherwise see identical draw scores everywhere and order them
// arbitrarily.
func (e *Engine) drawScore() int32 {
	return int32(e.nodes&3) - 1
}

// negamax searches one node to depth plies (or, once depth reaches
// zero, hands off to quiescence), returning a score from the side to
// move's perspective. nullOK is false immediately after a null move, to
// forbid two in a row; cutNode hints that this node is expected to fail
// high, used only to bias late-move-reduction depth.
func (e *Engine) negamax(alpha, beta int32, depth, ply int, nullOK bool, cutNode bool) int32 {
	e.pvLen[ply] = ply
	pvNode := beta-alpha > 1

	if ply > 0 {
		if e.Pos.HalfMoveClock() >= 100 || e.Pos.IsRepeated() {
			return e.drawScore()
		}

		mateAlpha := -eval.MateScore + int32(ply)
		if alpha < mateAlpha {
			alpha = mateAlpha
		}
		mateBeta := eval.MateScore - int32(ply) - 1
		if beta > mateBeta {
			beta = mateBeta
		}
		if alpha >= beta {
			return alpha
		}
	}

	e.nodes++
	if e.tc.Interrupted() {
		return 0
	}
	if e.nodes&2047 == 0 && e.tc.HardExpired() {
		e.tc.Stop()
		return 0
	}

	key := e.Pos.Zobrist()
	var ttMove board.Move
	if entry, ok := e.TT.Probe(key, ply); ok {
		ttMove = entry.Move
		if ply > 0 && int(entry.Depth) >= depth {
			switch entry.Bound {
			case tt.Exact:
				return entry.Value
			case tt.Lower:
				if entry.Value >= beta {
					return entry.Value
				}
			case tt.Upper:
				if entry.Value <= alpha {
					return entry.Value
				}
			}
		}
	}

	inCheck := e.Pos.IsChecked(e.Pos.Us())
	if depth <= 0 {
		return e.quiescence(alpha, beta, ply)
	}
	if ply >= 2*e.rootDepth+8 || ply >= MaxPly-1 {
		return e.quiescence(alpha, beta, ply)
	}

	if !pvNode && !inCheck && nullOK && depth >= nullMoveMinDepth && e.Pos.HasNonPawns(e.Pos.Us()) {
		e.Pos.DoNullMove()
		reduction := 3 + depth/6
		score := -e.negamax(-beta, -beta+1, depth-1-reduction, ply+1, false, !cutNode)
		e.Pos.UndoNullMove()
		if e.tc.Interrupted() {
			return 0
		}
		if score >= beta && score < eval.KnownWinScore {
			return beta
		}
	}

	pick := picker.New(e.Pos, ttMove, e.killers[ply][0], e.killers[ply][1], e.History)
	onlyMove := pick.MoveCount() == 1

	bestScore := -eval.InfinityScore
	bestMove := board.NullMove
	origAlpha := alpha
	moveCount := 0
	quietCount := 0

	for {
		m, ok := pick.Next()
		if !ok {
			break
		}
		moveCount++
		isQuiet := m.IsQuiet()
		if isQuiet {
			quietCount++
		}

		e.Pos.DoMove(m)
		givesCheck := e.Pos.IsChecked(e.Pos.Us())

		extension := 0
		if inCheck || onlyMove {
			extension = 1
		}
		newDepth := depth - 1 + extension

		lmrEligible := depth >= 3 && isQuiet && !inCheck && !givesCheck && extension == 0 &&
			((pvNode && quietCount >= 2) || (!pvNode && quietCount >= 1))

		var score int32
		switch {
		case lmrEligible:
			r := lmrReduction(moveCount, depth)
			if cutNode {
				r++
			}
			if pvNode {
				r--
			}
			if r < 0 {
				r = 0
			}
			reducedDepth := newDepth - r
			if reducedDepth < 1 {
				reducedDepth = 1
			}
			score = -e.negamax(-alpha-1, -alpha, reducedDepth, ply+1, true, true)
			if score > alpha && reducedDepth < newDepth {
				score = -e.negamax(-alpha-1, -alpha, newDepth, ply+1, true, true)
			}
		case moveCount > 1:
			score = -e.negamax(-alpha-1, -alpha, newDepth, ply+1, true, true)
		default:
			score = -e.negamax(-beta, -alpha, newDepth, ply+1, true, false)
		}
		if moveCount > 1 && score > alpha && score < beta {
			score = -e.negamax(-beta, -alpha, newDepth, ply+1, true, false)
		}

		e.Pos.UndoMove(m)

		if e.tc.Interrupted() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				e.updatePV(ply, m)
				if isQuiet {
					e.History.Add(m, depth)
				}
				if alpha >= beta {
					if isQuiet {
						e.addKiller(ply, m)
					}
					break
				}
			}
		}
	}

	if moveCount == 0 {
		if inCheck {
			return -eval.MateScore + int32(ply)
		}
		return 0
	}

	bound := tt.Upper
	switch {
	case bestScore >= beta:
		bound = tt.Lower
	case bestScore > origAlpha:
		bound = tt.Exact
	}
	e.TT.Store(key, ply, int8(depth), bound, bestScore, bestMove)

	return bestScore
}

// quiescence extends the search along captures and queen promotions (all
// evasions when in check) until the position is "quiet", to avoid a
// horizon effect at depth zero: a capture sitting just past the leaf is
// never taken at face value. Quiet checking moves are not searched.
func (e *Engine) quiescence(alpha, beta int32, ply int) int32 {
	e.pvLen[ply] = ply
	e.nodes++
	if ply > e.selDepth {
		e.selDepth = ply
	}
	if e.tc.Interrupted() {
		return 0
	}
	if ply >= MaxPly-1 {
		return e.evaluate()
	}

	inCheck := e.Pos.IsChecked(e.Pos.Us())
	bestScore := -eval.InfinityScore
	if !inCheck {
		standPat := e.evaluate()
		if standPat >= beta {
			return standPat
		}
		bestScore = standPat
		if standPat > alpha {
			alpha = standPat
		}
	}

	kind := movegen.Violent
	if inCheck {
		kind = movegen.All
	}
	moves := make([]board.Move, 0, 16)
	movegen.Generate(e.Pos, kind, &moves)
	sort.SliceStable(moves, func(i, j int) bool { return mvvlvaKey(moves[i]) > mvvlvaKey(moves[j]) })

	if inCheck && len(moves) == 0 {
		return -eval.MateScore + int32(ply)
	}

	for _, m := range moves {
		if !inCheck && m.IsViolent() && !see.Ge(e.Pos, m, qSeeThreshold) {
			continue
		}

		e.Pos.DoMove(m)
		score := -e.quiescence(-beta, -alpha, ply+1)
		e.Pos.UndoMove(m)

		if e.tc.Interrupted() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				e.updatePV(ply, m)
				if alpha >= beta {
					break
				}
			}
		}
	}

	return bestScore
}

func (e *Engine) evaluate() int32 {
	score := e.Eval.Evaluate(e.Pos)
	if e.Pos.Us() == board.Black {
		score = -score
	}
	return score
}

// mvvlvaKey orders quiescence's capture list by the Figure ordinals
// (pawn lowest, king highest) rather than SEE: a cheap ordering hint is
// all sorting needs here, the actual pruning decision is SEE's.
func mvvlvaKey(m board.Move) int32 {
	victim := int32(m.Capture.Figure())
	attacker := int32(m.Piece().Figure())
	return victim*8 - attacker
}

// lmrReduction is the late-move-reduction depth cut for the moveIndex-th
// move searched (1-based) at the given remaining depth: larger for
// later, less promising moves and for searches that still have many
// plies left to recover if the reduction was wrong.
func lmrReduction(moveIndex, depth int) int {
	if moveIndex < 2 || depth < 3 {
		return 0
	}
	r := int(math.Log(float64(moveIndex)) * math.Log(float64(depth)) / 2.0)
	if r < 0 {
		r = 0
	}
	return r
}

// addKiller records m as ply's most recent killer, demoting the
// previous first killer to second.
func (e *Engine) addKiller(ply int, m board.Move) {
	if e.killers[ply][0] == m {
		return
	}
	e.killers[ply][1] = e.killers[ply][0]
	e.killers[ply][0] = m
}

// updatePV copies child's line up behind m into ply's row of the
// triangular PV array.
func (e *Engine) updatePV(ply int, m board.Move) {
	e.pvTable[ply][ply] = m
	for next := ply + 1; next < e.pvLen[ply+1]; next++ {
		e.pvTable[ply][next] = e.pvTable[ply+1][next]
	}
	e.pvLen[ply] = e.pvLen[ply+1]
}

// extractPV returns the root PV line accumulated by the most recent
// completed iteration.
func (e *Engine) extractPV() []board.Move {
	n := e.pvLen[0]
	if n <= 0 {
		return nil
	}
	line := make([]board.Move, n)
	copy(line, e.pvTable[0][:n])
	return line
}
