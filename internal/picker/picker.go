// Package picker sequences a position's legal moves in priority order
// for alpha-beta search: the transposition-table hint first, then good
// captures by static-exchange value, then killer moves, then quiet moves
// ordered by history, and finally the captures static exchange
// evaluation judged bad. The full legal move list is generated, and the
// good-capture, quiet and bad-capture lists are all scored and sorted,
// the first time the picker needs any of them; an early cutoff does not
// save that work.
package picker

import (
	"sort"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/movegen"
	"github.com/chess-engines/zurigen/internal/position"
	"github.com/chess-engines/zurigen/internal/see"
)

// seeThreshold is the minimum static-exchange value (centipawns) for a
// capture to be ordered as "good" ahead of killers and quiets.
const seeThreshold = 0

// stage identifies the picker's position in its state machine.
type stage int

const (
	stageTT stage = iota
	stageGoodCaptures
	stageKiller1
	stageKiller2
	stageQuiet
	stageBadCaptures
	stageDone
)

// scored pairs a move with its ordering key for a comparison-only sort.
type scored struct {
	move  board.Move
	score int64
}

// Picker iterates a position's legal moves in staged priority order.
// One Picker is used for exactly one search node.
type Picker struct {
	pos     *position.Position
	ttMove  board.Move
	killers [2]board.Move
	history *History

	stage stage
	all   []board.Move // the full legal move list, generated once

	good []scored
	bad  []scored
	quiet []scored

	goodIdx, badIdx, quietIdx int
}

// New returns a picker for pos. ttMove is the transposition-table hint
// (board.NullMove if none); killer1/killer2 are this ply's killer
// moves.
func New(pos *position.Position, ttMove board.Move, killer1, killer2 board.Move, history *History) *Picker {
	return &Picker{
		pos:     pos,
		ttMove:  ttMove,
		killers: [2]board.Move{killer1, killer2},
		history: history,
	}
}

func (p *Picker) ensureGenerated() {
	if p.all != nil {
		return
	}
	p.all = make([]board.Move, 0, 32)
	movegen.Generate(p.pos, movegen.All, &p.all)

	for _, m := range p.all {
		if m == p.ttMove {
			continue
		}
		if m.IsQuiet() {
			p.quiet = append(p.quiet, scored{m, p.history.Get(m)})
			continue
		}
		mvvlva := mvvlvaScore(m)
		if see.Ge(p.pos, m, seeThreshold) {
			p.good = append(p.good, scored{m, mvvlva})
		} else {
			p.bad = append(p.bad, scored{m, mvvlva})
		}
	}
	sort.SliceStable(p.good, func(i, j int) bool { return p.good[i].score > p.good[j].score })
	sort.SliceStable(p.bad, func(i, j int) bool { return p.bad[i].score > p.bad[j].score })
	sort.SliceStable(p.quiet, func(i, j int) bool { return p.quiet[i].score > p.quiet[j].score })
}

// MoveCount forces generation and returns the number of legal moves
// available at this node, used by search for its single-reply check
// extension.
func (p *Picker) MoveCount() int {
	p.ensureGenerated()
	return len(p.all)
}

func (p *Picker) isLegal(m board.Move) bool {
	p.ensureGenerated()
	for _, cand := range p.all {
		if cand == m {
			return true
		}
	}
	return false
}

// Next returns the next move in priority order, or (NullMove, false)
// when exhausted.
func (p *Picker) Next() (board.Move, bool) {
	for {
		switch p.stage {
		case stageTT:
			p.stage = stageGoodCaptures
			if p.ttMove != board.NullMove && p.isLegal(p.ttMove) {
				return p.ttMove, true
			}

		case stageGoodCaptures:
			p.ensureGenerated()
			if p.goodIdx < len(p.good) {
				m := p.good[p.goodIdx].move
				p.goodIdx++
				return m, true
			}
			p.stage = stageKiller1

		case stageKiller1:
			p.stage = stageKiller2
			if m := p.killers[0]; m != board.NullMove && m != p.ttMove && m.IsQuiet() && p.isLegal(m) {
				return m, true
			}

		case stageKiller2:
			p.stage = stageQuiet
			if m := p.killers[1]; m != board.NullMove && m != p.ttMove && m != p.killers[0] && m.IsQuiet() && p.isLegal(m) {
				return m, true
			}

		case stageQuiet:
			p.ensureGenerated()
			if p.quietIdx < len(p.quiet) {
				m := p.quiet[p.quietIdx].move
				p.quietIdx++
				if m == p.killers[0] || m == p.killers[1] {
					continue
				}
				return m, true
			}
			p.stage = stageBadCaptures

		case stageBadCaptures:
			p.ensureGenerated()
			if p.badIdx < len(p.bad) {
				m := p.bad[p.badIdx].move
				p.badIdx++
				return m, true
			}
			p.stage = stageDone

		case stageDone:
			return board.NullMove, false
		}
	}
}

// mvvlvaBonus is the figure value scale used only for move-ordering,
// independent of the evaluator's material weights: one pawn = 10.
var mvvlvaBonus = [board.FigureArraySize]int64{0, 10, 40, 45, 68, 145, 256}

// mvvlvaScore ranks captures by most-valuable-victim minus
// least-valuable-attacker.
func mvvlvaScore(m board.Move) int64 {
	victim := m.Capture.Figure()
	attacker := m.Piece().Figure()
	return mvvlvaBonus[victim]*64 - mvvlvaBonus[attacker]
}
