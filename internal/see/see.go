// Package see implements static exchange evaluation: simulating a full
// capture sequence on one square, both sides always recapturing with
// their least valuable attacker, to estimate the net material change.
package see

import (
	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

// value is the SEE figure scale, independent of the evaluator's own
// material weights: SEE only needs a consistent ordering of attackers,
// not an accurate game-score.
var value = [board.FigureArraySize]int32{
	board.NoFigure: 0,
	board.Pawn:     100,
	board.Knight:   320,
	board.Bishop:   330,
	board.Rook:     500,
	board.Queen:    900,
	board.King:     20000,
}

// Gain runs the swap algorithm for the capture/promotion m, which is
// legal in pos but not yet applied, and returns the net material gain
// for the side to move from the full exchange on m's destination
// square.
func Gain(pos *position.Position, m board.Move) int32 {
	us := pos.Us()
	sq := m.To

	var occ [board.ColorArraySize]board.Bitboard
	occ[board.White] = pos.ByColor[board.White]
	occ[board.Black] = pos.ByColor[board.Black]

	occ[us] &^= m.From.Bitboard()
	occ[us] |= m.To.Bitboard()
	occ[us.Opposite()] &^= m.CaptureSquare().Bitboard()

	target := m.Target
	gain := make([]int32, 1, 16)
	gain[0] = gainOf(m)

	pinned, pinRay := pinnedAttackers(pos, us.Opposite())
	side := us.Opposite()

	for {
		all := occ[board.White] | occ[board.Black]
		fig, from, ok := leastValuableAttacker(pos, occ[side]&all, side, sq, all, occ[side.Opposite()]&all, pinned, pinRay)
		if !ok {
			break
		}

		attacker := board.ColorFigure(side, fig)
		captured := target
		target = attacker
		score := value[captured.Figure()] - gain[len(gain)-1]
		if fig == board.Pawn && isPromoting(side, sq) {
			score += value[board.Queen] - value[board.Pawn]
		}
		gain = append(gain, score)

		occ[side] &^= from.Bitboard()
		side = side.Opposite()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

// Ge reports whether the exchange initiated by m (legal, not yet
// applied) nets at least threshold centipawns for the side to move.
func Ge(pos *position.Position, m board.Move, threshold int32) bool {
	return Gain(pos, m) >= threshold
}

func isPromoting(side board.Color, sq board.Square) bool {
	if side == board.White {
		return sq.Rank() == 7
	}
	return sq.Rank() == 0
}

func gainOf(m board.Move) int32 {
	score := value[m.Capture.Figure()]
	if m.Type == board.Promotion {
		score += value[m.Promotion().Figure()] - value[board.Pawn]
	}
	return score
}

// pinnedAttackers returns the set of side's pieces absolutely pinned to
// their own king, and the ray each may still capture along — a pinned
// piece may participate in the exchange only while sq lies on its pin
// ray (e.g. a pinned rook may still recapture straight down the file
// its king sits on).
func pinnedAttackers(pos *position.Position, side board.Color) (board.Bitboard, map[board.Square]board.Bitboard) {
	kingBB := pos.ByPiece(side, board.King)
	if kingBB == 0 {
		return 0, nil
	}
	kingSq := kingBB.AsSquare()
	occ := pos.Occupied()
	enemy := side.Opposite()
	enemyRooks := pos.ByColor[enemy] & (pos.ByFigure[board.Rook] | pos.ByFigure[board.Queen])
	enemyBishops := pos.ByColor[enemy] & (pos.ByFigure[board.Bishop] | pos.ByFigure[board.Queen])
	ours := pos.ByColor[side]

	var pinned board.Bitboard
	rays := map[board.Square]board.Bitboard{}

	scan := func(attack func(board.Square, board.Bitboard) board.Bitboard, sliders board.Bitboard) {
		ray := attack(kingSq, occ)
		blockers := ray & ours
		for blockers != 0 {
			blockerSq := blockers.Pop()
			beyond := attack(kingSq, occ&^blockerSq.Bitboard()) &^ ray
			if pinner := beyond & sliders; pinner != 0 {
				pinned |= blockerSq.Bitboard()
				open := occ &^ blockerSq.Bitboard()
				rays[blockerSq] = attack(kingSq, open)&attack(pinner.AsSquare(), open) | pinner
			}
		}
	}
	scan(board.RookAttack, enemyRooks)
	scan(board.BishopAttack, enemyBishops)
	return pinned, rays
}

// leastValuableAttacker finds the cheapest of side's remaining pieces
// (restricted to occ, which already reflects pieces removed from the
// board as the exchange progresses) that attacks sq, excluding pinned
// pieces whose pin ray doesn't pass through sq. Pins are those of the
// position before the exchange; a pin is not released when its pinner
// is captured during the exchange.
func leastValuableAttacker(pos *position.Position, ours board.Bitboard, side board.Color, sq board.Square, all board.Bitboard, theirs board.Bitboard, pinned board.Bitboard, pinRay map[board.Square]board.Bitboard) (board.Figure, board.Square, bool) {
	try := func(bb board.Bitboard, fig board.Figure) (board.Square, bool) {
		for bb != 0 {
			from := bb.Pop()
			if pinned.Has(from) {
				if ray, ok := pinRay[from]; !ok || !ray.Has(sq) {
					continue
				}
			}
			return from, true
		}
		return board.SquareA1, false
	}

	if from, ok := try(ours&pos.ByFigure[board.Pawn]&board.BbPawnAttack[side.Opposite()][sq], board.Pawn); ok {
		return board.Pawn, from, true
	}
	if from, ok := try(ours&pos.ByFigure[board.Knight]&board.BbKnightAttack[sq], board.Knight); ok {
		return board.Knight, from, true
	}
	if ours&board.BbSuperAttack[sq] == 0 {
		return board.NoFigure, board.SquareA1, false
	}
	bishopAtt := board.BishopAttack(sq, all)
	if from, ok := try(ours&pos.ByFigure[board.Bishop]&bishopAtt, board.Bishop); ok {
		return board.Bishop, from, true
	}
	rookAtt := board.RookAttack(sq, all)
	if from, ok := try(ours&pos.ByFigure[board.Rook]&rookAtt, board.Rook); ok {
		return board.Rook, from, true
	}
	if from, ok := try(ours&pos.ByFigure[board.Queen]&(bishopAtt|rookAtt), board.Queen); ok {
		return board.Queen, from, true
	}
	if from, ok := try(ours&pos.ByFigure[board.King]&board.BbKingAttack[sq], board.King); ok {
		// The king may not recapture if the enemy still has an attacker
		// standing on sq once the king's own square is vacated (a
		// slider pinned behind the king counts too, hence the x-ray).
		if attackersOn(pos, sq, theirs, all&^from.Bitboard(), side.Opposite()) != 0 {
			return board.NoFigure, board.SquareA1, false
		}
		return board.King, from, true
	}
	return board.NoFigure, board.SquareA1, false
}

// attackersOn returns the subset of theirs (an arbitrary remaining-
// pieces bitboard, not necessarily pos.ByColor[them]) that attacks sq
// given occupancy occ, mirroring Position.attackersOn but parameterized
// for the swap algorithm's own simulated occupancy.
func attackersOn(pos *position.Position, sq board.Square, theirs board.Bitboard, occ board.Bitboard, them board.Color) board.Bitboard {
	var att board.Bitboard
	att |= theirs & pos.ByFigure[board.Pawn] & board.BbPawnAttack[them.Opposite()][sq]
	att |= theirs & pos.ByFigure[board.Knight] & board.BbKnightAttack[sq]
	att |= theirs & pos.ByFigure[board.King] & board.BbKingAttack[sq]

	bishopAtt := board.BishopAttack(sq, occ)
	rookAtt := board.RookAttack(sq, occ)
	att |= theirs & pos.ByFigure[board.Bishop] & bishopAtt
	att |= theirs & pos.ByFigure[board.Rook] & rookAtt
	att |= theirs & pos.ByFigure[board.Queen] & (bishopAtt | rookAtt)

	return att
}
