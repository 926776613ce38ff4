// Package movegen generates strictly legal chess moves directly — via
// checker, pinned-piece and attacked-square bitboard masks — rather than
// generating pseudo-legal moves and testing each one for king safety
// afterwards.
package movegen

import (
	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

// Kind selects which subset of legal moves to generate.
const (
	// Quiet moves make no capture, no promotion, no castling.
	Quiet int = 1 << iota
	// Tactical moves are castling and underpromotions (including captures).
	Tactical
	// Violent moves are captures and queen promotions.
	Violent
	// All moves of every kind.
	All = Quiet | Tactical | Violent
)

func makeMove(from, to board.Square, capture, target board.Piece, typ board.MoveType) board.Move {
	return board.Move{From: from, To: to, Capture: capture, Target: target, Type: typ}
}

// generator carries the per-call legality masks so Generate's helpers
// don't need to recompute checkers/pins for every piece kind.
type generator struct {
	pos *position.Position
	us  board.Color
	them board.Color

	kingSq board.Square

	// checkMask is the set of squares a non-king move must land on: all
	// squares when not in check, the checker's square (plus blocking
	// squares for a slider check) when in single check, and empty when
	// in double check (only king moves are legal).
	checkMask board.Bitboard
	inCheck   bool
	inDoubleCheck bool

	// pinned is the set of our own pieces absolutely pinned to the king.
	pinned board.Bitboard
	// pinRay[sq] is the mask a pinned piece at sq may move within.
	pinRay [board.SquareArraySize]board.Bitboard
}

// Generate appends to moves all strictly legal moves of kind available in
// pos.
func Generate(pos *position.Position, kind int, moves *[]board.Move) {
	g := newGenerator(pos)

	if g.inDoubleCheck {
		g.genKingMoves(kind, moves)
		return
	}

	g.genPawnMoves(kind, moves)
	g.genKnightMoves(kind, moves)
	g.genBishopMoves(board.Bishop, kind, moves)
	g.genRookMoves(board.Rook, kind, moves)
	g.genBishopMoves(board.Queen, kind, moves)
	g.genRookMoves(board.Queen, kind, moves)
	g.genKingMoves(kind, moves)
	if !g.inCheck {
		g.genCastles(kind, moves)
	}
}

func newGenerator(pos *position.Position) *generator {
	us, them := pos.Us(), pos.Them()
	kingSq := pos.ByPiece(us, board.King).AsSquare()

	g := &generator{pos: pos, us: us, them: them, kingSq: kingSq}

	checkers := pos.AttacksTo(kingSq, them)
	switch checkers.Popcnt() {
	case 0:
		g.checkMask = ^board.Bitboard(0)
	case 1:
		checkerSq := checkers.AsSquare()
		g.checkMask = betweenBb[kingSq][checkerSq] | checkerSq.Bitboard()
		g.inCheck = true
	default:
		g.inCheck = true
		g.inDoubleCheck = true
	}

	g.computePins()
	return g
}

func (g *generator) computePins() {
	pos := g.pos
	occ := pos.Occupied()
	ours := pos.ByColor[g.us]
	enemyRooks := pos.ByColor[g.them] & (pos.ByFigure[board.Rook] | pos.ByFigure[board.Queen])
	enemyBishops := pos.ByColor[g.them] & (pos.ByFigure[board.Bishop] | pos.ByFigure[board.Queen])

	g.findPinsAlong(board.RookAttack, enemyRooks, occ, ours)
	g.findPinsAlong(board.BishopAttack, enemyBishops, occ, ours)
}

func (g *generator) findPinsAlong(attack func(board.Square, board.Bitboard) board.Bitboard, sliders, occ, ours board.Bitboard) {
	ray := attack(g.kingSq, occ)
	blockers := ray & ours
	for blockers != 0 {
		blockerSq := blockers.Pop()
		beyond := attack(g.kingSq, occ&^blockerSq.Bitboard()) &^ ray
		if pinner := beyond & sliders; pinner != 0 {
			pinnerSq := pinner.AsSquare()
			g.pinned |= blockerSq.Bitboard()
			g.pinRay[blockerSq] = betweenBb[g.kingSq][pinnerSq] | pinnerSq.Bitboard()
		}
	}
}

// destMask returns the set of squares a non-king piece on from is allowed
// to move to, combining check evasion and pin restriction.
func (g *generator) destMask(from board.Square) board.Bitboard {
	mask := g.checkMask
	if g.pinned.Has(from) {
		mask &= g.pinRay[from]
	}
	return mask
}

func (g *generator) getKindMask(kind int) board.Bitboard {
	mask := board.Bitboard(0)
	if kind&Violent != 0 {
		mask |= g.pos.ByColor[g.them]
	}
	if kind&Quiet != 0 {
		mask |= ^g.pos.Occupied()
	}
	return mask
}

func (g *generator) genBitboardMoves(pi board.Piece, from board.Square, att board.Bitboard, moves *[]board.Move) {
	for att != 0 {
		to := att.Pop()
		*moves = append(*moves, makeMove(from, to, g.pos.Get(to), pi, board.Normal))
	}
}

func (g *generator) genKnightMoves(kind int, moves *[]board.Move) {
	mask := g.getKindMask(kind)
	pi := board.ColorFigure(g.us, board.Knight)
	for bb := g.pos.ByPiece(g.us, board.Knight); bb != 0; {
		from := bb.Pop()
		if g.pinned.Has(from) {
			// A knight pinned to its own king never has a legal move:
			// no knight move stays on the pin ray.
			continue
		}
		att := board.BbKnightAttack[from] & mask & g.destMask(from)
		g.genBitboardMoves(pi, from, att, moves)
	}
}

func (g *generator) genBishopMoves(fig board.Figure, kind int, moves *[]board.Move) {
	mask := g.getKindMask(kind)
	pi := board.ColorFigure(g.us, fig)
	for bb := g.pos.ByPiece(g.us, fig); bb != 0; {
		from := bb.Pop()
		att := board.BishopAttack(from, g.pos.Occupied()) & mask & g.destMask(from)
		g.genBitboardMoves(pi, from, att, moves)
	}
}

func (g *generator) genRookMoves(fig board.Figure, kind int, moves *[]board.Move) {
	mask := g.getKindMask(kind)
	pi := board.ColorFigure(g.us, fig)
	for bb := g.pos.ByPiece(g.us, fig); bb != 0; {
		from := bb.Pop()
		att := board.RookAttack(from, g.pos.Occupied()) & mask & g.destMask(from)
		g.genBitboardMoves(pi, from, att, moves)
	}
}

func (g *generator) genKingMoves(kind int, moves *[]board.Move) {
	mask := g.getKindMask(kind)
	pi := board.ColorFigure(g.us, board.King)
	att := board.BbKingAttack[g.kingSq] & mask
	for att != 0 {
		to := att.Pop()
		if g.pos.AttacksToExcluding(to, g.them, g.kingSq) != 0 {
			continue
		}
		*moves = append(*moves, makeMove(g.kingSq, to, g.pos.Get(to), pi, board.Normal))
	}
}

// castleInfo describes one of the four symmetric (standard, non-Chess960)
// castling moves: the right it requires, the squares that must be empty
// between king and rook, and the squares the king stands on, crosses and
// lands on, none of which may be attacked.
type castleInfo struct {
	right    board.Castle
	kingTo   board.Square
	between  board.Bitboard
	transit  board.Bitboard
}

var castleInfos [board.ColorArraySize][2]castleInfo

func init() {
	for _, col := range [2]board.Color{board.White, board.Black} {
		home := col.KingHomeRank()
		kingSq := board.RankFile(home, 4)
		// Short (king-side): king e->g, rook h->f.
		castleInfos[col][0] = castleInfo{
			right:   map[board.Color]board.Castle{board.White: board.WhiteOO, board.Black: board.BlackOO}[col],
			kingTo:  board.RankFile(home, 6),
			between: board.RankFile(home, 5).Bitboard() | board.RankFile(home, 6).Bitboard(),
			transit: kingSq.Bitboard() | board.RankFile(home, 5).Bitboard() | board.RankFile(home, 6).Bitboard(),
		}
		// Long (queen-side): king e->c, rook a->d.
		castleInfos[col][1] = castleInfo{
			right:  map[board.Color]board.Castle{board.White: board.WhiteOOO, board.Black: board.BlackOOO}[col],
			kingTo: board.RankFile(home, 2),
			between: board.RankFile(home, 1).Bitboard() | board.RankFile(home, 2).Bitboard() |
				board.RankFile(home, 3).Bitboard(),
			transit: kingSq.Bitboard() | board.RankFile(home, 2).Bitboard() | board.RankFile(home, 3).Bitboard(),
		}
	}
}

func (g *generator) genCastles(kind int, moves *[]board.Move) {
	if kind&Tactical == 0 {
		return
	}
	pos := g.pos
	rights := pos.CastlingAbility()
	occ := pos.Occupied()
	pi := board.ColorFigure(g.us, board.King)

	for _, ci := range castleInfos[g.us] {
		if rights&ci.right == 0 {
			continue
		}
		if occ&ci.between != 0 {
			continue
		}
		attacked := false
		for bb := ci.transit; bb != 0 && !attacked; {
			sq := bb.Pop()
			if pos.AttacksToExcluding(sq, g.them, g.kingSq) != 0 {
				attacked = true
			}
		}
		if attacked {
			continue
		}
		*moves = append(*moves, makeMove(g.kingSq, ci.kingTo, board.NoPiece, pi, board.Castling))
	}
}
