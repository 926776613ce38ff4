package movegen

import "github.com/chess-engines/zurigen/internal/board"

var promotionFigures = [4]board.Figure{board.Queen, board.Rook, board.Bishop, board.Knight}

func (g *generator) genPawnMoves(kind int, moves *[]board.Move) {
	pos := g.pos
	us, them := g.us, g.them
	occ := pos.Occupied()
	theirs := pos.ByColor[them]

	startRank, promoRank := 1, 7
	if us == board.Black {
		startRank, promoRank = 6, 0
	}

	step := 1
	if us == board.Black {
		step = -1
	}

	for bb := pos.ByPiece(us, board.Pawn); bb != 0; {
		from := bb.Pop()
		mask := g.destMask(from)
		fromRank, fromFile := from.Rank(), from.File()

		// Single and double push (addPawnMove filters push promotions and
		// quiet pushes by kind).
		if kind&(Quiet|Violent|Tactical) != 0 {
			to := board.RankFile(fromRank+step, fromFile)
			if !occ.Has(to) {
				g.addPawnMove(kind, from, to, board.NoPiece, promoRank, mask, moves)
				if fromRank == startRank {
					to2 := board.RankFile(fromRank+2*step, fromFile)
					if !occ.Has(to2) {
						g.addPawnMove(kind, from, to2, board.NoPiece, promoRank, mask, moves)
					}
				}
			}
		}

		// Captures (including en passant).
		for _, df := range [2]int{-1, +1} {
			toFile := fromFile + df
			if toFile < 0 || toFile > 7 {
				continue
			}
			to := board.RankFile(fromRank+step, toFile)
			if pos.IsEnpassantSquare(to) {
				if kind&Violent != 0 {
					g.tryEnpassant(from, to, moves)
				}
				continue
			}
			if kind&(Violent|Tactical) == 0 {
				continue
			}
			if !theirs.Has(to) {
				continue
			}
			capt := pos.Get(to)
			g.addPawnMove(kind, from, to, capt, promoRank, mask, moves)
		}
	}
}

func (g *generator) addPawnMove(kind int, from, to board.Square, capture board.Piece, promoRank int, mask board.Bitboard, moves *[]board.Move) {
	if !mask.Has(to) {
		return
	}
	us := g.us
	if to.Rank() == promoRank {
		if kind&(Violent|Tactical) == 0 {
			return
		}
		for _, fig := range promotionFigures {
			if fig == board.Queen && kind&Violent == 0 {
				continue
			}
			if fig != board.Queen && kind&Tactical == 0 {
				continue
			}
			*moves = append(*moves, makeMove(from, to, capture, board.ColorFigure(us, fig), board.Promotion))
		}
		return
	}
	if capture != board.NoPiece && kind&Violent == 0 {
		return
	}
	if capture == board.NoPiece && kind&Quiet == 0 {
		return
	}
	*moves = append(*moves, makeMove(from, to, capture, board.ColorFigure(us, board.Pawn), board.Normal))
}

// tryEnpassant applies the single extra legality check en-passant needs
// beyond the ordinary pin mask: removing both the moving pawn and the
// captured pawn can expose the king to a rank attack that no pin ray
// generated from the pre-move occupancy would have caught.
func (g *generator) tryEnpassant(from, to board.Square, moves *[]board.Move) {
	pos := g.pos
	us, them := g.us, g.them
	captureSq := board.RankFile(from.Rank(), to.File())
	captured := board.ColorFigure(them, board.Pawn)

	if !g.destMask(from).Has(to) && !g.destMask(from).Has(captureSq) {
		// Neither landing on the ep square nor capturing the pawn
		// addresses the current check/pin state.
		if g.checkMask&(to.Bitboard()|captureSq.Bitboard()) == 0 {
			return
		}
	}

	occ := pos.Occupied() &^ from.Bitboard() &^ captureSq.Bitboard() | to.Bitboard()
	kingSq := g.kingSq
	enemy := pos.ByColor[them]
	if enemy&(pos.ByFigure[board.Rook]|pos.ByFigure[board.Queen])&board.RookAttack(kingSq, occ) != 0 {
		return
	}
	if enemy&(pos.ByFigure[board.Bishop]|pos.ByFigure[board.Queen])&board.BishopAttack(kingSq, occ) != 0 {
		return
	}

	*moves = append(*moves, makeMove(from, to, captured, board.ColorFigure(us, board.Pawn), board.Enpassant))
}
