package position

import (
	"fmt"
	"strings"

	"github.com/chess-engines/zurigen/internal/board"
)

// pieceToSymbol is indexed by board.Piece, which packs figure<<2 | color.
var pieceToSymbol = [board.PieceArraySize]string{
	0: ".", 5: "P", 6: "p", 9: "N", 10: "n", 13: "B", 14: "b",
	17: "R", 18: "r", 21: "Q", 22: "q", 25: "K", 26: "k",
}

var symbolToPiece = map[rune]board.Piece{
	'p': board.ColorFigure(board.Black, board.Pawn),
	'n': board.ColorFigure(board.Black, board.Knight),
	'b': board.ColorFigure(board.Black, board.Bishop),
	'r': board.ColorFigure(board.Black, board.Rook),
	'q': board.ColorFigure(board.Black, board.Queen),
	'k': board.ColorFigure(board.Black, board.King),

	'P': board.ColorFigure(board.White, board.Pawn),
	'N': board.ColorFigure(board.White, board.Knight),
	'B': board.ColorFigure(board.White, board.Bishop),
	'R': board.ColorFigure(board.White, board.Rook),
	'Q': board.ColorFigure(board.White, board.Queen),
	'K': board.ColorFigure(board.White, board.King),
}

var symbolToColor = map[string]board.Color{"w": board.White, "b": board.Black}
var colorToSymbol = [board.ColorArraySize]string{"", "w", "b"}

type castleInfo struct {
	Castle board.Castle
	Piece  [2]board.Piece
	Square [2]board.Square
}

var symbolToCastleInfo = map[rune]castleInfo{
	'K': {
		Castle: board.WhiteOO,
		Piece:  [2]board.Piece{board.ColorFigure(board.White, board.King), board.ColorFigure(board.White, board.Rook)},
		Square: [2]board.Square{board.RankFile(0, 4), board.RankFile(0, 7)},
	},
	'Q': {
		Castle: board.WhiteOOO,
		Piece:  [2]board.Piece{board.ColorFigure(board.White, board.King), board.ColorFigure(board.White, board.Rook)},
		Square: [2]board.Square{board.RankFile(0, 4), board.SquareA1},
	},
	'k': {
		Castle: board.BlackOO,
		Piece:  [2]board.Piece{board.ColorFigure(board.Black, board.King), board.ColorFigure(board.Black, board.Rook)},
		Square: [2]board.Square{board.RankFile(7, 4), board.RankFile(7, 7)},
	},
	'q': {
		Castle: board.BlackOOO,
		Piece:  [2]board.Piece{board.ColorFigure(board.Black, board.King), board.ColorFigure(board.Black, board.Rook)},
		Square: [2]board.Square{board.RankFile(7, 4), board.RankFile(7, 0)},
	},
}

func parsePiecePlacement(str string, pos *Position) error {
	ranks := strings.Split(str, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: expected 8 ranks, got %d", len(ranks))
	}
	for r := range ranks {
		f := 0
		for _, p := range ranks[r] {
			pi := symbolToPiece[p]
			if pi == board.NoPiece {
				if '1' <= p && p <= '8' {
					f += int(p) - int('0') - 1
				} else {
					return fmt.Errorf("position: expected rank or number, got %q", p)
				}
			}
			if f >= 8 {
				return fmt.Errorf("position: rank %d too long", 8-r)
			}
			pos.Put(board.RankFile(7-r, f), pi)
			f++
		}
		if f < 8 {
			return fmt.Errorf("position: rank %d too short", 8-r)
		}
	}
	return nil
}

func formatPiecePlacement(pos *Position) string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		space := 0
		for f := 0; f < 8; f++ {
			sq := board.RankFile(r, f)
			pi := pos.Get(sq)
			if pi == board.NoPiece {
				space++
				continue
			}
			if space != 0 {
				b.WriteByte(byte('0' + space))
				space = 0
			}
			b.WriteString(pieceToSymbol[pi])
		}
		if space != 0 {
			b.WriteByte(byte('0' + space))
		}
		if r != 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func parseEnpassantSquare(str string, pos *Position) error {
	if str == "-" {
		pos.SetEnpassantSquare(board.SquareA1)
		return nil
	}
	sq, err := board.SquareFromString(str)
	if err != nil {
		return err
	}
	pos.SetEnpassantSquare(sq)
	return nil
}

func formatEnpassantSquare(pos *Position) string {
	if pos.EnpassantSquare() != board.SquareA1 {
		return pos.EnpassantSquare().String()
	}
	return "-"
}

func parseSideToMove(str string, pos *Position) error {
	if col, ok := symbolToColor[str]; ok {
		pos.SetSideToMove(col)
		return nil
	}
	return fmt.Errorf("position: invalid side to move %q", str)
}

func formatSideToMove(pos *Position) string {
	return colorToSymbol[pos.SideToMove]
}

func parseCastlingAbility(str string, pos *Position) error {
	if str == "-" {
		pos.SetCastlingAbility(board.NoCastle)
		return nil
	}

	ability := board.NoCastle
	for _, p := range str {
		info, ok := symbolToCastleInfo[p]
		if !ok {
			return fmt.Errorf("position: invalid castling ability %q", str)
		}
		ability |= info.Castle
		for i := 0; i < 2; i++ {
			if info.Piece[i] != pos.Get(info.Square[i]) {
				return fmt.Errorf("position: expected %v at %v for castling right %q, got %v",
					info.Piece[i], info.Square[i], p, pos.Get(info.Square[i]))
			}
		}
	}
	pos.SetCastlingAbility(ability)
	return nil
}
