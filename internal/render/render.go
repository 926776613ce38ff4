// Package render draws a position for humans: an ANSI-colored terminal
// board for the UCI front-end's debug/eval commands, and an SVG board
// diagram for offline inspection of interesting positions (mate-in-N
// puzzles, training-data samples).
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgCyan, color.FgBlack)
)

// ANSI returns pos's board as an 8x8 grid of ANSI-colored squares,
// rank 8 first, matching how a terminal board is conventionally read
// top to bottom.
func ANSI(pos *position.Position) string {
	var s strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&s, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.RankFile(rank, file)
			pi := pos.Get(sq)
			text := " " + pieceGlyph(pi) + " "

			sqColor := lightSquare
			if (rank+file)%2 == 0 {
				sqColor = darkSquare
			}
			s.WriteString(sqColor.Sprint(text))
		}
		s.WriteString("\n")
	}
	s.WriteString("   a  b  c  d  e  f  g  h\n")
	return s.String()
}

func pieceGlyph(pi board.Piece) string {
	if pi == board.NoPiece {
		return " "
	}
	return pi.String()
}

// WriteANSI writes ANSI(pos) to w.
func WriteANSI(w io.Writer, pos *position.Position) error {
	_, err := io.WriteString(w, ANSI(pos))
	return err
}
