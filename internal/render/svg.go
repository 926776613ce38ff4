package render

import (
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

// squareSize is the side length, in SVG user units, of one board square.
const squareSize = 45

// SVG writes an 8x8 board diagram of pos to w, rank 8 at the top, files
// a-h left to right, matching the conventional diagram orientation.
func SVG(w io.Writer, pos *position.Position) {
	canvas := svgo.New(w)
	dim := squareSize * 8
	canvas.Start(dim, dim)
	defer canvas.End()

	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			x := file * squareSize
			y := (7 - rank) * squareSize

			fill := "#eeeed2"
			if (rank+file)%2 == 0 {
				fill = "#769656"
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)

			sq := board.RankFile(rank, file)
			if pi := pos.Get(sq); pi != board.NoPiece {
				textColor := "#000000"
				if pi.Color() == board.White {
					textColor = "#ffffff"
				}
				canvas.Text(x+squareSize/2, y+squareSize*2/3, pi.String(),
					fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", squareSize*2/3, textColor))
			}
		}
	}
}
