package position

import (
	"testing"

	"github.com/chess-engines/zurigen/internal/board"
)

func TestFromFENStartPos(t *testing.T) {
	pos, err := FromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if pos.SideToMove != board.White {
		t.Errorf("expected White to move, got %v", pos.SideToMove)
	}
	if pos.CastlingAbility() != board.AnyCastle {
		t.Errorf("expected all castling rights, got %v", pos.CastlingAbility())
	}
	if pos.EnpassantSquare() != board.SquareA1 {
		t.Errorf("expected no en passant square, got %v", pos.EnpassantSquare())
	}
	if got := pos.String(); got != FENStartPos {
		t.Errorf("round trip mismatch:\n got  %q\n want %q", got, FENStartPos)
	}
}

func TestFromFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"rnbqkb1r/pp1ppppp/5n2/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3",
	}
	for _, fen := range fens {
		pos, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		if got := pos.String(); got != fen {
			t.Errorf("round trip mismatch for %q: got %q", fen, got)
		}
		if err := pos.Verify(); err != nil {
			t.Errorf("Verify(%q): %v", fen, err)
		}
	}
}

func TestDoUndoMovePreservesFEN(t *testing.T) {
	pos, err := FromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	before := pos.String()

	move := board.Move{
		From:   board.RankFile(1, 4),
		To:     board.RankFile(3, 4),
		Target: board.ColorFigure(board.White, board.Pawn),
		Type:   board.Normal,
	}
	pos.DoMove(move)
	if pos.SideToMove != board.Black {
		t.Fatalf("expected Black to move after e2e4, got %v", pos.SideToMove)
	}
	if pos.EnpassantSquare() != board.RankFile(2, 4) {
		t.Fatalf("expected en passant square e3, got %v", pos.EnpassantSquare())
	}

	pos.UndoMove(move)
	if got := pos.String(); got != before {
		t.Fatalf("after undo expected %q, got %q", before, got)
	}
}

func TestCastlingRightsLostOnRookMove(t *testing.T) {
	pos, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	move := board.Move{
		From:   board.SquareA1,
		To:     board.RankFile(0, 1),
		Target: board.ColorFigure(board.White, board.Rook),
		Type:   board.Normal,
	}
	pos.DoMove(move)
	if pos.CastlingAbility()&board.WhiteOOO != 0 {
		t.Errorf("expected queenside castling right lost, got %v", pos.CastlingAbility())
	}
	if pos.CastlingAbility()&board.WhiteOO == 0 {
		t.Errorf("expected kingside castling right retained, got %v", pos.CastlingAbility())
	}
}

func TestIsCheckedDetectsSliderCheck(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if pos.IsChecked(board.White) {
		t.Fatalf("white should not be in check")
	}

	pos2, err := FromFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if !pos2.IsChecked(board.White) {
		t.Fatalf("white king on e1 should be in check from rook on e8")
	}
}

func TestThreeFoldRepetitionRequiresThreeOccurrences(t *testing.T) {
	pos, err := FromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	knightOut := board.Move{From: board.RankFile(0, 1), To: board.RankFile(2, 2), Target: board.ColorFigure(board.White, board.Knight), Type: board.Normal}
	knightBack := board.Move{From: board.RankFile(2, 2), To: board.RankFile(0, 1), Target: board.ColorFigure(board.White, board.Knight), Type: board.Normal}
	blackOut := board.Move{From: board.RankFile(7, 1), To: board.RankFile(5, 2), Target: board.ColorFigure(board.Black, board.Knight), Type: board.Normal}
	blackBack := board.Move{From: board.RankFile(5, 2), To: board.RankFile(7, 1), Target: board.ColorFigure(board.Black, board.Knight), Type: board.Normal}

	for i := 0; i < 2; i++ {
		pos.DoMove(knightOut)
		pos.DoMove(blackOut)
		pos.DoMove(knightBack)
		pos.DoMove(blackBack)
	}
	if !pos.IsThreeFoldRepetition() {
		t.Errorf("expected threefold repetition after shuffling knights twice back to start")
	}
}
