package notation

import (
	"testing"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

func TestParseFEN(t *testing.T) {
	epd, err := ParseFEN(position.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if epd.Position.Us() != board.White {
		t.Errorf("expected white to move, got %v", epd.Position.Us())
	}
}

// epdStartPos is the EPD form of FENStartPos: placement/side/castling/
// en-passant only, without the halfmove and fullmove counters (those
// are supplied by the hmvc/fmvn operations instead in true EPD records).
const epdStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

func TestParseEPDBestMove(t *testing.T) {
	line := `6k1/5ppp/8/8/8/8/8/R3K3 w - - bm Ra8; id "back rank mate";`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if epd.Id != "back rank mate" {
		t.Errorf("expected id %q, got %q", "back rank mate", epd.Id)
	}
	if len(epd.BestMove) != 1 {
		t.Fatalf("expected exactly one best move, got %d", len(epd.BestMove))
	}
	if MoveToUCI(epd.BestMove[0]) != "a1a8" {
		t.Errorf("expected a1a8, got %s", MoveToUCI(epd.BestMove[0]))
	}
}

func TestParseEPDComment(t *testing.T) {
	line := epdStartPos + ` c0 "opening position";`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if epd.Comment["c0"] != "opening position" {
		t.Errorf("expected comment %q, got %q", "opening position", epd.Comment["c0"])
	}
}

func TestParseEPDHalfMoveClockAndFullMoveNumber(t *testing.T) {
	line := epdStartPos + ` hmvc 3; fmvn 10;`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatalf("ParseEPD: %v", err)
	}
	if epd.Position.HalfMoveClock() != 3 {
		t.Errorf("expected halfmove clock 3, got %d", epd.Position.HalfMoveClock())
	}
	if epd.Position.FullMoveNumber != 10 {
		t.Errorf("expected fullmove number 10, got %d", epd.Position.FullMoveNumber)
	}
}
