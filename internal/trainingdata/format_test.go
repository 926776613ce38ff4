package trainingdata

import (
	"bytes"
	"io"
	"testing"

	"github.com/chess-engines/zurigen/internal/board"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WritePosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 25); err != nil {
		t.Fatalf("WritePosition: %v", err)
	}
	m := board.Move{From: board.RankFile(1, 4), To: board.RankFile(3, 4), Type: board.Normal, Target: board.ColorFigure(board.White, board.Pawn)}
	if err := w.WriteMove(m); err != nil {
		t.Fatalf("WriteMove: %v", err)
	}
	if err := w.WriteEndGame(); err != nil {
		t.Fatalf("WriteEndGame: %v", err)
	}

	r := NewReader(&buf)

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next (position): %v", err)
	}
	if rec.Kind != Position || rec.Eval != 25 {
		t.Errorf("expected Position record eval 25, got %+v", rec)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatalf("Next (move): %v", err)
	}
	if rec.Kind != MoveRecord || rec.Move != m {
		t.Errorf("expected move record %+v, got %+v", m, rec.Move)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatalf("Next (end game): %v", err)
	}
	if rec.Kind != EndGame {
		t.Errorf("expected EndGame record, got %+v", rec)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF at stream end, got %v", err)
	}
}

func TestWritePositionRejectsOversizedFEN(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	huge := make([]byte, 1<<16+1)
	for i := range huge {
		huge[i] = 'x'
	}
	if err := w.WritePosition(string(huge), 0); err == nil {
		t.Error("expected an error for an oversized FEN")
	}
}
