package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chess-engines/zurigen/internal/position"
)

func mustPos(t *testing.T, fen string) *position.Position {
	t.Helper()
	pos, err := position.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return pos
}

func TestANSIContainsEightRanks(t *testing.T) {
	pos := mustPos(t, position.FENStartPos)
	out := ANSI(pos)
	for _, rank := range []string{"1 ", "2 ", "3 ", "4 ", "5 ", "6 ", "7 ", "8 "} {
		if !strings.Contains(out, rank) {
			t.Errorf("expected rank label %q in output:\n%s", rank, out)
		}
	}
}

func TestWriteANSI(t *testing.T) {
	var buf bytes.Buffer
	pos := mustPos(t, position.FENStartPos)
	if err := WriteANSI(&buf, pos); err != nil {
		t.Fatalf("WriteANSI: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output")
	}
}

func TestSVGProducesWellFormedDocument(t *testing.T) {
	var buf bytes.Buffer
	pos := mustPos(t, position.FENStartPos)
	SVG(&buf, pos)
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Errorf("expected an <svg> root element, got:\n%s", out)
	}
	if !strings.Contains(out, "</svg>") {
		t.Errorf("expected a closing </svg>, got:\n%s", out)
	}
}
