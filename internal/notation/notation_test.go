package notation

import (
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

func TestUCIToMoveRoundTrip(t *testing.T) {
	pos := mustPos(t, position.FENStartPos)
	m, err := UCIToMove(pos, "e2e4")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	if got := MoveToUCI(m); got != "e2e4" {
		t.Errorf("expected e2e4, got %s", got)
	}
}

func TestUCIToMovePromotion(t *testing.T) {
	pos := mustPos(t, "8/P7/8/8/8/8/8/k6K w - - 0 1")
	m, err := UCIToMove(pos, "a7a8q")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	if got := MoveToUCI(m); got != "a7a8q" {
		t.Errorf("expected a7a8q, got %s", got)
	}
}

func TestSANToMoveBasic(t *testing.T) {
	pos := mustPos(t, position.FENStartPos)
	cases := []string{"e4", "Nf3", "Nc3"}
	for _, s := range cases {
		if _, err := SANToMove(pos, s); err != nil {
			t.Errorf("SANToMove(%q): %v", s, err)
		}
	}
}

func TestSANToMoveCastle(t *testing.T) {
	pos := mustPos(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := SANToMove(pos, "O-O")
	if err != nil {
		t.Fatalf("SANToMove(O-O): %v", err)
	}
	if MoveToUCI(m) != "e1g1" {
		t.Errorf("expected e1g1, got %s", MoveToUCI(m))
	}
}

func TestMoveToSANDisambiguates(t *testing.T) {
	// Knights on b1 and f1 both reach d2.
	pos := mustPos(t, "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1")
	m, err := UCIToMove(pos, "b1d2")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	san := MoveToSAN(pos, m)
	if san != "Nbd2" {
		t.Errorf("expected disambiguated Nbd2, got %s", san)
	}
}

func TestMoveToSANCheckSuffix(t *testing.T) {
	pos := mustPos(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	m, err := UCIToMove(pos, "a1a8")
	if err != nil {
		t.Fatalf("UCIToMove: %v", err)
	}
	san := MoveToSAN(pos, m)
	if san != "Ra8#" {
		t.Errorf("expected Ra8#, got %s", san)
	}
}
