package search

import (
	"testing"

	"github.com/chess-engines/zurigen/internal/eval"
	"github.com/chess-engines/zurigen/internal/picker"
	"github.com/chess-engines/zurigen/internal/position"
	"github.com/chess-engines/zurigen/internal/timecontrol"
	"github.com/chess-engines/zurigen/internal/tt"
)

func newEngine(t *testing.T, fen string) (*Engine, *position.Position) {
	t.Helper()
	pos, err := position.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	e := New(pos, tt.New(1), eval.NewDefault(), picker.NewHistory())
	return e, pos
}

func fixedDepth(depth int) *timecontrol.Control {
	return timecontrol.New(timecontrol.Params{Depth: depth}, true)
}

var mateIn1 = []struct {
	fen, bestMove string
}{
	// Back-rank mate: Ra8#.
	{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", "a1a8"},
	// Back-rank mate the other way round: Ra1#.
	{"r3k3/8/8/8/8/8/6PP/7K b - - 0 1", "a8a1"},
}

func TestSearchMateIn1(t *testing.T) {
	for i, d := range mateIn1 {
		e, _ := newEngine(t, d.fen)
		result := e.Search(fixedDepth(3))
		if result.BestMove.String() != d.bestMove {
			t.Errorf("#%d: expected best move %s, got %s (score %d)", i, d.bestMove, result.BestMove, result.Score)
		}
		if !isMateScore(result.Score) || result.Score <= 0 {
			t.Errorf("#%d: expected a winning mate score, got %d", i, result.Score)
		}
	}
}

func TestSearchStalemateIsDraw(t *testing.T) {
	e, _ := newEngine(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	result := e.Search(fixedDepth(2))
	if result.Score != 0 {
		t.Errorf("expected a drawn stalemate to score 0, got %d", result.Score)
	}
}

func TestSearchFindsFreeQueen(t *testing.T) {
	e, _ := newEngine(t, "4k3/8/8/3q4/8/8/3Q4/4K3 w - - 0 1")
	result := e.Search(fixedDepth(4))
	if result.BestMove.String() != "d2d5" {
		t.Errorf("expected to capture the hanging queen with d2d5, got %s", result.BestMove)
	}
}

func TestSearchStartPosDoesNotCrash(t *testing.T) {
	e, _ := newEngine(t, position.FENStartPos)
	result := e.Search(fixedDepth(4))
	if result.BestMove.String() == "" {
		t.Errorf("expected a best move from the starting position")
	}
}

func TestSearchReusesTableAcrossCalls(t *testing.T) {
	e, pos := newEngine(t, position.FENStartPos)
	first := e.Search(fixedDepth(3))
	pos.DoMove(first.BestMove)
	second := e.Search(fixedDepth(3))
	if second.BestMove.String() == "" {
		t.Errorf("expected a best move after replaying the engine's own first move")
	}
}
