package uci

import (
	"bytes"
	"strings"
	"testing"
)

func TestUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)

	if err := u.Execute("uci"); err != nil {
		t.Fatalf("Execute(uci): %v", err)
	}
	if !strings.Contains(out.String(), "uciok") {
		t.Errorf("expected uciok in output, got %q", out.String())
	}

	out.Reset()
	if err := u.Execute("isready"); err != nil {
		t.Fatalf("Execute(isready): %v", err)
	}
	if strings.TrimSpace(out.String()) != "readyok" {
		t.Errorf("expected readyok, got %q", out.String())
	}
}

func TestQuitReturnsErrQuit(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)
	if err := u.Execute("quit"); err != ErrQuit {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestPositionAndMoveAndUndo(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)

	if err := u.Execute("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatalf("Execute(position): %v", err)
	}
	if len(u.moveLog) != 2 {
		t.Fatalf("expected 2 logged moves, got %d", len(u.moveLog))
	}

	if err := u.Execute("move g1f3"); err != nil {
		t.Fatalf("Execute(move): %v", err)
	}
	if len(u.moveLog) != 3 {
		t.Fatalf("expected 3 logged moves, got %d", len(u.moveLog))
	}

	if err := u.Execute("undo"); err != nil {
		t.Fatalf("Execute(undo): %v", err)
	}
	if len(u.moveLog) != 2 {
		t.Fatalf("expected 2 logged moves after undo, got %d", len(u.moveLog))
	}
}

func TestGoAndStopSettlesBestMove(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)

	if err := u.Execute("go depth 1"); err != nil {
		t.Fatalf("Execute(go): %v", err)
	}
	if err := u.Execute("stop"); err != nil {
		t.Fatalf("Execute(stop): %v", err)
	}
	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line after stop, got %q", out.String())
	}
}

func TestSetOptionHash(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)
	if err := u.Execute("setoption name Hash value 32"); err != nil {
		t.Fatalf("Execute(setoption): %v", err)
	}
}

func TestPerftCommand(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, 16)
	if err := u.Execute("perft 2"); err != nil {
		t.Fatalf("Execute(perft): %v", err)
	}
	if !strings.Contains(out.String(), "nodes 400") {
		t.Errorf("expected perft depth 2 startpos node count 400, got %q", out.String())
	}
}
