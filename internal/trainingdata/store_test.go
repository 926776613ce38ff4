package trainingdata

import "testing"

func TestStorePutGet(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if err := store.Put(12345, fen, -37); err != nil {
		t.Fatalf("Put: %v", err)
	}

	gotFEN, gotEval, ok, err := store.Get(12345)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected record to be found")
	}
	if gotFEN != fen || gotEval != -37 {
		t.Errorf("got (%q, %d), want (%q, %d)", gotFEN, gotEval, fen, -37)
	}

	if _, _, ok, err := store.Get(999); err != nil || ok {
		t.Errorf("expected missing key to return ok=false, got ok=%v err=%v", ok, err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 record, got %d", n)
	}
}
