package board

import "testing"

func TestSquareFromString(t *testing.T) {
	data := []struct {
		sq  Square
		str string
	}{
		{RankFile(3, 5), "f4"},
		{SquareA3, "a3"},
		{RankFile(0, 2), "c1"},
		{RankFile(7, 7), "h8"},
	}

	for _, d := range data {
		if d.sq.String() != d.str {
			t.Errorf("expected %v, got %v", d.str, d.sq.String())
		}
		if sq, err := SquareFromString(d.str); err != nil {
			t.Errorf("parse error: %v", err)
		} else if d.sq != sq {
			t.Errorf("expected %v, got %v", d.sq, sq)
		}
	}
}

func TestSquareFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e99", "i4", "e0"} {
		if _, err := SquareFromString(s); err == nil {
			t.Errorf("expected error parsing %q", s)
		}
	}
}

func TestRookSquare(t *testing.T) {
	data := []struct {
		kingEnd, rookStart, rookEnd Square
	}{
		{RankFile(0, 2), SquareA1, RankFile(0, 3)},
		{RankFile(7, 2), RankFile(7, 0), RankFile(7, 3)},
		{RankFile(0, 6), RankFile(0, 7), RankFile(0, 5)},
		{RankFile(7, 6), RankFile(7, 7), RankFile(7, 5)},
	}

	for _, d := range data {
		_, rookStart, rookEnd := CastlingRook(d.kingEnd)
		if rookStart != d.rookStart || rookEnd != d.rookEnd {
			t.Errorf("for king to %v, expected rook from %v to %v, got rook from %v to %v",
				d.kingEnd, d.rookStart, d.rookEnd, rookStart, rookEnd)
		}
	}
}

func TestRankFile(t *testing.T) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := RankFile(r, f)
			if sq.Rank() != r || sq.File() != f {
				t.Errorf("expected (rank, file) (%d, %d), got (%d, %d)",
					r, f, sq.Rank(), sq.File())
			}
		}
	}
}

func checkPiece(t *testing.T, pi Piece, co Color, fig Figure) {
	t.Helper()
	if pi.Color() != co || pi.Figure() != fig {
		t.Errorf("for %v expected %v %v, got %v %v", pi, co, fig, pi.Color(), pi.Figure())
	}
}

func TestPieceRoundTrip(t *testing.T) {
	checkPiece(t, NoPiece, NoColor, NoFigure)
	for co := ColorMinValue; co <= ColorMaxValue; co++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			checkPiece(t, ColorFigure(co, fig), co, fig)
		}
	}
}

func TestColorOpposite(t *testing.T) {
	if White.Opposite() != Black {
		t.Errorf("expected Black, got %v", White.Opposite())
	}
	if Black.Opposite() != White {
		t.Errorf("expected White, got %v", Black.Opposite())
	}
}

func TestBitboardPop(t *testing.T) {
	bb := RankFile(0, 0).Bitboard() | RankFile(3, 3).Bitboard() | RankFile(7, 7).Bitboard()
	var got []Square
	for bb != 0 {
		got = append(got, bb.Pop())
	}
	want := []Square{RankFile(0, 0), RankFile(3, 3), RankFile(7, 7)}
	if len(got) != len(want) {
		t.Fatalf("expected %d squares, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("at %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBitboardPopcnt(t *testing.T) {
	bb := RankBb(3)
	if bb.Popcnt() != 8 {
		t.Errorf("expected 8, got %d", bb.Popcnt())
	}
}

func TestMoveUCI(t *testing.T) {
	m := Move{
		From:   RankFile(1, 4),
		To:     RankFile(3, 4),
		Target: ColorFigure(White, Pawn),
		Type:   Normal,
	}
	if m.UCI() != "e2e4" {
		t.Errorf("expected e2e4, got %v", m.UCI())
	}

	promo := Move{
		From:   RankFile(6, 4),
		To:     RankFile(7, 4),
		Target: ColorFigure(White, Queen),
		Type:   Promotion,
	}
	if promo.UCI() != "e7e8q" {
		t.Errorf("expected e7e8q, got %v", promo.UCI())
	}
}

func TestCastleString(t *testing.T) {
	if NoCastle.String() != "-" {
		t.Errorf("expected -, got %v", NoCastle.String())
	}
	if AnyCastle.String() != "KQkq" {
		t.Errorf("expected KQkq, got %v", AnyCastle.String())
	}
}
