// Package notation converts between internal/board.Move values and the
// two textual move notations used outside the engine: UCI's long
// algebraic form ("e2e4", "e7e8q") and standard algebraic notation
// ("Nf3", "exd5", "O-O", "e8=Q+"), plus FEN/EPD position records.
package notation

import (
	"fmt"
	"strings"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/movegen"
	"github.com/chess-engines/zurigen/internal/position"
)

var (
	errWrongLength       = fmt.Errorf("notation: string too short")
	errUnknownFigure     = fmt.Errorf("notation: unknown figure letter")
	errBadDisambiguation = fmt.Errorf("notation: bad disambiguation")
	errBadPromotion      = fmt.Errorf("notation: only pawns reaching the last rank may promote")
	errNoSuchMove        = fmt.Errorf("notation: no legal move matches")
)

// legalMoves returns pos's full legal move list, used by both UCIToMove
// and SANToMove to resolve a textual move against the actual position
// rather than trust the string blindly.
func legalMoves(pos *position.Position) []board.Move {
	moves := make([]board.Move, 0, 48)
	movegen.Generate(pos, movegen.All, &moves)
	return moves
}

// UCIToMove parses s ("e2e4", "e7e8q") against pos's legal moves.
func UCIToMove(pos *position.Position, s string) (board.Move, error) {
	if len(s) < 4 {
		return board.NullMove, errWrongLength
	}
	from, err := board.SquareFromString(s[0:2])
	if err != nil {
		return board.NullMove, err
	}
	to, err := board.SquareFromString(s[2:4])
	if err != nil {
		return board.NullMove, err
	}
	promo := board.NoFigure
	if len(s) >= 5 {
		if promo = board.SymbolToFigure(rune(s[4])); promo == board.NoFigure {
			return board.NullMove, errUnknownFigure
		}
	}

	for _, m := range legalMoves(pos) {
		if m.From != from || m.To != to {
			continue
		}
		if promo != board.NoFigure && (m.Type != board.Promotion || m.Promotion().Figure() != promo) {
			continue
		}
		if promo == board.NoFigure && m.Type == board.Promotion {
			continue
		}
		return m, nil
	}
	return board.NullMove, errNoSuchMove
}

// MoveToUCI formats m in UCI's long algebraic form. The UCI protocol
// specification calls this "long algebraic notation", which is not
// quite accurate, but the name has stuck industry-wide.
func MoveToUCI(m board.Move) string { return m.UCI() }

// SANToMove parses s in standard algebraic notation against pos's legal
// moves. Check/mate suffixes ("+", "#") and the capture marker "x" are
// accepted but not required to match; "e.p." is accepted and ignored.
func SANToMove(pos *position.Position, s string) (board.Move, error) {
	us := pos.Us()
	b, e := 0, len(s)
	if b == e {
		return board.NullMove, errWrongLength
	}
	for e > b && (s[e-1] == '#' || s[e-1] == '+') {
		e--
	}

	body := s[b:e]
	if strings.EqualFold(body, "o-o") || strings.EqualFold(body, "0-0") {
		return findCastle(pos, us, true)
	}
	if strings.EqualFold(body, "o-o-o") || strings.EqualFold(body, "0-0-0") {
		return findCastle(pos, us, false)
	}

	fig := board.Pawn
	if ('a' <= s[b] && s[b] <= 'h') || s[b] == 'x' {
		// Pawn move or capture: no leading figure letter.
	} else {
		fig = board.SymbolToFigure(rune(s[b]))
		if fig == board.NoFigure {
			return board.NullMove, errUnknownFigure
		}
		b++
	}

	if e-4 >= b && s[e-4:e] == "e.p." {
		e -= 4
	}

	promo := board.NoFigure
	if e-1 < b {
		return board.NullMove, errWrongLength
	}
	if !('1' <= s[e-1] && s[e-1] <= '8') {
		if fig != board.Pawn {
			return board.NullMove, errBadPromotion
		}
		promo = board.SymbolToFigure(rune(s[e-1]))
		if promo == board.NoFigure {
			return board.NullMove, errUnknownFigure
		}
		e--
		if e-1 >= b && s[e-1] == '=' {
			e--
		}
	}

	if e-2 < b {
		return board.NullMove, errWrongLength
	}
	to, err := board.SquareFromString(s[e-2 : e])
	if err != nil {
		return board.NullMove, err
	}
	e -= 2

	if e-1 >= b && (s[e-1] == 'x' || s[e-1] == '-') {
		e--
	}

	if e-b > 2 {
		return board.NullMove, errBadDisambiguation
	}
	disambigRank, disambigFile := -1, -1
	for ; b < e; b++ {
		switch {
		case 'a' <= s[b] && s[b] <= 'h':
			disambigFile = int(s[b] - 'a')
		case '1' <= s[b] && s[b] <= '8':
			disambigRank = int(s[b] - '1')
		default:
			return board.NullMove, errBadDisambiguation
		}
	}

	for _, m := range legalMoves(pos) {
		if m.Piece().Figure() != fig || m.To != to {
			continue
		}
		if promo != board.NoFigure {
			if m.Type != board.Promotion || m.Promotion().Figure() != promo {
				continue
			}
		} else if m.Type == board.Promotion {
			continue
		}
		if disambigRank != -1 && m.From.Rank() != disambigRank {
			continue
		}
		if disambigFile != -1 && m.From.File() != disambigFile {
			continue
		}
		return m, nil
	}
	return board.NullMove, errNoSuchMove
}

func findCastle(pos *position.Position, us board.Color, kingSide bool) (board.Move, error) {
	home := us.KingHomeRank()
	kingFrom := board.RankFile(home, 4)
	kingTo := board.RankFile(home, 6)
	if !kingSide {
		kingTo = board.RankFile(home, 2)
	}
	for _, m := range legalMoves(pos) {
		if m.Type == board.Castling && m.From == kingFrom && m.To == kingTo {
			return m, nil
		}
	}
	return board.NullMove, errNoSuchMove
}

// MoveToSAN formats m, legal in pos (not yet applied), in standard
// algebraic notation, disambiguating against pos's other legal moves
// and appending "+"/"#" by replaying m against pos.
func MoveToSAN(pos *position.Position, m board.Move) string {
	if m.Type == board.Castling {
		s := "O-O"
		if m.To.File() == 2 {
			s = "O-O-O"
		}
		return s + checkSuffix(pos, m)
	}

	fig := m.Piece().Figure()
	var s string
	if fig != board.Pawn {
		s = board.FigureToSymbol(fig)
		s += disambiguation(pos, m)
	} else if m.Capture != board.NoPiece || m.Type == board.Enpassant {
		s = string([]byte{"abcdefgh"[m.From.File()]})
	}
	if m.Capture != board.NoPiece || m.Type == board.Enpassant {
		s += "x"
	}
	s += m.To.String()
	if m.Type == board.Promotion {
		s += "=" + board.FigureToSymbol(m.Promotion().Figure())
	}
	return s + checkSuffix(pos, m)
}

// disambiguation returns the minimal file/rank (or both) needed to tell
// m's origin square apart from any other legal move by the same figure
// to the same destination.
func disambiguation(pos *position.Position, m board.Move) string {
	fig := m.Piece().Figure()
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range legalMoves(pos) {
		if other == m || other.To != m.To || other.Piece().Figure() != fig {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string([]byte{"abcdefgh"[m.From.File()]})
	case !sameRank:
		return string([]byte{"12345678"[m.From.Rank()]})
	default:
		return m.From.String()
	}
}

func checkSuffix(pos *position.Position, m board.Move) string {
	pos.DoMove(m)
	defer pos.UndoMove(m)

	if !pos.IsChecked(pos.Us()) {
		return ""
	}
	if len(legalMoves(pos)) == 0 {
		return "#"
	}
	return "+"
}
