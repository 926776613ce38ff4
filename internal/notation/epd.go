package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/position"
)

// EPD is an Extended Position Description record: a FEN-derived board
// position plus a set of named operations (best move, id, comment, ...).
//
// The upstream grammar is normally handled by a goyacc-generated parser
// fed by a hand-written lexer; that lexer isn't part of what was carried
// forward here, so this package instead tokenizes the (much simpler than
// it looks) EPD operation tail itself: operator, whitespace-separated
// arguments, terminating semicolon, repeated until the line ends.
type EPD struct {
	Position *position.Position
	Id       string
	BestMove []board.Move
	AvoidMove []board.Move
	Comment  map[string]string
}

// ParseFEN parses a bare FEN string (no EPD operations) and returns its
// position wrapped in an EPD record.
func ParseFEN(line string) (*EPD, error) {
	pos, err := position.FromFEN(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	return &EPD{Position: pos, Comment: map[string]string{}}, nil
}

// ParseEPD parses a full EPD record: the four FEN fields followed by
// semicolon-terminated operations.
func ParseEPD(line string) (*EPD, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("notation: EPD record needs at least 4 fields, got %d", len(fields))
	}
	fen := strings.Join(fields[:4], " ")
	pos, err := position.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	epd := &EPD{Position: pos, Comment: map[string]string{}}

	rest := strings.TrimSpace(strings.Join(fields[4:], " "))
	for _, op := range splitOperations(rest) {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		if err := epd.applyOperation(op); err != nil {
			return nil, err
		}
	}
	return epd, nil
}

// splitOperations splits s on semicolons that aren't inside a quoted
// string, since a comment operation's argument may itself contain ';'.
func splitOperations(s string) []string {
	var ops []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ';' && !inQuote:
			ops = append(ops, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		ops = append(ops, cur.String())
	}
	return ops
}

func (epd *EPD) applyOperation(op string) error {
	fields := strings.Fields(op)
	if len(fields) == 0 {
		return nil
	}
	operator := fields[0]
	args := strings.TrimSpace(op[len(operator):])

	switch {
	case operator == "id":
		epd.Id = trimQuotes(args)
	case operator == "bm":
		moves, err := epd.parseMoves(args)
		if err != nil {
			return fmt.Errorf("bm: %v", err)
		}
		epd.BestMove = moves
	case operator == "am":
		moves, err := epd.parseMoves(args)
		if err != nil {
			return fmt.Errorf("am: %v", err)
		}
		epd.AvoidMove = moves
	case operator == "fmvn":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return fmt.Errorf("fmvn: %v", err)
		}
		epd.Position.FullMoveNumber = n
	case operator == "hmvc":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return fmt.Errorf("hmvc: %v", err)
		}
		epd.Position.SetHalfMoveClock(n)
	case strings.HasPrefix(operator, "c") && len(operator) == 2 && operator[1] >= '0' && operator[1] <= '9':
		epd.Comment[operator] = trimQuotes(strings.TrimSpace(args))
	default:
		// Unknown operators are preserved as opaque comments rather
		// than rejected, matching the teacher's "ignore what isn't in
		// the handler map" behavior.
		epd.Comment[operator] = trimQuotes(strings.TrimSpace(args))
	}
	return nil
}

func (epd *EPD) parseMoves(args string) ([]board.Move, error) {
	var moves []board.Move
	for _, tok := range strings.Fields(args) {
		m, err := SANToMove(epd.Position, tok)
		if err != nil {
			return nil, fmt.Errorf("invalid move %q: %v", tok, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// String formats the record back to EPD text.
func (epd *EPD) String() string {
	var s strings.Builder
	s.WriteString(epd.Position.String())
	for _, m := range epd.BestMove {
		s.WriteString(" bm " + MoveToSAN(epd.Position, m) + ";")
	}
	for _, m := range epd.AvoidMove {
		s.WriteString(" am " + MoveToSAN(epd.Position, m) + ";")
	}
	if epd.Id != "" {
		s.WriteString(" id \"" + epd.Id + "\";")
	}
	for k, v := range epd.Comment {
		s.WriteString(" " + k + " \"" + v + "\";")
	}
	return s.String()
}
