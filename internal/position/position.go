// Package position implements the chess board state: piece placement,
// castling/en-passant/halfmove bookkeeping, zobrist hashing, FEN parsing
// and the do/undo move-application pair that internal/movegen and
// internal/search build on.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chess-engines/zurigen/internal/board"
)

// FENStartPos is the FEN for the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// lostCastleRights[sq] is the set of castling rights permanently lost the
// moment any piece leaves or arrives at sq (rook moved/captured, or king
// moved).
var lostCastleRights [board.SquareArraySize]board.Castle

func init() {
	lostCastleRights[board.SquareA1] = board.WhiteOOO
	lostCastleRights[board.RankFile(0, 4)] = board.WhiteOOO | board.WhiteOO
	lostCastleRights[board.RankFile(0, 7)] = board.WhiteOO
	lostCastleRights[board.RankFile(7, 0)] = board.BlackOOO
	lostCastleRights[board.RankFile(7, 4)] = board.BlackOOO | board.BlackOO
	lostCastleRights[board.RankFile(7, 7)] = board.BlackOO
}

// state is the per-ply undo record: everything DoMove can change besides
// the piece bitboards themselves, which are restored directly from the
// Move's own From/To/Capture/Target fields.
type state struct {
	CastlingAbility board.Castle
	EnpassantSquare board.Square // board.SquareA1 means "none"
	IrreversiblePly int
	HalfMoveClock   int
	Zobrist         uint64
}

// Position is the full chess board state.
type Position struct {
	ByFigure   [board.FigureArraySize]board.Bitboard
	ByColor    [board.ColorArraySize]board.Bitboard
	SideToMove board.Color

	FullMoveNumber int
	Ply            int

	states []state
	curr   *state
}

// NewPosition returns an empty position with no pieces placed. Callers
// normally want FromFEN instead.
func NewPosition() *Position {
	pos := &Position{
		FullMoveNumber: 1,
		states:         make([]state, 1),
	}
	pos.states[0].EnpassantSquare = board.SquareA1
	pos.curr = &pos.states[0]
	return pos
}

// FromFEN parses fen (Forsyth-Edwards Notation) and returns the position
// it describes.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("position: fen has too few fields: %q", fen)
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	pos := NewPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, err
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, err
	}
	if err := parseCastlingAbility(fields[2], pos); err != nil {
		return nil, err
	}
	if err := parseEnpassantSquare(fields[3], pos); err != nil {
		return nil, err
	}
	halfMove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("position: bad halfmove clock: %w", err)
	}
	pos.curr.HalfMoveClock = halfMove
	if pos.FullMoveNumber, err = strconv.Atoi(fields[5]); err != nil {
		return nil, fmt.Errorf("position: bad fullmove number: %w", err)
	}
	return pos, nil
}

// String renders the position in FEN.
func (pos *Position) String() string {
	var b strings.Builder
	b.WriteString(formatPiecePlacement(pos))
	b.WriteByte(' ')
	b.WriteString(formatSideToMove(pos))
	b.WriteByte(' ')
	b.WriteString(pos.curr.CastlingAbility.String())
	b.WriteByte(' ')
	b.WriteString(formatEnpassantSquare(pos))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.curr.HalfMoveClock))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.FullMoveNumber))
	return b.String()
}

func (pos *Position) prev() *state { return &pos.states[pos.Ply-1] }

func (pos *Position) popState() {
	pos.states = pos.states[:pos.Ply]
	pos.Ply--
	pos.curr = &pos.states[pos.Ply]
}

func (pos *Position) pushState() {
	pos.states = append(pos.states, pos.states[pos.Ply])
	pos.Ply++
	pos.curr = &pos.states[pos.Ply]
}

// HalfMoveClock returns the number of halfmoves since the last capture or
// pawn advance, used for the fifty-move rule.
func (pos *Position) HalfMoveClock() int { return pos.curr.HalfMoveClock }

// SetHalfMoveClock overrides the halfmove clock, used when loading a FEN/
// EPD record that specifies one explicitly.
func (pos *Position) SetHalfMoveClock(n int) { pos.curr.HalfMoveClock = n }

// EnpassantSquare returns the current en-passant target square, or
// board.SquareA1 if none is set.
func (pos *Position) EnpassantSquare() board.Square { return pos.curr.EnpassantSquare }

// IsEnpassantSquare reports whether sq is the current en-passant target.
func (pos *Position) IsEnpassantSquare(sq board.Square) bool {
	return sq != board.SquareA1 && sq == pos.curr.EnpassantSquare
}

// CastlingAbility returns the current castling-rights mask.
func (pos *Position) CastlingAbility() board.Castle { return pos.curr.CastlingAbility }

// Zobrist returns the Zobrist hash of the current position.
func (pos *Position) Zobrist() uint64 { return pos.curr.Zobrist }

// Us returns the side to move.
func (pos *Position) Us() board.Color { return pos.SideToMove }

// Them returns the side not to move.
func (pos *Position) Them() board.Color { return pos.SideToMove.Opposite() }

// NumNonPawns returns the count of col's minor and major pieces.
func (pos *Position) NumNonPawns(col board.Color) int {
	return (pos.ByColor[col] &^ pos.ByFigure[board.Pawn] &^ pos.ByFigure[board.King]).Popcnt()
}

// HasNonPawns reports whether col has any minor or major piece left.
func (pos *Position) HasNonPawns(col board.Color) bool {
	return pos.ByColor[col]&^pos.ByFigure[board.Pawn]&^pos.ByFigure[board.King] != 0
}

// Verify checks internal consistency; used by tests and debug commands,
// never on the hot path.
func (pos *Position) Verify() error {
	if bb := pos.ByColor[board.White] & pos.ByColor[board.Black]; bb != 0 {
		return fmt.Errorf("position: square %v claimed by both colors", bb.AsSquare())
	}
	for col := board.ColorMinValue; col <= board.ColorMaxValue; col++ {
		bb := pos.ByPiece(col, board.King)
		sq := bb.Pop()
		if bb != 0 {
			return fmt.Errorf("position: more than one %v king", col)
		}
		_ = sq
	}
	for col := board.ColorMinValue; col <= board.ColorMaxValue; col++ {
		for bb := pos.ByColor[col]; bb != 0; {
			sq := bb.Pop()
			if pos.Get(sq).Color() != col {
				return fmt.Errorf("position: piece at %v has wrong color", sq)
			}
		}
	}
	return nil
}

// SetCastlingAbility replaces the castling-rights mask, maintaining the
// Zobrist key incrementally.
func (pos *Position) SetCastlingAbility(castle board.Castle) {
	if pos.curr.CastlingAbility == castle {
		return
	}
	pos.curr.Zobrist ^= board.ZobristCastle[pos.curr.CastlingAbility]
	pos.curr.CastlingAbility = castle
	pos.curr.Zobrist ^= board.ZobristCastle[pos.curr.CastlingAbility]
}

// SetSideToMove replaces the side to move, maintaining the Zobrist key.
func (pos *Position) SetSideToMove(col board.Color) {
	pos.curr.Zobrist ^= board.ZobristColor[pos.SideToMove]
	pos.SideToMove = col
	pos.curr.Zobrist ^= board.ZobristColor[pos.SideToMove]
}

// SetEnpassantSquare replaces the en-passant target, maintaining the
// Zobrist key. Per the polyglot convention, the key only reflects an
// en-passant square when an enemy pawn could actually capture there.
func (pos *Position) SetEnpassantSquare(sq board.Square) {
	if sq == pos.curr.EnpassantSquare {
		return
	}

	keySquare := func(sq board.Square) board.Square {
		if sq == board.SquareA1 {
			return sq
		}
		var theirs board.Bitboard
		var captureRank board.Square
		switch sq.Rank() {
		case 2:
			theirs, captureRank = pos.ByPiece(board.Black, board.Pawn), board.RankFile(3, sq.File())
		case 5:
			theirs, captureRank = pos.ByPiece(board.White, board.Pawn), board.RankFile(4, sq.File())
		default:
			panic("position: bad en passant square")
		}
		left := captureRank.File() != 0 && theirs.Has(captureRank-1)
		right := captureRank.File() != 7 && theirs.Has(captureRank+1)
		if !left && !right {
			return board.SquareA1
		}
		return sq
	}

	pos.curr.Zobrist ^= board.ZobristEnpassant[keySquare(pos.curr.EnpassantSquare)]
	pos.curr.EnpassantSquare = sq
	pos.curr.Zobrist ^= board.ZobristEnpassant[keySquare(sq)]
}

// ByPiece is shorthand for ByColor[col]&ByFigure[fig].
func (pos *Position) ByPiece(col board.Color, fig board.Figure) board.Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// Put places pi on sq. Does nothing for board.NoPiece; does not validate.
func (pos *Position) Put(sq board.Square, pi board.Piece) {
	if pi == board.NoPiece {
		return
	}
	pos.curr.Zobrist ^= board.ZobristPiece[pi][sq]
	bb := sq.Bitboard()
	pos.ByColor[pi.Color()] |= bb
	pos.ByFigure[pi.Figure()] |= bb
}

// Remove clears pi from sq. Does nothing for board.NoPiece; does not
// validate.
func (pos *Position) Remove(sq board.Square, pi board.Piece) {
	if pi == board.NoPiece {
		return
	}
	pos.curr.Zobrist ^= board.ZobristPiece[pi][sq]
	bb := ^sq.Bitboard()
	pos.ByColor[pi.Color()] &= bb
	pos.ByFigure[pi.Figure()] &= bb
}

// IsEmpty reports whether sq has no piece.
func (pos *Position) IsEmpty(sq board.Square) bool {
	return !(pos.ByColor[board.White] | pos.ByColor[board.Black]).Has(sq)
}

// Occupied returns the union of all occupied squares.
func (pos *Position) Occupied() board.Bitboard {
	return pos.ByColor[board.White] | pos.ByColor[board.Black]
}

// Get returns the piece at sq, or board.NoPiece.
func (pos *Position) Get(sq board.Square) board.Piece {
	var col board.Color
	switch {
	case pos.ByColor[board.White].Has(sq):
		col = board.White
	case pos.ByColor[board.Black].Has(sq):
		col = board.Black
	default:
		return board.NoPiece
	}
	for fig := board.FigureMinValue; fig <= board.FigureMaxValue; fig++ {
		if pos.ByFigure[fig].Has(sq) {
			return board.ColorFigure(col, fig)
		}
	}
	panic("position: occupied square with no figure")
}

// KnightMobility returns the squares a knight on sq attacks.
func (pos *Position) KnightMobility(sq board.Square) board.Bitboard {
	return board.BbKnightAttack[sq]
}

// BishopMobility returns the squares a bishop on sq attacks given the
// current occupancy.
func (pos *Position) BishopMobility(sq board.Square) board.Bitboard {
	return board.BishopAttack(sq, pos.Occupied())
}

// RookMobility returns the squares a rook on sq attacks given the current
// occupancy.
func (pos *Position) RookMobility(sq board.Square) board.Bitboard {
	return board.RookAttack(sq, pos.Occupied())
}

// QueenMobility returns the squares a queen on sq attacks given the
// current occupancy.
func (pos *Position) QueenMobility(sq board.Square) board.Bitboard {
	return board.QueenAttack(sq, pos.Occupied())
}

// KingMobility returns the squares a king on sq attacks, excluding
// castling.
func (pos *Position) KingMobility(sq board.Square) board.Bitboard {
	return board.BbKingAttack[sq]
}

// PawnThreats returns the squares threatened by side's pawns.
func (pos *Position) PawnThreats(side board.Color) board.Bitboard {
	pawns := board.Forward(side, pos.ByPiece(side, board.Pawn))
	return board.West(pawns) | board.East(pawns)
}

// AttacksTo returns the set of color them's pieces that attack sq.
func (pos *Position) AttacksTo(sq board.Square, them board.Color) board.Bitboard {
	return pos.attackersOn(sq, them, pos.Occupied())
}

// AttacksToExcluding returns the set of color them's pieces that attack sq
// if the piece on without were removed from the board first. Used by the
// king's own move legality check, where a sliding checker's x-ray through
// the king's vacated square must still count as an attack on the king's
// destination.
func (pos *Position) AttacksToExcluding(sq board.Square, them board.Color, without board.Square) board.Bitboard {
	return pos.attackersOn(sq, them, pos.Occupied()&^without.Bitboard())
}

func (pos *Position) attackersOn(sq board.Square, them board.Color, occ board.Bitboard) board.Bitboard {
	enemy := pos.ByColor[them]
	var att board.Bitboard

	att |= enemy & pos.ByFigure[board.Pawn] & board.BbPawnAttack[them.Opposite()][sq]
	att |= enemy & pos.ByFigure[board.Knight] & board.BbKnightAttack[sq]
	att |= enemy & pos.ByFigure[board.King] & board.BbKingAttack[sq]

	bishopAtt := board.BishopAttack(sq, occ)
	rookAtt := board.RookAttack(sq, occ)
	att |= enemy & pos.ByFigure[board.Bishop] & bishopAtt
	att |= enemy & pos.ByFigure[board.Rook] & rookAtt
	att |= enemy & pos.ByFigure[board.Queen] & (bishopAtt | rookAtt)

	return att
}

// GetAttacker returns the weakest figure of color them attacking sq, or
// board.NoFigure if none attacks it. Used by SEE and by check detection.
func (pos *Position) GetAttacker(sq board.Square, them board.Color) board.Figure {
	enemy := pos.ByColor[them]
	if enemy&board.BbPawnAttack[them.Opposite()][sq]&pos.ByFigure[board.Pawn] != 0 {
		return board.Pawn
	}
	if enemy&board.BbKnightAttack[sq]&pos.ByFigure[board.Knight] != 0 {
		return board.Knight
	}
	if enemy&board.BbSuperAttack[sq]&^pos.ByFigure[board.Pawn] == 0 {
		return board.NoFigure
	}
	occ := pos.Occupied()
	bishop := board.BishopAttack(sq, occ)
	if enemy&pos.ByFigure[board.Bishop]&bishop != 0 {
		return board.Bishop
	}
	rook := board.RookAttack(sq, occ)
	if enemy&pos.ByFigure[board.Rook]&rook != 0 {
		return board.Rook
	}
	if enemy&pos.ByFigure[board.Queen]&(bishop|rook) != 0 {
		return board.Queen
	}
	if enemy&board.BbKingAttack[sq]&pos.ByFigure[board.King] != 0 {
		return board.King
	}
	return board.NoFigure
}

// IsAttacked reports whether any of them's pieces attacks sq.
func (pos *Position) IsAttacked(sq board.Square, them board.Color) bool {
	return pos.GetAttacker(sq, them) != board.NoFigure
}

// IsChecked reports whether side's king is in check.
func (pos *Position) IsChecked(side board.Color) bool {
	kingSq := pos.ByPiece(side, board.King).AsSquare()
	return pos.IsAttacked(kingSq, side.Opposite())
}

// IsThreeFoldRepetition reports whether the current position has
// occurred at least three times since the last irreversible move.
func (pos *Position) IsThreeFoldRepetition() bool {
	if pos.Ply-pos.curr.IrreversiblePly < 4 {
		return false
	}
	c, z := 0, pos.Zobrist()
	for i := pos.Ply; i >= pos.curr.IrreversiblePly; i -= 2 {
		if pos.states[i].Zobrist == z {
			if c++; c == 3 {
				return true
			}
		}
	}
	return false
}

// IsRepeated reports whether the current position has already occurred
// at least once since the last irreversible move. Used inside the
// search tree as a "twofold is enough" draw proxy: waiting for the
// full threefold repetition (IsThreeFoldRepetition) would miss cycles
// the opponent can force before the search horizon.
func (pos *Position) IsRepeated() bool {
	if pos.Ply-pos.curr.IrreversiblePly < 4 {
		return false
	}
	z := pos.Zobrist()
	for i := pos.Ply - 2; i >= pos.curr.IrreversiblePly; i -= 2 {
		if pos.states[i].Zobrist == z {
			return true
		}
	}
	return false
}

// DoMove applies a legal move, pushing undo state.
func (pos *Position) DoMove(move board.Move) {
	pos.pushState()

	pi := move.Piece()
	if pi != board.NoPiece {
		pos.SetCastlingAbility(pos.curr.CastlingAbility &^ lostCastleRights[move.From] &^ lostCastleRights[move.To])
	}
	if move.Capture != board.NoPiece || pi.Figure() == board.Pawn {
		pos.curr.IrreversiblePly = pos.Ply
		pos.curr.HalfMoveClock = 0
	} else {
		pos.curr.HalfMoveClock++
	}
	if pos.SideToMove == board.Black {
		pos.FullMoveNumber++
	}

	if move.Type == board.Castling {
		rook, start, end := board.CastlingRook(move.To)
		pos.Remove(start, rook)
		pos.Put(end, rook)
	}

	if pi.Figure() == board.Pawn &&
		move.From.Bitboard()&board.BbPawnStartRank != 0 &&
		move.To.Bitboard()&board.BbPawnDoubleRank != 0 {
		pos.SetEnpassantSquare(board.Square((int(move.From) + int(move.To)) / 2))
	} else {
		pos.SetEnpassantSquare(board.SquareA1)
	}

	pos.Remove(move.From, pi)
	pos.Remove(move.CaptureSquare(), move.Capture)
	pos.Put(move.To, move.Target)
	pos.SetSideToMove(pos.SideToMove.Opposite())
}

// UndoMove reverts the last move applied with DoMove.
func (pos *Position) UndoMove(move board.Move) {
	if pos.SideToMove == board.White {
		pos.FullMoveNumber--
	}
	pos.SetSideToMove(pos.SideToMove.Opposite())

	pi := move.Piece()
	pos.Put(move.From, pi)
	pos.Remove(move.To, move.Target)
	pos.Put(move.CaptureSquare(), move.Capture)

	if move.Type == board.Castling {
		rook, start, end := board.CastlingRook(move.To)
		pos.Put(start, rook)
		pos.Remove(end, rook)
	}

	pos.popState()
}

// DoNullMove applies a null move: flips the side to move and clears the
// en-passant square, without moving any piece. Used by null-move pruning.
func (pos *Position) DoNullMove() {
	pos.pushState()
	pos.SetEnpassantSquare(board.SquareA1)
	pos.SetSideToMove(pos.SideToMove.Opposite())
}

// UndoNullMove reverts DoNullMove.
func (pos *Position) UndoNullMove() {
	pos.SetSideToMove(pos.SideToMove.Opposite())
	pos.popState()
}
