// Package trainingdata implements the binary training-position stream
// format (a position record plus a signed evaluation, followed by a
// sequence of compact move records until the next position record or
// an end-of-game marker) and an optional badger-backed store for it,
// for self-play data generation; no command in this repository writes
// or reads the format.
package trainingdata

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chess-engines/zurigen/internal/board"
)

// Record tags identify what follows in the stream.
const (
	tagPosition byte = 'P'
	tagMove     byte = 'M'
	tagEndGame  byte = 'E'
)

// RecordKind distinguishes the three record shapes Reader.Next returns.
type RecordKind int

const (
	// Position introduces a new root position and its evaluation.
	Position RecordKind = iota
	// MoveRecord is one compact move played from the most recent
	// Position record.
	MoveRecord
	// EndGame closes the current game; the next record is a fresh
	// Position.
	EndGame
)

// Record is one decoded stream entry. Only the fields relevant to Kind
// are populated.
type Record struct {
	Kind RecordKind
	FEN  string
	Eval int16
	Move board.Move
}

// Writer appends training records to an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for writing.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WritePosition writes a root position record: fen's length, fen
// itself, then its evaluation from the side to move's perspective in
// centipawns (or a mate-distance encoding, caller's choice).
func (wr *Writer) WritePosition(fen string, eval int16) error {
	if len(fen) > 0xffff {
		return fmt.Errorf("trainingdata: fen too long (%d bytes)", len(fen))
	}
	buf := make([]byte, 1+2+len(fen)+2)
	buf[0] = tagPosition
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(fen)))
	copy(buf[3:3+len(fen)], fen)
	binary.BigEndian.PutUint16(buf[3+len(fen):], uint16(eval))
	_, err := wr.w.Write(buf)
	return err
}

// moveRecordSize is the encoded size of one board.Move: From, To,
// Capture, Target, Type, each a single byte per internal/board's
// representation.
const moveRecordSize = 5

// WriteMove appends one played move.
func (wr *Writer) WriteMove(m board.Move) error {
	buf := [1 + moveRecordSize]byte{tagMove}
	buf[1] = byte(m.From)
	buf[2] = byte(m.To)
	buf[3] = byte(m.Capture)
	buf[4] = byte(m.Target)
	buf[5] = byte(m.Type)
	_, err := wr.w.Write(buf[:])
	return err
}

// WriteEndGame marks the end of the current game's move sequence.
func (wr *Writer) WriteEndGame() error {
	_, err := wr.w.Write([]byte{tagEndGame})
	return err
}

// Reader decodes a training record stream written by Writer.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for reading.
func NewReader(r io.Reader) *Reader { return &Reader{r: bufio.NewReader(r)} }

// Next decodes the next record, or returns io.EOF once the stream is
// exhausted cleanly (only permitted right before a would-be tag byte).
func (rd *Reader) Next() (Record, error) {
	tag, err := rd.r.ReadByte()
	if err != nil {
		return Record{}, err
	}

	switch tag {
	case tagPosition:
		var lenBuf [2]byte
		if _, err := io.ReadFull(rd.r, lenBuf[:]); err != nil {
			return Record{}, err
		}
		n := binary.BigEndian.Uint16(lenBuf[:])
		fenBuf := make([]byte, n)
		if _, err := io.ReadFull(rd.r, fenBuf); err != nil {
			return Record{}, err
		}
		var evalBuf [2]byte
		if _, err := io.ReadFull(rd.r, evalBuf[:]); err != nil {
			return Record{}, err
		}
		eval := int16(binary.BigEndian.Uint16(evalBuf[:]))
		return Record{Kind: Position, FEN: string(fenBuf), Eval: eval}, nil

	case tagMove:
		var buf [moveRecordSize]byte
		if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
			return Record{}, err
		}
		m := board.Move{
			From:    board.Square(buf[0]),
			To:      board.Square(buf[1]),
			Capture: board.Piece(buf[2]),
			Target:  board.Piece(buf[3]),
			Type:    board.MoveType(buf[4]),
		}
		return Record{Kind: MoveRecord, Move: m}, nil

	case tagEndGame:
		return Record{Kind: EndGame}, nil

	default:
		return Record{}, fmt.Errorf("trainingdata: unknown record tag %q", tag)
	}
}
