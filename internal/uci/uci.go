// Package uci implements a line-oriented UCI command protocol loop over
// internal/search, internal/position and internal/tt: "uci", "isready",
// "ucinewgame", "position", "go", "stop", "setoption", "quit", plus the
// engine-specific debug commands "move", "undo", "eval", "perft" and
// "tt".
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/eval"
	"github.com/chess-engines/zurigen/internal/notation"
	"github.com/chess-engines/zurigen/internal/perft"
	"github.com/chess-engines/zurigen/internal/picker"
	"github.com/chess-engines/zurigen/internal/position"
	"github.com/chess-engines/zurigen/internal/render"
	"github.com/chess-engines/zurigen/internal/search"
	"github.com/chess-engines/zurigen/internal/timecontrol"
	"github.com/chess-engines/zurigen/internal/tt"
)

// ErrQuit is returned by Execute for the "quit" command; the caller's
// read loop should stop on it without treating it as a failure.
var ErrQuit = errors.New("uci: quit")

const (
	maxMultiPV       = 16
	maxHandicapLevel = 20

	defaultHashSizeMB = 64
)

// Options mirrors the UCI-settable engine options.
type Options struct {
	MultiPV       int
	HandicapLevel int
	AnalyseMode   bool
}

// UCI holds one engine session's state across commands: the current
// position, transposition table, move-ordering history and the
// in-flight search, if any.
type UCI struct {
	out io.Writer

	pos      *position.Position
	table    *tt.Table
	evalFn   eval.Evaluator
	history  *picker.History
	options  Options
	moveLog  []board.Move

	tc    *timecontrol.Control
	group *errgroup.Group
}

// New returns a UCI session writing protocol output to out, with a
// transposition table sized hashSizeMB megabytes.
func New(out io.Writer, hashSizeMB int) *UCI {
	if hashSizeMB <= 0 {
		hashSizeMB = defaultHashSizeMB
	}
	pos, _ := position.FromFEN(position.FENStartPos)
	return &UCI{
		out:     out,
		pos:     pos,
		table:   tt.New(hashSizeMB),
		evalFn:  eval.NewDefault(),
		history: picker.NewHistory(),
		options: Options{MultiPV: 1, HandicapLevel: 0},
	}
}

func (u *UCI) printf(format string, args ...interface{}) {
	fmt.Fprintf(u.out, format, args...)
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

// Execute parses and runs one protocol line. It returns ErrQuit for
// "quit"; any other non-nil error is a malformed command, not a reason
// to stop the read loop.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("uci: invalid command line %q", line)
	}

	switch cmd {
	case "quit":
		return ErrQuit
	case "stop":
		return u.stop()
	case "uci":
		return u.uci()
	case "isready":
		u.printf("readyok\n")
		return nil
	}

	// Every other command needs the search worker idle first.
	u.waitIdle()

	switch cmd {
	case "ucinewgame":
		u.table.Clear()
		u.history.Clear()
		return nil
	case "position":
		return u.position(line)
	case "go":
		return u.goCmd(line)
	case "setoption":
		return u.setoption(line)
	case "move":
		return u.move(line)
	case "undo":
		return u.undo()
	case "eval":
		return u.evalCmd(line)
	case "perft":
		return u.perftCmd(line)
	case "tt":
		return u.ttCmd()
	default:
		return fmt.Errorf("uci: unhandled command %q", cmd)
	}
}

// waitIdle blocks until any in-flight search has finished and printed
// its bestmove, mirroring the teacher's idle-channel handshake with an
// errgroup join instead.
func (u *UCI) waitIdle() {
	if u.group != nil {
		u.group.Wait()
		u.group = nil
	}
}

func (u *UCI) uci() error {
	u.printf("id name zurigen\n")
	u.printf("id author the zurigen authors\n")
	u.printf("\n")
	u.printf("option name Hash type spin default %d min 1 max 65536\n", defaultHashSizeMB)
	u.printf("option name MultiPV type spin default %d min 1 max %d\n", u.options.MultiPV, maxMultiPV)
	u.printf("option name Ponder type check default true\n")
	u.printf("option name Handicap Level type spin default %d min 0 max %d\n", u.options.HandicapLevel, maxHandicapLevel)
	u.printf("option name UCI_AnalyseMode type check default false\n")
	u.printf("option name Clear Hash type button\n")
	u.printf("uciok\n")
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("uci: expected argument for 'position'")
	}

	var pos *position.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = position.FromFEN(position.FENStartPos)
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		pos, err = position.FromFEN(strings.Join(args[1:i], " "))
	default:
		return fmt.Errorf("uci: unknown position command %q", args[0])
	}
	if err != nil {
		return err
	}

	u.pos = pos
	u.moveLog = u.moveLog[:0]

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("uci: expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, err := notation.UCIToMove(u.pos, s)
			if err != nil {
				return err
			}
			u.pos.DoMove(m)
			u.moveLog = append(u.moveLog, m)
		}
	}
	return nil
}

var validGoArgs = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true, "depth": true,
	"nodes": true, "mate": true, "movetime": true, "infinite": true,
}

func (u *UCI) goCmd(line string) error {
	var params timecontrol.Params
	args := strings.Fields(line)[1:]

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !validGoArgs[args[i+1]] {
				i++
			}
		case "ponder":
			// Pondering is accepted but not distinguished from a normal
			// search: the worker always searches to the computed budget.
		case "infinite":
			params.Infinite = true
		case "wtime":
			i++
			params.WTime = durationMS(args[i])
		case "btime":
			i++
			params.BTime = durationMS(args[i])
		case "winc":
			i++
			params.WInc = durationMS(args[i])
		case "binc":
			i++
			params.BInc = durationMS(args[i])
		case "movestogo":
			i++
			n, _ := strconv.Atoi(args[i])
			params.MovesToGo = n
		case "movetime":
			i++
			params.MoveTime = durationMS(args[i])
		case "depth":
			i++
			n, _ := strconv.Atoi(args[i])
			params.Depth = n
		case "nodes", "mate":
			i++
		default:
			return fmt.Errorf("uci: invalid go argument %q", args[i])
		}
	}

	u.tc = timecontrol.New(params, u.pos.Us() == board.White)

	engine := search.New(u.pos, u.table, u.evalFn, u.history)
	engine.Info = func(info search.Info) { u.printInfo(info) }

	g, _ := errgroup.WithContext(context.Background())
	u.group = g
	g.Go(func() error {
		result := engine.Search(u.tc)
		u.printBestMove(result)
		return nil
	})
	return nil
}

func durationMS(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}

func (u *UCI) printInfo(info search.Info) {
	u.printf("info depth %d seldepth %d ", info.Depth, info.SelDepth)
	if info.Mate {
		u.printf("score mate %d ", mateDistance(info.Score))
	} else {
		u.printf("score cp %d ", info.Score)
	}
	nps := uint64(0)
	if info.Elapsed > 0 {
		nps = uint64(float64(info.Nodes) / info.Elapsed)
	}
	u.printf("nodes %d time %d nps %d ", info.Nodes, uint64(info.Elapsed*1000), nps)
	u.printf("pv")
	for _, m := range info.PV {
		u.printf(" %s", notation.MoveToUCI(m))
	}
	u.printf("\n")
}

func mateDistance(score int32) int {
	if score > 0 {
		return int(eval.MateScore-score+1) / 2
	}
	return int(eval.MatedScore-score) / 2
}

func (u *UCI) printBestMove(result search.Result) {
	if result.BestMove == board.NullMove {
		u.printf("bestmove (none)\n")
		return
	}
	if result.PonderMove != board.NullMove {
		u.printf("bestmove %s ponder %s\n", notation.MoveToUCI(result.BestMove), notation.MoveToUCI(result.PonderMove))
	} else {
		u.printf("bestmove %s\n", notation.MoveToUCI(result.BestMove))
	}
}

func (u *UCI) stop() error {
	if u.tc != nil {
		u.tc.Stop()
	}
	u.waitIdle()
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("uci: invalid setoption arguments")
	}
	name := m[1]

	if name == "Clear Hash" {
		u.table.Clear()
		return nil
	}
	if len(m) < 4 || m[3] == "" {
		return fmt.Errorf("uci: missing setoption value for %q", name)
	}
	value := m[3]

	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		u.table = tt.New(mb)
		return nil
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxMultiPV {
			return fmt.Errorf("uci: MultiPV must be between 1 and %d", maxMultiPV)
		}
		u.options.MultiPV = n
		return nil
	case "Handicap Level":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 0 || n > maxHandicapLevel {
			return fmt.Errorf("uci: Handicap Level must be between 0 and %d", maxHandicapLevel)
		}
		u.options.HandicapLevel = n
		return nil
	case "UCI_AnalyseMode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		u.options.AnalyseMode = b
		return nil
	case "Ponder":
		return nil
	default:
		return fmt.Errorf("uci: unhandled option %q", name)
	}
}

// move applies one SAN or UCI move to the current position, a
// debug/scripting convenience not part of the UCI protocol proper.
func (u *UCI) move(line string) error {
	args := strings.Fields(line)
	if len(args) != 2 {
		return fmt.Errorf("uci: usage: move <uci-or-san>")
	}
	m, err := notation.UCIToMove(u.pos, args[1])
	if err != nil {
		m, err = notation.SANToMove(u.pos, args[1])
		if err != nil {
			return err
		}
	}
	u.pos.DoMove(m)
	u.moveLog = append(u.moveLog, m)
	return nil
}

// undo reverts the most recent "move" or "position ... moves" entry.
func (u *UCI) undo() error {
	if len(u.moveLog) == 0 {
		return fmt.Errorf("uci: no move to undo")
	}
	last := u.moveLog[len(u.moveLog)-1]
	u.moveLog = u.moveLog[:len(u.moveLog)-1]
	u.pos.UndoMove(last)
	return nil
}

// evalCmd prints the static evaluation of the current position and its
// board, in ANSI by default or SVG when given a file path argument.
func (u *UCI) evalCmd(line string) error {
	args := strings.Fields(line)
	score := u.evalFn.Evaluate(u.pos)
	u.printf("info string static eval %d\n", score)

	if len(args) < 2 {
		return render.WriteANSI(u.out, u.pos)
	}
	return writeSVGFile(args[1], u.pos)
}

func (u *UCI) perftCmd(line string) error {
	args := strings.Fields(line)
	if len(args) != 2 {
		return fmt.Errorf("uci: usage: perft <depth>")
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	start := time.Now()
	result := perft.Perft(u.pos, depth)
	elapsed := time.Since(start)
	u.printf("info string perft depth %d nodes %d captures %d enpassant %d castles %d promotions %d time %v\n",
		depth, result.Nodes, result.Captures, result.Enpassant, result.Castles, result.Promotions, elapsed)
	return nil
}

func writeSVGFile(path string, pos *position.Position) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	render.SVG(f, pos)
	return nil
}

func (u *UCI) ttCmd() error {
	u.printf("info string hashfull %d size %d\n", u.table.Hashfull(), u.table.Size())
	return nil
}

// Run reads UCI commands from r, one per line, and writes protocol
// output to the session's out writer, until "quit" or a read error.
func Run(r io.Reader, u *UCI) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := u.Execute(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintf(u.out, "info string error: %v\n", err)
		}
	}
	return scanner.Err()
}
