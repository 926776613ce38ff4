// Package timecontrol computes the soft and hard search deadlines from
// a UCI "go" command's time parameters: time remaining for the side,
// increment, and moves-to-go (or a fixed movetime).
package timecontrol

import (
	"sync/atomic"
	"time"
)

const (
	defaultMovesToGo = 30
	safetyMargin     = 50 * time.Millisecond
)

// Control holds one search's time budget and the cooperative interrupt
// flag the worker polls. It is the sole cross-goroutine channel between
// the command-protocol front-end and the search worker (see SPEC_FULL.md
// §5): a single atomic flag, nothing else crosses the boundary
// mid-search.
type Control struct {
	Depth     int  // maximum iterative-deepening depth; 0 means unlimited
	Infinite  bool // true for "go infinite": no deadline at all

	soft time.Duration // we'd like to stop by here
	hard time.Duration // we must not exceed this

	start    time.Time
	interrupt atomic.Bool
}

// Params mirrors the time-relevant fields of a UCI "go" command.
type Params struct {
	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MoveTime     time.Duration // hard per-move cap, 0 if unset
	MovesToGo    int           // 0 means "use the default estimate"
	Depth        int
	Infinite     bool
}

// New computes soft/hard deadlines from params for the side to move;
// whiteToMove selects whether WTime/WInc or BTime/BInc are used.
func New(params Params, whiteToMove bool) *Control {
	c := &Control{Depth: params.Depth, Infinite: params.Infinite}
	c.start = time.Now()

	if params.Infinite {
		c.soft = time.Duration(1<<62 - 1)
		c.hard = c.soft
		return c
	}

	if params.MoveTime > 0 {
		c.soft = params.MoveTime
		c.hard = params.MoveTime
		return c
	}

	ourTime, ourInc := params.WTime, params.WInc
	if !whiteToMove {
		ourTime, ourInc = params.BTime, params.BInc
	}
	if ourTime <= 0 && ourInc <= 0 {
		// No time control at all specified: default to a single
		// generous iteration budget rather than searching forever.
		c.soft = 5 * time.Second
		c.hard = 10 * time.Second
		return c
	}

	movesToGo := params.MovesToGo
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}

	alloc := (ourTime + time.Duration(movesToGo-1)*ourInc) / time.Duration(movesToGo)
	if alloc > ourTime {
		alloc = ourTime
	}
	c.soft = alloc
	c.hard = alloc * 5
	if ceiling := ourTime - safetyMargin; c.hard > ceiling && ceiling > 0 {
		c.hard = ceiling
	}
	if c.hard <= 0 {
		c.hard = time.Millisecond
	}
	return c
}

// Elapsed returns the time spent since the search began.
func (c *Control) Elapsed() time.Duration { return time.Since(c.start) }

// HardExpired reports whether the hard deadline has passed; the search
// must stop unconditionally.
func (c *Control) HardExpired() bool {
	return !c.Infinite && c.Elapsed() >= c.hard
}

// ShouldStartNextIteration reports whether iterative deepening should
// begin another depth: false once roughly two-thirds of the soft
// budget has already elapsed, since a new iteration rarely finishes
// faster than the one before it.
func (c *Control) ShouldStartNextIteration() bool {
	if c.Infinite {
		return true
	}
	return c.Elapsed() < c.soft*2/3
}

// Stop asserts the interrupt flag; safe to call from any goroutine.
func (c *Control) Stop() { c.interrupt.Store(true) }

// Interrupted reports whether Stop was called or the hard deadline has
// passed.
func (c *Control) Interrupted() bool {
	return c.interrupt.Load() || c.HardExpired()
}
