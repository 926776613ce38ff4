// Package tt implements the search's transposition table: a
// fixed-size, set-associative cache keyed by the 64-bit Zobrist hash of
// a position, storing a search result for reuse by later probes of the
// same (or a transposed) position.
package tt

import (
	"unsafe"

	"github.com/chess-engines/zurigen/internal/board"
	"github.com/chess-engines/zurigen/internal/eval"
)

// Bound tags the relationship between a stored Value and the true
// minimax score.
type Bound uint8

const (
	// NoBound marks an empty slot.
	NoBound Bound = iota
	// Exact means Value is the true minimax score.
	Exact
	// Lower means Value is at least the true score (a beta cutoff
	// occurred; also called a "cut" node).
	Lower
	// Upper means Value is at most the true score (no move beat alpha;
	// also called an "all" node).
	Upper
)

// Entry is one transposition table record.
type Entry struct {
	key   uint32 // high bits of the Zobrist key, for collision detection
	Move  board.Move
	Value int32
	Depth int8
	Bound Bound
	age   uint8
}

// setSize is the associativity: how many entries share one index. A
// larger set reduces premature eviction at the cost of a longer linear
// scan per probe/store.
const setSize = 4

// Table is a set-associative transposition table. One Table is used by
// exactly one search worker at a time; see SPEC_FULL.md §5.
type Table struct {
	sets []([setSize]Entry)
	mask uint64
	age  uint8
}

// New allocates a table sized to fit within sizeMB megabytes.
func New(sizeMB int) *Table {
	entrySize := uint64(unsafe.Sizeof(Entry{}))
	setBytes := entrySize * setSize
	numSets := uint64(sizeMB) << 20 / setBytes
	if numSets == 0 {
		numSets = 1
	}
	for numSets&(numSets-1) != 0 {
		numSets &= numSets - 1
	}
	return &Table{
		sets: make([]([setSize]Entry), numSets),
		mask: numSets - 1,
	}
}

// Clear empties every slot and resets the age counter. Must only be
// called when no search is in flight (see SPEC_FULL.md §5).
func (t *Table) Clear() {
	for i := range t.sets {
		t.sets[i] = [setSize]Entry{}
	}
	t.age = 0
}

// NewGeneration advances the age counter used by the replacement
// policy, called once per new search (not per iterative-deepening
// depth) so entries from a prior search are preferred victims without
// wiping the table.
func (t *Table) NewGeneration() {
	t.age++
}

func (t *Table) index(key uint64) uint64 { return key & t.mask }

// Probe returns the entry matching key, if any, with its Value already
// adjusted from "distance to mate from this stored ply" to "distance
// to mate from ply" — see adjustFromTT.
func (t *Table) Probe(key uint64, ply int) (Entry, bool) {
	set := &t.sets[t.index(key)]
	hi := uint32(key >> 32)
	for i := range set {
		if set[i].Bound != NoBound && set[i].key == hi {
			e := set[i]
			e.Value = adjustFromTT(e.Value, ply)
			return e, true
		}
	}
	return Entry{}, false
}

// Store writes an entry for key, adjusting a mate Value from "distance
// to mate from the root" (as the search scores it at ply) to "distance
// to mate from this position" (the inverse of
// Probe's adjustment, so two probes at different plies of the same
// stored mate never disagree) and applying the replacement policy:
// prefer an empty slot, then a slot from an earlier age, then within
// the current age the slot with the lowest depth. Depth never regresses
// for an identical key within the same age.
func (t *Table) Store(key uint64, ply int, depth int8, bound Bound, value int32, move board.Move) {
	set := &t.sets[t.index(key)]
	hi := uint32(key >> 32)
	value = adjustToTT(value, ply)

	victim := 0
	for i := range set {
		e := &set[i]
		if e.Bound == NoBound {
			victim = i
			break
		}
		if e.key == hi {
			if e.Depth > depth && e.age == t.age {
				return
			}
			victim = i
			break
		}
		if e.age != t.age && set[victim].age == t.age {
			victim = i
		} else if e.age == t.age && set[victim].age == t.age && e.Depth < set[victim].Depth {
			victim = i
		}
	}

	set[victim] = Entry{key: hi, Move: move, Value: value, Depth: depth, Bound: bound, age: t.age}
}

// adjustToTT converts a score expressed as "distance to mate from the
// current search ply" into "distance to mate from the leaf it was
// found at", which is what must be stored: a mate found deeper in one
// branch is not the same absolute distance when the same position is
// reached at a different ply via transposition.
func adjustToTT(value int32, ply int) int32 {
	if value >= eval.KnownWinScore {
		return value + int32(ply)
	}
	if value <= eval.KnownLossScore {
		return value - int32(ply)
	}
	return value
}

// adjustFromTT is adjustToTT's inverse, applied on probe.
func adjustFromTT(value int32, ply int) int32 {
	if value >= eval.KnownWinScore {
		return value - int32(ply)
	}
	if value <= eval.KnownLossScore {
		return value + int32(ply)
	}
	return value
}

// Size returns the number of entry slots (sets * associativity).
func (t *Table) Size() int { return len(t.sets) * setSize }

// Hashfull reports occupancy of the table in per-mille, sampling the
// first 1000 sets as the UCI "hashfull" convention specifies.
func (t *Table) Hashfull() int {
	sample := len(t.sets)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		for _, e := range t.sets[i] {
			if e.Bound != NoBound {
				used++
			}
		}
	}
	return used * 1000 / (sample * setSize)
}
