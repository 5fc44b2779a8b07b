package engine

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/apollochess/apollo/internal/board"
)

// NodeKind classifies a transposition entry's score the way alpha-beta
// search produced it.
type NodeKind uint8

const (
	// NodePV is a node whose score fell inside the alpha-beta window.
	// Its score is exact.
	NodePV NodeKind = iota

	// NodeAll is a node that failed high (a beta cutoff occurred). Its
	// score is a lower bound on the exact score.
	NodeAll

	// NodeCut is a node that failed low (an alpha cutoff occurred). Its
	// score is an upper bound on the exact score.
	NodeCut
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodePV:
		return "PV"
	case NodeAll:
		return "All"
	case NodeCut:
		return "Cut"
	default:
		return "Unknown"
	}
}

// Entry is one memoized search result. Entries are stored and returned by
// value; the table never hands out references to its internal state.
type Entry struct {
	// BestMove is the best move observed for this position, or a move
	// good enough to refute the opponent's previous move on a cutoff.
	BestMove board.Move

	// Depth is the search depth in ply at which this entry was produced.
	// Deeper entries are more trustworthy than shallower ones.
	Depth uint8

	// Kind says whether Score is exact, a lower bound or an upper bound.
	Kind NodeKind

	// Score is the (possibly bounded) score of the position.
	Score int16
}

// TranspositionTable is a concurrently shared cache from position hash to
// search result. The hash is trusted as a proxy for position identity: the
// table does not store positions, so two distinct positions with the same
// hash silently share one entry. That is accepted, not corrected.
//
// Insertion is first-write-wins. Once a hash has an entry, later inserts
// for the same hash are no-ops regardless of their depth or node kind;
// entries leave the table only through Clear.
// TODO: consider aging out old entries instead of keeping the first write
// forever.
type TranspositionTable struct {
	mu      sync.RWMutex
	entries map[uint64]Entry

	// Observability only; never part of the caching contract.
	probes atomic.Uint64
	hits   atomic.Uint64
	stores atomic.Uint64
}

// NewTranspositionTable creates an empty table. The underlying map is
// allocated lazily on first insert; call Initialize to pay that cost at a
// deterministic point instead.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{}
}

// Insert stores entry under hash unless the hash is already present. Most
// calls on a populated table resolve under the shared lock alone; the
// exclusive lock is taken only for genuinely new keys. The existence check
// is repeated under the exclusive lock because another writer may have
// inserted between the shared check and the lock upgrade - whichever
// writer's critical section runs first wins, and the rest are no-ops.
func (t *TranspositionTable) Insert(hash uint64, entry Entry) {
	t.mu.RLock()
	_, ok := t.entries[hash]
	t.mu.RUnlock()
	if ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries == nil {
		t.entries = make(map[uint64]Entry)
	}
	if _, ok := t.entries[hash]; !ok {
		t.entries[hash] = entry
		t.stores.Add(1)
	}
}

// Query returns a copy of the entry stored under hash, if any. The copy is
// taken under the shared lock and the lock is released before the caller
// sees the result, so no caller code ever runs while holding the table's
// lock. A hit is not a guarantee the entry was produced by the caller's
// position; see the collision note on TranspositionTable.
func (t *TranspositionTable) Query(hash uint64) (Entry, bool) {
	t.probes.Add(1)

	t.mu.RLock()
	entry, ok := t.entries[hash]
	t.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}
	t.hits.Add(1)
	return entry, true
}

// Clear removes every entry and resets the counters. Used between
// independent searches to shed stale entries and unbounded growth.
func (t *TranspositionTable) Clear() {
	t.mu.Lock()
	n := len(t.entries)
	clear(t.entries)
	t.mu.Unlock()

	t.probes.Store(0)
	t.hits.Store(0)
	t.stores.Store(0)

	log.Debug().Int("entries-dropped", n).Msg("transposition-table-cleared")
}

// Initialize forces eager creation of the table's shared state, for
// callers that want setup cost paid before a timed region rather than on
// the first insert.
func (t *TranspositionTable) Initialize() {
	t.mu.Lock()
	created := false
	if t.entries == nil {
		t.entries = make(map[uint64]Entry)
		created = true
	}
	t.mu.Unlock()

	log.Info().
		Bool("created", created).
		Uint64("total-system-memory-bytes", memory.TotalMemory()).
		Msg("transposition-table-initialized")
}

// Len returns the current number of entries.
func (t *TranspositionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// HitRate returns the fraction of probes that found an entry, as a
// percentage.
func (t *TranspositionTable) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Stores returns the number of entries inserted since the last Clear.
func (t *TranspositionTable) Stores() uint64 {
	return t.stores.Load()
}
