// Package history implements a snapshot-based, multi-slice undo/redo engine.
// Stateful stores register named slices; every mutation records a merged
// snapshot of all slices, and undo/redo re-applies a past snapshot slice by
// slice.
package history

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Nimsalcade/FigmaClone/internal/ids"
)

const (
	// DefaultMaxEntries caps the linear history; the oldest entries are
	// evicted beyond it.
	DefaultMaxEntries = 50

	// mergeWindow is the ad-hoc coalescing window for rapid repeated
	// records sharing an inline batch key with no explicit batch open.
	mergeWindow = 200 * time.Millisecond
)

// Slice is a named, independently capturable fragment of global state.
// Capture must return a value safe to hold across later mutations (deep
// copy); Apply must not trigger further records. Equals is optional; when
// nil, a stable JSON serialization comparison is used.
type Slice struct {
	Capture func() interface{}
	Apply   func(interface{})
	Equals  func(a, b interface{}) bool
}

// Snapshot maps slice names to captured values.
type Snapshot map[string]interface{}

// Entry is one step of the linear history.
type Entry struct {
	ID        string
	Label     string
	Snapshot  Snapshot
	Timestamp time.Time
	BatchKey  string
}

// Action describes the entry just recorded, undone or redone; consumed by
// transient UI feedback.
type Action struct {
	Kind  string // "record", "undo", "redo"
	Label string
}

type registeredSlice struct {
	name  string
	slice Slice
}

// Engine is the slice-registry history engine. It is not safe for
// concurrent use; the editor drives it from a single goroutine.
type Engine struct {
	slices  []registeredSlice
	entries []Entry
	pointer int // index of the current entry, -1 when empty

	maxEntries int
	replaying  bool

	openBatchKey   string
	openBatchLabel string
	openBatchIdx   int

	lastAction *Action
	onAction   func(Action)

	now func() time.Time
}

// NewEngine creates an empty history engine.
func NewEngine() *Engine {
	return &Engine{
		pointer:      -1,
		maxEntries:   DefaultMaxEntries,
		openBatchIdx: -1,
		now:          time.Now,
	}
}

// SetMaxEntries overrides the history cap.
func (e *Engine) SetMaxEntries(n int) {
	if n > 0 {
		e.maxEntries = n
	}
}

// SetClock overrides the timestamp source used by the merge window.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// OnAction registers the lastAction event consumer.
func (e *Engine) OnAction(fn func(Action)) { e.onAction = fn }

// RegisterSlice registers a named state fragment. Slices are captured and
// applied in registration order; apply callbacks must not have cross-slice
// side effects.
func (e *Engine) RegisterSlice(name string, s Slice) {
	for i := range e.slices {
		if e.slices[i].name == name {
			e.slices[i].slice = s
			return
		}
	}
	e.slices = append(e.slices, registeredSlice{name: name, slice: s})
}

// CaptureSnapshot merges all registered slices' current values.
func (e *Engine) CaptureSnapshot() Snapshot {
	snap := make(Snapshot, len(e.slices))
	for _, rs := range e.slices {
		snap[rs.name] = rs.slice.Capture()
	}
	return snap
}

// Options tune a single Record call.
type Options struct {
	// BatchKey coalesces consecutive records sharing the key: into the
	// open batch entry if one is active, or into the immediately preceding
	// entry when recorded within the merge window.
	BatchKey string

	// SkipIfSame skips the record when the snapshot equals the current
	// entry. Defaults to true; set the field via Record's opts only when
	// an identical snapshot must still be recorded.
	SkipIfSameDisabled bool

	// Snapshot overrides the captured snapshot (rarely needed).
	Snapshot Snapshot
}

// Record appends (or merges) a history entry for the current state.
// Calls arriving while a replay is in progress are silently ignored.
func (e *Engine) Record(label string, opts ...Options) {
	if e.replaying {
		return
	}

	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	snap := o.Snapshot
	if snap == nil {
		snap = e.CaptureSnapshot()
	}

	skipIfSame := !o.SkipIfSameDisabled
	if skipIfSame && e.pointer >= 0 && e.snapshotsEqual(e.entries[e.pointer].Snapshot, snap) {
		return
	}

	now := e.now()

	// Merge into the open explicit batch.
	batchKey := o.BatchKey
	if e.openBatchKey != "" && (batchKey == "" || batchKey == e.openBatchKey) && e.openBatchIdx >= 0 {
		entry := &e.entries[e.openBatchIdx]
		entry.Snapshot = snap
		entry.Timestamp = now
		if label != "" {
			entry.Label = label
		}
		// A merged record at the pointer keeps linear semantics: anything
		// after the batch entry is stale redo state.
		e.pointer = e.openBatchIdx
		e.entries = e.entries[:e.pointer+1]
		e.emit(Action{Kind: "record", Label: entry.Label})
		return
	}

	// Ad-hoc coalescing: same inline key, within the merge window, at the
	// head of history.
	if batchKey != "" && e.pointer >= 0 && e.pointer == len(e.entries)-1 {
		prev := &e.entries[e.pointer]
		if prev.BatchKey == batchKey && now.Sub(prev.Timestamp) <= mergeWindow {
			prev.Snapshot = snap
			prev.Timestamp = now
			prev.Label = label
			e.emit(Action{Kind: "record", Label: label})
			return
		}
	}

	// Divergent edit: destroy the redo tail.
	e.entries = e.entries[:e.pointer+1]

	e.entries = append(e.entries, Entry{
		ID:        ids.NewHistoryID(),
		Label:     label,
		Snapshot:  snap,
		Timestamp: now,
		BatchKey:  batchKey,
	})
	e.pointer = len(e.entries) - 1

	// Cap: evict from the oldest end, shifting pointer and batch index.
	for len(e.entries) > e.maxEntries {
		e.entries = e.entries[1:]
		e.pointer--
		if e.openBatchIdx >= 0 {
			e.openBatchIdx--
			if e.openBatchIdx < 0 {
				e.openBatchKey = ""
			}
		}
	}

	e.emit(Action{Kind: "record", Label: label})
}

// BeginBatch opens an explicit batch: subsequent records collapse into one
// entry until CommitBatch or CancelBatch. The first record after BeginBatch
// creates the batch entry.
func (e *Engine) BeginBatch(label, key string) {
	if e.replaying {
		return
	}
	if key == "" {
		key = label
	}
	// Opening a batch writes the entry up front so intermediate records
	// have a fixed slot to overwrite.
	e.Record(label, Options{SkipIfSameDisabled: true, BatchKey: key})
	e.openBatchKey = key
	e.openBatchLabel = label
	e.openBatchIdx = e.pointer
}

// CommitBatch closes the open batch, keeping its entry.
func (e *Engine) CommitBatch(key string) {
	if key != "" && key != e.openBatchKey {
		return
	}
	e.openBatchKey = ""
	e.openBatchLabel = ""
	e.openBatchIdx = -1
}

// CancelBatch discards the open batch marker without altering entries.
// Used on teardown to avoid a dangling batch.
func (e *Engine) CancelBatch(key string) {
	e.CommitBatch(key)
}

// CanUndo reports whether an earlier entry exists.
func (e *Engine) CanUndo() bool { return e.pointer > 0 }

// CanRedo reports whether a later entry exists.
func (e *Engine) CanRedo() bool { return e.pointer >= 0 && e.pointer < len(e.entries)-1 }

// Undo steps back one entry and re-applies its snapshot. No-op at the
// boundary.
func (e *Engine) Undo() {
	if !e.CanUndo() {
		return
	}
	e.pointer--
	e.applyCurrent()
	e.emit(Action{Kind: "undo", Label: e.entries[e.pointer].Label})
}

// Redo steps forward one entry and re-applies its snapshot. No-op at the
// boundary.
func (e *Engine) Redo() {
	if !e.CanRedo() {
		return
	}
	e.pointer++
	e.applyCurrent()
	e.emit(Action{Kind: "redo", Label: e.entries[e.pointer].Label})
}

// LastAction returns the most recent record/undo/redo action, if any.
func (e *Engine) LastAction() *Action { return e.lastAction }

// Len returns the number of entries.
func (e *Engine) Len() int { return len(e.entries) }

// Pointer returns the current entry index (-1 when empty).
func (e *Engine) Pointer() int { return e.pointer }

func (e *Engine) applyCurrent() {
	snap := e.entries[e.pointer].Snapshot
	e.replaying = true
	defer func() { e.replaying = false }()

	for _, rs := range e.slices {
		if v, ok := snap[rs.name]; ok {
			rs.slice.Apply(v)
		}
	}
}

func (e *Engine) snapshotsEqual(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for _, rs := range e.slices {
		av, aok := a[rs.name]
		bv, bok := b[rs.name]
		if aok != bok {
			return false
		}
		if !aok {
			continue
		}
		if rs.slice.Equals != nil {
			if !rs.slice.Equals(av, bv) {
				return false
			}
			continue
		}
		if !jsonEqual(av, bv) {
			return false
		}
	}
	return true
}

// jsonEqual compares two values by stable serialization: encoding/json
// sorts map keys, so equal states serialize identically.
func jsonEqual(a, b interface{}) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}

func (e *Engine) emit(a Action) {
	e.lastAction = &a
	if e.onAction != nil {
		e.onAction(a)
	}
}
