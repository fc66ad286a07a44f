package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// valueSlice registers a single mutable value as a history slice.
type valueSlice struct {
	value int
}

func (v *valueSlice) register(e *Engine, name string) {
	e.RegisterSlice(name, Slice{
		Capture: func() interface{} { return v.value },
		Apply:   func(s interface{}) { v.value = s.(int) },
	})
}

func newTestEngine() (*Engine, *func(time.Duration)) {
	e := NewEngine()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return now })
	advance := func(d time.Duration) { now = now.Add(d) }
	return e, &advance
}

func TestUndoReturnsToInitialAfterNRecords(t *testing.T) {
	e, advance := newTestEngine()
	v := &valueSlice{value: 0}
	v.register(e, "objects")
	e.Record("initial")

	const n = 5
	for i := 1; i <= n; i++ {
		v.value = i
		e.Record("step")
		(*advance)(time.Second)
	}
	require.True(t, e.CanUndo())

	for i := 0; i < n; i++ {
		e.Undo()
	}
	require.Equal(t, 0, v.value, "back to the initial snapshot")
	require.False(t, e.CanUndo())
	require.True(t, e.CanRedo())
}

func TestRecordAfterUndoDestroysRedoTail(t *testing.T) {
	e, _ := newTestEngine()
	v := &valueSlice{}
	v.register(e, "objects")
	e.Record("initial")

	v.value = 1
	e.Record("one")
	v.value = 2
	e.Record("two")

	e.Undo()
	require.True(t, e.CanRedo())
	require.Equal(t, 1, v.value)

	v.value = 99
	e.Record("divergent")
	require.False(t, e.CanRedo(), "divergent edit destroys redo history")

	e.Undo()
	require.Equal(t, 1, v.value)
	e.Redo()
	require.Equal(t, 99, v.value)
}

func TestSkipIfSameSnapshot(t *testing.T) {
	e, _ := newTestEngine()
	v := &valueSlice{value: 7}
	v.register(e, "objects")

	e.Record("initial")
	e.Record("same")
	e.Record("same again")
	require.Equal(t, 1, e.Len(), "identical snapshots collapse")
}

func TestCustomEqualsUsedWhenProvided(t *testing.T) {
	e, _ := newTestEngine()
	calls := 0
	val := 0
	e.RegisterSlice("s", Slice{
		Capture: func() interface{} { return val },
		Apply:   func(v interface{}) { val = v.(int) },
		Equals: func(a, b interface{}) bool {
			calls++
			return a.(int) == b.(int)
		},
	})

	e.Record("initial")
	e.Record("same")
	require.Positive(t, calls)
	require.Equal(t, 1, e.Len())
}

func TestBatchMergeWithinWindow(t *testing.T) {
	e, advance := newTestEngine()
	v := &valueSlice{}
	v.register(e, "canvas")
	e.Record("initial")

	v.value = 1
	e.Record("pan", Options{BatchKey: "pan"})
	(*advance)(50 * time.Millisecond)
	v.value = 2
	e.Record("pan", Options{BatchKey: "pan"})

	require.Equal(t, 2, e.Len(), "two records in the window coalesce into one entry")

	e.Undo()
	require.Equal(t, 0, v.value, "one undo skips the whole gesture")
}

func TestBatchMergeExpiresOutsideWindow(t *testing.T) {
	e, advance := newTestEngine()
	v := &valueSlice{}
	v.register(e, "canvas")
	e.Record("initial")

	v.value = 1
	e.Record("pan", Options{BatchKey: "pan"})
	(*advance)(500 * time.Millisecond)
	v.value = 2
	e.Record("pan", Options{BatchKey: "pan"})

	require.Equal(t, 3, e.Len(), "records outside the window stay separate")
}

func TestExplicitBatchCollapsesManyRecords(t *testing.T) {
	e, advance := newTestEngine()
	v := &valueSlice{}
	v.register(e, "canvas")
	e.Record("initial")

	e.BeginBatch("pan canvas", "pan")
	for i := 1; i <= 10; i++ {
		v.value = i
		e.Record("pan canvas")
		(*advance)(time.Second) // well past the ad-hoc window
	}
	e.CommitBatch("pan")

	require.Equal(t, 2, e.Len(), "initial + one batch entry")
	e.Undo()
	require.Equal(t, 0, v.value)
	e.Redo()
	require.Equal(t, 10, v.value)
}

func TestCancelBatchLeavesEntries(t *testing.T) {
	e, _ := newTestEngine()
	v := &valueSlice{}
	v.register(e, "canvas")
	e.Record("initial")

	e.BeginBatch("drag", "drag")
	v.value = 3
	e.Record("drag")
	before := e.Len()

	e.CancelBatch("drag")
	require.Equal(t, before, e.Len(), "cancel only drops the marker")

	// Post-cancel records append normally again.
	v.value = 4
	e.Record("after")
	require.Equal(t, before+1, e.Len())
}

func TestReplayGuardIgnoresReentrantRecord(t *testing.T) {
	e, _ := newTestEngine()
	val := 0
	e.RegisterSlice("s", Slice{
		Capture: func() interface{} { return val },
		Apply: func(v interface{}) {
			val = v.(int)
			// A store applying state must not corrupt the stack even if
			// its change notification fires Record.
			e.Record("reentrant")
		},
	})
	e.Record("initial")
	val = 1
	e.Record("one")

	before := e.Len()
	e.Undo()
	require.Equal(t, before, e.Len(), "record during replay is ignored")
	require.Equal(t, 0, val)
}

func TestMaxEntriesEvictsOldest(t *testing.T) {
	e, _ := newTestEngine()
	e.SetMaxEntries(3)
	v := &valueSlice{}
	v.register(e, "objects")

	for i := 0; i < 10; i++ {
		v.value = i
		e.Record("step")
	}
	require.Equal(t, 3, e.Len())
	require.Equal(t, 2, e.Pointer())

	// Only the last two steps remain undoable.
	e.Undo()
	require.Equal(t, 8, v.value)
	e.Undo()
	require.Equal(t, 7, v.value)
	require.False(t, e.CanUndo())
}

func TestUndoRedoBoundariesAreNoops(t *testing.T) {
	e, _ := newTestEngine()
	v := &valueSlice{value: 5}
	v.register(e, "objects")

	e.Undo()
	e.Redo()
	require.Equal(t, 5, v.value)

	e.Record("initial")
	e.Undo()
	require.Equal(t, 5, v.value, "single entry cannot be undone past")
}

func TestLastActionEvent(t *testing.T) {
	e, _ := newTestEngine()
	v := &valueSlice{}
	v.register(e, "objects")

	var seen []Action
	e.OnAction(func(a Action) { seen = append(seen, a) })

	e.Record("initial")
	v.value = 1
	e.Record("move")
	e.Undo()
	e.Redo()

	require.Equal(t, "record", seen[0].Kind)
	require.Equal(t, "undo", seen[len(seen)-2].Kind)
	require.Equal(t, "redo", seen[len(seen)-1].Kind)
	require.Equal(t, "move", e.LastAction().Label)
}

func TestSlicesApplyInRegistrationOrder(t *testing.T) {
	e, _ := newTestEngine()
	var order []string
	a, b := 0, 0
	e.RegisterSlice("a", Slice{
		Capture: func() interface{} { return a },
		Apply:   func(v interface{}) { a = v.(int); order = append(order, "a") },
	})
	e.RegisterSlice("b", Slice{
		Capture: func() interface{} { return b },
		Apply:   func(v interface{}) { b = v.(int); order = append(order, "b") },
	})

	e.Record("initial")
	a, b = 1, 2
	e.Record("both")
	e.Undo()

	require.Equal(t, []string{"a", "b"}, order)
}
