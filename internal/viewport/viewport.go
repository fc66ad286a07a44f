// Package viewport owns the camera over the canvas: pan offset, zoom and
// grid visibility. It registers the "canvas" history slice and coalesces
// high-frequency updates to at most one history record per frame.
package viewport

import (
	"math"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
	"github.com/Nimsalcade/FigmaClone/internal/history"
)

// Zoom bounds. Scale is clamped, never rejected.
const (
	MinScale     = 0.1
	MaxScale     = 8.0
	DefaultScale = 1.0
)

// fitPadding is the margin kept around content on fit-to-content, in
// screen pixels.
const fitPadding = 40.0

// panBatchKey groups an interactive pan gesture into one undo step.
const panBatchKey = "viewport.pan"

// State is the serializable camera state; it is what the "canvas" history
// slice captures.
type State struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	ShowGrid bool    `json:"showGrid"`
}

// CancelFunc cancels a scheduled frame callback.
type CancelFunc func()

// FrameScheduler defers a callback to the next animation frame. The
// returned cancel must be safe to call after the callback ran.
type FrameScheduler interface {
	Request(fn func()) CancelFunc
}

// Immediate is a FrameScheduler that runs callbacks synchronously. Used
// where no frame loop exists (tests, the session server).
type Immediate struct{}

func (Immediate) Request(fn func()) CancelFunc {
	fn()
	return func() {}
}

// Viewport is the camera store. High-frequency writes (pan, zoom) buffer a
// single history record and flush it on the next frame; Close cancels any
// pending flush so a disposed viewport never writes again.
type Viewport struct {
	state State

	hist  *history.Engine
	sched FrameScheduler

	pending CancelFunc
	closed  bool
}

// New returns a viewport at the origin with the default zoom.
func New(sched FrameScheduler) *Viewport {
	if sched == nil {
		sched = Immediate{}
	}
	return &Viewport{
		state: State{Scale: DefaultScale, ShowGrid: true},
		sched: sched,
	}
}

// RegisterHistory registers the "canvas" slice on the history engine.
func (v *Viewport) RegisterHistory(h *history.Engine) {
	v.hist = h
	h.RegisterSlice("canvas", history.Slice{
		Capture: func() interface{} { return v.state },
		Apply: func(s interface{}) {
			if st, ok := s.(State); ok {
				v.state = st
			}
		},
	})
}

// State returns the current camera state.
func (v *Viewport) State() State { return v.state }

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.state.Scale }

// Pan shifts the camera by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.state.X += dx
	v.state.Y += dy
	v.scheduleRecord("pan canvas")
}

// BeginPan opens a history batch so a whole drag undoes in one step.
func (v *Viewport) BeginPan() {
	if v.hist != nil {
		v.hist.BeginBatch("pan canvas", panBatchKey)
	}
}

// EndPan closes the pan batch.
func (v *Viewport) EndPan() {
	v.flushNow()
	if v.hist != nil {
		v.hist.CommitBatch(panBatchKey)
	}
}

// SetScale sets the zoom factor, clamped to [MinScale, MaxScale].
func (v *Viewport) SetScale(s float64) {
	v.state.Scale = geometry.Clamp(s, MinScale, MaxScale)
	v.scheduleRecord("zoom canvas")
}

// ZoomAt multiplies the zoom by factor keeping the given screen point
// fixed, so the zoom centers on the cursor.
func (v *Viewport) ZoomAt(factor, sx, sy float64) {
	old := v.state.Scale
	next := geometry.Clamp(old*factor, MinScale, MaxScale)
	if next == old {
		return
	}
	wx, wy := v.ToWorld(sx, sy)
	v.state.Scale = next
	v.state.X = sx - wx*next
	v.state.Y = sy - wy*next
	v.scheduleRecord("zoom canvas")
}

// SetShowGrid toggles the background grid.
func (v *Viewport) SetShowGrid(show bool) {
	if v.state.ShowGrid == show {
		return
	}
	v.state.ShowGrid = show
	v.recordNow("toggle grid")
}

// FitToContent centers the camera on the given world bounds at the largest
// zoom that keeps them fully visible inside a viewport of the given screen
// size. Empty bounds reset to the origin at default zoom.
func (v *Viewport) FitToContent(bounds geometry.Rect, screenW, screenH float64) {
	if bounds.IsEmpty() || screenW <= 0 || screenH <= 0 {
		v.state.X, v.state.Y = 0, 0
		v.state.Scale = DefaultScale
		v.recordNow("fit to content")
		return
	}

	scale := math.Min(
		(screenW-2*fitPadding)/bounds.Width,
		(screenH-2*fitPadding)/bounds.Height,
	)
	scale = geometry.Clamp(scale, MinScale, MaxScale)

	center := bounds.Center()
	v.state.Scale = scale
	v.state.X = screenW/2 - center.X*scale
	v.state.Y = screenH/2 - center.Y*scale
	v.recordNow("fit to content")
}

// Matrix returns the world→screen transform.
func (v *Viewport) Matrix() geometry.Matrix2D {
	return geometry.Translate(v.state.X, v.state.Y).Multiply(geometry.Scale(v.state.Scale, v.state.Scale))
}

// ToWorld converts a screen point to world coordinates.
func (v *Viewport) ToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.state.X) / v.state.Scale, (sy - v.state.Y) / v.state.Scale
}

// ToScreen converts a world point to screen coordinates.
func (v *Viewport) ToScreen(wx, wy float64) (float64, float64) {
	return wx*v.state.Scale + v.state.X, wy*v.state.Scale + v.state.Y
}

// Close cancels any pending frame flush. Further writes are silently
// dropped from history; a disposed viewport must never record.
func (v *Viewport) Close() {
	v.closed = true
	if v.pending != nil {
		v.pending()
		v.pending = nil
	}
}

// scheduleRecord buffers one history record for the next frame. Repeated
// writes inside the same frame share the flush.
func (v *Viewport) scheduleRecord(label string) {
	if v.hist == nil || v.closed {
		return
	}
	if v.pending != nil {
		return
	}
	ran := false
	cancel := v.sched.Request(func() {
		ran = true
		v.pending = nil
		if v.closed {
			return
		}
		v.hist.Record(label, history.Options{BatchKey: panBatchKey})
	})
	// A synchronous scheduler already ran the flush; don't hold its cancel.
	if !ran {
		v.pending = cancel
	}
}

// flushNow runs a pending flush immediately, used when a gesture ends.
func (v *Viewport) flushNow() {
	if v.pending != nil {
		v.pending()
		v.pending = nil
	}
	if v.hist != nil && !v.closed {
		v.hist.Record("pan canvas", history.Options{BatchKey: panBatchKey})
	}
}

func (v *Viewport) recordNow(label string) {
	if v.hist == nil || v.closed {
		return
	}
	v.hist.Record(label)
}
