package document

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// recordingSpy counts history records so the mutation-records-history
// contract is checked per operation.
type recordingSpy struct {
	labels []string
}

func (r *recordingSpy) Record(label string) { r.labels = append(r.labels, label) }

func newTestStore() (*Store, *recordingSpy) {
	spy := &recordingSpy{}
	s := NewStore(spy)
	s.SetClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) })
	seq := 0
	s.SetIDSource(func() string {
		seq++
		return fmt.Sprintf("obj_%03d", seq)
	})
	return s, spy
}

func TestAddObjectAssignsIdentityAndTimestamps(t *testing.T) {
	s, spy := newTestStore()

	id := s.CreateRectangle(10, 20, 100, 50)
	require.Equal(t, "obj_001", id)

	o, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, ShapeRectangle, o.Type)
	require.Equal(t, "2024-06-01T12:00:00Z", o.CreatedAt)
	require.Equal(t, o.CreatedAt, o.UpdatedAt)
	require.Equal(t, "local", o.CreatedBy)
	require.Equal(t, 1.0, o.Opacity)
	require.Equal(t, []string{"add rectangle"}, spy.labels)
}

func TestUpdateObjectMergesAndRecords(t *testing.T) {
	s, spy := newTestStore()
	id := s.CreateRectangle(0, 0, 50, 50)
	spy.labels = nil

	w := 120.0
	fill := "#112233"
	s.UpdateObject(id, Patch{Width: &w, Fill: &fill})

	o, _ := s.Get(id)
	require.Equal(t, 120.0, o.Width)
	require.Equal(t, "#112233", o.Fill)
	require.Equal(t, 50.0, o.Height, "unpatched fields untouched")
	require.Len(t, spy.labels, 1)
}

func TestUpdateObjectMissingIDIsNoop(t *testing.T) {
	s, spy := newTestStore()
	spy.labels = nil

	w := 10.0
	s.UpdateObject("obj_nothere", Patch{Width: &w})
	require.Empty(t, spy.labels, "missing id must not record")
}

func TestUpdateClampsOutOfRangeValues(t *testing.T) {
	s, _ := newTestStore()
	id := s.CreateRectangle(0, 0, 50, 50)

	w := -30.0
	op := 4.0
	sw := -2.0
	s.UpdateObject(id, Patch{Width: &w, Opacity: &op, StrokeWidth: &sw})

	o, _ := s.Get(id)
	require.Equal(t, 0.0, o.Width)
	require.Equal(t, 1.0, o.Opacity)
	require.Equal(t, 0.0, o.StrokeWidth)
}

func TestDeleteObjectPrunesSelection(t *testing.T) {
	s, _ := newTestStore()
	a := s.CreateRectangle(0, 0, 10, 10)
	b := s.CreateEllipse(20, 20, 10, 10)
	s.SelectObjects([]string{a, b})

	s.DeleteObject(a)

	require.Equal(t, []string{b}, s.Selection())
	_, ok := s.Get(a)
	require.False(t, ok)
}

func TestSelectObjectsDeduplicatesAndOrders(t *testing.T) {
	s, _ := newTestStore()
	a := s.CreateRectangle(0, 0, 10, 10)
	b := s.CreateEllipse(0, 0, 10, 10)

	s.SelectObjects([]string{b, a, b, "ghost"})

	require.Equal(t, []string{b, a}, s.Selection())
	require.Equal(t, b, s.PrimarySelection())
}

func TestDeleteSelected(t *testing.T) {
	s, _ := newTestStore()
	a := s.CreateRectangle(0, 0, 10, 10)
	s.CreateEllipse(0, 0, 10, 10)
	s.SelectObjects([]string{a})

	s.DeleteSelected()

	require.Equal(t, 1, s.Len())
	require.Empty(t, s.Selection())
}

func TestDuplicateSelectedOffsetsAndSelectsClones(t *testing.T) {
	s, _ := newTestStore()
	a := s.CreateRectangle(100, 100, 40, 40)
	s.SelectObjects([]string{a})

	newIDs := s.DuplicateSelected()
	require.Len(t, newIDs, 1)
	require.Equal(t, newIDs, s.Selection())

	clone, _ := s.Get(newIDs[0])
	require.Equal(t, 110.0, clone.X)
	require.Equal(t, 110.0, clone.Y)
	require.NotEqual(t, a, clone.ID)
}

func TestCopyPaste(t *testing.T) {
	s, _ := newTestStore()
	a := s.CreateStar(geometry.Point{X: 100, Y: 100}, 50, geometry.DefaultStarRotation, 5)
	s.SelectObjects([]string{a})
	s.CopySelected()

	// Mutating after copy must not affect the clipboard snapshot.
	s.DeleteSelected()
	pasted := s.Paste()

	require.Len(t, pasted, 1)
	require.Equal(t, pasted, s.Selection())
	o, _ := s.Get(pasted[0])
	require.Equal(t, ShapeStar, o.Type)
	require.Equal(t, 60.0, o.X, "paste applies the positional offset")
}

func TestSelectAll(t *testing.T) {
	s, _ := newTestStore()
	s.CreateRectangle(0, 0, 10, 10)
	s.CreateEllipse(0, 0, 10, 10)

	s.SelectAll()
	require.Len(t, s.Selection(), 2)
}

func TestFactoryClampsStarParams(t *testing.T) {
	s, _ := newTestStore()
	id := s.CreateStar(geometry.Point{X: 0, Y: 0}, 40, geometry.DefaultStarRotation, 99)

	o, _ := s.Get(id)
	require.Equal(t, geometry.MaxStarPoints, o.Star.Points)
	require.InDelta(t, 40, o.Star.OuterRadius, 1e-9)
	require.InDelta(t, 20, o.Star.InnerRadius, 1e-9)
	require.InDelta(t, 0.5, o.Star.InnerRadius/o.Star.OuterRadius, 1e-9)
}

func TestFactoryClampsPolygonSides(t *testing.T) {
	s, _ := newTestStore()
	id := s.CreatePolygon(geometry.Point{X: 0, Y: 0}, 30, geometry.DefaultPolygonRotation, 1)

	o, _ := s.Get(id)
	require.Equal(t, geometry.MinPolygonSides, o.Polygon.Sides)
	require.Equal(t, o.Width, o.Height, "polygon box is square")
}

func TestReconcileParamsAfterResize(t *testing.T) {
	s, _ := newTestStore()
	id := s.CreateTriangle(0, 0, 100, 100, geometry.TriangleEquilateral, geometry.TriangleDown)

	w := 60.0
	h := 200.0
	s.UpdateObject(id, Patch{Width: &w, Height: &h})

	o, _ := s.Get(id)
	base, height := geometry.ResolveEquilateralSize(60, 200)
	require.InDelta(t, base, o.Triangle.Base, 1e-9)
	require.InDelta(t, height, o.Triangle.Height, 1e-9)
}

func TestParamBlockPresentIffTypeMatches(t *testing.T) {
	s, _ := newTestStore()
	for _, build := range []func() string{
		func() string { return s.CreateRectangle(0, 0, 10, 10) },
		func() string { return s.CreateStar(geometry.Point{}, 10, 0, 5) },
		func() string { return s.CreateTriangle(0, 0, 10, 10, geometry.TriangleIsosceles, geometry.TriangleDown) },
		func() string { return s.CreatePolygon(geometry.Point{}, 10, 0, 6) },
		func() string { return s.CreateRoundedRectangle(0, 0, 40, 40, 5) },
		func() string {
			return s.CreateArrow(geometry.Point{}, geometry.Point{X: 50}, geometry.ArrowOptions{})
		},
	} {
		id := build()
		o, _ := s.Get(id)
		require.Equal(t, o.Type == ShapeTriangle, o.Triangle != nil, "type %s", o.Type)
		require.Equal(t, o.Type == ShapeStar, o.Star != nil, "type %s", o.Type)
		require.Equal(t, o.Type == ShapePolygon, o.Polygon != nil, "type %s", o.Type)
		require.Equal(t, o.Type == ShapeRoundedRectangle, o.RoundedRect != nil, "type %s", o.Type)
		require.Equal(t, o.Type == ShapeArrow, o.Arrow != nil, "type %s", o.Type)
	}
}

func TestDocumentSerializationRoundTrip(t *testing.T) {
	s, _ := newTestStore()
	s.CreateRectangle(10, 20, 100, 50)
	id := s.CreateStar(geometry.Point{X: 200, Y: 200}, 60, geometry.DefaultStarRotation, 7)
	s.SelectObjects([]string{id})
	s.SetActiveTool(ToolFor(ShapeStar))

	data, err := s.MarshalDocument()
	require.NoError(t, err)

	// The wire layout is the flat ShapeObject contract.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "objects")
	require.Contains(t, raw, "selectedIds")
	require.Contains(t, raw, "activeTool")

	restored := NewStore(nil)
	require.NoError(t, restored.LoadDocument(data))
	require.Equal(t, s.Len(), restored.Len())
	require.Equal(t, []string{id}, restored.Selection())
	require.Equal(t, ToolFor(ShapeStar), restored.ActiveTool())

	o, ok := restored.Get(id)
	require.True(t, ok)
	require.Equal(t, 7, o.Star.Points)
	require.InDelta(t, 60, o.Star.OuterRadius, 1e-9)
}

func TestObjectsSnapshotIsDeep(t *testing.T) {
	s, _ := newTestStore()
	id := s.CreateRectangle(0, 0, 10, 10)

	snap := s.CaptureObjects()
	x := 999.0
	s.UpdateObject(id, Patch{X: &x})

	s.ApplyObjects(snap)
	o, _ := s.Get(id)
	require.Equal(t, 0.0, o.X, "apply restores the snapshot value")
}
