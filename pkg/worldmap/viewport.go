package worldmap

import "fmt"

// Cursor is the pointer indicator the host should show for the current
// viewport state.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

// Rect is a container's on-screen bounding box.
type Rect struct {
	X, Y, W, H float64
}

// maxZoom is the ceiling of the double-click ladder: 1x -> 2x -> 4x -> 1x.
const maxZoom = 4

// Viewport owns the map's zoom scale and pan translation and is the only
// place either is mutated. Pointer handlers are advisory: malformed input
// (a leave without a matching down, a double-click with no measurable
// container) degrades to a no-op, never a panic.
//
// Panning is snapshot-relative: a drag session records the pointer's start
// position and the translation at drag start, and every move recomputes the
// translation from that fixed snapshot. Coalesced or out-of-order move
// events therefore produce the same final transform as a lossless stream.
type Viewport struct {
	scale float64
	tx    float64
	ty    float64
	drag  *dragSession
}

type dragSession struct {
	startX, startY float64
	baseTX, baseTY float64
}

// NewViewport returns an identity viewport (scale 1, origin translation).
func NewViewport() *Viewport {
	return &Viewport{scale: 1}
}

// Scale returns the current zoom scale, always >= 1.
func (v *Viewport) Scale() float64 { return v.scale }

// Translation returns the current pan offset in output pixels.
func (v *Viewport) Translation() (x, y float64) { return v.tx, v.ty }

// Dragging reports whether a drag session is active.
func (v *Viewport) Dragging() bool { return v.drag != nil }

// Cursor derives the pointer indicator: grabbing during a drag, grab when
// zoomed in, default otherwise.
func (v *Viewport) Cursor() Cursor {
	switch {
	case v.drag != nil:
		return CursorGrabbing
	case v.scale > 1:
		return CursorGrab
	default:
		return CursorDefault
	}
}

// PointerDown opens a drag session. Panning is disabled until zoomed in, so
// this is a no-op at scale <= 1. A second down during an active session is
// ignored.
func (v *Viewport) PointerDown(x, y float64) {
	if v.scale <= 1 || v.drag != nil {
		return
	}
	v.drag = &dragSession{startX: x, startY: y, baseTX: v.tx, baseTY: v.ty}
}

// PointerMove recomputes the translation from the drag-start snapshot. The
// final translation depends only on the snapshot and the last pointer
// position; intermediate moves are redundant.
func (v *Viewport) PointerMove(x, y float64) {
	if v.drag == nil {
		return
	}
	v.tx = v.drag.baseTX + x - v.drag.startX
	v.ty = v.drag.baseTY + y - v.drag.startY
}

// PointerUp ends the drag session.
func (v *Viewport) PointerUp() { v.drag = nil }

// PointerLeave ends the drag session. Safe without a matching PointerDown.
func (v *Viewport) PointerLeave() { v.drag = nil }

// DoubleClick steps the zoom ladder. Zooming in doubles the scale and
// recenters so the clicked point stays under the pointer; past maxZoom the
// viewport resets to identity. Any active drag session ends, since its
// snapshot predates the new transform. The click position is interpreted
// relative to the container bounds; degenerate bounds (an unmeasured
// container) make this a no-op.
func (v *Viewport) DoubleClick(x, y float64, container Rect) {
	if container.W <= 0 || container.H <= 0 {
		return
	}
	if v.scale >= maxZoom {
		v.Reset()
		return
	}
	v.tx = 2*v.tx - (x - container.X)
	v.ty = 2*v.ty - (y - container.Y)
	v.scale *= 2
	v.drag = nil
}

// Reset snaps the viewport back to identity and ends any drag session.
func (v *Viewport) Reset() {
	v.scale = 1
	v.tx, v.ty = 0, 0
	v.drag = nil
}

// TransformString is the combined SVG transform for a map rendered at the
// given output width. The 960 divisor and 240 offset tie the transform to
// the native coordinate space of the bundled geometry.
func (v *Viewport) TransformString(width float64) string {
	return fmt.Sprintf("translate(%s, %s) scale(%s) translate(0, 240)",
		fmtCoord(v.tx), fmtCoord(v.ty), fmtScale(width/mapSpaceWidth*v.scale))
}
