package worldmap

import "testing"

var testBounds = Rect{X: 0, Y: 0, W: 640, H: 320}

func TestDoubleClickZoomLadder(t *testing.T) {
	v := NewViewport()

	v.DoubleClick(100, 50, testBounds)
	if v.Scale() != 2 {
		t.Errorf("after 1 double-click scale = %v, want 2", v.Scale())
	}
	v.DoubleClick(100, 50, testBounds)
	if v.Scale() != 4 {
		t.Errorf("after 2 double-clicks scale = %v, want 4", v.Scale())
	}
	v.DoubleClick(100, 50, testBounds)
	if v.Scale() != 1 {
		t.Errorf("after 3 double-clicks scale = %v, want 1 (wrap)", v.Scale())
	}
	if tx, ty := v.Translation(); tx != 0 || ty != 0 {
		t.Errorf("translation after wrap = (%v, %v), want exactly (0, 0)", tx, ty)
	}
}

func TestDoubleClickRecentersOnClickPoint(t *testing.T) {
	v := NewViewport()
	v.DoubleClick(100, 80, testBounds)
	if tx, ty := v.Translation(); tx != -100 || ty != -80 {
		t.Errorf("translation = (%v, %v), want (-100, -80)", tx, ty)
	}

	// Container offset shifts the click position into container space.
	v = NewViewport()
	v.DoubleClick(130, 100, Rect{X: 30, Y: 20, W: 640, H: 320})
	if tx, ty := v.Translation(); tx != -100 || ty != -80 {
		t.Errorf("translation with offset container = (%v, %v), want (-100, -80)", tx, ty)
	}
}

func TestDoubleClickWithoutBoundsIsNoop(t *testing.T) {
	v := NewViewport()
	v.DoubleClick(100, 80, Rect{})
	if v.Scale() != 1 {
		t.Errorf("scale = %v, want 1 (unmeasured container must be a no-op)", v.Scale())
	}
}

func TestPanDisabledAtBaseScale(t *testing.T) {
	v := NewViewport()
	v.PointerDown(100, 100)
	v.PointerMove(180, 140)
	v.PointerUp()
	if tx, ty := v.Translation(); tx != 0 || ty != 0 {
		t.Errorf("translation = (%v, %v), want (0, 0): panning must be disabled at scale 1", tx, ty)
	}
	if v.Cursor() != CursorDefault {
		t.Errorf("cursor = %v, want CursorDefault", v.Cursor())
	}
}

func TestDragIsSnapshotRelative(t *testing.T) {
	// The worked example: scale 2, translation (0,0), down at (100,100).
	v := NewViewport()
	v.DoubleClick(0, 0, testBounds) // scale 2, translation stays (0,0)

	v.PointerDown(100, 100)
	if v.Cursor() != CursorGrabbing {
		t.Errorf("cursor during drag = %v, want CursorGrabbing", v.Cursor())
	}

	v.PointerMove(150, 130)
	if tx, ty := v.Translation(); tx != 50 || ty != 30 {
		t.Errorf("after first move translation = (%v, %v), want (50, 30)", tx, ty)
	}

	// Moving back past the start must recompute from the snapshot, not
	// accumulate: (20, -10), not (70, 20).
	v.PointerMove(120, 90)
	if tx, ty := v.Translation(); tx != 20 || ty != -10 {
		t.Errorf("after second move translation = (%v, %v), want (20, -10)", tx, ty)
	}

	v.PointerUp()
	if v.Cursor() != CursorGrab {
		t.Errorf("cursor after drag at scale>1 = %v, want CursorGrab", v.Cursor())
	}
}

func TestFinalTranslationIgnoresIntermediateMoves(t *testing.T) {
	run := func(moves [][2]float64) (float64, float64) {
		v := NewViewport()
		v.DoubleClick(0, 0, testBounds)
		v.PointerDown(10, 10)
		for _, m := range moves {
			v.PointerMove(m[0], m[1])
		}
		v.PointerUp()
		return v.Translation()
	}

	directX, directY := run([][2]float64{{200, 150}})
	noisyX, noisyY := run([][2]float64{{50, 90}, {300, 20}, {7, 7}, {200, 150}})
	if directX != noisyX || directY != noisyY {
		t.Errorf("final translation differs: direct (%v, %v) vs noisy (%v, %v)",
			directX, directY, noisyX, noisyY)
	}
}

func TestPointerLeaveWithoutDrag(t *testing.T) {
	v := NewViewport()
	v.PointerLeave() // must not panic
	if v.Dragging() {
		t.Error("Dragging() = true after stray PointerLeave")
	}

	v.DoubleClick(0, 0, testBounds)
	v.PointerDown(10, 10)
	v.PointerLeave()
	if v.Dragging() {
		t.Error("PointerLeave must end the drag session")
	}
	// Moves after the leave are ignored.
	v.PointerMove(500, 500)
	if tx, ty := v.Translation(); tx != 0 || ty != 0 {
		t.Errorf("translation after post-leave move = (%v, %v), want (0, 0)", tx, ty)
	}
}

func TestDoubleClickEndsDrag(t *testing.T) {
	v := NewViewport()
	v.DoubleClick(0, 0, testBounds) // scale 2
	v.PointerDown(100, 100)
	v.PointerMove(110, 100)
	v.DoubleClick(110, 100, testBounds)
	if v.Dragging() {
		t.Error("drag session survived a zoom; its snapshot predates the new transform")
	}
	if tx, ty := v.Translation(); tx != -90 || ty != -100 {
		t.Errorf("translation = (%v, %v), want (-90, -100)", tx, ty)
	}
	// A stale session must not undo the recentering.
	v.PointerMove(300, 300)
	if tx, ty := v.Translation(); tx != -90 || ty != -100 {
		t.Errorf("translation after post-zoom move = (%v, %v), want (-90, -100)", tx, ty)
	}
}

func TestSecondPointerDownKeepsSession(t *testing.T) {
	v := NewViewport()
	v.DoubleClick(0, 0, testBounds)
	v.PointerDown(10, 10)
	v.PointerDown(400, 400) // ignored
	v.PointerMove(30, 25)
	if tx, ty := v.Translation(); tx != 20 || ty != 15 {
		t.Errorf("translation = (%v, %v), want (20, 15): second down must not restart the session", tx, ty)
	}
}

func TestTransformString(t *testing.T) {
	v := NewViewport()
	got := v.TransformString(480)
	want := "translate(0, 0) scale(0.5) translate(0, 240)"
	if got != want {
		t.Errorf("TransformString(480) = %q, want %q", got, want)
	}

	v.DoubleClick(100, 80, testBounds)
	got = v.TransformString(960)
	want = "translate(-100, -80) scale(2) translate(0, 240)"
	if got != want {
		t.Errorf("TransformString(960) zoomed = %q, want %q", got, want)
	}
}
