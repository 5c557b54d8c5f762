package worldmap

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Double clicks are two presses within this window landing close together.
const (
	doubleClickWindow = 350 * time.Millisecond
	doubleClickSlop   = 5
)

// Engine is the interactive ebiten viewer for one map widget. The choropleth
// is rasterized once into a base image; Draw replays it under the viewport
// transform and layers frame, title, labels and the hover tooltip on top.
type Engine struct {
	Width, Height int

	opts     Options
	viewport *Viewport
	shapes   []regionShape
	labels   []TextLabel

	base       *ebiten.Image
	fontSource *text.GoTextFaceSource
	bg         color.RGBA

	hover       int
	prevPressed bool
	pressX      int
	pressY      int
	dragMoved   bool
	lastClickAt time.Time
	lastClickX  int
	lastClickY  int

	pendingMu sync.Mutex
	pending   []DataItem
}

type regionShape struct {
	ctx     Context
	rings   [][][2]float64
	style   RegionStyle
	tooltip string
}

// NewEngine builds a viewer for the given options. The window width comes
// from opts.Size; the height is fixed at half the width (the native map
// aspect).
func NewEngine(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	width, err := WidthForSize(opts.Size)
	if err != nil {
		return nil, err
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Width:      int(width),
		Height:     int(width / 2),
		opts:       opts,
		viewport:   NewViewport(),
		fontSource: src,
		bg:         parseColor(opts.BackgroundColor),
		hover:      -1,
	}
	if err := e.rebuild(opts.Data); err != nil {
		return nil, err
	}
	return e, nil
}

// Viewport exposes the interaction state, e.g. for tests or for callers
// that want to drive zoom programmatically.
func (e *Engine) Viewport() *Viewport { return e.viewport }

// QueueData replaces the dataset on the next Update tick. Safe to call from
// any goroutine; the live feed uses it.
func (e *Engine) QueueData(items []DataItem) {
	e.pendingMu.Lock()
	e.pending = items
	e.pendingMu.Unlock()
}

// rebuild resolves styles for the dataset and rasterizes the base image.
func (e *Engine) rebuild(items []DataItem) error {
	bind, err := bindData(items)
	if err != nil {
		return err
	}
	feats, err := e.opts.features()
	if err != nil {
		return err
	}

	e.shapes = e.shapes[:0]
	e.labels = e.labels[:0]
	for _, f := range feats {
		ctx := countryContext(f, bind, e.opts)
		e.shapes = append(e.shapes, regionShape{
			ctx:     ctx,
			rings:   projectedRings(f),
			style:   e.opts.Hooks.Style(ctx),
			tooltip: e.opts.Hooks.Tooltip(ctx),
		})
		e.labels = append(e.labels, e.opts.Hooks.Labels(ctx)...)
	}

	img := image.NewRGBA(image.Rect(0, 0, e.Width, e.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{e.bg}, image.Point{}, draw.Src)
	for _, s := range e.shapes {
		fill := blend(e.bg, parseColor(s.style.Fill), s.style.FillOpacity)
		stroke := blend(e.bg, parseColor(s.style.Stroke), s.style.StrokeOpacity)
		e.fillShape(img, s.rings, fill)
		e.strokeShape(img, s.rings, stroke)
	}
	e.base = ebiten.NewImageFromImage(img)
	return nil
}

// toPixel maps native map-space coordinates to base-image pixels.
func (e *Engine) toPixel(x, y float64) (float64, float64) {
	k := float64(e.Width) / mapSpaceWidth
	return x * k, (y + mapVerticalShift) * k
}

// fromPixel inverts the full screen transform back to native map space.
func (e *Engine) fromPixel(px, py float64) (float64, float64) {
	tx, ty := e.viewport.Translation()
	s := e.viewport.Scale()
	k := float64(e.Width) / mapSpaceWidth
	bx := (px - tx) / s
	by := (py - ty) / s
	return bx / k, by/k - mapVerticalShift
}

func (e *Engine) fillShape(img *image.RGBA, rings [][][2]float64, c color.RGBA) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	px := make([][][2]float64, len(rings))
	for i, ring := range rings {
		px[i] = make([][2]float64, len(ring))
		for j, p := range ring {
			x, y := e.toPixel(p[0], p[1])
			px[i][j] = [2]float64{x, y}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if minY > maxY {
		return
	}
	for y := int(minY); y <= int(maxY); y++ {
		if y < 0 || y >= e.Height {
			continue
		}
		fy := float64(y)
		var nodes []int
		for _, ring := range px {
			n := len(ring)
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				if (ring[i][1] < fy && ring[j][1] >= fy) || (ring[j][1] < fy && ring[i][1] >= fy) {
					x := ring[i][0] + (fy-ring[i][1])/(ring[j][1]-ring[i][1])*(ring[j][0]-ring[i][0])
					nodes = append(nodes, int(x))
				}
			}
		}
		sort.Ints(nodes)
		for i := 0; i+1 < len(nodes); i += 2 {
			xs, xe := nodes[i], nodes[i+1]
			if xs < 0 {
				xs = 0
			}
			if xe >= e.Width {
				xe = e.Width - 1
			}
			for x := xs; x <= xe; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func (e *Engine) strokeShape(img *image.RGBA, rings [][][2]float64, c color.RGBA) {
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			x1, y1 := e.toPixel(ring[i][0], ring[i][1])
			x2, y2 := e.toPixel(ring[j][0], ring[j][1])
			e.line(img, int(x1), int(y1), int(x2), int(y2), c)
		}
	}
}

func (e *Engine) line(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		if x1 >= 0 && x1 < e.Width && y1 >= 0 && y1 < e.Height {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// hitTest returns the index of the topmost shape containing the screen
// point, or -1.
func (e *Engine) hitTest(px, py float64) int {
	x, y := e.fromPixel(px, py)
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if ringsContain(e.shapes[i].rings, x, y) {
			return i
		}
	}
	return -1
}

// applyPending swaps in the latest queued dataset, if any. A bad snapshot
// is logged and skipped; a stray feed message must never kill the viewer.
func (e *Engine) applyPending() {
	e.pendingMu.Lock()
	pending := e.pending
	e.pending = nil
	e.pendingMu.Unlock()
	if pending == nil {
		return
	}
	if err := e.rebuild(pending); err != nil {
		log.Printf("Ignoring dataset update: %v", err)
	}
}

func (e *Engine) Update() error {
	e.applyPending()

	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	inside := x >= 0 && x < e.Width && y >= 0 && y < e.Height
	if !inside {
		e.viewport.PointerLeave()
		e.hover = -1
		e.prevPressed = pressed
		return nil
	}

	e.handleMouse(x, y, pressed)
	if e.opts.RichInteraction && !e.viewport.Dragging() {
		e.hover = e.hitTest(float64(x), float64(y))
	}
	e.syncCursorShape()
	return nil
}

// handleMouse turns raw button state into click, drag, and double-click
// events. Click dispatch is always live; pan, zoom, and double-click
// synthesis apply only with rich interaction enabled.
func (e *Engine) handleMouse(x, y int, pressed bool) {
	justPressed := pressed && !e.prevPressed
	released := !pressed && e.prevPressed
	e.prevPressed = pressed

	fx, fy := float64(x), float64(y)

	switch {
	case justPressed:
		if e.opts.RichInteraction {
			bounds := Rect{X: 0, Y: 0, W: float64(e.Width), H: float64(e.Height)}
			if time.Since(e.lastClickAt) < doubleClickWindow &&
				abs(x-e.lastClickX) <= doubleClickSlop && abs(y-e.lastClickY) <= doubleClickSlop {
				e.viewport.DoubleClick(fx, fy, bounds)
				e.lastClickAt = time.Time{}
			} else {
				e.viewport.PointerDown(fx, fy)
				e.lastClickAt = time.Now()
				e.lastClickX, e.lastClickY = x, y
			}
		}
		e.pressX, e.pressY = x, y
		e.dragMoved = false
	case pressed:
		if abs(x-e.pressX) > doubleClickSlop || abs(y-e.pressY) > doubleClickSlop {
			e.dragMoved = true
		}
		e.viewport.PointerMove(fx, fy)
	case released:
		e.viewport.PointerUp()
		if !e.dragMoved {
			if i := e.hitTest(fx, fy); i >= 0 {
				e.opts.Hooks.Click(e.shapes[i].ctx)
			}
		}
	}
}

func (e *Engine) syncCursorShape() {
	switch e.viewport.Cursor() {
	case CursorGrabbing, CursorGrab:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	default:
		if e.hover >= 0 && e.shapes[e.hover].tooltip != "" {
			ebiten.SetCursorShape(ebiten.CursorShapePointer)
		} else {
			ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		}
	}
}

func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(e.bg)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(e.viewport.Scale(), e.viewport.Scale())
	tx, ty := e.viewport.Translation()
	op.GeoM.Translate(tx, ty)
	screen.DrawImage(e.base, op)

	if e.opts.Frame {
		vector.StrokeRect(screen, 0.5, 0.5, float32(e.Width)-1, float32(e.Height)-1,
			1, parseColor(e.opts.FrameColor), false)
	}
	e.drawTitle(screen)
	e.drawLabels(screen)
	e.drawTooltip(screen)
}

func (e *Engine) drawTitle(screen *ebiten.Image) {
	if e.opts.Title == "" {
		return
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: 14}
	op := &text.DrawOptions{}
	if e.opts.RTL {
		w, _ := text.Measure(e.opts.Title, face, 0)
		op.GeoM.Translate(float64(e.Width)-w-8, 6)
	} else {
		op.GeoM.Translate(8, 6)
	}
	fg := parseColor(e.opts.Color)
	op.ColorScale.Scale(float32(fg.R)/255, float32(fg.G)/255, float32(fg.B)/255, 1)
	text.Draw(screen, e.opts.Title, face, op)
}

func (e *Engine) drawLabels(screen *ebiten.Image) {
	for _, l := range e.labels {
		size := l.FontSize
		if size <= 0 {
			size = 12
		}
		face := &text.GoTextFace{Source: e.fontSource, Size: size}
		op := &text.DrawOptions{}
		op.GeoM.Translate(l.X, l.Y)
		c := parseColor(l.Color)
		op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
		text.Draw(screen, l.Text, face, op)
	}
}

func (e *Engine) drawTooltip(screen *ebiten.Image) {
	if !e.opts.RichInteraction || e.hover < 0 {
		return
	}
	tip := e.shapes[e.hover].tooltip
	if tip == "" {
		return
	}
	x, y := ebiten.CursorPosition()
	face := &text.GoTextFace{Source: e.fontSource, Size: 12}
	w, h := text.Measure(tip, face, 0)

	const pad = 6
	bx, by := float64(x)+14, float64(y)+14
	if bx+w+2*pad > float64(e.Width) {
		bx = float64(e.Width) - w - 2*pad
	}
	if by+h+2*pad > float64(e.Height) {
		by = float64(y) - h - 2*pad - 4
	}

	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(w+2*pad), float32(h+2*pad),
		parseColor(e.opts.TooltipBGColor), false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(bx+pad, by+pad)
	c := parseColor(e.opts.TooltipTextColor)
	op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
	text.Draw(screen, tip, face, op)
}

func (e *Engine) Layout(int, int) (int, int) { return e.Width, e.Height }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
