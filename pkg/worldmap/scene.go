package worldmap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownSize is returned for a size that is neither a named breakpoint
// nor a pixel count.
var ErrUnknownSize = errors.New("unknown map size")

// namedSizes are the responsive breakpoint widths, in output pixels.
var namedSizes = map[string]float64{
	"sm":  240,
	"md":  336,
	"lg":  480,
	"xl":  640,
	"xxl": 1200,
}

// WidthForSize resolves a size spec ("sm".."xxl" or a pixel count such as
// "800") to an output width.
func WidthForSize(size string) (float64, error) {
	if size == "" {
		return namedSizes["md"], nil
	}
	if w, ok := namedSizes[size]; ok {
		return w, nil
	}
	w, err := strconv.ParseFloat(size, 64)
	if err != nil || w <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return w, nil
}

// Options configures one map widget. Only Data is required.
type Options struct {
	Data []DataItem

	Title       string
	ValuePrefix string
	ValueSuffix string

	// Color is the base fill passed to the style hook. Size is a named
	// breakpoint or a pixel count, see WidthForSize.
	Color string
	Size  string

	// StrokeOpacity is the country border opacity; nil means the default
	// 0.2, an explicit zero renders invisible borders.
	StrokeOpacity    *float64
	BackgroundColor  string
	FrameColor       string
	BorderColor      string
	TooltipBGColor   string
	TooltipTextColor string

	// RTL renders the caption and labels right-to-left.
	RTL bool
	// Frame draws a decorative border around the SVG canvas.
	Frame bool
	// RichInteraction enables hover tooltips and pan/zoom in the viewer.
	RichInteraction bool

	// Hooks overrides the per-country style/tooltip/label/click/href
	// resolution; nil means DefaultHooks.
	Hooks Hooks

	// PathCache, when set, memoizes projected path strings keyed by ISO
	// code. Paths depend only on the static geometry, so entries never
	// expire. utils.PathStore is a persistent implementation.
	PathCache PathCache

	// Features overrides the bundled geometry table, e.g. with a higher
	// resolution file parsed by ParseFeatures.
	Features []CountryFeature
}

func (o Options) features() ([]CountryFeature, error) {
	if o.Features != nil {
		return o.Features, nil
	}
	return Features()
}

// PathCache memoizes projected path strings keyed by country code.
type PathCache interface {
	Get(code string) (string, bool)
	Put(code, path string) error
}

func (o Options) withDefaults() Options {
	if o.Color == "" {
		o.Color = "black"
	}
	if o.BackgroundColor == "" {
		o.BackgroundColor = "white"
	}
	if o.FrameColor == "" {
		o.FrameColor = "black"
	}
	if o.BorderColor == "" {
		o.BorderColor = "black"
	}
	if o.TooltipBGColor == "" {
		o.TooltipBGColor = "black"
	}
	if o.TooltipTextColor == "" {
		o.TooltipTextColor = "white"
	}
	if o.StrokeOpacity == nil {
		def := 0.2
		o.StrokeOpacity = &def
	}
	if o.Hooks == nil {
		o.Hooks = DefaultHooks{BorderColor: o.BorderColor, StrokeOpacity: *o.StrokeOpacity}
	}
	return o
}

// Scene is the renderable output of one composition pass: everything the
// SVG renderer or the interactive viewer needs, with all per-country
// decisions already resolved.
type Scene struct {
	Width  float64
	Height float64

	Title           string
	BackgroundColor string
	RTL             bool

	// Frame is nil when the decorative border is disabled.
	Frame *Frame

	// Transform positions the country group; see Viewport.TransformString.
	Transform string

	Regions []Region
	Labels  []TextLabel
}

// Frame is the decorative border drawn around the canvas.
type Frame struct {
	Color string
}

// Region is one country shape with its resolved presentation.
type Region struct {
	Code    string
	Name    string
	Path    string
	Style   RegionStyle
	Tooltip string
	Href    string
}

// BuildScene composes the scene from the bundled geometry, the caller's
// dataset and options, and the viewport state. It is a pure function apart
// from the optional path cache; a nil viewport means the identity view.
func BuildScene(opts Options, vp *Viewport) (*Scene, error) {
	opts = opts.withDefaults()

	width, err := WidthForSize(opts.Size)
	if err != nil {
		return nil, err
	}
	feats, err := opts.features()
	if err != nil {
		return nil, err
	}
	bind, err := bindData(opts.Data)
	if err != nil {
		return nil, err
	}
	if vp == nil {
		vp = NewViewport()
	}

	scene := &Scene{
		Width:           width,
		Height:          width / 2,
		Title:           opts.Title,
		BackgroundColor: opts.BackgroundColor,
		RTL:             opts.RTL,
		Transform:       vp.TransformString(width),
		Regions:         make([]Region, 0, len(feats)),
	}
	if opts.Frame {
		scene.Frame = &Frame{Color: opts.FrameColor}
	}

	for _, f := range feats {
		ctx := countryContext(f, bind, opts)
		scene.Regions = append(scene.Regions, Region{
			Code:    f.Code,
			Name:    f.Name,
			Path:    cachedPath(f, opts.PathCache),
			Style:   opts.Hooks.Style(ctx),
			Tooltip: opts.Hooks.Tooltip(ctx),
			Href:    opts.Hooks.Href(ctx),
		})
		for _, l := range opts.Hooks.Labels(ctx) {
			if l.FontSize <= 0 {
				l.FontSize = 12
			}
			if l.Color == "" {
				l.Color = opts.Color
			}
			scene.Labels = append(scene.Labels, l)
		}
	}
	return scene, nil
}

func countryContext(f CountryFeature, bind *binding, opts Options) Context {
	v, ok := bind.lookup(f.Code)
	return Context{
		Code:    f.Code,
		Name:    f.Name,
		Value:   v,
		HasData: ok,
		Color:   opts.Color,
		Min:     bind.min,
		Max:     bind.max,
		Prefix:  opts.ValuePrefix,
		Suffix:  opts.ValueSuffix,
	}
}

func cachedPath(f CountryFeature, cache PathCache) string {
	if cache == nil {
		return PathString(f)
	}
	if d, ok := cache.Get(f.Code); ok {
		return d
	}
	d := PathString(f)
	// A failed cache write only costs the memoization.
	_ = cache.Put(f.Code, d)
	return d
}
