package worldmap

import "fmt"

// Context carries everything the hooks may want to know about one country
// during one render pass.
type Context struct {
	Code    string
	Name    string
	Value   Value
	HasData bool
	Color   string
	Min     float64
	Max     float64
	Prefix  string
	Suffix  string
}

// RegionStyle is the resolved visual style for one country shape.
type RegionStyle struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeWidth   float64
	StrokeOpacity float64
	Cursor        string
}

// TextLabel is a free-form text annotation in output pixel space.
type TextLabel struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
	Color    string
}

// Hooks is the capability set a caller can plug into the map: one method per
// per-country decision. DefaultHooks documents the baseline behavior; embed
// it to override a single hook.
type Hooks interface {
	// Style decides how the country shape is painted.
	Style(ctx Context) RegionStyle
	// Tooltip is the hover text; return "" for no tooltip.
	Tooltip(ctx Context) string
	// Labels contributes text annotations placed on the rendered map.
	Labels(ctx Context) []TextLabel
	// Click is invoked by the interactive viewer when the country is
	// clicked (press and release without dragging).
	Click(ctx Context)
	// Href wraps the country's SVG path in a link; return "" for none.
	Href(ctx Context) string
}

// DefaultHooks implements Hooks with the stock choropleth behavior:
// countries with data are filled with the base color at an opacity scaled
// linearly from 0.2 (minimum value) to 0.8 (maximum value); countries
// without data get a faint neutral fill. Tooltips read
// "<name> <prefix><value><suffix>" and are omitted for countries without
// data. No labels, no links, clicks are ignored.
type DefaultHooks struct {
	BorderColor   string
	StrokeOpacity float64
}

func (h DefaultHooks) Style(ctx Context) RegionStyle {
	st := RegionStyle{
		Fill:          ctx.Color,
		Stroke:        h.BorderColor,
		StrokeWidth:   1,
		StrokeOpacity: h.StrokeOpacity,
		Cursor:        "pointer",
	}
	if !ctx.HasData {
		st.FillOpacity = 0.1
		return st
	}
	st.FillOpacity = 0.2 + 0.6*valueShare(ctx)
	return st
}

func (h DefaultHooks) Tooltip(ctx Context) string {
	if !ctx.HasData {
		return ""
	}
	return fmt.Sprintf("%s %s%s%s", ctx.Name, ctx.Prefix, ctx.Value.String(), ctx.Suffix)
}

func (h DefaultHooks) Labels(Context) []TextLabel { return nil }

func (h DefaultHooks) Click(Context) {}

func (h DefaultHooks) Href(Context) string { return "" }

// valueShare maps the country's value onto [0, 1] within the dataset range.
// A degenerate range (single distinct value) counts as full share.
func valueShare(ctx Context) float64 {
	if ctx.Max <= ctx.Min {
		return 1
	}
	return (ctx.Value.rangeValue() - ctx.Min) / (ctx.Max - ctx.Min)
}
