package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mschilde/svg-worldmap/pkg/svgrender"
	"github.com/mschilde/svg-worldmap/pkg/utils"
	"github.com/mschilde/svg-worldmap/pkg/worldmap"
)

var cli struct {
	Data string `arg:"" help:"Dataset file (.json array of {country, value} or .csv rows)." type:"existingfile"`
	Out  string `short:"o" default:"worldmap.svg" help:"Output SVG file; - for stdout."`

	Title  string `help:"Map caption."`
	Color  string `default:"steelblue" help:"Base fill color."`
	Size   string `default:"xl" help:"Map size: sm, md, lg, xl, xxl or a pixel width."`
	Prefix string `help:"Value prefix in tooltips."`
	Suffix string `help:"Value suffix in tooltips."`

	StrokeOpacity float64 `default:"0.2" help:"Country border opacity."`

	Frame       bool   `help:"Draw a decorative frame."`
	FrameColor  string `default:"black" help:"Frame color."`
	BorderColor string `default:"black" help:"Country border color."`
	Background  string `default:"white" help:"Background color."`
	RTL         bool   `help:"Right-to-left caption and labels."`

	GeometryURL string `help:"Alternate country geometry GeoJSON URL."`
	FetchCache  string `default:"data/cache" help:"Download cache directory."`
	PathCache   string `help:"Directory of the persistent projected-path cache."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("worldmap-render"),
		kong.Description("Render a choropleth world map dataset to an SVG file."))
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	items, err := worldmap.LoadDataFile(cli.Data)
	kctx.FatalIfErrorf(err, "loading dataset")

	opts := worldmap.Options{
		Data:            items,
		Title:           cli.Title,
		ValuePrefix:     cli.Prefix,
		ValueSuffix:     cli.Suffix,
		Color:           cli.Color,
		Size:            cli.Size,
		StrokeOpacity:   &cli.StrokeOpacity,
		Frame:           cli.Frame,
		FrameColor:      cli.FrameColor,
		BorderColor:     cli.BorderColor,
		BackgroundColor: cli.Background,
		RTL:             cli.RTL,
	}

	if cli.GeometryURL != "" {
		feats, err := fetchGeometry(cli.GeometryURL, cli.FetchCache)
		kctx.FatalIfErrorf(err, "fetching geometry")
		opts.Features = feats
	}
	if cli.PathCache != "" {
		store, err := utils.OpenPathStore(cli.PathCache)
		kctx.FatalIfErrorf(err, "opening path cache")
		defer store.Close()
		opts.PathCache = store
	}

	scene, err := worldmap.BuildScene(opts, nil)
	kctx.FatalIfErrorf(err, "composing map")

	renderer, err := svgrender.NewRenderer()
	kctx.FatalIfErrorf(err)
	svg, err := renderer.Render(scene)
	kctx.FatalIfErrorf(err, "rendering SVG")

	if cli.Out == "-" {
		_, err = io.WriteString(os.Stdout, svg)
	} else {
		err = os.WriteFile(cli.Out, []byte(svg), 0o644)
	}
	kctx.FatalIfErrorf(err, "writing output")
}

func fetchGeometry(url, cacheDir string) ([]worldmap.CountryFeature, error) {
	r, err := utils.GetCachedReader(url, cacheDir, "[geometry]")
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return worldmap.ParseFeatures(data)
}
