package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/mschilde/svg-worldmap/pkg/utils"
	"github.com/mschilde/svg-worldmap/pkg/worldmap"
)

var (
	dataFlag        = flag.String("data", "", "Dataset file (.json array of {country, value} or .csv rows)")
	liveFlag        = flag.String("live", "", "WebSocket URL of a live dataset feed")
	titleFlag       = flag.String("title", "", "Map caption")
	colorFlag       = flag.String("color", "steelblue", "Base fill color")
	sizeFlag        = flag.String("size", "xl", "Map size: sm, md, lg, xl, xxl or a pixel width")
	prefixFlag      = flag.String("prefix", "", "Value prefix in tooltips")
	suffixFlag      = flag.String("suffix", "", "Value suffix in tooltips")
	strokeFlag      = flag.Float64("stroke-opacity", 0.2, "Country border opacity")
	frameFlag       = flag.Bool("frame", false, "Draw a decorative frame")
	frameColorFlag  = flag.String("frame-color", "black", "Frame color")
	borderColorFlag = flag.String("border-color", "black", "Country border color")
	bgFlag          = flag.String("bg", "white", "Background color")
	rtlFlag         = flag.Bool("rtl", false, "Right-to-left captions and labels")
	richFlag        = flag.Bool("rich", true, "Enable hover tooltips and pan/zoom")
	geometryURL     = flag.String("geometry-url", "", "Alternate country geometry GeoJSON URL")
	cacheDirFlag    = flag.String("cache-dir", "data/cache", "Download cache directory")
	tpsFlag         = flag.Int("tps", 30, "Ticks per second")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *dataFlag == "" {
		log.Fatal("-data is required")
	}
	items, err := worldmap.LoadDataFile(*dataFlag)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	opts := worldmap.Options{
		Data:            items,
		Title:           *titleFlag,
		ValuePrefix:     *prefixFlag,
		ValueSuffix:     *suffixFlag,
		Color:           *colorFlag,
		Size:            *sizeFlag,
		StrokeOpacity:   strokeFlag,
		Frame:           *frameFlag,
		FrameColor:      *frameColorFlag,
		BorderColor:     *borderColorFlag,
		BackgroundColor: *bgFlag,
		RTL:             *rtlFlag,
		RichInteraction: *richFlag,
	}
	if *geometryURL != "" {
		feats, err := fetchGeometry(*geometryURL, *cacheDirFlag)
		if err != nil {
			log.Fatalf("Failed to fetch geometry: %v", err)
		}
		opts.Features = feats
	}

	engine, err := worldmap.NewEngine(opts)
	if err != nil {
		log.Fatalf("Failed to initialize map engine: %v", err)
	}
	if *liveFlag != "" {
		go engine.ListenForUpdates(*liveFlag)
	}

	ebiten.SetTPS(*tpsFlag)
	ebiten.SetWindowSize(engine.Width, engine.Height)
	ebiten.SetWindowTitle("World Map Viewer")
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal(err)
	}
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
