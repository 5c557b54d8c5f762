// Package worldmap renders interactive choropleth world maps. A caller
// supplies per-country values; the package binds them to bundled country
// geometry, resolves a visual style per country through pluggable hooks,
// and produces either a renderable scene (for the SVG renderer) or an
// interactive ebiten viewer with pan/zoom pointer interaction.
package worldmap

import (
	"fmt"
	"strings"
	"sync"

	"github.com/biter777/countries"
	geojson "github.com/paulmach/go.geojson"
)

// CountryFeature is one country's static boundary record. Coordinates are
// multipolygon rings in [longitude, latitude] order.
type CountryFeature struct {
	Code     string
	Name     string
	Polygons [][][][]float64
}

var (
	featuresOnce sync.Once
	featuresList []CountryFeature
	featuresErr  error
)

// Features returns the bundled country geometry table. The table is parsed
// once per process; all codes are uppercase ISO 3166-1 alpha-2.
func Features() ([]CountryFeature, error) {
	featuresOnce.Do(func() {
		featuresList, featuresErr = ParseFeatures(worldGeoJSON)
	})
	return featuresList, featuresErr
}

// ParseFeatures decodes a GeoJSON FeatureCollection into country features.
// Features without a usable ISO code or polygon geometry are skipped.
func ParseFeatures(data []byte) ([]CountryFeature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing country geometry: %w", err)
	}

	feats := make([]CountryFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		code := featureCode(f)
		if code == "" {
			continue
		}

		var polys [][][][]float64
		switch {
		case f.Geometry.IsPolygon():
			polys = [][][][]float64{f.Geometry.Polygon}
		case f.Geometry.IsMultiPolygon():
			polys = f.Geometry.MultiPolygon
		default:
			continue
		}

		feats = append(feats, CountryFeature{
			Code:     code,
			Name:     featureName(f, code),
			Polygons: polys,
		})
	}
	if len(feats) == 0 {
		return nil, fmt.Errorf("country geometry contains no usable features")
	}
	return feats, nil
}

func featureCode(f *geojson.Feature) string {
	code, _ := f.PropertyString("iso_a2")
	if code == "" {
		if id, ok := f.ID.(string); ok {
			code = id
		}
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	// Natural Earth marks disputed territories with -99.
	if len(code) != 2 || code == "-9" || strings.HasPrefix(code, "-") {
		return ""
	}
	return code
}

func featureName(f *geojson.Feature, code string) string {
	if name, err := f.PropertyString("name"); err == nil && name != "" {
		return name
	}
	if c := countries.ByName(code); c != countries.Unknown {
		return c.String()
	}
	return code
}
