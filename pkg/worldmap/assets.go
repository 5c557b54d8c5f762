package worldmap

import _ "embed"

// The bundled geometry is heavily simplified choropleth-grade country
// boundaries keyed by ISO 3166-1 alpha-2 code, in the native 960-unit
// projection space this package is calibrated for. A higher resolution
// file can be supplied at runtime, see Features options in the CLIs.
//
//go:embed data/world.geo.json
var worldGeoJSON []byte
