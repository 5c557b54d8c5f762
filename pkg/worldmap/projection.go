package worldmap

import (
	"strconv"
	"strings"
)

// Calibration constants of the native map space. Path coordinates live in a
// 960-unit-wide equirectangular plane with the equator at y=0; the render
// transform is always "translate(tx, ty) scale((width/960)*zoom)
// translate(0, 240)". Changing either constant shifts every bundled shape.
const (
	mapSpaceWidth    = 960.0
	mapVerticalShift = 240.0
)

// Project converts geographic coordinates to the native map space.
func Project(lng, lat float64) (x, y float64) {
	x = (lng + 180) * mapSpaceWidth / 360
	y = (90-lat)*mapSpaceWidth/360 - mapVerticalShift
	return x, y
}

// PathString builds the SVG path description for a feature in native map
// space. It is a pure function of the static geometry, so outputs may be
// cached indefinitely keyed by ISO code.
func PathString(f CountryFeature) string {
	var b strings.Builder
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			for i, pt := range ring {
				if len(pt) < 2 {
					continue
				}
				x, y := Project(pt[0], pt[1])
				if i == 0 {
					b.WriteByte('M')
				} else {
					b.WriteByte('L')
				}
				b.WriteString(fmtCoord(x))
				b.WriteByte(',')
				b.WriteString(fmtCoord(y))
			}
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func fmtCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// fmtScale keeps more precision than fmtCoord; the group scale factor
// compounds across the whole map, so rounding it would shift far shapes.
func fmtScale(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// projectedRings projects a feature's rings into native map space once, for
// repeated hit testing.
func projectedRings(f CountryFeature) [][][2]float64 {
	var rings [][][2]float64
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			pr := make([][2]float64, 0, len(ring))
			for _, pt := range ring {
				if len(pt) < 2 {
					continue
				}
				x, y := Project(pt[0], pt[1])
				pr = append(pr, [2]float64{x, y})
			}
			if len(pr) >= 3 {
				rings = append(rings, pr)
			}
		}
	}
	return rings
}

// ringsContain reports whether the point lies inside the rings under the
// even-odd rule.
func ringsContain(rings [][][2]float64, x, y float64) bool {
	inside := false
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			yi, yj := ring[i][1], ring[j][1]
			if (yi < y && yj >= y) || (yj < y && yi >= y) {
				cross := ring[i][0] + (y-yi)/(yj-yi)*(ring[j][0]-ring[i][0])
				if cross > x {
					inside = !inside
				}
			}
		}
	}
	return inside
}
