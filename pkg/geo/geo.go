// Package geo converts the projected state-plane coordinates carried by
// the incidents dataset into WGS84 positions.
//
// The dataset publishes NAD83 / Texas North Central (EPSG:2276)
// coordinates in US survey feet. Conversion uses the ellipsoidal
// Lambert Conformal Conic (2SP) inverse on the GRS80 ellipsoid; the
// NAD83/WGS84 datum difference is below the positional accuracy of the
// source data and is ignored.
package geo

import (
	"math"
	"strconv"

	"github.com/paulmach/orb"

	"github.com/civicdata/dallaspd/pkg/soda"
)

// usFoot is the US survey foot in meters.
const usFoot = 1200.0 / 3937.0

// GRS80 ellipsoid.
const (
	semiMajor  = 6378137.0
	flattening = 1.0 / 298.257222101
)

// EPSG:2276 projection parameters (radians and meters).
var txNorthCentral = newLambert(
	dms(32, 8),  // standard parallel 1
	dms(33, 58), // standard parallel 2
	dms(31, 40), // latitude of false origin
	-98.5*math.Pi/180,
	600000,  // false easting
	2000000, // false northing
)

// lambert holds the derived constants of a Lambert Conformal Conic 2SP
// projection on GRS80.
type lambert struct {
	e      float64 // first eccentricity
	n      float64 // cone constant
	f      float64 // scale constant
	rho0   float64 // radius at the false origin
	lon0   float64
	fe, fn float64
}

func dms(deg, min float64) float64 {
	return (deg + min/60) * math.Pi / 180
}

func newLambert(lat1, lat2, lat0, lon0, fe, fn float64) lambert {
	e2 := 2*flattening - flattening*flattening
	e := math.Sqrt(e2)

	m := func(lat float64) float64 {
		s := math.Sin(lat)
		return math.Cos(lat) / math.Sqrt(1-e2*s*s)
	}
	t := func(lat float64) float64 {
		s := math.Sin(lat)
		return math.Tan(math.Pi/4-lat/2) / math.Pow((1-e*s)/(1+e*s), e/2)
	}

	n := (math.Log(m(lat1)) - math.Log(m(lat2))) / (math.Log(t(lat1)) - math.Log(t(lat2)))
	f := m(lat1) / (n * math.Pow(t(lat1), n))
	return lambert{
		e:    e,
		n:    n,
		f:    f,
		rho0: semiMajor * f * math.Pow(t(lat0), n),
		lon0: lon0,
		fe:   fe,
		fn:   fn,
	}
}

// inverse maps projected meters to a WGS84 point (lon, lat in degrees).
func (p lambert) inverse(x, y float64) orb.Point {
	dx := x - p.fe
	dy := p.rho0 - (y - p.fn)

	rho := math.Sqrt(dx*dx + dy*dy)
	if p.n < 0 {
		rho = -rho
	}
	theta := math.Atan2(dx, dy)
	lon := theta/p.n + p.lon0

	t := math.Pow(rho/(semiMajor*p.f), 1/p.n)
	lat := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 10; i++ {
		s := math.Sin(lat)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-p.e*s)/(1+p.e*s), p.e/2))
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}
	return orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi}
}

// forward maps a WGS84 point (lon, lat in degrees) to projected meters.
// Used by tests to verify the inverse; fetched data only flows the other
// way.
func (p lambert) forward(pt orb.Point) (x, y float64) {
	lon := pt[0] * math.Pi / 180
	lat := pt[1] * math.Pi / 180

	s := math.Sin(lat)
	t := math.Tan(math.Pi/4-lat/2) / math.Pow((1-p.e*s)/(1+p.e*s), p.e/2)
	rho := semiMajor * p.f * math.Pow(t, p.n)
	theta := p.n * (lon - p.lon0)
	return p.fe + rho*math.Sin(theta), p.fn + p.rho0 - rho*math.Cos(theta)
}

// FromStatePlane converts one EPSG:2276 coordinate pair, given in US
// survey feet, to a WGS84 point.
func FromStatePlane(xFeet, yFeet float64) orb.Point {
	return txNorthCentral.inverse(xFeet*usFoot, yFeet*usFoot)
}

// Convert attaches WGS84 positions to tbl from the projected coordinate
// columns xcol and ycol. Each converted row gains longitude and latitude
// columns plus a geometry column holding an [orb.Point]. Rows whose
// coordinates are absent, unparseable, or zero are dropped, and the drop
// count is reported through logf.
//
// When neither coordinate column appears in any row the table is
// returned unchanged with a warning; a missing column never fails a
// fetch.
func Convert(tbl soda.Table, xcol, ycol string, logf func(string, ...any)) soda.Table {
	present := false
	for _, row := range tbl {
		if _, ok := row[xcol]; ok {
			present = true
			break
		}
		if _, ok := row[ycol]; ok {
			present = true
			break
		}
	}
	if !present {
		if len(tbl) > 0 {
			logf("coordinate columns %s/%s not present; skipping geographic conversion", xcol, ycol)
		}
		return tbl
	}

	out := make(soda.Table, 0, len(tbl))
	dropped := 0
	for _, row := range tbl {
		x, okX := coordValue(row[xcol])
		y, okY := coordValue(row[ycol])
		if !okX || !okY || (x == 0 && y == 0) {
			dropped++
			continue
		}
		pt := FromStatePlane(x, y)
		row["longitude"] = pt[0]
		row["latitude"] = pt[1]
		row["geometry"] = pt
		out = append(out, row)
	}
	if dropped > 0 {
		logf("dropped %d of %d rows without usable coordinates", dropped, len(tbl))
	}
	return out
}

// coordValue parses a coordinate cell. The portal returns numeric
// columns as strings; commas appear in some historical exports.
func coordValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(stripCommas(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stripCommas(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
