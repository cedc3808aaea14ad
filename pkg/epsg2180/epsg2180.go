// Package epsg2180 converts between EPSG:2180 (ETRS89 / Poland CS92) and
// EPSG:4326 (WGS84 longitude/latitude, degrees).
//
// EPSG:2180 is a Transverse Mercator projection covering all of Poland:
// central meridian 19°E, scale factor 0.9993, false easting 500 000 m,
// false northing -5 300 000 m. The conversion uses the closed-form series
// from Snyder, "Map Projections: A Working Manual" (USGS PP 1395), which
// is accurate to well under a meter across the projection's extent.
package epsg2180

import "math"

// WGS84 ellipsoid and Poland CS92 projection parameters.
const (
	a  = 6378137.0         // semi-major axis, meters
	f  = 1 / 298.257223563 // flattening
	k0 = 0.9993            // scale factor on the central meridian
	fe = 500000.0          // false easting, meters
	fn = -5300000.0        // false northing, meters

	lon0 = 19.0 * math.Pi / 180 // central meridian, radians
)

// Derived ellipsoid constants.
var (
	e2  = f * (2 - f)     // first eccentricity squared
	ep2 = e2 / (1 - e2)   // second eccentricity squared
	e1  = (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	// Coefficients of the meridian arc series and its inverse (footpoint
	// latitude from rectifying latitude).
	mc0 = 1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256
	mc1 = 3*e2/8 + 3*e2*e2/32 + 45*e2*e2*e2/1024
	mc2 = 15*e2*e2/256 + 45*e2*e2*e2/1024
	mc3 = 35 * e2 * e2 * e2 / 3072

	fp1 = 3*e1/2 - 27*e1*e1*e1/32
	fp2 = 21*e1*e1/16 - 55*e1*e1*e1*e1/32
	fp3 = 151 * e1 * e1 * e1 / 96
	fp4 = 1097 * e1 * e1 * e1 * e1 / 512
)

// EPSG returns the source coordinate reference system code.
func EPSG() int { return 2180 }

// meridianArc returns the distance along the meridian from the equator to
// latitude phi (radians).
func meridianArc(phi float64) float64 {
	return a * (mc0*phi - mc1*math.Sin(2*phi) + mc2*math.Sin(4*phi) - mc3*math.Sin(6*phi))
}

// ToWGS84 converts projected EPSG:2180 easting/northing (meters) to WGS84
// longitude/latitude in degrees.
func ToWGS84(x, y float64) (lon, lat float64) {
	m := (y - fn) / k0
	mu := m / (a * mc0)

	// Footpoint latitude.
	phi1 := mu + fp1*math.Sin(2*mu) + fp2*math.Sin(4*mu) + fp3*math.Sin(6*mu) + fp4*math.Sin(8*mu)

	sin1 := math.Sin(phi1)
	cos1 := math.Cos(phi1)
	tan1 := math.Tan(phi1)

	c1 := ep2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := a / math.Sqrt(1-e2*sin1*sin1)
	r1 := a * (1 - e2) / math.Pow(1-e2*sin1*sin1, 1.5)
	d := (x - fe) / (n1 * k0)

	d2 := d * d
	phi := phi1 - (n1*tan1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d2*d2/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d2*d2*d2/720)
	lam := lon0 + (d-
		(1+2*t1+c1)*d2*d/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d2*d2*d/120)/cos1

	return lam * 180 / math.Pi, phi * 180 / math.Pi
}

// FromWGS84 converts WGS84 longitude/latitude (degrees) to projected
// EPSG:2180 easting/northing in meters.
func FromWGS84(lon, lat float64) (x, y float64) {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180

	sinp := math.Sin(phi)
	cosp := math.Cos(phi)
	tanp := math.Tan(phi)

	n := a / math.Sqrt(1-e2*sinp*sinp)
	t := tanp * tanp
	c := ep2 * cosp * cosp
	aa := (lam - lon0) * cosp

	aa2 := aa * aa
	x = fe + k0*n*(aa+
		(1-t+c)*aa2*aa/6+
		(5-18*t+t*t+72*c-58*ep2)*aa2*aa2*aa/120)
	y = fn + k0*(meridianArc(phi)+n*tanp*(aa2/2+
		(5-t+9*c+4*c*c)*aa2*aa2/24+
		(61-58*t+t*t+600*c-330*ep2)*aa2*aa2*aa2/720))

	return x, y
}
