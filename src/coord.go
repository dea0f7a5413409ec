/*------------------------------------------------------------------------------
* coord.go : coordinate functions
*
* notes  : all geodetic positions refer to the WGS84 ellipsoid, latitude and
*          longitude in degrees, ellipsoidal height in meters.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

/* transform ecef to geodetic postion ------------------------------------------
* transform ecef position to geodetic position by fixed-point iteration
* args   : CartesianPosition r  I   ecef position {x,y,z} (m)
* return : geodetic position {lat,lon,h} (deg,m)
*          *DomainError if sqrt(x^2+y^2)==0 (longitude undefined)
* notes  : iteration stops after MAXITER_GEOD rounds or when the latitude
*          update falls below TOL_GEOD rad. the height is evaluated with the
*          latitude of the last but one round.
*-----------------------------------------------------------------------------*/
func Ecef2Geodetic(r CartesianPosition) (GeodeticPosition, error) {
	p := math.Sqrt(r.X*r.X + r.Y*r.Y)
	if p == 0 {
		return GeodeticPosition{}, &DomainError{
			Op:  "ecef2geodetic",
			Msg: "zero distance from rotation axis, longitude undefined",
		}
	}
	a2 := RE_WGS84 * RE_WGS84
	b := RE_WGS84 * (1.0 - FE_WGS84)
	b2 := b * b
	e2 := 2.0*FE_WGS84 - FE_WGS84*FE_WGS84

	lon := math.Atan2(r.Y, r.X)
	lat0 := math.Atan((r.Z / p) / (1.0 - e2))
	lat, h := lat0, 0.0
	for i := 0; i < MAXITER_GEOD; i++ {
		cosp, sinp := math.Cos(lat0), math.Sin(lat0)
		n := a2 / math.Sqrt(a2*cosp*cosp+b2*sinp*sinp)
		h = p/cosp - n
		lat = math.Atan((r.Z / p) / (1.0 - e2*n/(n+h)))
		d := math.Abs(lat - lat0)
		lat0 = lat
		if d < TOL_GEOD {
			break
		}
	}
	return GeodeticPosition{Lat: lat * R2D, Lon: lon * R2D, Hgt: h}, nil
}

/* transform geodetic to ecef position -----------------------------------------
* transform geodetic position to ecef position
* args   : GeodeticPosition g   I   geodetic position {lat,lon,h} (deg,m)
* return : ecef position {x,y,z} (m)
*-----------------------------------------------------------------------------*/
func Geodetic2Ecef(g GeodeticPosition) CartesianPosition {
	sinp := math.Sin(g.Lat * D2R)
	cosp := math.Cos(g.Lat * D2R)
	sinl := math.Sin(g.Lon * D2R)
	cosl := math.Cos(g.Lon * D2R)
	e2 := FE_WGS84 * (2.0 - FE_WGS84)
	v := RE_WGS84 / math.Sqrt(1.0-e2*sinp*sinp)

	return CartesianPosition{
		X: (v + g.Hgt) * cosp * cosl,
		Y: (v + g.Hgt) * cosp * sinl,
		Z: (v*(1.0-e2) + g.Hgt) * sinp,
	}
}

func (r CartesianPosition) Vec() r3.Vec {
	return r3.Vec{X: r.X, Y: r.Y, Z: r.Z}
}

/* distance between two ecef positions (m) -----------------------------------*/
func Baseline(a, b CartesianPosition) float64 {
	return r3.Norm(r3.Sub(a.Vec(), b.Vec()))
}

/* convert degree to deg-min-sec -----------------------------------------------
* convert degree to degree-minute-second
* args   : float64 deg      I   degree
*          int    ndec      I   number of decimals of second
* return : degree-minute-second {deg,min,sec}, sign carried by deg
*-----------------------------------------------------------------------------*/
func Deg2Dms(deg float64, ndec int) [3]float64 {
	var dms [3]float64
	sign := 1.0
	if deg < 0.0 {
		sign = -1.0
	}
	a := math.Abs(deg)
	unit := math.Pow(0.1, float64(ndec))

	dms[0] = math.Floor(a)
	a = (a - dms[0]) * 60.0
	dms[1] = math.Floor(a)
	a = (a - dms[1]) * 60.0
	dms[2] = math.Floor(a/unit+0.5) * unit
	if dms[2] >= 60.0 {
		dms[2] = 0.0
		dms[1] += 1.0
		if dms[1] >= 60.0 {
			dms[1] = 0.0
			dms[0] += 1.0
		}
	}
	dms[0] *= sign
	return dms
}

/* convert deg-min-sec to degree -----------------------------------------------
* args   : float64 deg,mins,secs I deg-min-sec, sign carried by deg
* return : degree
*-----------------------------------------------------------------------------*/
func Dms2Deg(deg, mins, secs float64) float64 {
	sign := 1.0
	if deg < 0 || (deg == 0 && math.Signbit(deg)) {
		sign = -1.0
	}
	return sign * (math.Abs(deg) + mins/60.0 + secs/3600.0)
}

var dmsPattern = regexp.MustCompile(`^([-+]?)(\d+)\s*[°*dD]\s*(\d+)\s*'?\s*(\d+(?:\.\d+)?)\s*(?:"|'')?\s*([NSEWnsew]?)$`)

/* parse deg-min-sec string ----------------------------------------------------
* parse a deg-min-sec string to degree
* args   : string s         I   dms string ("-75° 15' 30\"", "75d 15' 30\" W",
*                               "-75* 15 30.5")
* return : degree, *ParseError if malformed
* notes  : a leading '-' or a trailing S/W hemisphere makes the value negative
*-----------------------------------------------------------------------------*/
func ParseDms(s string) (float64, error) {
	m := dmsPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &ParseError{Src: "dms", Text: s, Msg: "invalid dms format, expected -75° 15' 30\""}
	}
	deg, _ := strconv.ParseFloat(m[2], 64)
	mins, _ := strconv.ParseFloat(m[3], 64)
	secs, _ := strconv.ParseFloat(m[4], 64)
	if mins >= 60.0 || secs >= 60.0 {
		return 0, &ParseError{Src: "dms", Text: s, Msg: "minutes and seconds must be below 60"}
	}
	val := deg + mins/60.0 + secs/3600.0
	if m[1] == "-" || strings.ContainsAny(m[5], "SWsw") {
		val = -val
	}
	return val, nil
}
