package geo

import "math"

// EarthRadiusKm is the mean earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// LatLng is a position in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lng float64 `json:"lng" msgpack:"lng"`
}

// Valid reports whether the position lies inside the geographic domain.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceKm returns the great-circle distance to q.
func (p LatLng) DistanceKm(q LatLng) float64 {
	return DistanceKm(p.Lat, p.Lng, q.Lat, q.Lng)
}

// Interpolate returns the linear blend of a and b at fraction f.
func Interpolate(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Lerp interpolates both coordinates of two positions.
func Lerp(a, b LatLng, f float64) LatLng {
	return LatLng{Lat: Interpolate(a.Lat, b.Lat, f), Lng: Interpolate(a.Lng, b.Lng, f)}
}

// Midpoint is the plain coordinate average of a and b (not the geodesic midpoint).
func Midpoint(a, b LatLng) LatLng {
	return Lerp(a, b, 0.5)
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := Radians(lat2 - lat1)
	dLon := Radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(Radians(lat1))*math.Cos(Radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapLongitude normalizes lng into (-180, 180].
func WrapLongitude(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng <= -180 {
		lng += 360
	}
	return lng
}

// NormalizeHeading maps any heading into [0, 360).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// OppositeHeading rotates h by 180 degrees.
func OppositeHeading(h float64) float64 {
	return NormalizeHeading(h + 180)
}

// FlatBearing treats lat/lng as a plane and returns the compass bearing
// from a to b, clockwise from north.
func FlatBearing(a, b LatLng) float64 {
	dy := b.Lat - a.Lat
	dx := b.Lng - a.Lng
	return NormalizeHeading(Degrees(math.Atan2(dx, dy)))
}
