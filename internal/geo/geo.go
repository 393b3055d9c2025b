package geo

import (
	"math"
	"strings"

	"github.com/experium/bookingapi/internal/domain"
)

const (
	// EarthRadiusKM is the mean Earth radius used for great-circle distances
	EarthRadiusKM = 6371.0

	// DefaultRadiusKM is the proximity radius for "near me" filtering
	DefaultRadiusKM = 50.0
)

// Haversine returns the great-circle distance between two coordinates
// in kilometers
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Resolver maps a free-text location to a coordinate. Resolution is
// best-effort; a miss excludes the record from proximity results.
type Resolver interface {
	Resolve(location string) (domain.Coordinate, bool)
}

// Nearby returns the records whose resolved coordinate lies within
// radiusKM of the origin, boundary inclusive. Records without a
// resolvable coordinate are excluded. Input order is preserved.
func Nearby(origin domain.Coordinate, records []domain.Experience, radiusKM float64, resolver Resolver) []domain.Experience {
	out := make([]domain.Experience, 0, len(records))
	for _, e := range records {
		coord, ok := resolver.Resolve(e.Location)
		if !ok {
			continue
		}
		if Haversine(origin, coord) <= radiusKM {
			out = append(out, e)
		}
	}
	return out
}

// TableResolver resolves locations against a fixed city table using
// case-insensitive substring matching. Explicitly approximate; meant
// to be replaced by a real geocoder behind the Resolver interface.
type TableResolver struct {
	entries []tableEntry
}

type tableEntry struct {
	name  string
	coord domain.Coordinate
}

// NewTableResolver returns a resolver over the built-in Romanian city table
func NewTableResolver() *TableResolver {
	return &TableResolver{entries: cityTable}
}

func (r *TableResolver) Resolve(location string) (domain.Coordinate, bool) {
	loc := strings.ToLower(location)
	for _, e := range r.entries {
		if strings.Contains(loc, e.name) || strings.Contains(e.name, loc) {
			return e.coord, true
		}
	}
	return domain.Coordinate{}, false
}

var cityTable = []tableEntry{
	{"bucurești", domain.Coordinate{Lat: 44.4268, Lng: 26.1025}},
	{"cluj-napoca", domain.Coordinate{Lat: 46.7712, Lng: 23.6236}},
	{"brașov", domain.Coordinate{Lat: 45.6580, Lng: 25.6012}},
	{"timișoara", domain.Coordinate{Lat: 45.7489, Lng: 21.2087}},
	{"iași", domain.Coordinate{Lat: 47.1585, Lng: 27.6014}},
	{"constanța", domain.Coordinate{Lat: 44.1598, Lng: 28.6348}},
	{"sibiu", domain.Coordinate{Lat: 45.7983, Lng: 24.1256}},
	{"oradea", domain.Coordinate{Lat: 47.0465, Lng: 21.9189}},
	{"râșnov", domain.Coordinate{Lat: 45.5934, Lng: 25.4600}},
	{"sinaia", domain.Coordinate{Lat: 45.3500, Lng: 25.5500}},
	{"tulcea", domain.Coordinate{Lat: 45.1716, Lng: 28.7914}},
	{"baia mare", domain.Coordinate{Lat: 47.6597, Lng: 23.5681}},
	{"turda", domain.Coordinate{Lat: 46.5714, Lng: 23.7850}},
	{"urlați", domain.Coordinate{Lat: 44.9908, Lng: 26.2325}},
	{"snagov", domain.Coordinate{Lat: 44.7036, Lng: 26.1789}},
	{"titu", domain.Coordinate{Lat: 44.6583, Lng: 25.5322}},
}
