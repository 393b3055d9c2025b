package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/experium/bookingapi/internal/domain"
)

// pointAtKM returns a coordinate the given distance due north of origin
func pointAtKM(origin domain.Coordinate, km float64) domain.Coordinate {
	return domain.Coordinate{
		Lat: origin.Lat + km/EarthRadiusKM*180/math.Pi,
		Lng: origin.Lng,
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	bucharest := domain.Coordinate{Lat: 44.4268, Lng: 26.1025}
	brasov := domain.Coordinate{Lat: 45.6580, Lng: 25.6012}

	d := Haversine(bucharest, brasov)
	assert.InDelta(t, 141.0, d, 2.0)
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := domain.Coordinate{Lat: 45.0, Lng: 25.0}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversineDueNorthMatchesArcLength(t *testing.T) {
	origin := domain.Coordinate{Lat: 45.0, Lng: 25.0}
	p := pointAtKM(origin, 49.999)
	assert.InDelta(t, 49.999, Haversine(origin, p), 1e-6)
}

type fixedResolver map[string]domain.Coordinate

func (r fixedResolver) Resolve(location string) (domain.Coordinate, bool) {
	c, ok := r[location]
	return c, ok
}

func TestNearbyRadiusBoundary(t *testing.T) {
	origin := domain.Coordinate{Lat: 45.0, Lng: 25.0}
	resolver := fixedResolver{
		"inside":  pointAtKM(origin, 49.999),
		"edge":    pointAtKM(origin, 50.0),
		"outside": pointAtKM(origin, 50.001),
	}
	records := []domain.Experience{
		{ID: 1, Location: "inside"},
		{ID: 2, Location: "edge"},
		{ID: 3, Location: "outside"},
	}

	// Pin the inclusive boundary exactly: use the computed distance of
	// the edge record as the radius.
	edgeDistance := Haversine(origin, resolver["edge"])
	require.InDelta(t, 50.0, edgeDistance, 1e-6)

	results := Nearby(origin, records, edgeDistance, resolver)
	ids := make([]int, 0, len(results))
	for _, e := range results {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 2}, ids)

	// Shrinking the radius by one ulp excludes the edge record
	results = Nearby(origin, records, math.Nextafter(edgeDistance, 0), resolver)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestNearbyFixedFiftyKilometers(t *testing.T) {
	origin := domain.Coordinate{Lat: 45.0, Lng: 25.0}
	resolver := fixedResolver{
		"inside":  pointAtKM(origin, 49.999),
		"outside": pointAtKM(origin, 50.001),
	}
	records := []domain.Experience{
		{ID: 1, Location: "inside"},
		{ID: 2, Location: "outside"},
	}

	results := Nearby(origin, records, DefaultRadiusKM, resolver)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestNearbyExcludesUnresolvableLocations(t *testing.T) {
	origin := domain.Coordinate{Lat: 45.0, Lng: 25.0}
	resolver := fixedResolver{"known": origin}
	records := []domain.Experience{
		{ID: 1, Location: "known"},
		{ID: 2, Location: "somewhere in the mountains"},
	}

	results := Nearby(origin, records, DefaultRadiusKM, resolver)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestTableResolverSubstringMatch(t *testing.T) {
	resolver := NewTableResolver()

	coord, ok := resolver.Resolve("Brașov, Piața Sfatului")
	require.True(t, ok)
	assert.InDelta(t, 45.6580, coord.Lat, 0.001)

	_, ok = resolver.Resolve("undeva departe")
	assert.False(t, ok)
}

func TestTableResolverCaseInsensitive(t *testing.T) {
	resolver := NewTableResolver()

	_, ok := resolver.Resolve("CLUJ-NAPOCA")
	assert.True(t, ok)
}
