package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	state := ParseQuery(url.Values{})

	assert.Equal(t, DefaultFilterState(), state)
	assert.Equal(t, 0, state.ActiveCount())
}

func TestParseQueryFullState(t *testing.T) {
	values := url.Values{
		"region":   {"Transilvania"},
		"county":   {"Brașov"},
		"city":     {"Râșnov"},
		"minPrice": {"100"},
		"maxPrice": {"500"},
		"rating":   {"4.5"},
		"duration": {"sub-2h", "2-4h"},
		"sort":     {"price-asc"},
	}

	state := ParseQuery(values)
	assert.Equal(t, "Transilvania", state.Region)
	assert.Equal(t, "Brașov", state.County)
	assert.Equal(t, "Râșnov", state.City)
	assert.Equal(t, 100.0, state.MinPrice)
	assert.Equal(t, 500.0, state.MaxPrice)
	assert.Equal(t, 4.5, state.MinRating)
	assert.Equal(t, []DurationBucket{DurationUnder2H, Duration2To4H}, state.Durations)
	assert.Equal(t, SortPriceAsc, state.SortBy)
}

func TestParseQueryMalformedNumbersFallBackSilently(t *testing.T) {
	values := url.Values{
		"minPrice": {"abc"},
		"maxPrice": {"-12x"},
		"rating":   {"many"},
		"sort":     {"cheapest"},
	}

	state := ParseQuery(values)
	assert.Equal(t, float64(DefaultMinPrice), state.MinPrice)
	assert.Equal(t, float64(DefaultMaxPrice), state.MaxPrice)
	assert.Equal(t, 0.0, state.MinRating)
	assert.Equal(t, SortRecommended, state.SortBy)
}

func TestParseQueryOutOfRangeValuesFallBack(t *testing.T) {
	state := ParseQuery(url.Values{"rating": {"7"}})
	assert.Equal(t, 0.0, state.MinRating)

	// Reversed bounds reset the whole price dimension
	state = ParseQuery(url.Values{"minPrice": {"900"}, "maxPrice": {"100"}})
	assert.Equal(t, float64(DefaultMinPrice), state.MinPrice)
	assert.Equal(t, float64(DefaultMaxPrice), state.MaxPrice)
}

func TestParseQueryIgnoresUnknownDurations(t *testing.T) {
	values := url.Values{"duration": {"sub-2h", "weekend", "sub-2h", "multi-zi"}}

	state := ParseQuery(values)
	assert.Equal(t, []DurationBucket{DurationUnder2H, DurationMultiDay}, state.Durations)
}

func TestQueryOmitsDefaults(t *testing.T) {
	values := DefaultFilterState().Query()
	assert.Empty(t, values)
}

func TestQueryRoundTrip(t *testing.T) {
	state := DefaultFilterState().
		WithRegion("Muntenia").
		WithPriceRange(50, 750).
		WithMinRating(4).
		ToggleDuration(Duration4To8H).
		ToggleDuration(DurationFullDay).
		WithSort(SortRating)

	parsed := ParseQuery(state.Query())
	assert.Equal(t, state, parsed)
}

func TestQueryClearingDimensionRemovesParameter(t *testing.T) {
	state := DefaultFilterState().WithRegion("Dobrogea").WithMinRating(4.5)
	values := state.Query()
	require.Equal(t, "Dobrogea", values.Get("region"))
	require.Equal(t, "4.5", values.Get("rating"))

	state = state.WithRegion("").WithMinRating(0)
	values = state.Query()
	_, hasRegion := values["region"]
	_, hasRating := values["rating"]
	assert.False(t, hasRegion)
	assert.False(t, hasRating)
}

func TestQueryEmitsOnlyChangedPriceBound(t *testing.T) {
	state := DefaultFilterState().WithPriceRange(DefaultMinPrice, 2500)
	values := state.Query()

	_, hasMin := values["minPrice"]
	assert.False(t, hasMin)
	assert.Equal(t, "2500", values.Get("maxPrice"))
}
