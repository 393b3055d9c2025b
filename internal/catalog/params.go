package catalog

import (
	"net/url"
	"strconv"
)

// Query parameter names consumed and produced by the filter codec
const (
	paramRegion   = "region"
	paramCounty   = "county"
	paramCity     = "city"
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramRating   = "rating"
	paramDuration = "duration"
	paramSort     = "sort"
)

// ParseQuery reconstructs a FilterState from URL query parameters.
// Absent parameters mean "no constraint"; malformed numeric values
// fall back to their defaults silently.
func ParseQuery(values url.Values) FilterState {
	f := DefaultFilterState()

	f.Region = values.Get(paramRegion)
	f.County = values.Get(paramCounty)
	f.City = values.Get(paramCity)

	if raw := values.Get(paramMinPrice); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			f.MinPrice = v
		}
	}
	if raw := values.Get(paramMaxPrice); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			f.MaxPrice = v
		}
	}
	if f.MinPrice > f.MaxPrice {
		f.MinPrice = DefaultMinPrice
		f.MaxPrice = DefaultMaxPrice
	}

	if raw := values.Get(paramRating); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 5 {
			f.MinRating = v
		}
	}

	for _, raw := range values[paramDuration] {
		b := DurationBucket(raw)
		if !b.IsValid() {
			continue
		}
		if !f.hasDuration(b) {
			f.Durations = append(f.Durations, b)
		}
	}

	if s := SortOrder(values.Get(paramSort)); s.IsValid() {
		f.SortBy = s
	}

	return f
}

// Query serializes the state back to URL query parameters. Dimensions
// at their default are omitted entirely rather than emitted empty.
func (f FilterState) Query() url.Values {
	values := url.Values{}

	if f.Region != "" {
		values.Set(paramRegion, f.Region)
	}
	if f.County != "" {
		values.Set(paramCounty, f.County)
	}
	if f.City != "" {
		values.Set(paramCity, f.City)
	}
	if f.MinPrice != DefaultMinPrice {
		values.Set(paramMinPrice, strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != DefaultMaxPrice {
		values.Set(paramMaxPrice, strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinRating > 0 {
		values.Set(paramRating, strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	for _, b := range f.Durations {
		values.Add(paramDuration, string(b))
	}
	if f.SortBy != SortRecommended && f.SortBy.IsValid() {
		values.Set(paramSort, string(f.SortBy))
	}

	return values
}

func (f FilterState) hasDuration(b DurationBucket) bool {
	for _, d := range f.Durations {
		if d == b {
			return true
		}
	}
	return false
}
