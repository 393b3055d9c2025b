package catalog

import (
	"sort"

	"github.com/experium/bookingapi/internal/domain"
)

// SortOrder selects the single sort applied after filtering
type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortPriceAsc    SortOrder = "price-asc"
	SortPriceDesc   SortOrder = "price-desc"
	SortRating      SortOrder = "rating"
)

// IsValid checks if the sort order is a known value
func (s SortOrder) IsValid() bool {
	switch s {
	case SortRecommended, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	default:
		return false
	}
}

// DurationBucket is a labeled range of experience durations.
// Buckets are half-open on the upper end except the last.
type DurationBucket string

const (
	DurationUnder2H  DurationBucket = "sub-2h"   // [0, 120)
	Duration2To4H    DurationBucket = "2-4h"     // [120, 240)
	Duration4To8H    DurationBucket = "4-8h"     // [240, 480)
	DurationFullDay  DurationBucket = "1-zi"     // [480, 1440)
	DurationMultiDay DurationBucket = "multi-zi" // [1440, ∞)
)

// IsValid checks if the bucket label is known
func (b DurationBucket) IsValid() bool {
	switch b {
	case DurationUnder2H, Duration2To4H, Duration4To8H, DurationFullDay, DurationMultiDay:
		return true
	default:
		return false
	}
}

// Contains reports whether a duration in minutes falls in the bucket
func (b DurationBucket) Contains(minutes int) bool {
	switch b {
	case DurationUnder2H:
		return minutes >= 0 && minutes < 120
	case Duration2To4H:
		return minutes >= 120 && minutes < 240
	case Duration4To8H:
		return minutes >= 240 && minutes < 480
	case DurationFullDay:
		return minutes >= 480 && minutes < 1440
	case DurationMultiDay:
		return minutes >= 1440
	default:
		return false
	}
}

// Default price bounds; the price dimension is inactive at exactly these
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

// FilterState is the complete set of narrowing and sorting criteria.
// It is fully reconstructable from URL query parameters; empty string
// and zero values mean "no constraint".
type FilterState struct {
	Region    string
	County    string
	City      string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Durations []DurationBucket
	SortBy    SortOrder
}

// DefaultFilterState returns the state with no active dimension
func DefaultFilterState() FilterState {
	return FilterState{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		SortBy:   SortRecommended,
	}
}

// Matches reports whether a record passes every active constraint
func (f FilterState) Matches(e domain.Experience) bool {
	if f.Region != "" && e.Region != f.Region {
		return false
	}
	if f.County != "" && e.County != f.County {
		return false
	}
	if f.City != "" && e.City != f.City {
		return false
	}
	if e.Price < f.MinPrice || e.Price > f.MaxPrice {
		return false
	}
	if e.Rating < f.MinRating {
		return false
	}
	if len(f.Durations) > 0 {
		inBucket := false
		for _, b := range f.Durations {
			if b.Contains(e.DurationMinutes) {
				inBucket = true
				break
			}
		}
		if !inBucket {
			return false
		}
	}
	return true
}

// Apply filters the records with a logical AND across active dimensions,
// then applies exactly one stable sort. The input slice is not modified.
func Apply(records []domain.Experience, f FilterState) []domain.Experience {
	out := make([]domain.Experience, 0, len(records))
	for _, e := range records {
		if f.Matches(e) {
			out = append(out, e)
		}
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		// recommended: rating weighted by review volume, ties keep input order
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating*float64(out[i].Reviews) > out[j].Rating*float64(out[j].Reviews)
		})
	}

	return out
}

// ActiveCount returns how many dimensions differ from their default,
// used for filter badges
func (f FilterState) ActiveCount() int {
	n := 0
	if f.Region != "" {
		n++
	}
	if f.County != "" {
		n++
	}
	if f.City != "" {
		n++
	}
	if f.MinPrice != DefaultMinPrice || f.MaxPrice != DefaultMaxPrice {
		n++
	}
	if f.MinRating > 0 {
		n++
	}
	if len(f.Durations) > 0 {
		n++
	}
	return n
}

// WithRegion sets or clears the region constraint. Changing region
// also clears the narrower county and city dimensions.
func (f FilterState) WithRegion(region string) FilterState {
	f.Region = region
	f.County = ""
	f.City = ""
	return f
}

// WithCounty sets or clears the county constraint; city is narrower
// and gets cleared
func (f FilterState) WithCounty(county string) FilterState {
	f.County = county
	f.City = ""
	return f
}

// WithCity sets or clears the city constraint
func (f FilterState) WithCity(city string) FilterState {
	f.City = city
	return f
}

// WithPriceRange sets the price bounds. Reversed bounds reset the
// dimension to its defaults.
func (f FilterState) WithPriceRange(min, max float64) FilterState {
	if min > max {
		f.MinPrice = DefaultMinPrice
		f.MaxPrice = DefaultMaxPrice
		return f
	}
	f.MinPrice = min
	f.MaxPrice = max
	return f
}

// WithMinRating sets the minimum rating; values outside [0, 5] clear it
func (f FilterState) WithMinRating(rating float64) FilterState {
	if rating < 0 || rating > 5 {
		f.MinRating = 0
		return f
	}
	f.MinRating = rating
	return f
}

// ToggleDuration adds the bucket if absent, removes it if present.
// Unknown labels are ignored.
func (f FilterState) ToggleDuration(b DurationBucket) FilterState {
	if !b.IsValid() {
		return f
	}
	out := make([]DurationBucket, 0, len(f.Durations)+1)
	removed := false
	for _, d := range f.Durations {
		if d == b {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, b)
	}
	f.Durations = out
	return f
}

// WithSort sets the sort order; unknown values fall back to recommended
func (f FilterState) WithSort(s SortOrder) FilterState {
	if !s.IsValid() {
		f.SortBy = SortRecommended
		return f
	}
	f.SortBy = s
	return f
}

// Reset clears every dimension back to defaults
func (f FilterState) Reset() FilterState {
	return DefaultFilterState()
}
