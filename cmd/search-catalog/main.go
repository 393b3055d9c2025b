package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/experium/bookingapi/internal/catalog"
)

// Small operator tool: runs the filter engine against the seed catalog
// from the command line, using the same query-parameter encoding the
// API consumes.
func main() {
	region := flag.String("region", "", "filter by region (exact match)")
	county := flag.String("county", "", "filter by county (exact match)")
	city := flag.String("city", "", "filter by city (exact match)")
	minPrice := flag.String("min-price", "", "minimum price, RON")
	maxPrice := flag.String("max-price", "", "maximum price, RON")
	rating := flag.String("rating", "", "minimum rating [0-5]")
	durations := flag.String("durations", "", "comma-separated duration buckets (sub-2h,2-4h,4-8h,1-zi,multi-zi)")
	sortBy := flag.String("sort", "", "sort order: recommended, price-asc, price-desc, rating")
	flag.Parse()

	values := url.Values{}
	setIfPresent(values, "region", *region)
	setIfPresent(values, "county", *county)
	setIfPresent(values, "city", *city)
	setIfPresent(values, "minPrice", *minPrice)
	setIfPresent(values, "maxPrice", *maxPrice)
	setIfPresent(values, "rating", *rating)
	setIfPresent(values, "sort", *sortBy)
	for _, d := range strings.Split(*durations, ",") {
		if d = strings.TrimSpace(d); d != "" {
			values.Add("duration", d)
		}
	}

	state := catalog.ParseQuery(values)
	cat := catalog.Seed()
	results := cat.Apply(state)

	if encoded := state.Query().Encode(); encoded != "" {
		fmt.Printf("Query: ?%s\n", encoded)
	}
	fmt.Printf("Active filters: %d\n", state.ActiveCount())
	fmt.Printf("Matches: %d of %d\n\n", len(results), cat.Len())

	if len(results) == 0 {
		fmt.Println("No experiences match the given filters.")
		os.Exit(0)
	}

	for _, e := range results {
		fmt.Printf("%3d  %-45s %-15s %7.0f RON  %.1f★ (%d reviews)  %d min\n",
			e.ID, e.Title, e.City, e.Price, e.Rating, e.Reviews, e.DurationMinutes)
	}
}

func setIfPresent(values url.Values, key, val string) {
	if val != "" {
		values.Set(key, val)
	}
}
