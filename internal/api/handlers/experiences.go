package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/catalog"
	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/geo"
)

// ExperienceResponse represents one experience in list responses
type ExperienceResponse struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Location        string  `json:"location"`
	Category        string  `json:"category"`
	Region          string  `json:"region"`
	County          string  `json:"county"`
	City            string  `json:"city"`
	Price           float64 `json:"price"`
	Rating          float64 `json:"rating"`
	Reviews         int     `json:"reviews"`
	DurationMinutes int     `json:"duration_minutes"`
	Image           string  `json:"image"`
}

// ExperienceListResponse is the filtered catalog view
type ExperienceListResponse struct {
	Experiences   []ExperienceResponse `json:"experiences"`
	Total         int                  `json:"total"`
	ActiveFilters int                  `json:"active_filters"`
}

// HandleListExperiences handles GET /v1/experiences with FilterState
// encoded in the query string
func HandleListExperiences(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := catalog.ParseQuery(c.Request.URL.Query())
		results := cat.Apply(state)

		c.JSON(http.StatusOK, ExperienceListResponse{
			Experiences:   toExperienceResponses(results),
			Total:         len(results),
			ActiveFilters: state.ActiveCount(),
		})
	}
}

// HandleGetExperience handles GET /v1/experiences/:id
func HandleGetExperience(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience ID"})
			return
		}

		experience, ok := cat.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "experience not found"})
			return
		}

		c.JSON(http.StatusOK, toExperienceResponse(experience))
	}
}

// HandleNearbyExperiences handles GET /v1/experiences/nearby?lat=&lng=
// returning experiences within 50 km of the caller's coordinate
func HandleNearbyExperiences(cat *catalog.Catalog, resolver geo.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
			return
		}

		origin := domain.Coordinate{Lat: lat, Lng: lng}
		results := geo.Nearby(origin, cat.All(), geo.DefaultRadiusKM, resolver)

		c.JSON(http.StatusOK, ExperienceListResponse{
			Experiences: toExperienceResponses(results),
			Total:       len(results),
		})
	}
}

func toExperienceResponse(e domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:              e.ID,
		Title:           e.Title,
		Location:        e.Location,
		Category:        e.Category,
		Region:          e.Region,
		County:          e.County,
		City:            e.City,
		Price:           e.Price,
		Rating:          e.Rating,
		Reviews:         e.Reviews,
		DurationMinutes: e.DurationMinutes,
		Image:           e.Image,
	}
}

func toExperienceResponses(records []domain.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, len(records))
	for i, e := range records {
		out[i] = toExperienceResponse(e)
	}
	return out
}
