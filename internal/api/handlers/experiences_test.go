package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/catalog"
	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/geo"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Experience{
		{ID: 1, Title: "Balloon flight", Location: "Brașov", Region: "Transilvania", County: "Brașov", City: "Brașov", Price: 850, Rating: 4.9, Reviews: 214, DurationMinutes: 180},
		{ID: 2, Title: "Wine tasting", Location: "Urlați", Region: "Muntenia", County: "Prahova", City: "Urlați", Price: 220, Rating: 4.7, Reviews: 156, DurationMinutes: 150},
		{ID: 3, Title: "Spa day", Location: "București", Region: "Muntenia", County: "București", City: "București", Price: 450, Rating: 4.5, Reviews: 320, DurationMinutes: 300},
	})
}

func newExperiencesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cat := testCatalog()

	router := gin.New()
	router.GET("/v1/experiences", HandleListExperiences(cat, logger))
	router.GET("/v1/experiences/nearby", HandleNearbyExperiences(cat, geo.NewTableResolver(), logger))
	router.GET("/v1/experiences/:id", HandleGetExperience(cat, logger))
	return router
}

func TestListExperiencesNoFilters(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExperienceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 0, resp.ActiveFilters)

	// Default recommended sort: rating × reviews descending
	assert.Equal(t, 3, resp.Experiences[0].ID) // 1440
	assert.Equal(t, 1, resp.Experiences[1].ID) // 1048.6
	assert.Equal(t, 2, resp.Experiences[2].ID) // 733.2
}

func TestListExperiencesWithFilters(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences?region=Muntenia&minPrice=100&maxPrice=300&sort=price-asc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExperienceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 2, resp.Experiences[0].ID)
	assert.Equal(t, 2, resp.ActiveFilters)
}

func TestListExperiencesMalformedParamsFallBack(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences?minPrice=abc&rating=zece", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExperienceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 0, resp.ActiveFilters)
}

func TestGetExperience(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences/2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExperienceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Wine tasting", resp.Title)
}

func TestGetExperienceNotFound(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNearbyExperiencesRequiresCoordinates(t *testing.T) {
	router := newExperiencesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences/nearby", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyExperiencesFiltersByDistance(t *testing.T) {
	router := newExperiencesRouter()

	// Bucharest coordinates: only the spa day resolves within 50 km
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/experiences/nearby?lat=44.4268&lng=26.1025", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExperienceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, resp.Experiences[0].ID)
}
