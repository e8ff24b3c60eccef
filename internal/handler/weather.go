package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelex/internal/service"
)

// WeatherHandler handles HTTP requests for weather assessments.
type WeatherHandler struct {
	assessor service.WeatherAssessor
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(assessor service.WeatherAssessor) *WeatherHandler {
	return &WeatherHandler{assessor: assessor}
}

// GetForecast handles GET /v1/weather?lat=&lng=&date=
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng are required numbers"})
		return
	}

	assessment, err := h.assessor.GetForecast(c.Request.Context(), lat, lng, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, assessment)
}
