package api

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"alcyxob/coaching-marketplace/internal/service"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the public marketplace listing.
type ActivityHandler struct {
	catalogService service.CatalogService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(catalogService service.CatalogService) *ActivityHandler {
	return &ActivityHandler{catalogService: catalogService}
}

// --- Response Structs ---

type MediaResponse struct {
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
}

// ActivityResponse is the stored activity extended with listing details.
// cantidadTemas and cantidadDias are only present for workshops.
type ActivityResponse struct {
	domain.Activity
	Objetivos           []string       `json:"objetivos"`
	Media               *MediaResponse `json:"media"`
	CoachName           string         `json:"coach_name"`
	CoachAvatarURL      string         `json:"coach_avatar_url"`
	Specialization      string         `json:"specialization"`
	CoachRating         float64        `json:"coach_rating"`
	TotalProgramReviews int            `json:"total_program_reviews"`
	ProgramRating       float64        `json:"program_rating"`
	ExercisesCount      int            `json:"exercisesCount"`
	TotalSessions       int            `json:"totalSessions"`
	CantidadTemas       *int           `json:"cantidadTemas,omitempty"`
	CantidadDias        *int           `json:"cantidadDias,omitempty"`
}

// --- Handler Methods ---

// Search godoc
// @Summary Search marketplace activities
// @Tags Activities
// @Produce json
// @Param term query string false "Text matched against title and description"
// @Param type query string false "program, workshop, document or consultation"
// @Param difficulty query string false "Difficulty level"
// @Param coachId query string false "Coach identifier"
// @Success 200 {array} ActivityResponse
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /activities/search [get]
func (h *ActivityHandler) Search(c *gin.Context) {
	filter := repository.ActivityFilter{
		Term:       c.Query("term"),
		Type:       domain.ActivityType(strings.ToLower(strings.TrimSpace(c.Query("type")))),
		Difficulty: c.Query("difficulty"),
		CoachID:    c.Query("coachId"),
	}
	filter.IncludeConsultations = filter.Type == domain.TypeConsultation

	listings, err := h.catalogService.Search(c.Request.Context(), filter)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "activity search failed", slog.String("error", err.Error()))
		abortWithError(c, http.StatusInternalServerError, "Failed to search activities")
		return
	}

	response := make([]ActivityResponse, len(listings))
	for i := range listings {
		response[i] = MapListingToResponse(&listings[i])
	}
	c.JSON(http.StatusOK, response)
}

// MapListingToResponse converts a service listing to its response DTO.
func MapListingToResponse(l *service.ActivityListing) ActivityResponse {
	resp := ActivityResponse{
		Activity:       l.Activity,
		Objetivos:      l.Objectives,
		ExercisesCount: l.Stats.ExercisesCount,
		TotalSessions:  l.Stats.TotalSessions,
	}
	if resp.Objetivos == nil {
		resp.Objetivos = []string{}
	}
	if l.Media != nil {
		resp.Media = &MediaResponse{ImageURL: l.Media.ImageURL, VideoURL: l.Media.VideoURL}
	}
	if l.Coach != nil {
		resp.CoachName = l.Coach.FullName
		resp.CoachAvatarURL = l.Coach.AvatarURL
		resp.Specialization = l.Coach.Specialization
		resp.CoachRating = l.Coach.Rating
	}
	if l.Rating != nil {
		resp.ProgramRating = l.Rating.Average
		resp.TotalProgramReviews = l.Rating.TotalReviews
	}
	if l.Activity.IsWorkshop() {
		topics, days := 0, 0
		if w := l.Stats.Workshop; w != nil {
			topics, days = w.Topics, w.Days
		}
		resp.CantidadTemas, resp.CantidadDias = &topics, &days
	}
	return resp
}
