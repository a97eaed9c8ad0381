package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/services"
)

// StandingsHandler handles standings-related HTTP requests
type StandingsHandler struct {
	standingsService services.StandingsService
}

// NewStandingsHandler creates a new StandingsHandler
func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
	}
}

// ReplaceStandingsRequest carries a full standings upload
type ReplaceStandingsRequest struct {
	Entries []*models.StandingsEntry `json:"entries" binding:"required"`
}

// ReplaceStandings handles PUT /tournaments/:id/standings
func (h *StandingsHandler) ReplaceStandings(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var request ReplaceStandingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.standingsService.ReplaceStandings(c.Request.Context(), id, request.Entries)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Standings replaced", "entries": count})
}

// GetStandings handles GET /tournaments/:id/standings
func (h *StandingsHandler) GetStandings(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	entries, err := h.standingsService.GetStandings(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if section := c.Query("section"); section != "" {
		filtered := make([]*models.StandingsEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.Section == section {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	c.JSON(http.StatusOK, entries)
}

// GetSections handles GET /tournaments/:id/sections
func (h *StandingsHandler) GetSections(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	sections, err := h.standingsService.GetSections(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// RefreshRatings handles POST /tournaments/:id/standings/refresh-ratings
func (h *StandingsHandler) RefreshRatings(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	updated, err := h.standingsService.RefreshRatings(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ratings refreshed", "updated": updated})
}
