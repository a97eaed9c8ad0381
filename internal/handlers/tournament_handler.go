package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/services"
)

// TournamentHandler handles tournament-related HTTP requests
type TournamentHandler struct {
	tournamentService services.TournamentService
}

// NewTournamentHandler creates a new TournamentHandler
func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// CreateTournament handles POST /tournaments
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var tournament models.Tournament
	if err := c.ShouldBindJSON(&tournament); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.tournamentService.Create(c.Request.Context(), &tournament)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTournament handles GET /tournaments/:id
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	tournament, err := h.tournamentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// GetTournaments handles GET /tournaments
func (h *TournamentHandler) GetTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tournaments, total, err := h.tournamentService.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tournaments": tournaments,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// UpdateTournament handles PUT /tournaments/:id
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var tournament models.Tournament
	if err := c.ShouldBindJSON(&tournament); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tournament.ID = id

	updated, err := h.tournamentService.Update(c.Request.Context(), &tournament)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTournament handles DELETE /tournaments/:id
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	if err := h.tournamentService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tournament deleted"})
}
