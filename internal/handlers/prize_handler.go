package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chughjug/ratings-sub000/internal/models"
	"github.com/chughjug/ratings-sub000/internal/prizing"
	"github.com/chughjug/ratings-sub000/internal/services"
)

// PrizeHandler handles prize-related HTTP requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{
		prizeService: prizeService,
	}
}

// respondServiceError maps service errors onto HTTP status codes. Validation
// problems carry their kind and location so clients can point at the exact
// offending field.
func respondServiceError(c *gin.Context, err error) {
	var ve *prizing.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   ve.Message,
			"kind":    ve.Kind,
			"section": ve.Section,
			"field":   ve.Field,
		})
	case errors.Is(err, services.ErrTournamentNotFound), errors.Is(err, services.ErrPrizeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrComputationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, services.ErrPrizesDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoStandings),
		errors.Is(err, services.ErrInvalidTournament),
		errors.Is(err, services.ErrInvalidStandings):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// tournamentIDParam parses the :id path parameter
func tournamentIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetSettings handles GET /tournaments/:id/prize-settings
func (h *PrizeHandler) GetSettings(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	settings, err := h.prizeService.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdatePrizeSettingsRequest carries the editable part of the settings document
type UpdatePrizeSettingsRequest struct {
	Enabled    bool                  `json:"enabled"`
	AutoAssign bool                  `json:"autoAssign"`
	Sections   []models.PrizeSection `json:"sections"`
}

// UpdateSettings handles PUT /tournaments/:id/prize-settings
func (h *PrizeHandler) UpdateSettings(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var request UpdatePrizeSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := &models.PrizeSettings{
		TournamentID: id,
		Enabled:      request.Enabled,
		AutoAssign:   request.AutoAssign,
		Sections:     request.Sections,
	}
	saved, err := h.prizeService.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GenerateStructureRequest carries the total cash fund to spread over sections
type GenerateStructureRequest struct {
	Fund models.Money `json:"fund"`
}

// GenerateStructure handles POST /tournaments/:id/prize-structure/generate
func (h *PrizeHandler) GenerateStructure(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var request GenerateStructureRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Fund.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fund cannot be negative"})
		return
	}

	proposal, err := h.prizeService.GenerateStructure(c.Request.Context(), id, request.Fund)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// CalculatePrizes handles POST /tournaments/:id/prizes/calculate
func (h *PrizeHandler) CalculatePrizes(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	batch, err := h.prizeService.CalculatePrizes(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Prize distributions computed",
		"batchId":       batch.BatchID,
		"computedAt":    batch.ComputedAt,
		"distributions": batch.Distributions,
	})
}

// GetPrizes handles GET /tournaments/:id/prizes
func (h *PrizeHandler) GetPrizes(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	prizes, err := h.prizeService.GetPrizes(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// GetWinners handles GET /tournaments/:id/prizes/winners
func (h *PrizeHandler) GetWinners(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	report, err := h.prizeService.GetWinners(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AddManualPrize handles POST /tournaments/:id/prizes/manual
func (h *PrizeHandler) AddManualPrize(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var prize models.PrizeDistribution
	if err := c.ShouldBindJSON(&prize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.prizeService.AddManualPrize(c.Request.Context(), id, &prize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteManualPrize handles DELETE /tournaments/:id/prizes/manual/:prizeId
func (h *PrizeHandler) DeleteManualPrize(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	prizeID := c.Param("prizeId")
	if prizeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing prize ID"})
		return
	}

	if err := h.prizeService.DeleteManualPrize(c.Request.Context(), id, prizeID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manual prize deleted"})
}

// RoundCompleteRequest announces a finished round. EventID lets the sender
// redeliver safely; redeliveries of the same event are ignored.
type RoundCompleteRequest struct {
	Round      int    `json:"round" binding:"required"`
	FinalRound bool   `json:"finalRound"`
	EventID    string `json:"eventId"`
}

// RoundComplete handles POST /tournaments/:id/rounds/complete
func (h *PrizeHandler) RoundComplete(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var request RoundCompleteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := &models.RoundCompleteEvent{
		EventID:      request.EventID,
		TournamentID: id,
		Round:        request.Round,
		FinalRound:   request.FinalRound,
	}
	triggered, err := h.prizeService.HandleRoundComplete(c.Request.Context(), event)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"triggered": triggered})
}
