package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chughjug/ratings-sub000/pkg/uscf"
)

// PlayerHandler handles US Chess member lookups
type PlayerHandler struct {
	uscfClient *uscf.Client
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(uscfClient *uscf.Client) *PlayerHandler {
	return &PlayerHandler{
		uscfClient: uscfClient,
	}
}

// SearchPlayers handles GET /uscf/search
func (h *PlayerHandler) SearchPlayers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q query parameter"})
		return
	}

	members, err := h.uscfClient.SearchPlayers(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Player search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "players": members})
}

// GetMember handles GET /uscf/members/:uscfId
func (h *PlayerHandler) GetMember(c *gin.Context) {
	memberID := c.Param("uscfId")
	member, err := h.uscfClient.LookupMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, uscf.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Member lookup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, member)
}
