package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/ledger"
)

// CajaHandler serves the end-of-day till close-out view.
type CajaHandler struct {
	till *ledger.Till
}

func NewCajaHandler(till *ledger.Till) *CajaHandler {
	return &CajaHandler{till: till}
}

// Hoy returns the same-day breakdown by collection channel.
func (h *CajaHandler) Hoy(c *gin.Context) {
	breakdown, err := h.till.TodaysBreakdown(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute till breakdown"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
