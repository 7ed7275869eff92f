package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/harmonynav-backend/internal/harmony"
)

// WeightsHandler runs the pairwise-comparison weight wizard.
type WeightsHandler struct {
	domains harmony.DomainSet
}

func NewWeightsHandler(domains harmony.DomainSet) *WeightsHandler {
	return &WeightsHandler{domains: domains}
}

func (h *WeightsHandler) Estimate(c *gin.Context) {
	var req struct {
		Comparisons []harmony.Comparison `json:"comparisons"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	weights, err := harmony.EstimateWeights(h.domains, req.Comparisons)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := make(map[string]int, len(weights))
	for i, d := range h.domains.Domains {
		out[d.ID] = weights[i]
	}
	c.JSON(http.StatusOK, gin.H{"weights": out})
}

func (h *WeightsHandler) Domains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": h.domains.Domains})
}
