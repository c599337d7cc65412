// internal/handlers/sustainability.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/services"
	"github.com/norruva/dpp-backend/internal/utils"
)

type SustainabilityHandler struct {
	sustainabilityService *services.SustainabilityService
}

func NewSustainabilityHandler(sustainabilityService *services.SustainabilityService) *SustainabilityHandler {
	return &SustainabilityHandler{sustainabilityService: sustainabilityService}
}

// GET /sustainability/overview
func (h *SustainabilityHandler) GetOverview(c *gin.Context) {
	utils.SuccessResponse(c, h.sustainabilityService.Overview(c.Request.Context()))
}

// POST /sustainability/csrd-summary
func (h *SustainabilityHandler) GenerateCSRDSummary(c *gin.Context) {
	// An empty body falls back to the dashboard defaults.
	var req services.CSRDSummaryRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	out, err := h.sustainabilityService.GenerateCSRDSummary(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, out, i18n.KeyCSRDGenerated)
}
