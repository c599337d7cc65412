// internal/handlers/completeness.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/norruva/dpp-backend/internal/completeness"
	"github.com/norruva/dpp-backend/internal/utils"
)

// GET /completeness/fields
func GetCompletenessFields(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"sections": completeness.Sections,
		"fields":   completeness.Fields(),
	})
}
