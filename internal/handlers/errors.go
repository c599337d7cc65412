// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/services"
	"github.com/norruva/dpp-backend/internal/utils"
)

// respondError maps a service error onto the API error envelope.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case utils.IsValidationError(err):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrSupplierNotFound):
		utils.NotFoundResponse(c, "supplier")
	case errors.Is(err, services.ErrRegulationNotFound):
		utils.NotFoundResponse(c, "regulation")
	case errors.Is(err, services.ErrLinkNotFound):
		utils.NotFoundResponse(c, "supply_chain")
	case errors.Is(err, services.ErrProductNotEditable):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyProductNotEditable))
	case errors.Is(err, services.ErrLinkExists):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrEndOfLifecycle):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductEndOfLife), nil)
	case errors.Is(err, services.ErrProductNameRequired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "productName"), nil)
	case errors.Is(err, ai.ErrFlowFailed), errors.Is(err, services.ErrInvalidDataURI):
		utils.AIFlowFailedResponse(c, err)
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
