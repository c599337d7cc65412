// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/services"
	"github.com/norruva/dpp-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result, nil)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedMessageResponse(c, product, i18n.KeyProductCreated, product.ProductName)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /products/:id/edit
func (h *ProductHandler) BeginEdit(c *gin.Context) {
	snapshot, err := h.productService.BeginEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, snapshot)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, product, i18n.KeyProductUpdated, product.ProductName)
}

// GET /products/:id/completeness
func (h *ProductHandler) GetCompleteness(c *gin.Context) {
	result, err := h.productService.Completeness(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /products/completeness/summary
func (h *ProductHandler) GetPortfolioCompleteness(c *gin.Context) {
	summary, err := h.productService.PortfolioCompleteness(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// POST /products/:id/image
func (h *ProductHandler) GenerateImage(c *gin.Context) {
	product, err := h.productService.GenerateImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, product, i18n.KeyProductImageUpdated)
}

// POST /products/:id/claims/suggest
func (h *ProductHandler) SuggestClaims(c *gin.Context) {
	out, err := h.productService.SuggestClaims(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if len(out.Claims) == 0 {
		utils.MessageResponse(c, out, i18n.KeyClaimsNone)
		return
	}
	utils.SuccessResponse(c, out)
}

// POST /products/:id/compliance/check
func (h *ProductHandler) CheckCompliance(c *gin.Context) {
	out, err := h.productService.CheckCompliance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, out, i18n.KeyComplianceCheckReady, out.NewLifecycleStageName)
}

// POST /products/:id/eprel/sync
func (h *ProductHandler) SyncEPREL(c *gin.Context) {
	result, err := h.productService.SyncEPREL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, result, i18n.KeyEPRELSyncAttempted, result.Sync.Message)
}

// POST /products/:id/lifecycle/advance
func (h *ProductHandler) AdvanceLifecycle(c *gin.Context) {
	product, err := h.productService.AdvanceLifecycle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	stage := ""
	if product.CurrentLifecyclePhaseIndex >= 0 && product.CurrentLifecyclePhaseIndex < len(product.LifecyclePhases) {
		stage = product.LifecyclePhases[product.CurrentLifecyclePhaseIndex].Name
	}
	utils.MessageResponse(c, product, i18n.KeyProductStageMoved, stage)
}

// POST /products/:id/compliance/:regulation/verify
func (h *ProductHandler) VerifyDocument(c *gin.Context) {
	regulation := c.Param("regulation")
	result, err := h.productService.VerifyDocument(c.Request.Context(), c.Param("id"), regulation)
	if err != nil {
		respondError(c, err)
		return
	}

	key := i18n.KeyVerificationSuccess
	if !result.Success {
		key = i18n.KeyVerificationFailed
	}
	utils.MessageResponse(c, result, key, regulation)
}

// POST /products/:id/supply-chain
func (h *ProductHandler) LinkSupplier(c *gin.Context) {
	var req services.LinkSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.LinkSupplier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, product, i18n.KeySupplierLinked)
}

// PUT /products/:id/supply-chain
func (h *ProductHandler) UpdateSupplierLink(c *gin.Context) {
	var req services.UpdateSupplierLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateSupplierLink(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, product, i18n.KeyLinkUpdated)
}

// DELETE /products/:id/supply-chain
func (h *ProductHandler) UnlinkSupplier(c *gin.Context) {
	var req services.UnlinkSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UnlinkSupplier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, product, i18n.KeySupplierUnlinked)
}
