// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductNotFound     = "product.not_found"
	KeyProductNotEditable  = "product.not_editable"
	KeyProductImageUpdated = "product.image_updated"
	KeyProductEndOfLife    = "product.end_of_lifecycle"
	KeyProductStageMoved   = "product.stage_advanced"

	// Compliance
	KeyRegulationNotFound   = "regulation.not_found"
	KeyVerificationSuccess  = "compliance.verification_success"
	KeyVerificationFailed   = "compliance.verification_failed"
	KeyEPRELSyncAttempted   = "compliance.eprel_sync_attempted"
	KeyComplianceCheckReady = "compliance.check_ready"

	// Supply chain
	KeySupplierCreated  = "supplier.created"
	KeySupplierNotFound = "supplier.not_found"
	KeySupplierLinked   = "supply_chain.linked"
	KeySupplierUnlinked = "supply_chain.unlinked"
	KeyLinkUpdated      = "supply_chain.updated"
	KeyLinkNotFound     = "supply_chain.not_found"

	// AI
	KeyAIFlowFailed  = "ai.flow_failed"
	KeyAIRateLimited = "ai.rate_limited"
	KeyClaimsNone    = "ai.claims_none"
	KeyCSRDGenerated = "ai.csrd_generated"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// System
	KeyRateLimitExceeded = "system.rate_limit_exceeded"
	KeyInternalError     = "system.internal_error"
)
