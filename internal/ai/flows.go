// internal/ai/flows.go
package ai

import (
	"context"
	"errors"

	"github.com/norruva/dpp-backend/internal/models"
)

// ErrFlowFailed wraps every failure of an AI flow so callers can tell it
// apart from storage or validation errors.
var ErrFlowFailed = errors.New("ai flow failed")

type ComplianceCheckInput struct {
	ProductID                 string `json:"productId"`
	CurrentLifecycleStageName string `json:"currentLifecycleStageName"`
	NewLifecycleStageName     string `json:"newLifecycleStageName"`
	ProductCategory           string `json:"productCategory"`
}

type ComplianceCheckOutput struct {
	NewLifecycleStageName  string `json:"newLifecycleStageName"`
	SimulatedOverallStatus string `json:"simulatedOverallStatus"`
	SimulatedReport        string `json:"simulatedReport"`
}

type EPRELSyncStatus string

const (
	EPRELSynced      EPRELSyncStatus = "Synced Successfully"
	EPRELNotFound    EPRELSyncStatus = "Product Not Found in EPREL"
	EPRELMismatch    EPRELSyncStatus = "Data Mismatch"
	EPRELSyncFailure EPRELSyncStatus = "Error During Sync"
)

type EPRELSyncInput struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ModelNumber string `json:"modelNumber"`
}

type EPRELSyncOutput struct {
	SyncStatus  EPRELSyncStatus `json:"syncStatus"`
	EPRELID     string          `json:"eprelId,omitempty"`
	LastChecked string          `json:"lastChecked"`
	Message     string          `json:"message"`
}

// ComplianceStatus maps an EPREL sync outcome onto the EPREL compliance slot.
func (s EPRELSyncStatus) ComplianceStatus() models.ComplianceStatus {
	switch s {
	case EPRELSynced:
		return models.ComplianceStatusCompliant
	case EPRELNotFound:
		return models.ComplianceStatusNotApplicable
	default:
		return models.ComplianceStatusPendingReview
	}
}

type ImageInput struct {
	ProductName     string `json:"productName"`
	ProductCategory string `json:"productCategory"`
}

type ImageOutput struct {
	ImageURL string `json:"imageUrl"`
}

type ClaimsInput struct {
	ProductCategory    string `json:"productCategory"`
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	Materials          string `json:"materials"`
}

type ClaimsOutput struct {
	Claims []string `json:"claims"`
}

type CSRDSummaryInput struct {
	CompanyName                  string   `json:"companyName"`
	ReportingPeriod              string   `json:"reportingPeriod"`
	TotalEmissions               float64  `json:"totalEmissions"`
	EmissionUnit                 string   `json:"emissionUnit"`
	KeySustainabilityInitiatives []string `json:"keySustainabilityInitiatives"`
}

type CSRDSummaryOutput struct {
	SummaryText string `json:"summaryText"`
}

// TextFlows are the flows answered by a text model.
type TextFlows interface {
	CheckCompliance(ctx context.Context, in ComplianceCheckInput) (*ComplianceCheckOutput, error)
	SyncEPREL(ctx context.Context, in EPRELSyncInput) (*EPRELSyncOutput, error)
	SuggestClaims(ctx context.Context, in ClaimsInput) (*ClaimsOutput, error)
	GenerateCSRDSummary(ctx context.Context, in CSRDSummaryInput) (*CSRDSummaryOutput, error)
}

// ImageGenerator produces a product image. The returned URL may be a data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, in ImageInput) (*ImageOutput, error)
}

type Flows interface {
	TextFlows
	ImageGenerator
}

type composed struct {
	TextFlows
	ImageGenerator
}

// Compose combines a text flow set with an image generator.
func Compose(text TextFlows, images ImageGenerator) Flows {
	return composed{TextFlows: text, ImageGenerator: images}
}
