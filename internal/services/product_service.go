// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/completeness"
	"github.com/norruva/dpp-backend/internal/models"
	"github.com/norruva/dpp-backend/internal/provenance"
	"github.com/norruva/dpp-backend/internal/storage"
	"github.com/norruva/dpp-backend/internal/utils"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotEditable  = errors.New("product is read-only")
	ErrProductNameRequired = errors.New("product name is required")
	ErrEndOfLifecycle      = errors.New("product is already at its final lifecycle stage")
	ErrRegulationNotFound  = errors.New("regulation not found")
	ErrLinkNotFound        = errors.New("supply chain link not found")
	ErrLinkExists          = errors.New("supply chain link already exists")
)

// verificationSuccessRate is the share of simulated document checks that pass.
const verificationSuccessRate = 0.8

type ProductService struct {
	records   *storage.RecordStore
	suppliers *SupplierService
	flows     ai.Flows
	storage   *StorageService
	now       func() time.Time
	random    func() float64
	mu        sync.Mutex
}

type CreateProductRequest struct {
	provenance.EditForm
	// Origins tags values that were prefilled by AI extraction.
	Origins map[string]models.Origin `json:"origins,omitempty"`
}

type UpdateProductRequest struct {
	Form provenance.EditForm `json:"form"`
	// Baseline is the snapshot returned when the edit session began.
	Baseline *provenance.Snapshot `json:"baseline,omitempty"`
}

type ProductSummary struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Category     string `json:"category"`
	Manufacturer string `json:"manufacturer"`
	Status       string `json:"status"`
	Compliance   string `json:"compliance"`
	LastUpdated  string `json:"lastUpdated"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Completeness int    `json:"completeness"`
	UserProduct  bool   `json:"userProduct"`
}

type PortfolioCompleteness struct {
	ProductCount    int                `json:"productCount"`
	Mean            float64            `json:"mean"`
	Median          float64            `json:"median"`
	P25             float64            `json:"p25"`
	Min             float64            `json:"min"`
	Max             float64            `json:"max"`
	SectionAverages map[string]float64 `json:"sectionAverages"`
	Lowest          []ProductSummary   `json:"lowest"`
}

type LinkSupplierRequest struct {
	SupplierID   string `json:"supplierId" validate:"required"`
	SuppliedItem string `json:"suppliedItem" validate:"required,max=200"`
	Notes        string `json:"notes,omitempty" validate:"max=1000"`
}

type UnlinkSupplierRequest struct {
	SupplierID   string `json:"supplierId" validate:"required"`
	SuppliedItem string `json:"suppliedItem" validate:"required"`
}

type UpdateSupplierLinkRequest struct {
	SupplierID      string `json:"supplierId" validate:"required"`
	SuppliedItem    string `json:"suppliedItem" validate:"required"`
	NewSuppliedItem string `json:"newSuppliedItem" validate:"required,max=200"`
	Notes           string `json:"notes,omitempty" validate:"max=1000"`
}

type VerificationResult struct {
	Regulation string          `json:"regulation"`
	Success    bool            `json:"success"`
	Product    *models.Product `json:"product"`
}

type EPRELSyncResult struct {
	Sync    *ai.EPRELSyncOutput `json:"sync"`
	Product *models.Product     `json:"product"`
}

func NewProductService(records *storage.RecordStore, suppliers *SupplierService, flows ai.Flows, storageService *StorageService) *ProductService {
	return &ProductService{
		records:   records,
		suppliers: suppliers,
		flows:     flows,
		storage:   storageService,
		now:       time.Now,
		random:    rand.Float64,
	}
}

func (s *ProductService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// GetProduct resolves user products from the record store and everything
// else from the built-in catalog.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// load returns the product view and, for user products, the stored record.
func (s *ProductService) load(ctx context.Context, id string) (models.Product, *models.StoredProduct, error) {
	if models.IsUserProduct(id) {
		stored, found, err := s.records.FindProduct(ctx, id)
		if err != nil {
			return models.Product{}, nil, err
		}
		if found {
			return s.toView(&stored), &stored, nil
		}
	}
	if p, ok := catalogProduct(id); ok {
		return p, nil, nil
	}
	return models.Product{}, nil, ErrProductNotFound
}

func (s *ProductService) toView(stored *models.StoredProduct) models.Product {
	p, err := stored.ToProduct(s.now())
	if err != nil {
		logrus.WithError(err).WithField("product_id", stored.ID).Warn("Stored specifications are malformed, using empty specifications")
	}
	return p
}

func (s *ProductService) allProducts(ctx context.Context) ([]models.Product, error) {
	stored, err := s.records.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := catalogProducts()
	for i := range stored {
		products = append(products, s.toView(&stored[i]))
	}
	return products, nil
}

func summarize(p *models.Product) ProductSummary {
	return ProductSummary{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		Category:     p.Category,
		Manufacturer: p.Manufacturer,
		Status:       p.Status,
		Compliance:   p.Compliance,
		LastUpdated:  p.LastUpdated,
		ImageURL:     p.ImageURL,
		Completeness: completeness.Calculate(p).OverallScore,
		UserProduct:  models.IsUserProduct(p.ProductID),
	}
}

// ListProducts returns catalog and user products with their overall
// completeness, filtered and paginated.
func (s *ProductService) ListProducts(ctx context.Context, params utils.PaginationParams) ([]ProductSummary, int64, error) {
	params = utils.NormalizePagination(params)

	products, err := s.allProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	category := strings.ToLower(params.Category)
	search := strings.ToLower(params.Search)

	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		p := &products[i]
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		summaries = append(summaries, summarize(p))
	}

	sortSummaries(summaries, params.Sort, params.Order == "asc")

	total := len(summaries)
	start, end := utils.PageBounds(total, params)
	return summaries[start:end], int64(total), nil
}

func matchesSearch(p *models.Product, search string) bool {
	for _, v := range []string{p.ProductID, p.ProductName, p.Manufacturer, p.ModelNumber, p.GTIN} {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func sortSummaries(summaries []ProductSummary, field string, asc bool) {
	less := func(a, b ProductSummary) bool {
		switch field {
		case "productName":
			return strings.ToLower(a.ProductName) < strings.ToLower(b.ProductName)
		case "completeness":
			return a.Completeness < b.Completeness
		case "category":
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return a.LastUpdated < b.LastUpdated
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if asc {
			return less(summaries[i], summaries[j])
		}
		return less(summaries[j], summaries[i])
	})
}

// CreateProduct stores a new user product built from the submitted form.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, ErrProductNameRequired
	}

	id := models.UserProductPrefix + strings.ToUpper(uuid.New().String()[:8])
	stored := models.StoredProduct{
		ID:         id,
		Status:     "Draft",
		Compliance: "N/A",
	}

	// Against an empty baseline every submitted value becomes manual. Values
	// the client marks as AI extracted keep that origin.
	baseline := provenance.Snapshot{Origins: req.Origins}
	stored = provenance.ApplyEdit(stored, baseline, req.EditForm, s.now())
	for key, origin := range req.Origins {
		if origin == models.OriginAIExtracted {
			provenance.SetOrigin(&stored, key, origin)
		}
	}

	s.mu.Lock()
	err := s.records.UpsertProduct(ctx, stored)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"name":       stored.ProductName,
	}).Info("Product created")

	p := s.toView(&stored)
	return &p, nil
}

// BeginEdit returns the snapshot an edit session compares against.
func (s *ProductService) BeginEdit(ctx context.Context, id string) (*provenance.Snapshot, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsUserProduct(p.ProductID) {
		return nil, ErrProductNotEditable
	}
	snap := provenance.SnapshotOf(&p)
	return &snap, nil
}

// UpdateProduct merges the form over the stored record and recomputes each
// field origin against the edit session baseline. Without a baseline the
// current product is used.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(&req.Form); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !models.IsUserProduct(id) {
		if _, ok := catalogProduct(id); ok {
			return nil, ErrProductNotEditable
		}
		return nil, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, stored, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	baseline := provenance.SnapshotOf(&p)
	if req.Baseline != nil {
		baseline = *req.Baseline
	}

	updated := provenance.ApplyEdit(*stored, baseline, req.Form, s.now())
	if err := s.records.UpsertProduct(ctx, updated); err != nil {
		return nil, err
	}

	logrus.WithField("product_id", id).Info("Product updated")

	view := s.toView(&updated)
	return &view, nil
}

func (s *ProductService) Completeness(ctx context.Context, id string) (*completeness.Result, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	result := completeness.Calculate(&p)
	return &result, nil
}

// PortfolioCompleteness summarises the completeness scores of all products.
func (s *ProductService) PortfolioCompleteness(ctx context.Context) (*PortfolioCompleteness, error) {
	products, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioCompleteness{
		ProductCount:    len(products),
		SectionAverages: map[string]float64{},
		Lowest:          []ProductSummary{},
	}
	if len(products) == 0 {
		return summary, nil
	}

	scores := make(stats.Float64Data, 0, len(products))
	sectionScores := map[string]stats.Float64Data{}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		result := completeness.Calculate(&products[i])
		scores = append(scores, float64(result.OverallScore))
		for _, sec := range result.Sections {
			sectionScores[string(sec.SectionName)] = append(sectionScores[string(sec.SectionName)], float64(sec.Score))
		}
		summaries = append(summaries, summarize(&products[i]))
	}

	summary.Mean = round1(stats.Mean(scores))
	summary.Median = round1(stats.Median(scores))
	summary.P25 = lowerQuartile(scores)
	summary.Min = round1(stats.Min(scores))
	summary.Max = round1(stats.Max(scores))
	for name, data := range sectionScores {
		summary.SectionAverages[name] = round1(stats.Mean(data))
	}

	sortSummaries(summaries, "completeness", true)
	if len(summaries) > 5 {
		summaries = summaries[:5]
	}
	summary.Lowest = summaries
	return summary, nil
}

// lowerQuartile is the nearest-rank 25th percentile, defined for any
// non-empty set.
func lowerQuartile(scores stats.Float64Data) float64 {
	p25, err := stats.PercentileNearestRank(scores, 25)
	if err != nil {
		p25, err = stats.Min(scores)
	}
	return round1(p25, err)
}

// round1 rounds a statistic to one decimal place. A failed or NaN
// statistic reads as 0 so the summary always encodes.
func round1(v float64, err error) float64 {
	if err != nil || math.IsNaN(v) {
		return 0
	}
	r, err := stats.Round(v, 1)
	if err != nil {
		return 0
	}
	return r
}

// GenerateImage replaces the product image with an AI generated one and
// marks the image as AI extracted.
func (s *ProductService) GenerateImage(ctx context.Context, id string) (*models.Product, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.flows.GenerateImage(ctx, ai.ImageInput{
		ProductName:     p.ProductName,
		ProductCategory: p.Category,
	})
	if err != nil {
		return nil, err
	}

	imageURL, err := s.storage.StoreImage(ctx, id, out.ImageURL)
	if err != nil {
		return nil, err
	}

	ts := s.timestamp()
	err = s.mutateStored(ctx, id, func(stored *models.StoredProduct) {
		stored.ImageURL = imageURL
		stored.ImageURLOrigin = models.OriginAIExtracted
		stored.LastUpdated = ts
	})
	if err != nil {
		return nil, err
	}

	p.ImageURL = imageURL
	p.ImageURLOrigin = models.OriginAIExtracted
	p.ImageHint = p.ProductName
	p.LastUpdated = ts
	return &p, nil
}

// mutateStored applies fn to the stored record of a user product and saves
// it. Catalog products are left untouched.
func (s *ProductService) mutateStored(ctx context.Context, id string, fn func(*models.StoredProduct)) error {
	if !models.IsUserProduct(id) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found, err := s.records.FindProduct(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	fn(&stored)
	return s.records.UpsertProduct(ctx, stored)
}

func (s *ProductService) SuggestClaims(ctx context.Context, id string) (*ai.ClaimsOutput, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	category := p.Category
	if category == "" {
		category = "Unknown"
	}
	return s.flows.SuggestClaims(ctx, ai.ClaimsInput{
		ProductCategory:    category,
		ProductName:        p.ProductName,
		ProductDescription: p.Description,
		Materials:          p.Materials,
	})
}

// CheckCompliance simulates a compliance re-check for the next lifecycle
// stage. The product is not modified.
func (s *ProductService) CheckCompliance(ctx context.Context, id string) (*ai.ComplianceCheckOutput, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := p.CurrentLifecyclePhaseIndex
	if idx < 0 || idx >= len(p.LifecyclePhases)-1 {
		return nil, ErrEndOfLifecycle
	}

	return s.flows.CheckCompliance(ctx, ai.ComplianceCheckInput{
		ProductID:                 p.ProductID,
		CurrentLifecycleStageName: p.LifecyclePhases[idx].Name,
		NewLifecycleStageName:     p.LifecyclePhases[idx+1].Name,
		ProductCategory:           p.Category,
	})
}

// SyncEPREL looks the product up in EPREL and updates the EPREL slot of
// its overall compliance.
func (s *ProductService) SyncEPREL(ctx context.Context, id string) (*EPRELSyncResult, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.flows.SyncEPREL(ctx, ai.EPRELSyncInput{
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		ModelNumber: p.ModelNumber,
	})
	if err != nil {
		return nil, err
	}

	eprel := &p.OverallCompliance.EPREL
	eprel.Status = out.SyncStatus.ComplianceStatus()
	if out.EPRELID != "" {
		eprel.EntryID = out.EPRELID
	}
	eprel.LastChecked = out.LastChecked

	compliance := p.OverallCompliance
	if err := s.mutateStored(ctx, id, func(stored *models.StoredProduct) {
		stored.OverallCompliance = &compliance
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id":  id,
		"sync_status": out.SyncStatus,
	}).Info("EPREL sync attempted")

	return &EPRELSyncResult{Sync: out, Product: &p}, nil
}

// AdvanceLifecycle completes the current phase, unless it has an issue, and
// moves the product into the next one.
func (s *ProductService) AdvanceLifecycle(ctx context.Context, id string) (*models.Product, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := p.CurrentLifecyclePhaseIndex
	if idx < 0 || idx >= len(p.LifecyclePhases)-1 {
		return nil, ErrEndOfLifecycle
	}

	now := s.now()
	ts := now.UTC().Format(time.RFC3339)
	phases := append([]models.LifecyclePhase(nil), p.LifecyclePhases...)
	if phases[idx].Status != models.PhaseStatusIssue {
		phases[idx].Status = models.PhaseStatusCompleted
		phases[idx].Timestamp = ts
	}
	next := idx + 1
	phases[next].Status = models.PhaseStatusInProgress
	phases[next].Timestamp = ts

	events := append(append([]models.LifecycleEvent(nil), p.LifecycleEvents...), models.LifecycleEvent{
		ID:        fmt.Sprintf("EVT_SIM_%d", now.UnixMilli()),
		Type:      "Stage Advanced (Simulated)",
		Timestamp: ts,
		Location:  "System Simulation",
		Details:   fmt.Sprintf("Product moved to '%s' stage.", phases[next].Name),
	})

	p.LifecyclePhases = phases
	p.CurrentLifecyclePhaseIndex = next
	p.LifecycleEvents = events

	if err := s.mutateStored(ctx, id, func(stored *models.StoredProduct) {
		stored.LifecyclePhases = phases
		stored.CurrentLifecyclePhaseIndex = &next
		stored.LifecycleEvents = events
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"stage":      phases[next].Name,
	}).Info("Lifecycle stage advanced")

	return &p, nil
}

// VerifyDocument simulates verifying the compliance document of one
// regulation. A successful check toggles the verified flag, a failed one
// clears it.
func (s *ProductService) VerifyDocument(ctx context.Context, id, regulation string) (*VerificationResult, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	record, ok := p.ComplianceData[regulation]
	if !ok {
		return nil, ErrRegulationNotFound
	}

	success := s.random() < verificationSuccessRate
	verified := false
	if success {
		verified = record.IsVerified == nil || !*record.IsVerified
	}
	record.IsVerified = &verified
	record.LastChecked = s.timestamp()

	data := make(map[string]models.ComplianceRecord, len(p.ComplianceData))
	for k, v := range p.ComplianceData {
		data[k] = v
	}
	data[regulation] = record
	p.ComplianceData = data

	if err := s.mutateStored(ctx, id, func(stored *models.StoredProduct) {
		stored.ComplianceData = data
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"regulation": regulation,
		"success":    success,
	}).Info("Document verification simulated")

	return &VerificationResult{Regulation: regulation, Success: success, Product: &p}, nil
}

// LinkSupplier adds a supply chain link to a user product.
func (s *ProductService) LinkSupplier(ctx context.Context, id string, req *LinkSupplierRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := s.suppliers.GetSupplier(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	link := models.SupplyChainLink{
		SupplierID:   req.SupplierID,
		SuppliedItem: strings.TrimSpace(req.SuppliedItem),
		Notes:        strings.TrimSpace(req.Notes),
	}
	return s.editLinks(ctx, id, func(links []models.SupplyChainLink) ([]models.SupplyChainLink, error) {
		if findLink(links, link.SupplierID, link.SuppliedItem) >= 0 {
			return nil, ErrLinkExists
		}
		return append(links, link), nil
	})
}

func (s *ProductService) UnlinkSupplier(ctx context.Context, id string, req *UnlinkSupplierRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.editLinks(ctx, id, func(links []models.SupplyChainLink) ([]models.SupplyChainLink, error) {
		i := findLink(links, req.SupplierID, req.SuppliedItem)
		if i < 0 {
			return nil, ErrLinkNotFound
		}
		return append(links[:i], links[i+1:]...), nil
	})
}

func (s *ProductService) UpdateSupplierLink(ctx context.Context, id string, req *UpdateSupplierLinkRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.editLinks(ctx, id, func(links []models.SupplyChainLink) ([]models.SupplyChainLink, error) {
		i := findLink(links, req.SupplierID, req.SuppliedItem)
		if i < 0 {
			return nil, ErrLinkNotFound
		}
		item := strings.TrimSpace(req.NewSuppliedItem)
		if item != req.SuppliedItem && findLink(links, req.SupplierID, item) >= 0 {
			return nil, ErrLinkExists
		}
		links[i].SuppliedItem = item
		links[i].Notes = strings.TrimSpace(req.Notes)
		return links, nil
	})
}

// editLinks runs fn over a copy of the product's links and persists the
// result. Only user products have editable supply chains.
func (s *ProductService) editLinks(ctx context.Context, id string, fn func([]models.SupplyChainLink) ([]models.SupplyChainLink, error)) (*models.Product, error) {
	if !models.IsUserProduct(id) {
		if _, ok := catalogProduct(id); ok {
			return nil, ErrProductNotEditable
		}
		return nil, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found, err := s.records.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProductNotFound
	}

	links, err := fn(append([]models.SupplyChainLink{}, stored.SupplyChainLinks...))
	if err != nil {
		return nil, err
	}
	stored.SupplyChainLinks = links
	stored.LastUpdated = s.timestamp()
	if err := s.records.UpsertProduct(ctx, stored); err != nil {
		return nil, err
	}

	p := s.toView(&stored)
	return &p, nil
}

func findLink(links []models.SupplyChainLink, supplierID, item string) int {
	for i, l := range links {
		if l.SupplierID == supplierID && l.SuppliedItem == item {
			return i
		}
	}
	return -1
}
