// internal/services/services_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/completeness"
	"github.com/norruva/dpp-backend/internal/config"
	"github.com/norruva/dpp-backend/internal/models"
	"github.com/norruva/dpp-backend/internal/provenance"
	"github.com/norruva/dpp-backend/internal/storage"
	"github.com/norruva/dpp-backend/internal/utils"
)

var testNow = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testEnv struct {
	records   *storage.RecordStore
	suppliers *SupplierService
	products  *ProductService
}

func newTestEnv(t *testing.T, flows ai.Flows) *testEnv {
	t.Helper()
	records := storage.NewRecordStore(storage.NewMemoryStore())
	suppliers := NewSupplierService(records)
	suppliers.now = fixedClock
	if flows == nil {
		flows = &ai.Simulated{Now: fixedClock}
	}
	storageService, err := NewStorageService(&config.Config{})
	require.NoError(t, err)

	products := NewProductService(records, suppliers, flows, storageService)
	products.now = fixedClock
	return &testEnv{records: records, suppliers: suppliers, products: products}
}

func (e *testEnv) createKettle(t *testing.T) *models.Product {
	t.Helper()
	req := &CreateProductRequest{Origins: map[string]models.Origin{"manufacturer": models.OriginAIExtracted}}
	req.ProductName = "Electric Kettle"
	req.Manufacturer = "Acme Home"
	req.ProductCategory = "Appliances"
	p, err := e.products.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	return p
}

type failingFlows struct {
	*ai.Simulated
}

func (failingFlows) GenerateImage(context.Context, ai.ImageInput) (*ai.ImageOutput, error) {
	return nil, ai.ErrFlowFailed
}

func (failingFlows) SyncEPREL(context.Context, ai.EPRELSyncInput) (*ai.EPRELSyncOutput, error) {
	return nil, ai.ErrFlowFailed
}

func TestGetProduct_CatalogAndUser(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p, err := env.products.GetProduct(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, "EcoFriendly Refrigerator X2000", p.ProductName)

	created := env.createKettle(t)
	assert.True(t, strings.HasPrefix(created.ProductID, models.UserProductPrefix))

	got, err := env.products.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Electric Kettle", got.ProductName)
	assert.Equal(t, "N/A", got.ModelNumber)
	assert.Equal(t, models.OriginManual, got.ProductNameOrigin)
	assert.Equal(t, models.OriginAIExtracted, got.ManufacturerOrigin)

	_, err = env.products.GetProduct(ctx, "USER_PROD_MISSING")
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = env.products.GetProduct(ctx, "PROD999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct_MalformedSpecificationsFallBackToEmpty(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.records.UpsertProduct(ctx, models.StoredProduct{
		ID:             "USER_PROD1",
		ProductName:    "Broken",
		Specifications: "{not json",
	}))

	p, err := env.products.GetProduct(ctx, "USER_PROD1")
	require.NoError(t, err)
	assert.Equal(t, "Broken", p.ProductName)
	assert.Empty(t, p.Specifications)
}

func TestCreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.products.CreateProduct(context.Background(), &CreateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNameRequired)

	req := &CreateProductRequest{}
	req.ProductName = "Thing"
	req.GTIN = "12345"
	_, err = env.products.CreateProduct(context.Background(), req)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestUpdateProduct_ReconcilesOriginsAgainstBaseline(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)

	snap, err := env.products.BeginEdit(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.OriginAIExtracted, snap.Origins["manufacturer"])

	form := snap.Values
	form.ModelNumber = "K-100"
	updated, err := env.products.UpdateProduct(ctx, created.ProductID, &UpdateProductRequest{Form: form, Baseline: snap})
	require.NoError(t, err)

	assert.Equal(t, "K-100", updated.ModelNumber)
	assert.Equal(t, models.OriginManual, updated.ModelNumberOrigin)
	assert.Equal(t, models.OriginAIExtracted, updated.ManufacturerOrigin)
	assert.Equal(t, models.OriginManual, updated.ProductNameOrigin)
	assert.Equal(t, "2024-09-01T12:00:00Z", updated.LastUpdated)

	stored, found, err := env.records.FindProduct(ctx, created.ProductID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "K-100", stored.ModelNumber)
}

func TestUpdateProduct_WithoutBaselineUsesCurrentView(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)

	snap, err := env.products.BeginEdit(ctx, created.ProductID)
	require.NoError(t, err)

	updated, err := env.products.UpdateProduct(ctx, created.ProductID, &UpdateProductRequest{Form: snap.Values})
	require.NoError(t, err)
	assert.Equal(t, models.OriginAIExtracted, updated.ManufacturerOrigin)
}

func TestUpdateProduct_CatalogIsReadOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.products.UpdateProduct(ctx, "PROD001", &UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNotEditable)
	_, err = env.products.BeginEdit(ctx, "PROD001")
	assert.ErrorIs(t, err, ErrProductNotEditable)
	_, err = env.products.UpdateProduct(ctx, "USER_PROD404", &UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_FilterSortPaginate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.createKettle(t)

	all, total, err := env.products.ListProducts(ctx, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
	for _, s := range all {
		assert.True(t, s.Completeness >= 0 && s.Completeness <= 100)
	}

	electronics, total, err := env.products.ListProducts(ctx, utils.PaginationParams{Page: 1, Limit: 20, Category: "ELECTR"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "PROD002", electronics[0].ProductID)

	found, _, err := env.products.ListProducts(ctx, utils.PaginationParams{Page: 1, Limit: 20, Search: "kettle"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].UserProduct)

	byName, _, err := env.products.ListProducts(ctx, utils.PaginationParams{Page: 2, Limit: 1, Sort: "productName", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Electric Kettle", byName[0].ProductName)

	empty, total, err := env.products.ListProducts(ctx, utils.PaginationParams{Page: 9, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.EqualValues(t, 3, total)
}

func TestPortfolioCompleteness(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createKettle(t)

	summary, err := env.products.PortfolioCompleteness(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ProductCount)
	assert.LessOrEqual(t, summary.Min, summary.P25)
	assert.LessOrEqual(t, summary.P25, summary.Median)
	assert.LessOrEqual(t, summary.Median, summary.Max)
	assert.Contains(t, summary.SectionAverages, "Basic Info")
	assert.Contains(t, summary.SectionAverages, "Battery")
	require.Len(t, summary.Lowest, 3)
	assert.LessOrEqual(t, summary.Lowest[0].Completeness, summary.Lowest[2].Completeness)
}

func TestPortfolioCompleteness_EncodesForSmallPortfolios(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	summary, err := env.products.PortfolioCompleteness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ProductCount)
	assert.Equal(t, summary.Min, summary.P25)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"p25":`)

	env.createKettle(t)
	summary, err = env.products.PortfolioCompleteness(ctx)
	require.NoError(t, err)
	_, err = json.Marshal(summary)
	require.NoError(t, err)
}

func TestLowerQuartile(t *testing.T) {
	assert.Equal(t, 40.0, lowerQuartile(stats.Float64Data{40}))
	assert.Equal(t, 40.0, lowerQuartile(stats.Float64Data{90, 40}))
	assert.Equal(t, 20.0, lowerQuartile(stats.Float64Data{80, 20, 60, 40}))
	assert.Equal(t, 0.0, lowerQuartile(stats.Float64Data{}))
	assert.Equal(t, 0.0, round1(math.NaN(), nil))
}

func TestUpdateProduct_KeepsNonStringSpecifications(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)

	snap, err := env.products.BeginEdit(ctx, created.ProductID)
	require.NoError(t, err)

	form := snap.Values
	form.Specifications = `{"Capacity": 1.7, "Power": "2200W"}`
	_, err = env.products.UpdateProduct(ctx, created.ProductID, &UpdateProductRequest{Form: form, Baseline: snap})
	require.NoError(t, err)

	reloaded, err := env.products.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.Specifications{"Capacity": "1.7", "Power": "2200W"}, reloaded.Specifications)
	assert.Equal(t, models.OriginManual, reloaded.SpecificationsOrigin)

	result, err := env.products.Completeness(ctx, created.ProductID)
	require.NoError(t, err)
	section, ok := result.Section(completeness.SectionSpecifications)
	require.True(t, ok)
	assert.Equal(t, 1, section.FilledFields)
	assert.Empty(t, section.MissingFieldsInSection)

	// Resubmitting the rendered sheet unchanged keeps the origin.
	snap, err = env.products.BeginEdit(ctx, created.ProductID)
	require.NoError(t, err)
	again, err := env.products.UpdateProduct(ctx, created.ProductID, &UpdateProductRequest{Form: snap.Values, Baseline: snap})
	require.NoError(t, err)
	assert.Equal(t, models.Specifications{"Capacity": "1.7", "Power": "2200W"}, again.Specifications)
}

func TestUpdateProduct_RejectsSpecificationsThatAreNotObjects(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)

	for _, text := range []string{`["a","b"]`, `42`, `{broken`} {
		form := provenance.EditForm{ProductName: "Electric Kettle", Specifications: text}
		_, err := env.products.UpdateProduct(ctx, created.ProductID, &UpdateProductRequest{Form: form})
		require.Error(t, err, text)
		errs := utils.GetValidationErrors(err)
		require.Len(t, errs, 1, text)
		assert.Equal(t, "specifications", errs[0].Field)
		assert.Equal(t, "specifications", errs[0].Tag)
	}
}

func TestGenerateImage_PersistsForUserProducts(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)

	p, err := env.products.GenerateImage(ctx, created.ProductID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ImageURL, "data:image/svg+xml;base64,"))
	assert.Equal(t, models.OriginAIExtracted, p.ImageURLOrigin)

	reloaded, err := env.products.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, p.ImageURL, reloaded.ImageURL)
	assert.Equal(t, models.OriginAIExtracted, reloaded.ImageURLOrigin)

	catalog, err := env.products.GenerateImage(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, models.OriginAIExtracted, catalog.ImageURLOrigin)
	again, err := env.products.GetProduct(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, "https://placehold.co/600x400.png", again.ImageURL)
}

func TestFlowFailureLeavesProductUnchanged(t *testing.T) {
	env := newTestEnv(t, failingFlows{Simulated: &ai.Simulated{Now: fixedClock}})
	ctx := context.Background()
	created := env.createKettle(t)

	_, err := env.products.GenerateImage(ctx, created.ProductID)
	assert.ErrorIs(t, err, ai.ErrFlowFailed)
	_, err = env.products.SyncEPREL(ctx, created.ProductID)
	assert.ErrorIs(t, err, ai.ErrFlowFailed)

	reloaded, err := env.products.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, reloaded.ImageURL)
	assert.Equal(t, created.OverallCompliance, reloaded.OverallCompliance)
}

func TestSyncEPREL_UpdatesEPRELSlot(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	res, err := env.products.SyncEPREL(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, ai.EPRELSynced, res.Sync.SyncStatus)
	assert.Equal(t, models.ComplianceStatusCompliant, res.Product.OverallCompliance.EPREL.Status)
	assert.Equal(t, "EPREL_X2000ECO", res.Product.OverallCompliance.EPREL.EntryID)

	created := env.createKettle(t)
	res, err = env.products.SyncEPREL(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, ai.EPRELNotFound, res.Sync.SyncStatus)
	assert.Equal(t, models.ComplianceStatusNotApplicable, res.Product.OverallCompliance.EPREL.Status)

	reloaded, err := env.products.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.ComplianceStatusNotApplicable, reloaded.OverallCompliance.EPREL.Status)
	assert.Empty(t, reloaded.OverallCompliance.EPREL.EntryID)
}

func TestCheckCompliance(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	out, err := env.products.CheckCompliance(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, "Retail & Sale", out.NewLifecycleStageName)

	created := env.createKettle(t)
	_, err = env.products.CheckCompliance(ctx, created.ProductID)
	assert.ErrorIs(t, err, ErrEndOfLifecycle)
}

func TestAdvanceLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p, err := env.products.AdvanceLifecycle(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, 3, p.CurrentLifecyclePhaseIndex)
	assert.Equal(t, models.PhaseStatusCompleted, p.LifecyclePhases[2].Status)
	assert.Equal(t, models.PhaseStatusInProgress, p.LifecyclePhases[3].Status)
	last := p.LifecycleEvents[len(p.LifecycleEvents)-1]
	assert.Equal(t, "Stage Advanced (Simulated)", last.Type)
	assert.Equal(t, "Product moved to 'Retail & Sale' stage.", last.Details)

	// catalog products are not persisted
	again, err := env.products.GetProduct(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, 2, again.CurrentLifecyclePhaseIndex)
}

func TestAdvanceLifecycle_IssuePhaseKeepsStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	zero := 0
	require.NoError(t, env.records.UpsertProduct(ctx, models.StoredProduct{
		ID:                         "USER_PROD7",
		ProductName:                "Battery Pack",
		CurrentLifecyclePhaseIndex: &zero,
		LifecyclePhases: []models.LifecyclePhase{
			{ID: "a", Name: "Sourcing", Status: models.PhaseStatusIssue},
			{ID: "b", Name: "Assembly", Status: models.PhaseStatusPending},
		},
	}))

	p, err := env.products.AdvanceLifecycle(ctx, "USER_PROD7")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseStatusIssue, p.LifecyclePhases[0].Status)
	assert.Equal(t, models.PhaseStatusInProgress, p.LifecyclePhases[1].Status)

	reloaded, err := env.products.GetProduct(ctx, "USER_PROD7")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.CurrentLifecyclePhaseIndex)
	assert.Len(t, reloaded.LifecycleEvents, 1)

	_, err = env.products.AdvanceLifecycle(ctx, "USER_PROD7")
	assert.ErrorIs(t, err, ErrEndOfLifecycle)
}

func TestVerifyDocument(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.products.random = func() float64 { return 0.1 }
	res, err := env.products.VerifyDocument(ctx, "PROD001", "WEEE")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, *res.Product.ComplianceData["WEEE"].IsVerified)

	res, err = env.products.VerifyDocument(ctx, "PROD001", "REACH")
	require.NoError(t, err)
	assert.False(t, *res.Product.ComplianceData["REACH"].IsVerified)

	env.products.random = func() float64 { return 0.95 }
	res, err = env.products.VerifyDocument(ctx, "PROD001", "WEEE")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, *res.Product.ComplianceData["WEEE"].IsVerified)
	assert.Equal(t, "2024-09-01T12:00:00Z", res.Product.ComplianceData["WEEE"].LastChecked)

	_, err = env.products.VerifyDocument(ctx, "PROD001", "GDPR")
	assert.ErrorIs(t, err, ErrRegulationNotFound)
}

func TestSupplyChainLinks(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	created := env.createKettle(t)
	id := created.ProductID

	p, err := env.products.LinkSupplier(ctx, id, &LinkSupplierRequest{SupplierID: "SUP001", SuppliedItem: " Steel body ", Notes: "Recycled"})
	require.NoError(t, err)
	require.Len(t, p.SupplyChainLinks, 1)
	assert.Equal(t, "Steel body", p.SupplyChainLinks[0].SuppliedItem)

	_, err = env.products.LinkSupplier(ctx, id, &LinkSupplierRequest{SupplierID: "SUP001", SuppliedItem: "Steel body"})
	assert.ErrorIs(t, err, ErrLinkExists)
	_, err = env.products.LinkSupplier(ctx, id, &LinkSupplierRequest{SupplierID: "SUP999", SuppliedItem: "Glass"})
	assert.ErrorIs(t, err, ErrSupplierNotFound)

	p, err = env.products.UpdateSupplierLink(ctx, id, &UpdateSupplierLinkRequest{
		SupplierID: "SUP001", SuppliedItem: "Steel body", NewSuppliedItem: "Steel lid", Notes: "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Steel lid", p.SupplyChainLinks[0].SuppliedItem)
	assert.Empty(t, p.SupplyChainLinks[0].Notes)

	_, err = env.products.UnlinkSupplier(ctx, id, &UnlinkSupplierRequest{SupplierID: "SUP001", SuppliedItem: "Steel body"})
	assert.ErrorIs(t, err, ErrLinkNotFound)

	p, err = env.products.UnlinkSupplier(ctx, id, &UnlinkSupplierRequest{SupplierID: "SUP001", SuppliedItem: "Steel lid"})
	require.NoError(t, err)
	assert.Empty(t, p.SupplyChainLinks)

	_, err = env.products.LinkSupplier(ctx, "PROD001", &LinkSupplierRequest{SupplierID: "SUP001", SuppliedItem: "Steel"})
	assert.ErrorIs(t, err, ErrProductNotEditable)
}

func TestSupplierService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	list, err := env.suppliers.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)

	created, err := env.suppliers.CreateSupplier(ctx, &CreateSupplierRequest{Name: "Nordic Glass", MaterialsSupplied: "Float glass"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "USER_SUP"))
	assert.Equal(t, models.SupplierStatusPendingReview, created.Status)
	assert.Equal(t, "2024-09-01", created.LastUpdated)

	got, err := env.suppliers.GetSupplier(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nordic Glass", got.Name)

	_, err = env.suppliers.CreateSupplier(ctx, &CreateSupplierRequest{Name: "X", MaterialsSupplied: "Y", Email: "nope"})
	assert.True(t, utils.IsValidationError(err))

	_, err = env.suppliers.GetSupplier(ctx, "SUP404")
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierService_UserSupplierOverridesBuiltIn(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	require.NoError(t, env.records.SaveSuppliers(ctx, []models.Supplier{
		{ID: "SUP001", Name: "GreenSteel GmbH", MaterialsSupplied: "Steel", Status: models.SupplierStatusActive},
	}))

	list, err := env.suppliers.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "SUP002", list[0].ID)
	assert.Equal(t, "GreenSteel GmbH", list[4].Name)
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, f.err
}

func TestStorageService_StoreImage(t *testing.T) {
	ctx := context.Background()

	disabled, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	assert.False(t, disabled.Enabled())
	url, err := disabled.StoreImage(ctx, "USER_PROD1", "data:image/png;base64,iVA=")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVA=", url)

	client := &fakeS3{}
	svc := &StorageService{
		s3Client: client,
		config:   &config.Config{AWS: config.AWSConfig{Region: "eu-central-1", S3Bucket: "dpp-images"}},
		now:      fixedClock,
	}
	url, err = svc.StoreImage(ctx, "USER_PROD1", "data:image/png;base64,iVA=")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://dpp-images.s3.eu-central-1.amazonaws.com/products/USER_PROD1/20240901_"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Equal(t, "image/png", aws.StringValue(client.input.ContentType))
	assert.EqualValues(t, 2, aws.Int64Value(client.input.ContentLength))

	url, err = svc.StoreImage(ctx, "USER_PROD1", "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", url)

	_, err = svc.StoreImage(ctx, "USER_PROD1", "data:text/plain;base64,aGk=")
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	client.err = errors.New("denied")
	_, err = svc.StoreImage(ctx, "USER_PROD1", "data:image/png;base64,iVA=")
	assert.Error(t, err)
}

func TestSustainabilityOverview(t *testing.T) {
	svc := NewSustainabilityService(ai.NewSimulated())
	overview := svc.Overview(context.Background())

	assert.Equal(t, 7500.0, overview.TotalEmissions)
	require.Len(t, overview.Scopes, 3)
	assert.Equal(t, 16.0, overview.Scopes[0].Share)
	assert.Equal(t, 73.3, overview.Scopes[2].Share)
	assert.Equal(t, 2, overview.PublishedCount)
	assert.Equal(t, 1, overview.DraftCount)
}

func TestGenerateCSRDSummary_Defaults(t *testing.T) {
	svc := NewSustainabilityService(ai.NewSimulated())

	out, err := svc.GenerateCSRDSummary(context.Background(), &CSRDSummaryRequest{})
	require.NoError(t, err)
	assert.Contains(t, out.SummaryText, "Norruva Demo Corp")
	assert.Contains(t, out.SummaryText, "7500 tCO₂e")
	assert.Contains(t, out.SummaryText, "renewable energy")

	total := 42.0
	out, err = svc.GenerateCSRDSummary(context.Background(), &CSRDSummaryRequest{
		CompanyName:                  "Acme",
		TotalEmissions:               &total,
		KeySustainabilityInitiatives: []string{"Planted trees."},
	})
	require.NoError(t, err)
	assert.Contains(t, out.SummaryText, "Acme reports total greenhouse gas emissions of 42 tCO₂e")
	assert.NotContains(t, out.SummaryText, "renewable energy")

	negative := -1.0
	_, err = svc.GenerateCSRDSummary(context.Background(), &CSRDSummaryRequest{TotalEmissions: &negative})
	assert.True(t, utils.IsValidationError(err))
}
