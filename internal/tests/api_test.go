// internal/tests/api_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/config"
	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/router"
	"github.com/norruva/dpp-backend/internal/storage"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{RequestsPerSec: 1000},
		Store:       config.StoreConfig{Backend: config.StoreBackendMemory},
		AI:          config.AIConfig{TimeoutSeconds: 5, RequestsPerMin: 1000},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.ErrorLevel)
	require.NoError(t, i18n.Initialize("en"))

	records := storage.NewRecordStore(storage.NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	r, err := router.Initialize(ctx, cfg, records, ai.NewSimulated())
	require.NoError(t, err)
	return r
}

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *APITestSuite) SetupTest() {
	suite.router = newRouter(suite.T(), testConfig())
}

func (suite *APITestSuite) do(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, apiResponse) {
	var reader *bytes.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(jsonData)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

func (suite *APITestSuite) decode(raw json.RawMessage, dst interface{}) {
	suite.Require().NoError(json.Unmarshal(raw, dst))
}

func (suite *APITestSuite) createProduct(body map[string]interface{}) string {
	w, response := suite.do("POST", "/v1/products", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var product map[string]interface{}
	suite.decode(response.Data, &product)
	return product["productId"].(string)
}

func (suite *APITestSuite) TestHealth() {
	w, _ := suite.do("GET", "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotEmpty(suite.T(), w.Header().Get("X-Request-ID"))
}

func (suite *APITestSuite) TestListProducts() {
	w, response := suite.do("GET", "/v1/products?limit=1&sort=productName&order=asc", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.True(suite.T(), response.Success)
	assert.Equal(suite.T(), "2", w.Header().Get("X-Total-Count"))

	var products []map[string]interface{}
	suite.decode(response.Data, &products)
	suite.Require().Len(products, 1)
	assert.Contains(suite.T(), products[0], "completeness")
}

func (suite *APITestSuite) TestGetProduct() {
	w, response := suite.do("GET", "/v1/products/PROD001", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var product map[string]interface{}
	suite.decode(response.Data, &product)
	assert.Equal(suite.T(), "PROD001", product["productId"])

	w, response = suite.do("GET", "/v1/products/NOPE", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NOT_FOUND", response.Error.Code)
	assert.Equal(suite.T(), "Product not found", response.Error.Message)
}

func (suite *APITestSuite) TestLocalizedErrors() {
	_, response := suite.do("GET", "/v1/products/NOPE", nil, "Accept-Language", "de-DE,de;q=0.9")
	suite.Require().NotNil(response.Error)
	assert.Equal(suite.T(), "Produkt nicht gefunden", response.Error.Message)
}

func (suite *APITestSuite) TestCreateEditAndScoreProduct() {
	id := suite.createProduct(map[string]interface{}{
		"productName":     "Electric Kettle",
		"productCategory": "Home Appliances",
		"manufacturer":    "Acme",
		"origins":         map[string]string{"manufacturer": "AI_EXTRACTED"},
	})
	assert.True(suite.T(), strings.HasPrefix(id, "USER_PROD"))

	w, response := suite.do("GET", "/v1/products/"+id+"/edit", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var snapshot map[string]interface{}
	suite.decode(response.Data, &snapshot)
	suite.Require().Contains(snapshot, "values")

	origins := snapshot["origins"].(map[string]interface{})
	assert.Equal(suite.T(), "AI_EXTRACTED", origins["manufacturer"])

	// The form is a copy so the baseline keeps the values the session began with.
	values := map[string]interface{}{}
	for k, v := range snapshot["values"].(map[string]interface{}) {
		values[k] = v
	}
	values["manufacturer"] = "Acme GmbH"
	w, response = suite.do("PUT", "/v1/products/"+id, map[string]interface{}{
		"form":     values,
		"baseline": snapshot,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Equal(suite.T(), "Electric Kettle has been updated successfully.", response.Meta["message"])

	var product map[string]interface{}
	suite.decode(response.Data, &product)
	assert.Equal(suite.T(), "Acme GmbH", product["manufacturer"])
	assert.Equal(suite.T(), "manual", product["manufacturerOrigin"])

	w, response = suite.do("GET", "/v1/products/"+id+"/completeness", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var result map[string]interface{}
	suite.decode(response.Data, &result)
	assert.Contains(suite.T(), result, "overallScore")
	assert.Contains(suite.T(), result, "sections")
}

func (suite *APITestSuite) TestCreateProductValidation() {
	w, response := suite.do("POST", "/v1/products", map[string]interface{}{"productName": "Kettle", "gtin": "abc"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)

	w, _ = suite.do("POST", "/v1/products", map[string]interface{}{"productName": "  "})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCatalogProductIsReadOnly() {
	w, response := suite.do("PUT", "/v1/products/PROD001", map[string]interface{}{"form": map[string]string{"productName": "X"}})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "FORBIDDEN", response.Error.Code)

	w, _ = suite.do("GET", "/v1/products/PROD001/edit", nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w, _ = suite.do("POST", "/v1/products/PROD001/supply-chain", map[string]string{"supplierId": "SUP001", "suppliedItem": "Steel"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestPortfolioCompleteness() {
	w, response := suite.do("GET", "/v1/products/completeness/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var summary map[string]interface{}
	suite.decode(response.Data, &summary)
	assert.Equal(suite.T(), float64(2), summary["productCount"])
	assert.Equal(suite.T(), summary["min"], summary["p25"])
}

func (suite *APITestSuite) TestAIOperations() {
	w, response := suite.do("POST", "/v1/products/PROD001/claims/suggest", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), response.Success)

	w, _ = suite.do("POST", "/v1/products/PROD001/compliance/check", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, response = suite.do("POST", "/v1/products/PROD001/eprel/sync", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var sync map[string]interface{}
	suite.decode(response.Data, &sync)
	assert.Contains(suite.T(), sync, "sync")

	w, response = suite.do("POST", "/v1/products/PROD001/image", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var product map[string]interface{}
	suite.decode(response.Data, &product)
	assert.True(suite.T(), strings.HasPrefix(product["imageUrl"].(string), "data:image/"))
}

func (suite *APITestSuite) TestAdvanceLifecycle() {
	w, response := suite.do("POST", "/v1/products/PROD001/lifecycle/advance", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var product map[string]interface{}
	suite.decode(response.Data, &product)
	assert.Equal(suite.T(), float64(3), product["currentLifecyclePhaseIndex"])
	assert.Contains(suite.T(), response.Meta["message"], "Product moved to")
}

func (suite *APITestSuite) TestVerifyDocument() {
	w, response := suite.do("POST", "/v1/products/PROD001/compliance/REACH/verify", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var result map[string]interface{}
	suite.decode(response.Data, &result)
	assert.Equal(suite.T(), "REACH", result["regulation"])

	w, response = suite.do("POST", "/v1/products/PROD001/compliance/UNKNOWN/verify", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Regulation not found", response.Error.Message)
}

func (suite *APITestSuite) TestSupplyChainLinks() {
	id := suite.createProduct(map[string]interface{}{"productName": "Kettle"})
	path := "/v1/products/" + id + "/supply-chain"
	link := map[string]string{"supplierId": "SUP001", "suppliedItem": "Steel housing"}

	w, _ := suite.do("POST", path, link)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, response := suite.do("POST", path, link)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "CONFLICT", response.Error.Code)

	w, _ = suite.do("PUT", path, map[string]string{"supplierId": "SUP001", "suppliedItem": "Steel housing", "newSuppliedItem": "Steel lid"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, _ = suite.do("DELETE", path, map[string]string{"supplierId": "SUP001", "suppliedItem": "Steel housing"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, response = suite.do("DELETE", path, map[string]string{"supplierId": "SUP001", "suppliedItem": "Steel lid"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var product map[string]interface{}
	suite.decode(response.Data, &product)
	assert.Empty(suite.T(), product["supplyChainLinks"])

	w, _ = suite.do("POST", path, map[string]string{"supplierId": "SUP999", "suppliedItem": "Steel"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestSuppliers() {
	w, response := suite.do("GET", "/v1/suppliers", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var suppliers []map[string]interface{}
	suite.decode(response.Data, &suppliers)
	assert.Len(suite.T(), suppliers, 5)

	w, response = suite.do("POST", "/v1/suppliers", map[string]string{"name": "Nordic Metals", "materialsSupplied": "Aluminium"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var supplier map[string]interface{}
	suite.decode(response.Data, &supplier)
	assert.Equal(suite.T(), "Pending Review", supplier["status"])

	w, _ = suite.do("GET", "/v1/suppliers/"+supplier["id"].(string), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, response = suite.do("POST", "/v1/suppliers", map[string]string{"name": "N"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)

	w, _ = suite.do("GET", "/v1/suppliers/SUP999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestSustainability() {
	w, response := suite.do("GET", "/v1/sustainability/overview", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var overview map[string]interface{}
	suite.decode(response.Data, &overview)
	assert.Equal(suite.T(), float64(7500), overview["totalEmissions"])

	w, response = suite.do("POST", "/v1/sustainability/csrd-summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var summary map[string]interface{}
	suite.decode(response.Data, &summary)
	assert.Contains(suite.T(), summary["summaryText"], "Norruva Demo Corp")

	w, _ = suite.do("POST", "/v1/sustainability/csrd-summary", map[string]interface{}{"totalEmissions": -1})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCompletenessFields() {
	w, response := suite.do("GET", "/v1/completeness/fields", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var table struct {
		Sections []string                 `json:"sections"`
		Fields   []map[string]interface{} `json:"fields"`
	}
	suite.decode(response.Data, &table)
	assert.Contains(suite.T(), table.Sections, "Battery")
	assert.NotEmpty(suite.T(), table.Fields)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestAIRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AI.RequestsPerMin = 1
	r := newRouter(t, cfg)

	send := func() *httptest.ResponseRecorder {
		req, _ := http.NewRequest("POST", "/v1/products/PROD002/claims/suggest", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "AI_RATE_LIMITED")

	// Non AI routes are unaffected.
	req, _ := http.NewRequest("GET", "/v1/products/PROD002", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
