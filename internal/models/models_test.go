// internal/models/models_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecifications_DecodesObjectAndText(t *testing.T) {
	var fromObject struct {
		Specs Specifications `json:"specifications"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"specifications":{"ram":"8GB"}}`), &fromObject))
	assert.Equal(t, Specifications{"ram": "8GB"}, fromObject.Specs)

	var fromText struct {
		Specs Specifications `json:"specifications"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"specifications":"{\"ram\":\"16GB\"}"}`), &fromText))
	assert.Equal(t, Specifications{"ram": "16GB"}, fromText.Specs)

	var bad struct {
		Specs Specifications `json:"specifications"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"specifications":"not json"}`), &bad))
}

func TestParseSpecifications(t *testing.T) {
	specs, err := ParseSpecifications("   ")
	require.NoError(t, err)
	assert.Empty(t, specs)

	_, err = ParseSpecifications("{broken")
	assert.Error(t, err)

	_, err = ParseSpecifications(`["a","b"]`)
	assert.Error(t, err)
}

func TestParseSpecifications_NonStringValues(t *testing.T) {
	specs, err := ParseSpecifications(`{"Capacity": 1.7, "Power": "2200W", "Dishwasher safe": true, "Ports": ["USB-C", "HDMI"], "Notes": null}`)
	require.NoError(t, err)
	assert.Equal(t, Specifications{
		"Capacity":        "1.7",
		"Power":           "2200W",
		"Dishwasher safe": "true",
		"Ports":           `["USB-C","HDMI"]`,
		"Notes":           "",
	}, specs)

	var fromObject struct {
		Specs Specifications `json:"specifications"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"specifications":{"weight":5}}`), &fromObject))
	assert.Equal(t, Specifications{"weight": "5"}, fromObject.Specs)

	// The text form survives a round trip through the edit form rendering.
	again, err := ParseSpecifications(specs.Text())
	require.NoError(t, err)
	assert.Equal(t, specs, again)
}

func TestOrigin_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Origin `json:"a"`
		B Origin `json:"b"`
		C Origin `json:"c,omitempty"`
	}{OriginAIExtracted, OriginManual, OriginUnset})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"AI_EXTRACTED","b":"manual"}`, string(data))

	var decoded struct {
		A Origin `json:"a"`
		B Origin `json:"b"`
		C Origin `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"manual","b":"robot","c":null}`), &decoded))
	assert.Equal(t, OriginManual, decoded.A)
	assert.Equal(t, OriginUnset, decoded.B)
	assert.Equal(t, OriginUnset, decoded.C)
}

func TestDefaultProduct(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	p := DefaultProduct("USER_PROD42", now)

	assert.Equal(t, "User Added Product", p.ProductName)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, "https://placehold.co/600x400.png?text=P42", p.ImageURL)
	assert.True(t, IsPlaceholderImage(p.ImageURL))
	assert.Len(t, p.LifecyclePhases, 2)
	assert.Equal(t, 1, p.CurrentLifecyclePhaseIndex)
	assert.Equal(t, ComplianceStatusPendingReview, p.OverallCompliance.EPREL.Status)
	assert.Equal(t, "2024-07-01T09:30:00Z", p.LastUpdated)
	assert.False(t, p.HasBatteryData())
}

func TestStoredProduct_ToProduct(t *testing.T) {
	soh := 80.0
	stored := StoredProduct{
		ID:                 "USER_PROD7",
		ProductName:        "Scooter",
		ProductCategory:    "Automotive Parts",
		ImageURL:           "https://cdn.example.com/scooter.png",
		Specifications:     `{"range":"40km"}`,
		StateOfHealth:      &soh,
		ManufacturerOrigin: OriginAIExtracted,
	}

	p, err := stored.ToProduct(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Scooter", p.ProductName)
	assert.Equal(t, "Automotive Parts", p.Category)
	assert.Equal(t, "N/A", p.Manufacturer)
	assert.Equal(t, OriginAIExtracted, p.ManufacturerOrigin)
	assert.Equal(t, "Scooter", p.ImageHint)
	assert.Equal(t, Specifications{"range": "40km"}, p.Specifications)
	assert.True(t, p.HasBatteryData())
}

func TestStoredProduct_ToProductMalformedSpecifications(t *testing.T) {
	stored := StoredProduct{ID: "USER_PROD8", Specifications: "{not-json"}

	p, err := stored.ToProduct(time.Now())
	assert.Error(t, err)
	assert.Equal(t, "USER_PROD8", p.ProductID)
	assert.NotNil(t, p.Specifications)
	assert.Empty(t, p.Specifications)
}

func TestProduct_FieldValue(t *testing.T) {
	p := DefaultProduct("USER_PROD1", time.Now())

	v, err := p.FieldValue("manufacturer")
	require.NoError(t, err)
	assert.Equal(t, "N/A", v)

	_, err = p.FieldValue("nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}
