// internal/models/product.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	UserProductPrefix    = "USER_PROD"
	PlaceholderImageHost = "placehold.co"
)

// Specifications is the unordered key/value specification sheet of a product.
// It decodes from either a JSON object or a string holding a JSON object.
type Specifications map[string]string

func (s *Specifications) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeSpecifications(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DecodeSpecifications decodes a raw JSON specifications value, which is
// either an object or a string holding the serialized object. null decodes
// to a nil sheet.
func DecodeSpecifications(data []byte) (Specifications, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, err
		}
		return ParseSpecifications(text)
	}
	return ParseSpecifications(trimmed)
}

// ParseSpecifications parses the serialized text form. Blank text is an
// empty sheet, not an error. Values that are not strings are kept in their
// JSON text form, so {"Capacity": 1.7} reads as Capacity "1.7".
func ParseSpecifications(text string) (Specifications, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Specifications{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid specifications: %w", err)
	}
	specs := make(Specifications, len(raw))
	for k, v := range raw {
		specs[k] = specValue(v)
	}
	return specs, nil
}

func specValue(v json.RawMessage) string {
	var str string
	if err := json.Unmarshal(v, &str); err == nil {
		return str
	}
	if string(v) == "null" {
		return ""
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, v); err != nil {
		return string(v)
	}
	return compact.String()
}

// Text renders the sheet in the indented form used by the edit form.
func (s Specifications) Text() string {
	if s == nil {
		s = Specifications{}
	}
	data, _ := json.MarshalIndent(map[string]string(s), "", "  ")
	return string(data)
}

type LifecycleEvent struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Timestamp            string `json:"timestamp"`
	Location             string `json:"location"`
	Details              string `json:"details"`
	IsBlockchainAnchored bool   `json:"isBlockchainAnchored,omitempty"`
	TransactionHash      string `json:"transactionHash,omitempty"`
}

type ComplianceRecord struct {
	Status      string `json:"status"`
	LastChecked string `json:"lastChecked"`
	ReportID    string `json:"reportId"`
	IsVerified  *bool  `json:"isVerified,omitempty"`
}

type Metric struct {
	Name        string           `json:"name"`
	Status      ComplianceStatus `json:"status,omitempty"`
	Value       *float64         `json:"value,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	TargetValue *float64         `json:"targetValue,omitempty"`
	ReportLink  string           `json:"reportLink,omitempty"`
}

type KeyDocument struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type SubEvent struct {
	Name      string      `json:"name"`
	Timestamp string      `json:"timestamp"`
	Status    PhaseStatus `json:"status"`
}

type LifecyclePhase struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Status                PhaseStatus   `json:"status"`
	Timestamp             string        `json:"timestamp,omitempty"`
	Location              string        `json:"location,omitempty"`
	Details               string        `json:"details,omitempty"`
	ComplianceMetrics     []Metric      `json:"complianceMetrics,omitempty"`
	SustainabilityMetrics []Metric      `json:"sustainabilityMetrics,omitempty"`
	ResponsibleParty      string        `json:"responsibleParty,omitempty"`
	KeyDocuments          []KeyDocument `json:"keyDocuments,omitempty"`
	SubEvents             []SubEvent    `json:"subEvents,omitempty"`
}

type ComplianceSlot struct {
	Status         ComplianceStatus `json:"status"`
	LastChecked    string           `json:"lastChecked"`
	EntryID        string           `json:"entryId,omitempty"`
	VerificationID string           `json:"verificationId,omitempty"`
	DeclarationID  string           `json:"declarationId,omitempty"`
}

type OverallCompliance struct {
	GDPR         ComplianceSlot `json:"gdpr"`
	EPREL        ComplianceSlot `json:"eprel"`
	EBSIVerified ComplianceSlot `json:"ebsiVerified"`
	SCIP         ComplianceSlot `json:"scip"`
	CSRD         ComplianceSlot `json:"csrd"`
}

type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	Date    string           `json:"date"`
}

type VerificationLogEntry struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor,omitempty"`
	Details   string `json:"details,omitempty"`
}

type MaterialShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DataPoint struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

type Measurement struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Trend      string  `json:"trend,omitempty"`
	TrendValue string  `json:"trendValue,omitempty"`
}

type RepairabilityIndex struct {
	Value float64 `json:"value"`
	Scale float64 `json:"scale"`
}

type Certification struct {
	Name      string `json:"name"`
	Authority string `json:"authority"`
	Link      string `json:"link,omitempty"`
	Verified  *bool  `json:"verified,omitempty"`
}

// Product is the full Digital Product Passport view of a product.
type Product struct {
	ProductID             string `json:"productId"`
	ProductName           string `json:"productName"`
	ProductNameOrigin     Origin `json:"productNameOrigin,omitempty"`
	GTIN                  string `json:"gtin"`
	GTINVerified          *bool  `json:"gtinVerified,omitempty"`
	Category              string `json:"category"`
	Status                string `json:"status"`
	Compliance            string `json:"compliance"`
	ComplianceLastChecked string `json:"complianceLastChecked,omitempty"`
	LastUpdated           string `json:"lastUpdated"`

	Manufacturer         string `json:"manufacturer"`
	ManufacturerOrigin   Origin `json:"manufacturerOrigin,omitempty"`
	ManufacturerVerified *bool  `json:"manufacturerVerified,omitempty"`
	ModelNumber          string `json:"modelNumber"`
	ModelNumberOrigin    Origin `json:"modelNumberOrigin,omitempty"`
	Description          string `json:"description"`
	DescriptionOrigin    Origin `json:"descriptionOrigin,omitempty"`
	ImageURL             string `json:"imageUrl,omitempty"`
	ImageURLOrigin       Origin `json:"imageUrlOrigin,omitempty"`
	ImageHint            string `json:"imageHint,omitempty"`

	Materials                    string         `json:"materials"`
	MaterialsOrigin              Origin         `json:"materialsOrigin,omitempty"`
	SustainabilityClaims         string         `json:"sustainabilityClaims"`
	SustainabilityClaimsOrigin   Origin         `json:"sustainabilityClaimsOrigin,omitempty"`
	SustainabilityClaimsVerified *bool          `json:"sustainabilityClaimsVerified,omitempty"`
	EnergyLabel                  string         `json:"energyLabel"`
	EnergyLabelOrigin            Origin         `json:"energyLabelOrigin,omitempty"`
	Specifications               Specifications `json:"specifications"`
	SpecificationsOrigin         Origin         `json:"specificationsOrigin,omitempty"`

	LifecycleEvents []LifecycleEvent            `json:"lifecycleEvents"`
	ComplianceData  map[string]ComplianceRecord `json:"complianceData"`

	IsDppBlockchainAnchored  bool   `json:"isDppBlockchainAnchored"`
	DppAnchorTransactionHash string `json:"dppAnchorTransactionHash,omitempty"`

	BatteryChemistry                   string   `json:"batteryChemistry,omitempty"`
	BatteryChemistryOrigin             Origin   `json:"batteryChemistryOrigin,omitempty"`
	StateOfHealth                      *float64 `json:"stateOfHealth,omitempty"`
	StateOfHealthOrigin                Origin   `json:"stateOfHealthOrigin,omitempty"`
	CarbonFootprintManufacturing       *float64 `json:"carbonFootprintManufacturing,omitempty"`
	CarbonFootprintManufacturingOrigin Origin   `json:"carbonFootprintManufacturingOrigin,omitempty"`
	RecycledContentPercentage          *float64 `json:"recycledContentPercentage,omitempty"`
	RecycledContentPercentageOrigin    Origin   `json:"recycledContentPercentageOrigin,omitempty"`

	SupplyChainLinks []SupplyChainLink `json:"supplyChainLinks"`

	CurrentLifecyclePhaseIndex int                    `json:"currentLifecyclePhaseIndex"`
	LifecyclePhases            []LifecyclePhase       `json:"lifecyclePhases"`
	OverallCompliance          OverallCompliance      `json:"overallCompliance"`
	Notifications              []Notification         `json:"notifications"`
	VerificationLog            []VerificationLogEntry `json:"verificationLog"`

	MaterialComposition       []MaterialShare     `json:"materialComposition,omitempty"`
	HistoricalCarbonFootprint []DataPoint         `json:"historicalCarbonFootprint,omitempty"`
	WaterUsage                *Measurement        `json:"waterUsage,omitempty"`
	RecyclabilityScore        *Measurement        `json:"recyclabilityScore,omitempty"`
	RepairabilityIndex        *RepairabilityIndex `json:"repairabilityIndex,omitempty"`
	Certifications            []Certification     `json:"certifications,omitempty"`
}

// IsUserProduct reports whether the product lives in the key-value store
// rather than the built-in catalog.
func IsUserProduct(id string) bool {
	return strings.HasPrefix(id, UserProductPrefix)
}

// IsPlaceholderImage reports whether an image URL points at a generated
// placeholder rather than a real product image.
func IsPlaceholderImage(imageURL string) bool {
	return imageURL == "" || strings.Contains(imageURL, PlaceholderImageHost) || strings.Contains(imageURL, "?text=")
}

func PlaceholderImageURL(id string) string {
	return "https://placehold.co/600x400.png?text=" + url.QueryEscape(strings.Replace(id, UserProductPrefix, "P", 1))
}

// HasBatteryData reports whether any battery passport value has been entered.
func (p *Product) HasBatteryData() bool {
	return p.BatteryChemistry != "" ||
		p.StateOfHealth != nil ||
		p.CarbonFootprintManufacturing != nil ||
		p.RecycledContentPercentage != nil
}

var ErrUnknownField = errors.New("unknown field")

// FieldValue looks up a scoreable attribute by its JSON key.
func (p *Product) FieldValue(key string) (interface{}, error) {
	switch key {
	case "productId":
		return p.ProductID, nil
	case "productName":
		return p.ProductName, nil
	case "gtin":
		return p.GTIN, nil
	case "category":
		return p.Category, nil
	case "manufacturer":
		return p.Manufacturer, nil
	case "modelNumber":
		return p.ModelNumber, nil
	case "description":
		return p.Description, nil
	case "imageUrl":
		return p.ImageURL, nil
	case "materials":
		return p.Materials, nil
	case "sustainabilityClaims":
		return p.SustainabilityClaims, nil
	case "energyLabel":
		return p.EnergyLabel, nil
	case "specifications":
		return p.Specifications, nil
	case "lifecycleEvents":
		return p.LifecycleEvents, nil
	case "complianceData":
		return p.ComplianceData, nil
	case "batteryChemistry":
		return p.BatteryChemistry, nil
	case "stateOfHealth":
		return p.StateOfHealth, nil
	case "carbonFootprintManufacturing":
		return p.CarbonFootprintManufacturing, nil
	case "recycledContentPercentage":
		return p.RecycledContentPercentage, nil
	case "supplyChainLinks":
		return p.SupplyChainLinks, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
}

// DefaultProduct returns the default values every user-created product
// starts from. Fields absent from the stored record keep these values.
func DefaultProduct(id string, now time.Time) Product {
	ts := now.UTC().Format(time.RFC3339)
	return Product{
		ProductID:            id,
		ProductName:          "User Added Product",
		GTIN:                 "",
		Category:             "General",
		Status:               "Draft",
		Compliance:           "N/A",
		LastUpdated:          ts,
		Manufacturer:         "N/A",
		ModelNumber:          "N/A",
		Description:          "No description provided.",
		ImageURL:             PlaceholderImageURL(id),
		ImageHint:            "product placeholder",
		Materials:            "Not specified",
		SustainabilityClaims: "None specified",
		EnergyLabel:          "N/A",
		Specifications:       Specifications{},
		LifecycleEvents:      []LifecycleEvent{},
		ComplianceData:       map[string]ComplianceRecord{},
		SupplyChainLinks:     []SupplyChainLink{},
		LifecyclePhases: []LifecyclePhase{
			{ID: "lc_user_" + id + "_1", Name: "Created", Status: PhaseStatusCompleted, Timestamp: ts, Location: "System", Details: "Product entry created by user."},
			{ID: "lc_user_" + id + "_2", Name: "Pending Review", Status: PhaseStatusInProgress, Details: "Awaiting further data input and review."},
		},
		CurrentLifecyclePhaseIndex: 1,
		OverallCompliance: OverallCompliance{
			GDPR:         ComplianceSlot{Status: ComplianceStatusPendingReview, LastChecked: ts},
			EPREL:        ComplianceSlot{Status: ComplianceStatusPendingReview, LastChecked: ts},
			EBSIVerified: ComplianceSlot{Status: ComplianceStatusPendingReview, LastChecked: ts},
			SCIP:         ComplianceSlot{Status: ComplianceStatusPendingReview, LastChecked: ts},
			CSRD:         ComplianceSlot{Status: ComplianceStatusPendingReview, LastChecked: ts},
		},
		Notifications: []Notification{
			{ID: "user_info_" + id, Type: NotificationTypeInfo, Message: "This product was added by a user and may have incomplete data. Please review and update.", Date: ts},
		},
		VerificationLog: []VerificationLogEntry{
			{ID: "vlog_user_" + id, Event: "DPP Created by User", Timestamp: ts, Actor: "User"},
		},
	}
}
