// internal/models/stored.go
package models

import (
	"strings"
	"time"
)

// StoredProduct is the persisted form of a user-created product. Text
// fields hold the raw form input and the specifications are kept as text.
// Fields left empty fall back to the DefaultProduct values when read.
type StoredProduct struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Compliance  string `json:"compliance"`
	LastUpdated string `json:"lastUpdated"`

	ProductName                  string   `json:"productName,omitempty"`
	GTIN                         string   `json:"gtin,omitempty"`
	ProductDescription           string   `json:"productDescription,omitempty"`
	Manufacturer                 string   `json:"manufacturer,omitempty"`
	ModelNumber                  string   `json:"modelNumber,omitempty"`
	Materials                    string   `json:"materials,omitempty"`
	SustainabilityClaims         string   `json:"sustainabilityClaims,omitempty"`
	Specifications               string   `json:"specifications,omitempty"`
	EnergyLabel                  string   `json:"energyLabel,omitempty"`
	ProductCategory              string   `json:"productCategory,omitempty"`
	ImageURL                     string   `json:"imageUrl,omitempty"`
	BatteryChemistry             string   `json:"batteryChemistry,omitempty"`
	StateOfHealth                *float64 `json:"stateOfHealth,omitempty"`
	CarbonFootprintManufacturing *float64 `json:"carbonFootprintManufacturing,omitempty"`
	RecycledContentPercentage    *float64 `json:"recycledContentPercentage,omitempty"`

	ProductNameOrigin                  Origin `json:"productNameOrigin,omitempty"`
	ProductDescriptionOrigin           Origin `json:"productDescriptionOrigin,omitempty"`
	ManufacturerOrigin                 Origin `json:"manufacturerOrigin,omitempty"`
	ModelNumberOrigin                  Origin `json:"modelNumberOrigin,omitempty"`
	MaterialsOrigin                    Origin `json:"materialsOrigin,omitempty"`
	SustainabilityClaimsOrigin         Origin `json:"sustainabilityClaimsOrigin,omitempty"`
	EnergyLabelOrigin                  Origin `json:"energyLabelOrigin,omitempty"`
	SpecificationsOrigin               Origin `json:"specificationsOrigin,omitempty"`
	ImageURLOrigin                     Origin `json:"imageUrlOrigin,omitempty"`
	BatteryChemistryOrigin             Origin `json:"batteryChemistryOrigin,omitempty"`
	StateOfHealthOrigin                Origin `json:"stateOfHealthOrigin,omitempty"`
	CarbonFootprintManufacturingOrigin Origin `json:"carbonFootprintManufacturingOrigin,omitempty"`
	RecycledContentPercentageOrigin    Origin `json:"recycledContentPercentageOrigin,omitempty"`

	IsDppBlockchainAnchored  bool              `json:"isDppBlockchainAnchored,omitempty"`
	DppAnchorTransactionHash string            `json:"dppAnchorTransactionHash,omitempty"`
	SupplyChainLinks         []SupplyChainLink `json:"supplyChainLinks,omitempty"`

	LifecycleEvents            []LifecycleEvent            `json:"lifecycleEvents,omitempty"`
	ComplianceData             map[string]ComplianceRecord `json:"complianceData,omitempty"`
	LifecyclePhases            []LifecyclePhase            `json:"lifecyclePhases,omitempty"`
	CurrentLifecyclePhaseIndex *int                        `json:"currentLifecyclePhaseIndex,omitempty"`
	OverallCompliance          *OverallCompliance          `json:"overallCompliance,omitempty"`
}

// ToProduct merges the stored record over the default product. A
// specifications text that does not parse yields an empty sheet and the
// parse error is returned alongside the otherwise complete product.
func (s *StoredProduct) ToProduct(now time.Time) (Product, error) {
	p := DefaultProduct(s.ID, now)

	specs, specErr := ParseSpecifications(s.Specifications)
	if specErr != nil {
		specs = Specifications{}
	}

	p.ProductName = orDefault(s.ProductName, p.ProductName)
	p.ProductNameOrigin = s.ProductNameOrigin
	p.GTIN = s.GTIN
	p.Category = orDefault(s.ProductCategory, p.Category)
	p.Status = orDefault(s.Status, p.Status)
	p.Compliance = orDefault(s.Compliance, p.Compliance)
	p.LastUpdated = orDefault(s.LastUpdated, p.LastUpdated)
	p.Manufacturer = orDefault(s.Manufacturer, p.Manufacturer)
	p.ManufacturerOrigin = s.ManufacturerOrigin
	p.ModelNumber = orDefault(s.ModelNumber, p.ModelNumber)
	p.ModelNumberOrigin = s.ModelNumberOrigin
	p.Description = orDefault(s.ProductDescription, p.Description)
	p.DescriptionOrigin = s.ProductDescriptionOrigin
	p.ImageURL = orDefault(s.ImageURL, p.ImageURL)
	p.ImageURLOrigin = s.ImageURLOrigin
	if s.ImageURL != "" && !strings.Contains(s.ImageURL, PlaceholderImageHost) && !strings.Contains(s.ImageURL, "?text=") {
		p.ImageHint = orDefault(s.ProductName, "product image")
	}
	p.Materials = orDefault(s.Materials, p.Materials)
	p.MaterialsOrigin = s.MaterialsOrigin
	p.SustainabilityClaims = orDefault(s.SustainabilityClaims, p.SustainabilityClaims)
	p.SustainabilityClaimsOrigin = s.SustainabilityClaimsOrigin
	p.EnergyLabel = orDefault(s.EnergyLabel, p.EnergyLabel)
	p.EnergyLabelOrigin = s.EnergyLabelOrigin
	p.Specifications = specs
	p.SpecificationsOrigin = s.SpecificationsOrigin
	p.BatteryChemistry = s.BatteryChemistry
	p.BatteryChemistryOrigin = s.BatteryChemistryOrigin
	p.StateOfHealth = s.StateOfHealth
	p.StateOfHealthOrigin = s.StateOfHealthOrigin
	p.CarbonFootprintManufacturing = s.CarbonFootprintManufacturing
	p.CarbonFootprintManufacturingOrigin = s.CarbonFootprintManufacturingOrigin
	p.RecycledContentPercentage = s.RecycledContentPercentage
	p.RecycledContentPercentageOrigin = s.RecycledContentPercentageOrigin
	p.IsDppBlockchainAnchored = s.IsDppBlockchainAnchored
	p.DppAnchorTransactionHash = s.DppAnchorTransactionHash
	if s.SupplyChainLinks != nil {
		p.SupplyChainLinks = s.SupplyChainLinks
	}
	if s.LifecycleEvents != nil {
		p.LifecycleEvents = s.LifecycleEvents
	}
	if s.ComplianceData != nil {
		p.ComplianceData = s.ComplianceData
	}
	if len(s.LifecyclePhases) > 0 {
		p.LifecyclePhases = s.LifecyclePhases
		p.CurrentLifecyclePhaseIndex = len(s.LifecyclePhases) - 1
	}
	if s.CurrentLifecyclePhaseIndex != nil {
		p.CurrentLifecyclePhaseIndex = *s.CurrentLifecyclePhaseIndex
	}
	if s.OverallCompliance != nil {
		p.OverallCompliance = *s.OverallCompliance
	}
	return p, specErr
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
