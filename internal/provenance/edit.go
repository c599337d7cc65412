// internal/provenance/edit.go
package provenance

import (
	"time"

	"github.com/norruva/dpp-backend/internal/models"
)

// EditForm holds the editable values of a product as submitted by the edit
// form. Specifications are carried as JSON text.
type EditForm struct {
	ProductName                  string   `json:"productName" validate:"max=200"`
	GTIN                         string   `json:"gtin" validate:"omitempty,gtin"`
	ProductDescription           string   `json:"productDescription" validate:"max=5000"`
	Manufacturer                 string   `json:"manufacturer" validate:"max=200"`
	ModelNumber                  string   `json:"modelNumber" validate:"max=100"`
	Materials                    string   `json:"materials" validate:"max=2000"`
	SustainabilityClaims         string   `json:"sustainabilityClaims" validate:"max=2000"`
	Specifications               string   `json:"specifications" validate:"omitempty,specifications"`
	EnergyLabel                  string   `json:"energyLabel" validate:"max=20"`
	ProductCategory              string   `json:"productCategory" validate:"max=100"`
	ImageURL                     string   `json:"imageUrl" validate:"omitempty,max=2048"`
	BatteryChemistry             string   `json:"batteryChemistry" validate:"max=100"`
	StateOfHealth                *float64 `json:"stateOfHealth" validate:"omitempty,percentage"`
	CarbonFootprintManufacturing *float64 `json:"carbonFootprintManufacturing" validate:"omitempty,gte=0"`
	RecycledContentPercentage    *float64 `json:"recycledContentPercentage" validate:"omitempty,percentage"`
}

// Snapshot is the state of the form when an edit session began, together
// with the origin of every tracked field at that moment.
type Snapshot struct {
	Values  EditForm                 `json:"values"`
	Origins map[string]models.Origin `json:"origins"`
}

// tracked lists the fields whose origin is recomputed on every edit.
var tracked = []struct {
	key    string
	value  func(*EditForm) Value
	origin func(*models.StoredProduct) *models.Origin
}{
	{"productName", func(f *EditForm) Value { return Text(f.ProductName) }, func(s *models.StoredProduct) *models.Origin { return &s.ProductNameOrigin }},
	{"productDescription", func(f *EditForm) Value { return Text(f.ProductDescription) }, func(s *models.StoredProduct) *models.Origin { return &s.ProductDescriptionOrigin }},
	{"manufacturer", func(f *EditForm) Value { return Text(f.Manufacturer) }, func(s *models.StoredProduct) *models.Origin { return &s.ManufacturerOrigin }},
	{"modelNumber", func(f *EditForm) Value { return Text(f.ModelNumber) }, func(s *models.StoredProduct) *models.Origin { return &s.ModelNumberOrigin }},
	{"materials", func(f *EditForm) Value { return Text(f.Materials) }, func(s *models.StoredProduct) *models.Origin { return &s.MaterialsOrigin }},
	{"sustainabilityClaims", func(f *EditForm) Value { return Text(f.SustainabilityClaims) }, func(s *models.StoredProduct) *models.Origin { return &s.SustainabilityClaimsOrigin }},
	{"specifications", func(f *EditForm) Value { return Text(f.Specifications) }, func(s *models.StoredProduct) *models.Origin { return &s.SpecificationsOrigin }},
	{"energyLabel", func(f *EditForm) Value { return Text(f.EnergyLabel) }, func(s *models.StoredProduct) *models.Origin { return &s.EnergyLabelOrigin }},
	{"imageUrl", func(f *EditForm) Value { return Text(f.ImageURL) }, func(s *models.StoredProduct) *models.Origin { return &s.ImageURLOrigin }},
	{"batteryChemistry", func(f *EditForm) Value { return Text(f.BatteryChemistry) }, func(s *models.StoredProduct) *models.Origin { return &s.BatteryChemistryOrigin }},
	{"stateOfHealth", func(f *EditForm) Value { return Number(f.StateOfHealth) }, func(s *models.StoredProduct) *models.Origin { return &s.StateOfHealthOrigin }},
	{"carbonFootprintManufacturing", func(f *EditForm) Value { return Number(f.CarbonFootprintManufacturing) }, func(s *models.StoredProduct) *models.Origin { return &s.CarbonFootprintManufacturingOrigin }},
	{"recycledContentPercentage", func(f *EditForm) Value { return Number(f.RecycledContentPercentage) }, func(s *models.StoredProduct) *models.Origin { return &s.RecycledContentPercentageOrigin }},
}

// TrackedFields returns the keys of the fields that carry an origin.
func TrackedFields() []string {
	keys := make([]string, len(tracked))
	for i, t := range tracked {
		keys[i] = t.key
	}
	return keys
}

// SnapshotOf captures the form state of the product as displayed.
func SnapshotOf(p *models.Product) Snapshot {
	return Snapshot{
		Values: EditForm{
			ProductName:                  p.ProductName,
			GTIN:                         p.GTIN,
			ProductDescription:           p.Description,
			Manufacturer:                 p.Manufacturer,
			ModelNumber:                  p.ModelNumber,
			Materials:                    p.Materials,
			SustainabilityClaims:         p.SustainabilityClaims,
			Specifications:               p.Specifications.Text(),
			EnergyLabel:                  p.EnergyLabel,
			ProductCategory:              p.Category,
			ImageURL:                     p.ImageURL,
			BatteryChemistry:             p.BatteryChemistry,
			StateOfHealth:                p.StateOfHealth,
			CarbonFootprintManufacturing: p.CarbonFootprintManufacturing,
			RecycledContentPercentage:    p.RecycledContentPercentage,
		},
		Origins: map[string]models.Origin{
			"productName":                  p.ProductNameOrigin,
			"productDescription":           p.DescriptionOrigin,
			"manufacturer":                 p.ManufacturerOrigin,
			"modelNumber":                  p.ModelNumberOrigin,
			"materials":                    p.MaterialsOrigin,
			"sustainabilityClaims":         p.SustainabilityClaimsOrigin,
			"specifications":               p.SpecificationsOrigin,
			"energyLabel":                  p.EnergyLabelOrigin,
			"imageUrl":                     p.ImageURLOrigin,
			"batteryChemistry":             p.BatteryChemistryOrigin,
			"stateOfHealth":                p.StateOfHealthOrigin,
			"carbonFootprintManufacturing": p.CarbonFootprintManufacturingOrigin,
			"recycledContentPercentage":    p.RecycledContentPercentageOrigin,
		},
	}
}

// ApplyEdit merges form over the stored record. Empty strings and nil
// numbers keep the stored value. Every tracked origin is recomputed
// against the snapshot taken when the session began, never against the
// stored record.
func ApplyEdit(current models.StoredProduct, snap Snapshot, form EditForm, now time.Time) models.StoredProduct {
	next := current
	next.ProductName = firstNonEmpty(form.ProductName, current.ProductName)
	next.GTIN = firstNonEmpty(form.GTIN, current.GTIN)
	next.ProductDescription = firstNonEmpty(form.ProductDescription, current.ProductDescription)
	next.Manufacturer = firstNonEmpty(form.Manufacturer, current.Manufacturer)
	next.ModelNumber = firstNonEmpty(form.ModelNumber, current.ModelNumber)
	next.Materials = firstNonEmpty(form.Materials, current.Materials)
	next.SustainabilityClaims = firstNonEmpty(form.SustainabilityClaims, current.SustainabilityClaims)
	next.Specifications = firstNonEmpty(form.Specifications, current.Specifications)
	next.EnergyLabel = firstNonEmpty(form.EnergyLabel, current.EnergyLabel)
	next.ProductCategory = firstNonEmpty(form.ProductCategory, current.ProductCategory)
	next.ImageURL = firstNonEmpty(form.ImageURL, current.ImageURL)
	next.BatteryChemistry = firstNonEmpty(form.BatteryChemistry, current.BatteryChemistry)
	next.StateOfHealth = firstNonNil(form.StateOfHealth, current.StateOfHealth)
	next.CarbonFootprintManufacturing = firstNonNil(form.CarbonFootprintManufacturing, current.CarbonFootprintManufacturing)
	next.RecycledContentPercentage = firstNonNil(form.RecycledContentPercentage, current.RecycledContentPercentage)
	next.LastUpdated = now.UTC().Format(time.RFC3339)

	for _, t := range tracked {
		*t.origin(&next) = Reconcile(t.value(&form), t.value(&snap.Values), snap.Origins[t.key])
	}
	return next
}

// SetOrigin tags one tracked field. It reports false for unknown keys.
func SetOrigin(s *models.StoredProduct, key string, origin models.Origin) bool {
	for _, t := range tracked {
		if t.key == key {
			*t.origin(s) = origin
			return true
		}
	}
	return false
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func firstNonNil(v, fallback *float64) *float64 {
	if v != nil {
		return v
	}
	return fallback
}
