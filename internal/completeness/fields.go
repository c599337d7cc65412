// internal/completeness/fields.go
package completeness

import (
	"strings"

	"github.com/norruva/dpp-backend/internal/models"
)

// Section groups related fields in a completeness breakdown.
type Section string

const (
	SectionBasicInfo      Section = "Basic Info"
	SectionSustainability Section = "Sustainability"
	SectionSpecifications Section = "Specifications"
	SectionLifecycle      Section = "Lifecycle"
	SectionCompliance     Section = "Compliance"
	SectionBattery        Section = "Battery"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionBasicInfo,
	SectionSustainability,
	SectionSpecifications,
	SectionLifecycle,
	SectionCompliance,
	SectionBattery,
}

// Field is one entry of the scoring table. Check, when set, replaces the
// default presence test. CategoryScope, when set, limits the field to
// products whose category contains one of the listed substrings.
type Field struct {
	Key           string                       `json:"key"`
	Label         string                       `json:"label"`
	Section       Section                      `json:"section"`
	CategoryScope []string                     `json:"categoryScope,omitempty"`
	Check         func(p *models.Product) bool `json:"-"`
}

// batteryCategories are the category substrings that make the Battery
// section relevant without any battery data present.
var batteryCategories = []string{"electronics", "automotive parts", "battery"}

var essentialFields = []Field{
	{Key: "productName", Label: "Product Name", Section: SectionBasicInfo},
	{Key: "gtin", Label: "GTIN", Section: SectionBasicInfo},
	{Key: "category", Label: "Category", Section: SectionBasicInfo},
	{Key: "manufacturer", Label: "Manufacturer", Section: SectionBasicInfo},
	{Key: "modelNumber", Label: "Model Number", Section: SectionBasicInfo},
	{Key: "description", Label: "Description", Section: SectionBasicInfo},
	{Key: "imageUrl", Label: "Image URL", Section: SectionBasicInfo, Check: func(p *models.Product) bool {
		return !models.IsPlaceholderImage(p.ImageURL)
	}},
	{Key: "materials", Label: "Materials", Section: SectionSustainability},
	{Key: "sustainabilityClaims", Label: "Sustainability Claims", Section: SectionSustainability},
	{Key: "energyLabel", Label: "Energy Label", Section: SectionSustainability, CategoryScope: []string{"Appliances", "Electronics"}},
	{Key: "specifications", Label: "Specifications", Section: SectionSpecifications, Check: func(p *models.Product) bool {
		return len(p.Specifications) > 0
	}},
	{Key: "lifecycleEvents", Label: "Lifecycle Events", Section: SectionLifecycle, Check: func(p *models.Product) bool {
		return len(p.LifecycleEvents) > 0
	}},
	{Key: "complianceData", Label: "Compliance Data", Section: SectionCompliance, Check: func(p *models.Product) bool {
		return len(p.ComplianceData) > 0
	}},
	{Key: "batteryChemistry", Label: "Battery Chemistry", Section: SectionBattery},
	{Key: "stateOfHealth", Label: "Battery State of Health (SoH)", Section: SectionBattery, Check: func(p *models.Product) bool {
		return p.StateOfHealth != nil
	}},
	{Key: "carbonFootprintManufacturing", Label: "Battery Mfg. Carbon Footprint", Section: SectionBattery, Check: func(p *models.Product) bool {
		return p.CarbonFootprintManufacturing != nil
	}},
	{Key: "recycledContentPercentage", Label: "Battery Recycled Content", Section: SectionBattery, Check: func(p *models.Product) bool {
		return p.RecycledContentPercentage != nil
	}},
}

// Fields returns a copy of the scoring table in declared order.
func Fields() []Field {
	out := make([]Field, len(essentialFields))
	for i, f := range essentialFields {
		f.CategoryScope = append([]string(nil), f.CategoryScope...)
		out[i] = f
	}
	return out
}

func categoryMatches(category string, scope []string) bool {
	category = strings.ToLower(category)
	if category == "" {
		return false
	}
	for _, s := range scope {
		if strings.Contains(category, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// applicable decides whether a field counts toward the score of p. Battery
// fields depend only on the battery relevance of the product, whatever
// their own category scope says.
func applicable(f Field, p *models.Product) bool {
	if f.Section == SectionBattery {
		return categoryMatches(p.Category, batteryCategories) || p.HasBatteryData()
	}
	if len(f.CategoryScope) > 0 {
		return categoryMatches(p.Category, f.CategoryScope)
	}
	return true
}
