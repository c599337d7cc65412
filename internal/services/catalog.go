// internal/services/catalog.go
package services

import "github.com/norruva/dpp-backend/internal/models"

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// catalogSuppliers returns a fresh copy of the built-in supplier directory.
func catalogSuppliers() []models.Supplier {
	return []models.Supplier{
		{ID: "SUP001", Name: "GreenSteel Co.", ContactPerson: "Sarah Miller", Email: "sarah.miller@greensteel.com", Location: "Germany", MaterialsSupplied: "Recycled Steel, Low-Carbon Steel", Status: models.SupplierStatusActive, LastUpdated: "2024-07-01"},
		{ID: "SUP002", Name: "BioPolymer Innovations", ContactPerson: "John Chen", Email: "j.chen@biopolymer.io", Location: "USA", MaterialsSupplied: "PLA, PHA, Bio-PET", Status: models.SupplierStatusActive, LastUpdated: "2024-06-15"},
		{ID: "SUP003", Name: "CircuitWorks Ltd.", ContactPerson: "Aisha Khan", Email: "a.khan@circuitworks.co.uk", Location: "UK", MaterialsSupplied: "PCBs, Microcontrollers, Capacitors", Status: models.SupplierStatusActive, LastUpdated: "2024-07-10"},
		{ID: "SUP004", Name: "LithiumSource Inc.", ContactPerson: "Dr. Elena Petrova", Email: "elena.p@lithiumsource.com", Location: "Chile", MaterialsSupplied: "Lithium Carbonate, Lithium Hydroxide", Status: models.SupplierStatusPendingReview, LastUpdated: "2024-05-20"},
		{ID: "SUP005", Name: "TextileWeavers Global", ContactPerson: "Raj Patel", Email: "raj@textileweavers.in", Location: "India", MaterialsSupplied: "Organic Cotton, Recycled Polyester Yarn", Status: models.SupplierStatusActive, LastUpdated: "2024-07-25"},
	}
}

// catalogProduct returns a fresh copy of a built-in product.
func catalogProduct(id string) (models.Product, bool) {
	for _, p := range catalogProducts() {
		if p.ProductID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// catalogProducts builds the read-only demo catalog. Each call returns new
// values so callers may mutate the result.
func catalogProducts() []models.Product {
	return []models.Product{refrigeratorX2000(), smartLEDBulb()}
}

func refrigeratorX2000() models.Product {
	return models.Product{
		ProductID:                    "PROD001",
		ProductName:                  "EcoFriendly Refrigerator X2000",
		GTIN:                         "01234567890123",
		GTINVerified:                 boolPtr(true),
		Category:                     "Appliances",
		Status:                       "Active",
		Compliance:                   "Compliant",
		ComplianceLastChecked:        "2024-07-15",
		LastUpdated:                  "2024-07-20T10:00:00Z",
		Manufacturer:                 "GreenTech Appliances",
		ManufacturerVerified:         boolPtr(true),
		ModelNumber:                  "X2000-ECO",
		Description:                  "A state-of-the-art refrigerator designed for maximum energy efficiency and minimal environmental impact. Features advanced cooling technology and smart controls.",
		ImageURL:                     "https://placehold.co/600x400.png",
		ImageHint:                    "refrigerator appliance",
		Materials:                    "Recycled Steel (70%), Bio-based Polymers (20%), Glass (10%)",
		SustainabilityClaims:         "Energy Star Certified, Made with 70% recycled content, 95% recyclable at end-of-life.",
		SustainabilityClaimsVerified: boolPtr(true),
		EnergyLabel:                  "A+++",
		Specifications: models.Specifications{
			"Dimensions (HxWxD)": "180cm x 70cm x 65cm",
			"Capacity":           "400 Liters",
			"Energy Consumption": "150 kWh/year",
			"Noise Level":        "35 dB",
			"Warranty":           "5 years comprehensive, 10 years on compressor",
		},
		SupplyChainLinks: []models.SupplyChainLink{
			{SupplierID: "SUP001", SuppliedItem: "Recycled Steel Panels", Notes: "70% of total steel content."},
			{SupplierID: "SUP002", SuppliedItem: "Bio-Polymer for Interior Linings", Notes: "Made from corn starch."},
		},
		LifecycleEvents: []models.LifecycleEvent{
			{ID: "EVT001", Type: "Manufactured", Timestamp: "2024-01-15T08:00:00Z", Location: "EcoFactory, Germany", Details: "Production batch #PB789. End-of-line quality checks passed.", IsBlockchainAnchored: true, TransactionHash: "0xabc123def456ghi789jkl0mno1pq"},
			{ID: "EVT002", Type: "Shipped", Timestamp: "2024-01-20T14:00:00Z", Location: "Hamburg Port, Germany", Details: "Container #C0N741N3R to distributor.", IsBlockchainAnchored: true, TransactionHash: "0xdef456ghi789jkl0mno1pqrust"},
			{ID: "EVT003", Type: "Sold", Timestamp: "2024-02-10T16:30:00Z", Location: "Retail Store, Paris", Details: "Invoice #INV00567. Warranty activated."},
			{ID: "EVT00X", Type: "Maintenance", Timestamp: "2025-02-15T10:00:00Z", Location: "Consumer Home, Paris", Details: "Scheduled filter replacement by certified technician."},
		},
		ComplianceData: map[string]models.ComplianceRecord{
			"REACH": {Status: "Compliant", LastChecked: "2024-07-01T00:00:00Z", ReportID: "REACH-X2000-001", IsVerified: boolPtr(true)},
			"RoHS":  {Status: "Compliant", LastChecked: "2024-07-01T00:00:00Z", ReportID: "ROHS-X2000-001", IsVerified: boolPtr(true)},
			"WEEE":  {Status: "Compliant", LastChecked: "2024-07-01T00:00:00Z", ReportID: "WEEE-X2000-001", IsVerified: boolPtr(false)},
		},
		IsDppBlockchainAnchored:  true,
		DppAnchorTransactionHash: "0x123mainanchor789xyzabc001",
		LifecyclePhases: []models.LifecyclePhase{
			{ID: "lc001", Name: "Raw Materials", Status: models.PhaseStatusCompleted, Timestamp: "2023-12-01T10:00:00Z", Location: "Verified Suppliers Network", Details: "Sourcing of certified recycled steel and bio-polymers.", ResponsibleParty: "Supply Chain Dept.",
				ComplianceMetrics:     []models.Metric{{Name: "Supplier Ethical Audit", Status: models.ComplianceStatusCompliant, ReportLink: "#"}},
				SustainabilityMetrics: []models.Metric{{Name: "Recycled Content Input", Value: floatPtr(75), Unit: "%", TargetValue: floatPtr(70)}}},
			{ID: "lc002", Name: "Manufacturing", Status: models.PhaseStatusCompleted, Timestamp: "2024-01-15T08:00:00Z", Location: "EcoFactory, Germany", Details: "Assembly at EcoFactory. Production batch #PB789 logged.",
				SustainabilityMetrics: []models.Metric{{Name: "Energy Used", Value: floatPtr(50), Unit: "kWh/unit", TargetValue: floatPtr(55)}},
				SubEvents:             []models.SubEvent{{Name: "QA Check Passed", Timestamp: "2024-01-14T10:00:00Z", Status: models.PhaseStatusCompleted}}},
			{ID: "lc003", Name: "Distribution", Status: models.PhaseStatusInProgress, Timestamp: "2024-01-20T14:00:00Z", Location: "Global Logistics Network", Details: "Shipping to distribution centers via low-emission freight.", ResponsibleParty: "Logistics Partner GMBH"},
			{ID: "lc004", Name: "Retail & Sale", Status: models.PhaseStatusPending, Timestamp: "2024-02-10T16:30:00Z", Location: "Authorized Retailers", Details: "Product available at certified retail partners."},
			{ID: "lc005", Name: "Consumer Use", Status: models.PhaseStatusUpcoming, Timestamp: "2024-02-11T00:00:00Z", Location: "Consumer Homes", Details: "Estimated 10-year lifespan."},
			{ID: "lc006", Name: "End-of-Life", Status: models.PhaseStatusUpcoming, Timestamp: "2034-02-10T00:00:00Z", Location: "Certified Recycling Partners", Details: "Designated for 95% recyclability."},
		},
		CurrentLifecyclePhaseIndex: 2,
		OverallCompliance: models.OverallCompliance{
			GDPR:         models.ComplianceSlot{Status: models.ComplianceStatusCompliant, LastChecked: "2024-07-01T10:00:00Z"},
			EPREL:        models.ComplianceSlot{Status: models.ComplianceStatusCompliant, EntryID: "EPREL12345", LastChecked: "2024-06-20T10:00:00Z"},
			EBSIVerified: models.ComplianceSlot{Status: models.ComplianceStatusCompliant, VerificationID: "EBSI-TX-ABCDEF0123", LastChecked: "2024-07-15T10:00:00Z"},
			SCIP:         models.ComplianceSlot{Status: models.ComplianceStatusNotApplicable, LastChecked: "2024-07-01T10:00:00Z"},
			CSRD:         models.ComplianceSlot{Status: models.ComplianceStatusInProgress, LastChecked: "2024-07-20T10:00:00Z"},
		},
		Notifications: []models.Notification{
			{ID: "n001", Type: models.NotificationTypeInfo, Message: "Quarterly sustainability report due next month.", Date: "2024-07-10T10:00:00Z"},
			{ID: "n002", Type: models.NotificationTypeWarning, Message: "Supplier 'PolyCore' ethical audit expiring soon. Action recommended.", Date: "2024-07-18T10:00:00Z"},
		},
		VerificationLog: []models.VerificationLogEntry{
			{ID: "vlog001", Event: "DPP Created", Timestamp: "2024-01-10T09:00:00Z", Actor: "System"},
			{ID: "vlog003", Event: "Verification Approved", Timestamp: "2024-01-14T15:00:00Z", Actor: "Verifier: CertiSure Inc.", Details: "All claims verified."},
			{ID: "vlog005", Event: "Blockchain Anchor Created", Timestamp: "2024-01-15T08:05:00Z", Actor: "System", Details: "Tx: 0x123mainanchor789xyzabc001"},
		},
		MaterialComposition: []models.MaterialShare{{Name: "Recycled Steel", Value: 70}, {Name: "Bio-Polymers", Value: 20}, {Name: "Glass", Value: 10}},
		HistoricalCarbonFootprint: []models.DataPoint{
			{Year: "2021", Value: 250}, {Year: "2022", Value: 220}, {Year: "2023", Value: 200}, {Year: "2024", Value: 180},
		},
		WaterUsage:         &models.Measurement{Value: 500, Unit: "L/unit (mfg)", Trend: "down", TrendValue: "-5%"},
		RecyclabilityScore: &models.Measurement{Value: 95, Unit: "%"},
		RepairabilityIndex: &models.RepairabilityIndex{Value: 8.5, Scale: 10},
		Certifications: []models.Certification{
			{Name: "Energy Star", Authority: "EPA", Verified: boolPtr(true), Link: "#"},
			{Name: "EU Ecolabel", Authority: "European Commission", Verified: boolPtr(true), Link: "#"},
			{Name: "TCO Certified", Authority: "TCO Development", Verified: boolPtr(false), Link: "#"},
		},
	}
}

func smartLEDBulb() models.Product {
	return models.Product{
		ProductID:                          "PROD002",
		ProductName:                        "Smart LED Bulb (4-Pack) with Battery Backup",
		ProductNameOrigin:                  models.OriginAIExtracted,
		GTIN:                               "98765432109876",
		GTINVerified:                       boolPtr(false),
		Category:                           "Electronics",
		Status:                             "Active",
		Compliance:                         "Pending Documentation",
		ComplianceLastChecked:              "2024-07-20T00:00:00Z",
		LastUpdated:                        "2024-07-18T00:00:00Z",
		Manufacturer:                       "BrightSpark Electronics",
		ManufacturerOrigin:                 models.OriginAIExtracted,
		ManufacturerVerified:               boolPtr(true),
		ModelNumber:                        "BS-LED-S04B",
		ModelNumberOrigin:                  models.OriginAIExtracted,
		Description:                        "Energy-efficient smart LED bulbs with customizable lighting options, long lifespan, and integrated battery backup for power outages.",
		DescriptionOrigin:                  models.OriginAIExtracted,
		ImageURL:                           "https://placehold.co/600x400.png",
		ImageURLOrigin:                     models.OriginAIExtracted,
		ImageHint:                          "led bulbs package battery",
		Materials:                          "Polycarbonate, Aluminum, LEDs, Li-ion Battery Cell",
		MaterialsOrigin:                    models.OriginAIExtracted,
		SustainabilityClaims:               "Uses 85% less energy, Mercury-free, Recyclable packaging, Conflict-free minerals in battery.",
		SustainabilityClaimsOrigin:         models.OriginAIExtracted,
		SustainabilityClaimsVerified:       boolPtr(false),
		EnergyLabel:                        "A+",
		EnergyLabelOrigin:                  models.OriginAIExtracted,
		SpecificationsOrigin:               models.OriginAIExtracted,
		BatteryChemistry:                   "Li-ion NMC",
		BatteryChemistryOrigin:             models.OriginAIExtracted,
		StateOfHealth:                      floatPtr(99),
		StateOfHealthOrigin:                models.OriginManual,
		CarbonFootprintManufacturing:       floatPtr(5.2),
		CarbonFootprintManufacturingOrigin: models.OriginAIExtracted,
		RecycledContentPercentage:          floatPtr(8),
		RecycledContentPercentageOrigin:    models.OriginManual,
		Specifications: models.Specifications{
			"Lumens":              "800 lm per bulb",
			"Color Temperature":   "2700K - 6500K tunable",
			"Lifespan":            "25,000 hours",
			"Connectivity":        "Wi-Fi, Bluetooth",
			"Battery Backup Time": "2 hours",
		},
		SupplyChainLinks: []models.SupplyChainLink{
			{SupplierID: "SUP003", SuppliedItem: "LED Chips & PCBs"},
			{SupplierID: "SUP004", SuppliedItem: "Li-ion Battery Cells", Notes: "Awaiting full traceability report from supplier."},
		},
		LifecycleEvents: []models.LifecycleEvent{
			{ID: "EVT004", Type: "Manufactured", Timestamp: "2024-03-01T10:00:00Z", Location: "Shenzhen, China", Details: "Batch #LEDB456. Battery passport data generated.", IsBlockchainAnchored: true, TransactionHash: "0xghi789jkl0mno1pqrustvwx"},
			{ID: "EVT005", Type: "Imported", Timestamp: "2024-03-15T10:00:00Z", Location: "Rotterdam Port, Netherlands", Details: "Shipment #SHP0089. EU customs cleared."},
			{ID: "EVT006", Type: "Software Update", Timestamp: "2024-08-01T00:00:00Z", Location: "OTA Server", Details: "Firmware v1.2 deployed.", IsBlockchainAnchored: true, TransactionHash: "0xotaUpdateHash123xyz"},
		},
		ComplianceData: map[string]models.ComplianceRecord{
			"RoHS":                              {Status: "Compliant", LastChecked: "2024-07-01T10:00:00Z", ReportID: "ROHS-LEDB456-001", IsVerified: boolPtr(true)},
			"CE Mark":                           {Status: "Compliant", LastChecked: "2024-07-01T10:00:00Z", ReportID: "CE-LEDB456-001", IsVerified: boolPtr(true)},
			"Battery Regulation (EU 2023/1542)": {Status: "Pending Documentation", LastChecked: "2024-07-20T10:00:00Z", ReportID: "BATREG-LEDB456-PRE", IsVerified: boolPtr(false)},
		},
		LifecyclePhases: []models.LifecyclePhase{
			{ID: "lc007", Name: "Materials Sourcing", Status: models.PhaseStatusCompleted, Timestamp: "2024-02-01T10:00:00Z", Location: "Global Suppliers", Details: "Sourcing of PC, Al, LED chips and battery components."},
			{ID: "lc008", Name: "Manufacturing", Status: models.PhaseStatusInProgress, Timestamp: "2024-03-01T10:00:00Z", Location: "Shenzhen, China", Details: "Assembly in Shenzhen. Batch #LEDB456.", ResponsibleParty: "BrightSpark Manufacturing Unit",
				SustainabilityMetrics: []models.Metric{{Name: "Carbon Footprint (Mfg.)", Value: floatPtr(5.2), Unit: "kg CO2e/pack", TargetValue: floatPtr(5.0)}}},
			{ID: "lc009", Name: "Distribution", Status: models.PhaseStatusPending, Timestamp: "2024-03-15T10:00:00Z", Location: "Global Distribution Network", Details: "Global distribution."},
			{ID: "lc010", Name: "Retail Sale", Status: models.PhaseStatusPending, Timestamp: "2024-04-01T00:00:00Z", Location: "Online & Physical Stores", Details: "Available through various retail channels."},
			{ID: "lc011", Name: "Use & Maintenance", Status: models.PhaseStatusUpcoming, Timestamp: "2024-04-02T00:00:00Z", Location: "Consumer Homes & Businesses", Details: "Estimated 3-year useful life for battery."},
			{ID: "lc012", Name: "Battery EOL", Status: models.PhaseStatusIssue, Timestamp: "2027-04-01T00:00:00Z", Location: "Designated Collection Points", Details: "Documentation for EU Battery Regulation (EU 2023/1542) is overdue.",
				ComplianceMetrics: []models.Metric{{Name: "EU Battery Reg. Documentation", Status: models.ComplianceStatusNonCompliant, ReportLink: "#"}}},
		},
		CurrentLifecyclePhaseIndex: 1,
		OverallCompliance: models.OverallCompliance{
			GDPR:         models.ComplianceSlot{Status: models.ComplianceStatusNotApplicable, LastChecked: "2024-07-01T10:00:00Z"},
			EPREL:        models.ComplianceSlot{Status: models.ComplianceStatusPendingReview, LastChecked: "2024-07-20T10:00:00Z"},
			EBSIVerified: models.ComplianceSlot{Status: models.ComplianceStatusPendingReview, VerificationID: "PENDING_EBSI_CHECK", LastChecked: "2024-07-20T10:00:00Z"},
			SCIP:         models.ComplianceSlot{Status: models.ComplianceStatusCompliant, DeclarationID: "SCIP-XYZ789", LastChecked: "2024-07-01T10:00:00Z"},
			CSRD:         models.ComplianceSlot{Status: models.ComplianceStatusPendingReview, LastChecked: "2024-07-20T10:00:00Z"},
		},
		Notifications: []models.Notification{
			{ID: "n003", Type: models.NotificationTypeError, Message: "Battery Regulation documentation overdue! Action required.", Date: "2024-07-19T10:00:00Z"},
			{ID: "n004", Type: models.NotificationTypeWarning, Message: "EPREL registration data needs review by end of week.", Date: "2024-07-22T10:00:00Z"},
		},
		VerificationLog: []models.VerificationLogEntry{
			{ID: "vlog006", Event: "DPP Created (AI Extracted)", Timestamp: "2024-02-25T10:00:00Z", Actor: "System"},
			{ID: "vlog008", Event: "Compliance Data Update (Battery Reg.)", Timestamp: "2024-07-20T10:00:00Z", Actor: "System", Details: "Status changed to Pending Documentation."},
		},
		MaterialComposition: []models.MaterialShare{{Name: "Polycarbonate", Value: 40}, {Name: "Aluminum", Value: 30}, {Name: "LEDs & Electronics", Value: 20}, {Name: "Li-ion Cell", Value: 10}},
		HistoricalCarbonFootprint: []models.DataPoint{
			{Year: "2022", Value: 6.5}, {Year: "2023", Value: 5.8}, {Year: "2024", Value: 5.2},
		},
		WaterUsage:         &models.Measurement{Value: 10, Unit: "L/unit (mfg)"},
		RecyclabilityScore: &models.Measurement{Value: 75, Unit: "%"},
		RepairabilityIndex: &models.RepairabilityIndex{Value: 6.0, Scale: 10},
		Certifications: []models.Certification{
			{Name: "RoHS Compliant", Authority: "Self-declared", Verified: boolPtr(true)},
			{Name: "CE Marked", Authority: "Self-declared", Verified: boolPtr(true)},
			{Name: "UL Listed", Authority: "Underwriters Laboratories", Verified: boolPtr(false), Link: "#"},
		},
	}
}
