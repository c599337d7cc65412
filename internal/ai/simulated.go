// internal/ai/simulated.go
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"
)

// Simulated answers every flow locally with deterministic output. It is
// used when no model credentials are configured.
type Simulated struct {
	Now func() time.Time
}

func NewSimulated() *Simulated {
	return &Simulated{Now: time.Now}
}

func (s *Simulated) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Simulated) CheckCompliance(_ context.Context, in ComplianceCheckInput) (*ComplianceCheckOutput, error) {
	status := "Compliant"
	var notes []string
	stage := strings.ToLower(in.NewLifecycleStageName)
	switch {
	case strings.Contains(stage, "review"):
		status = "Pending Review"
		notes = append(notes, "Documentation for the new stage must be reviewed before sign-off.")
	case strings.Contains(stage, "recycl") || strings.Contains(stage, "end of life"):
		status = "Pending Review"
		notes = append(notes, "End-of-life handling requires WEEE take-back evidence.")
	}
	category := strings.ToLower(in.ProductCategory)
	if strings.Contains(category, "electronics") || strings.Contains(category, "battery") {
		notes = append(notes, "Battery Regulation (EU) 2023/1542 obligations apply.")
	}
	if len(notes) == 0 {
		notes = append(notes, "No open findings.")
	}

	return &ComplianceCheckOutput{
		NewLifecycleStageName:  in.NewLifecycleStageName,
		SimulatedOverallStatus: status,
		SimulatedReport: fmt.Sprintf("Product %s moved from '%s' to '%s'. %s",
			in.ProductID, in.CurrentLifecycleStageName, in.NewLifecycleStageName, strings.Join(notes, " ")),
	}, nil
}

func (s *Simulated) SyncEPREL(_ context.Context, in EPRELSyncInput) (*EPRELSyncOutput, error) {
	out := &EPRELSyncOutput{LastChecked: s.now().UTC().Format(time.RFC3339)}
	model := strings.TrimSpace(in.ModelNumber)
	if model == "" || model == "N/A" {
		out.SyncStatus = EPRELNotFound
		out.Message = fmt.Sprintf("No EPREL entry matches '%s'.", in.ProductName)
		return out, nil
	}
	out.SyncStatus = EPRELSynced
	out.EPRELID = "EPREL_" + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, model)
	out.Message = fmt.Sprintf("Model %s synchronised with EPREL.", model)
	return out, nil
}

var claimRules = []struct {
	keyword string
	claim   string
}{
	{"recycled", "Contains recycled materials"},
	{"aluminium", "Made with recyclable aluminium"},
	{"aluminum", "Made with recyclable aluminium"},
	{"organic", "Made with certified organic fibres"},
	{"cotton", "Uses responsibly sourced cotton"},
	{"bamboo", "Uses rapidly renewable bamboo"},
	{"appliance", "Designed for high energy efficiency"},
	{"electronics", "Designed for repairability with replaceable parts"},
	{"battery", "Battery designed for extended cycle life"},
	{"led", "Low energy consumption LED technology"},
}

func (s *Simulated) SuggestClaims(_ context.Context, in ClaimsInput) (*ClaimsOutput, error) {
	haystack := strings.ToLower(strings.Join([]string{in.ProductCategory, in.ProductName, in.ProductDescription, in.Materials}, " "))
	seen := map[string]bool{}
	claims := []string{}
	for _, rule := range claimRules {
		if strings.Contains(haystack, rule.keyword) && !seen[rule.claim] {
			seen[rule.claim] = true
			claims = append(claims, rule.claim)
		}
	}
	return &ClaimsOutput{Claims: claims}, nil
}

func (s *Simulated) GenerateCSRDSummary(_ context.Context, in CSRDSummaryInput) (*CSRDSummaryOutput, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s reports total greenhouse gas emissions of %.0f %s for %s.",
		in.CompanyName, in.TotalEmissions, in.EmissionUnit, in.ReportingPeriod)
	if len(in.KeySustainabilityInitiatives) > 0 {
		b.WriteString(" Key initiatives during the period:")
		for _, initiative := range in.KeySustainabilityInitiatives {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(initiative))
		}
	}
	b.WriteString(" This summary is simulated and has not been assured.")
	return &CSRDSummaryOutput{SummaryText: b.String()}, nil
}

// GenerateImage renders a labelled SVG tile as a data URI.
func (s *Simulated) GenerateImage(_ context.Context, in ImageInput) (*ImageOutput, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrFlowFailed)
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="600" height="400">`+
		`<rect width="600" height="400" fill="#e8f0ee"/>`+
		`<text x="300" y="190" font-size="28" text-anchor="middle" fill="#1f4d45">%s</text>`+
		`<text x="300" y="230" font-size="18" text-anchor="middle" fill="#4a6b65">%s</text></svg>`,
		html.EscapeString(in.ProductName), html.EscapeString(in.ProductCategory))
	return &ImageOutput{ImageURL: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))}, nil
}
