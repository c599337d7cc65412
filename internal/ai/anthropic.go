// internal/ai/anthropic.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

// messageCreator is the part of the SDK message service the flows use.
type messageCreator interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// AnthropicFlows answers the text flows with a Claude model. Every prompt
// asks for a single JSON object matching the flow output.
type AnthropicFlows struct {
	messages  messageCreator
	model     string
	maxTokens int64
	timeout   time.Duration
	now       func() time.Time
}

func NewAnthropicFlows(apiKey, model string, timeout time.Duration) *AnthropicFlows {
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return newAnthropicFlows(&client.Messages, model, timeout)
}

func newAnthropicFlows(messages messageCreator, model string, timeout time.Duration) *AnthropicFlows {
	return &AnthropicFlows{
		messages:  messages,
		model:     model,
		maxTokens: 1024,
		timeout:   timeout,
		now:       time.Now,
	}
}

const systemPrompt = "You support a Digital Product Passport platform for EU regulations " +
	"(ESPR, EPREL, Battery Regulation, CSRD). Answer with one JSON object only, no prose and no code fences."

func (a *AnthropicFlows) CheckCompliance(ctx context.Context, in ComplianceCheckInput) (*ComplianceCheckOutput, error) {
	prompt := fmt.Sprintf(`A product is moving between lifecycle stages. Assess its compliance for the new stage.
Product ID: %s
Category: %s
Current stage: %s
New stage: %s
Respond as {"newLifecycleStageName": string, "simulatedOverallStatus": string, "simulatedReport": string}.`,
		in.ProductID, in.ProductCategory, in.CurrentLifecycleStageName, in.NewLifecycleStageName)

	var out ComplianceCheckOutput
	if err := a.ask(ctx, "compliance_check", prompt, &out); err != nil {
		return nil, err
	}
	if out.NewLifecycleStageName == "" {
		out.NewLifecycleStageName = in.NewLifecycleStageName
	}
	return &out, nil
}

func (a *AnthropicFlows) SyncEPREL(ctx context.Context, in EPRELSyncInput) (*EPRELSyncOutput, error) {
	prompt := fmt.Sprintf(`Simulate a lookup of this product in the EU EPREL energy label database.
Product ID: %s
Name: %s
Model number: %s
Respond as {"syncStatus": one of "%s", "%s", "%s", "%s", "eprelId": string, "message": string}.`,
		in.ProductID, in.ProductName, in.ModelNumber, EPRELSynced, EPRELNotFound, EPRELMismatch, EPRELSyncFailure)

	var out EPRELSyncOutput
	if err := a.ask(ctx, "eprel_sync", prompt, &out); err != nil {
		return nil, err
	}
	switch out.SyncStatus {
	case EPRELSynced, EPRELNotFound, EPRELMismatch, EPRELSyncFailure:
	default:
		out.SyncStatus = EPRELSyncFailure
	}
	out.LastChecked = a.now().UTC().Format(time.RFC3339)
	return &out, nil
}

func (a *AnthropicFlows) SuggestClaims(ctx context.Context, in ClaimsInput) (*ClaimsOutput, error) {
	prompt := fmt.Sprintf(`Suggest up to five short, verifiable sustainability claims for this product.
Category: %s
Name: %s
Description: %s
Materials: %s
Respond as {"claims": [string]}.`,
		in.ProductCategory, in.ProductName, in.ProductDescription, in.Materials)

	var out ClaimsOutput
	if err := a.ask(ctx, "suggest_claims", prompt, &out); err != nil {
		return nil, err
	}
	if out.Claims == nil {
		out.Claims = []string{}
	}
	return &out, nil
}

func (a *AnthropicFlows) GenerateCSRDSummary(ctx context.Context, in CSRDSummaryInput) (*CSRDSummaryOutput, error) {
	prompt := fmt.Sprintf(`Write a concise CSRD-style sustainability summary paragraph.
Company: %s
Reporting period: %s
Total emissions: %.2f %s
Key initiatives:
- %s
Respond as {"summaryText": string}.`,
		in.CompanyName, in.ReportingPeriod, in.TotalEmissions, in.EmissionUnit,
		strings.Join(in.KeySustainabilityInitiatives, "\n- "))

	var out CSRDSummaryOutput
	if err := a.ask(ctx, "csrd_summary", prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.SummaryText) == "" {
		return nil, fmt.Errorf("%w: csrd_summary: empty summary", ErrFlowFailed)
	}
	return &out, nil
}

func (a *AnthropicFlows) ask(ctx context.Context, flow, prompt string, dst interface{}) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	msg, err := a.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		logrus.WithError(err).WithField("flow", flow).Error("AI flow request failed")
		return fmt.Errorf("%w: %s: %v", ErrFlowFailed, flow, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if err := json.Unmarshal([]byte(extractJSON(text.String())), dst); err != nil {
		logrus.WithError(err).WithField("flow", flow).Error("AI flow returned malformed output")
		return fmt.Errorf("%w: %s: malformed output: %v", ErrFlowFailed, flow, err)
	}
	return nil
}

// extractJSON returns the outermost JSON object in s, tolerating code
// fences or stray text around it.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}
