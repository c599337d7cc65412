// internal/ai/genai.go
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type imageModel interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GenAIImager generates product images with a Gemini image model and
// returns them as data URIs.
type GenAIImager struct {
	models  imageModel
	model   string
	timeout time.Duration
}

func NewGenAIImager(ctx context.Context, apiKey, model string, timeout time.Duration) (*GenAIImager, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIImager{models: client.Models, model: model, timeout: timeout}, nil
}

func (g *GenAIImager) GenerateImage(ctx context.Context, in ImageInput) (*ImageOutput, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("A clean studio product photograph of %s, a product in the %s category, on a plain light background.",
		in.ProductName, in.ProductCategory)

	resp, err := g.models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		logrus.WithError(err).WithField("flow", "generate_image").Error("AI flow request failed")
		return nil, fmt.Errorf("%w: generate_image: %v", ErrFlowFailed, err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("%w: generate_image: no image returned", ErrFlowFailed)
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &ImageOutput{ImageURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes)}, nil
}
