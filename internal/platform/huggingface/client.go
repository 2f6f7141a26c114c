// Package huggingface implements proposal image generation using the
// Hugging Face inference API. Generated images are decoded, re-encoded as
// PNG, and written under the configured images directory.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "image/gif"  // register decoder for response validation
	_ "image/jpeg" // register decoder for response validation

	"github.com/google/uuid"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/domain"
	"github.com/proposalforge/proposalforge/internal/generation"
)

const requestTimeout = 120 * time.Second

// Client implements the generation.ImageGenerator interface against the
// Hugging Face text-to-image inference endpoint.
type Client struct {
	logger        *slog.Logger
	httpClient    *http.Client
	baseURL       string
	model         string
	apiToken      string
	outputDir     string
	steps         int
	guidanceScale float64
}

// NewClient creates a Client from the image configuration. The API token
// and model name are required.
func NewClient(logger *slog.Logger, cfg config.ImageConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("%w: huggingface API token cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: image model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: image base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("%w: image output directory cannot be empty", generation.ErrInvalidConfig)
	}

	return &Client{
		logger:        logger,
		httpClient:    &http.Client{Timeout: requestTimeout},
		baseURL:       cfg.BaseURL,
		model:         cfg.Model,
		apiToken:      cfg.APIToken,
		outputDir:     cfg.OutputDir,
		steps:         cfg.InferenceSteps,
		guidanceScale: cfg.GuidanceScale,
	}, nil
}

// inferenceRequest is the wire format of a text-to-image inference call.
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// GenerateImage requests an image for the proposal type and themes, writes
// it as <uuid>.png under the output directory, and returns the filename.
// The caller is responsible for resolving the filename to a servable URL.
func (c *Client) GenerateImage(ctx context.Context, proposalType domain.ProposalType, themes string) (string, error) {
	prompt := generation.ImagePrompt(proposalType, themes)

	c.logger.InfoContext(ctx, "requesting image generation",
		"model", c.model,
		"proposal_type", proposalType,
		"prompt_length", len(prompt))

	data, err := c.callInference(ctx, prompt)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.logger.ErrorContext(ctx, "response is not a decodable image",
			"error", err,
			"response_bytes", len(data))
		return "", fmt.Errorf("%w: response is not a decodable image: %v",
			generation.ErrInvalidResponse, err)
	}

	filename := uuid.New().String() + ".png"
	path := filepath.Join(c.outputDir, filename)

	if err := c.writePNG(path, img); err != nil {
		c.logger.ErrorContext(ctx, "failed to persist generated image",
			"error", err,
			"path", path)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	c.logger.InfoContext(ctx, "image generated and saved",
		"filename", filename,
		"source_format", format,
		"bounds", img.Bounds().String())

	return filename, nil
}

// callInference posts the prompt to the model endpoint and returns the raw
// response bytes.
func (c *Client) callInference(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			NumInferenceSteps: c.steps,
			GuidanceScale:     c.guidanceScale,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode inference request: %v",
			generation.ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create inference request: %v",
			generation.ErrGenerationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: inference request failed: %v",
			generation.ErrGenerationFailed, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close inference response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read inference response: %v",
			generation.ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: inference request failed (%d): %s",
			generation.ErrGenerationFailed, resp.StatusCode, truncate(data, 256))
	}

	return data, nil
}

// writePNG creates the output directory if absent and encodes the image
// losslessly at the given path.
func (c *Client) writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create images directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

func truncate(data []byte, limit int) string {
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "..."
}
