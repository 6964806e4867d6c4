package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/extraction"
	"github.com/orderdesk/backend/internal/domain/shared"
)

const (
	defaultTimeout  = 120 * time.Second
	maxResponseSize = 10 << 20
)

// Config holds the extraction service connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the generative language API to pull order items out of
// an uploaded document. One client is shared between companies; the
// prompt and response schema can vary per request.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates an extraction client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Request describes a single extraction call.
type Request struct {
	Document []byte
	MimeType string
	// Prompt and Schema override the built-in defaults when the
	// company has custom extraction settings.
	Prompt string
	Schema string
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema,omitempty"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type itemsPayload struct {
	Items []extraction.Item `json:"items"`
}

// Extract sends the document to the model and returns the validated
// item list. Items without a barcode are dropped before return.
func (c *Client) Extract(ctx context.Context, req Request) ([]extraction.Item, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = extraction.DefaultPrompt
	}
	schema := req.Schema
	if schema == "" {
		schema = extraction.DefaultSchema
	}

	payload := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: req.MimeType,
					Data:     base64.StdEncoding.EncodeToString(req.Document),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(schema),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("extraction request failed", zap.Error(err))
		return nil, shared.NewDomainError("EXTRACTION_FAILED", "extraction service unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction response: %w", err)
	}

	c.logger.Debug("extraction response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("extraction service returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return nil, shared.NewDomainError("EXTRACTION_FAILED",
			fmt.Sprintf("extraction service returned status %d", resp.StatusCode))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if gen.Error != nil {
		return nil, shared.NewDomainError("EXTRACTION_FAILED", gen.Error.Message)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return nil, shared.NewDomainError("EXTRACTION_FAILED", "extraction service returned no candidates")
	}

	var items itemsPayload
	text := gen.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		c.logger.Error("extraction returned malformed items", zap.String("text", string(truncate([]byte(text), 512))))
		return nil, shared.NewDomainError("EXTRACTION_FAILED", "extraction service returned malformed items")
	}

	return extraction.Validate(items.Items), nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
