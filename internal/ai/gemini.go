package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andy/gstbill/internal/config"
	"github.com/andy/gstbill/internal/domain"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

const extractionPrompt = `Extract invoice line items from the following text. ` +
	`For each item return a description, the HSN/SAC code if mentioned, the quantity, ` +
	`the unit of measure and the unit price. If a client or buyer name is mentioned, ` +
	`return it as clientName. Amounts are in Indian Rupees.

Text:
`

// Extraction is the structured result of an AI quick-fill request.
type Extraction struct {
	ClientName string
	Items      []domain.InvoiceItem
}

// Extractor turns free-form billing text into invoice line items using
// Google's Gemini API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates a Gemini-backed extractor.
func NewExtractor(cfg config.GeminiConfig) *Extractor {
	return newExtractor(cfg, "")
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint (for testing).
func NewExtractorWithEndpoint(cfg config.GeminiConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg config.GeminiConfig, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (e *Extractor) Configured() bool {
	return e.apiKey != ""
}

// itemSchema constrains the model to the exact JSON shape we decode.
var itemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"clientName": map[string]any{"type": "string"},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"description": map[string]any{"type": "string"},
					"hsn":         map[string]any{"type": "string"},
					"quantity":    map[string]any{"type": "number"},
					"unit":        map[string]any{"type": "string"},
					"unitPrice":   map[string]any{"type": "number"},
				},
				"required": []string{"description", "quantity", "unitPrice"},
			},
		},
	},
	"required": []string{"items"},
}

// Extract asks the model for line items found in the text. A response the
// model garbles decodes to an empty extraction rather than an error, so a
// flaky model never loses the user's typed text.
func (e *Extractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	reqBody := map[string]any{
		"contents": []map[string]any{
			{
				"role": "user",
				"parts": []map[string]any{
					{"text": extractionPrompt + text},
				},
			},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   itemSchema,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return parseResponse(respBody)
}

// geminiResponse models the subset of the Gemini API response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type extractionPayload struct {
	ClientName string `json:"clientName"`
	Items      []struct {
		Description string  `json:"description"`
		HSN         string  `json:"hsn"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`
		UnitPrice   float64 `json:"unitPrice"`
	} `json:"items"`
}

func parseResponse(respBody []byte) (*Extraction, error) {
	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return &Extraction{}, nil
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	var payload extractionPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		// Malformed model output yields an empty result, not a failure.
		return &Extraction{}, nil
	}

	out := &Extraction{ClientName: strings.TrimSpace(payload.ClientName)}
	for _, p := range payload.Items {
		item := domain.NewItem()
		item.Description = p.Description
		item.HSN = p.HSN
		item.Quantity = p.Quantity
		if p.Unit != "" {
			item.Unit = p.Unit
		}
		item.UnitPrice = p.UnitPrice
		item.Recalculate()
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
