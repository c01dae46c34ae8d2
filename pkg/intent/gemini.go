package intent

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils"
)

// DefaultRequestTimeout bounds a completion call. A turn never hangs in the
// extracting state: the context is cancelled and the turn settles with a
// fallback message.
const DefaultRequestTimeout = 30 * time.Second

type geminiExtractor struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewGeminiExtractor returns the production IntentExtractor backed by the
// Gemini generateContent API. API key and model come from configuration.
func NewGeminiExtractor(timeout time.Duration) IntentExtractor {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &geminiExtractor{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

func (g *geminiExtractor) Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, domain.ErrExtractorNotConfigured
	}
	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		return nil, domain.ErrExtractorNotConfigured
	}

	genConfig := GenerationConfigFor(req.ContextTag)

	parts := []map[string]interface{}{
		{"text": BuildUserPrompt(req)},
	}
	if req.Image != nil && len(req.Image.Data) > 0 {
		mimeType := req.Image.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(req.Image.Data),
			},
		})
	}

	requestBody := map[string]interface{}{
		"system_instruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": SystemPrompt(req.ContextTag)},
			},
		},
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     genConfig.Temperature,
			"maxOutputTokens": genConfig.MaxTokens,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	geminiURL := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model, apiKey,
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrExtractionFailed, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrExtractionFailed
	}

	result := ParseCompletion(geminiResp.Candidates[0].Content.Parts[0].Text)
	return ApplyGuards(req, result), nil
}
