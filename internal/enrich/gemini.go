package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mbracher/winescan/internal/menu"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the Gemini generateContent API to fill in wine metadata the
// menu itself does not state. Enrichment is best-effort end to end: any
// failure leaves the records exactly as the parser produced them.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	cache      Cache
	log        *slog.Logger
}

// NewClient creates an enrichment client. An empty apiKey disables
// enrichment; cache may be nil.
func NewClient(apiKey, model string, cache Cache, log *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: cache,
		log:   log,
	}
}

// Enabled reports whether the client has credentials to work with.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// EnrichWines fills missing fields on the given wines, preferring cached
// results and batching the rest into a single request. On batch failure it
// degrades to per-wine requests; on any remaining failure the wines are
// returned untouched.
func (c *Client) EnrichWines(ctx context.Context, wines []*menu.Wine) {
	if !c.Enabled() {
		return
	}

	type lookup struct {
		wineIdx int
		name    string
	}
	var pending []lookup
	for i, w := range wines {
		if w.Name == nil {
			continue
		}
		name := strings.TrimSpace(*w.Name)
		if name == "" {
			continue
		}
		if c.cache != nil {
			if e, ok := c.cache.Get(Key(name)); ok {
				MergeMissing(w, e)
				continue
			}
		}
		pending = append(pending, lookup{wineIdx: i, name: name})
	}
	if len(pending) == 0 {
		return
	}

	names := make([]string, len(pending))
	for i, p := range pending {
		names[i] = p.name
	}

	results, err := c.enrichBatch(ctx, names)
	if err != nil && IsRetryable(err) && ctx.Err() == nil {
		results, err = c.enrichBatch(ctx, names)
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.log.Warn("batch enrichment failed, falling back to per-wine", "error", err, "wines", len(pending))
		for _, p := range pending {
			e, err := c.enrichOne(ctx, p.name)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				continue
			}
			c.apply(wines[p.wineIdx], p.name, e)
		}
		return
	}

	if len(results) != len(pending) {
		c.log.Warn("batch enrichment length mismatch", "got", len(results), "expected", len(pending))
	}
	for i, p := range pending {
		if i >= len(results) {
			break
		}
		c.apply(wines[p.wineIdx], p.name, results[i])
	}
}

func (c *Client) apply(w *menu.Wine, name string, e Enrichment) {
	if e.IsZero() {
		return
	}
	MergeMissing(w, e)
	if c.cache != nil {
		c.cache.Set(Key(name), e)
	}
}

// enrichBatch asks for all names in one request and expects a JSON array of
// equal length in the same order.
func (c *Client) enrichBatch(ctx context.Context, names []string) ([]Enrichment, error) {
	namesJSON, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("marshal names: %w", err)
	}

	prompt := "You are enriching a restaurant wine list. " +
		"Given a JSON array of wine name strings, return ONLY valid JSON: an array of objects of equal length, " +
		"in the same order, each object having keys: producer (string or null), region (string or null), " +
		"grape (string or null), vintage (integer year or null), description (string or null). " +
		"Description must be one short sentence (max ~25 words), menu-friendly, no marketing fluff. " +
		"Do not mention prices. Use null when unknown. Do not add extra keys.\n\n" +
		"Wine names JSON:\n" + string(namesJSON) + "\n"

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	arr := extractJSONArray(stripCodeBlock(text))
	if arr == nil {
		return nil, fmt.Errorf("no JSON array in response (raw: %s)", truncate(text, 200))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(arr, &items); err != nil {
		return nil, fmt.Errorf("parse enrichment array: %w (raw: %s)", err, truncate(string(arr), 200))
	}

	results := make([]Enrichment, len(items))
	for i, item := range items {
		// A malformed element degrades to an empty enrichment.
		_ = json.Unmarshal(item, &results[i])
	}
	return results, nil
}

// enrichOne asks for a single wine name and expects a JSON object.
func (c *Client) enrichOne(ctx context.Context, name string) (Enrichment, error) {
	prompt := "You are extracting structured metadata for a wine list. " +
		"Given a wine name string from a restaurant menu, return ONLY valid JSON with keys: " +
		"producer (string or null), region (string or null), grape (string or null), vintage (integer year or null), " +
		"description (string or null). Description must be one short sentence (max ~25 words), menu-friendly. " +
		"If unknown, use null. Do not include any other keys.\n\n" +
		"Wine name: " + fmt.Sprintf("%q", name) + "\n"

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return Enrichment{}, err
	}

	obj := extractJSONObject(stripCodeBlock(text))
	if obj == nil {
		return Enrichment{}, fmt.Errorf("no JSON object in response (raw: %s)", truncate(text, 200))
	}

	var e Enrichment
	if err := json.Unmarshal(obj, &e); err != nil {
		return Enrichment{}, fmt.Errorf("parse enrichment: %w", err)
	}
	return e, nil
}

// generate performs one generateContent call and returns the candidate text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     0,
			TopP:            0.1,
			MaxOutputTokens: 2048,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s: %s", apiResp.Error.Status, apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// extractJSONArray pulls the outermost JSON array out of model chatter.
func extractJSONArray(s string) []byte {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end <= start {
		return nil
	}
	return []byte(s[start : end+1])
}

// extractJSONObject pulls the outermost JSON object out of model chatter.
func extractJSONObject(s string) []byte {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil
	}
	return []byte(s[start : end+1])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient upstream failure.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth one more attempt.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}
