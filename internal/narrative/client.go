package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// HTTPError carries the status of a failed generateContent call.
type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func NewHTTPError(statusCode int, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Err:        err,
	}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.StatusCode, e.Status, e.Err)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Status)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewGeminiClient creates a client with the given request timeout.
func NewGeminiClient(apiKey string, timeout time.Duration, logger *zap.Logger) *GeminiClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends prompt to model and returns the concatenated text parts.
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("missing api key")
	}

	var body generateRequest
	body.Contents = []content{{Role: "user", Parts: []part{{Text: prompt}}}}
	body.GenerationConfig.Temperature = 0.4
	body.GenerationConfig.ResponseMIMEType = "application/json"
	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	base := g.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(base, "/"), url.PathEscape(model), url.QueryEscape(g.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", model, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("generate %s: read body: %w", model, err)
	}
	g.Logger.Debug("gemini response",
		zap.String("model", model),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	var out generateResponse
	if jerr := json.Unmarshal(raw, &out); jerr != nil && res.StatusCode == http.StatusOK {
		return "", fmt.Errorf("generate %s: decode: %w", model, jerr)
	}
	if res.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", NewHTTPError(res.StatusCode, fmt.Errorf("%s", out.Error.Message))
		}
		return "", NewHTTPError(res.StatusCode, nil)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("generate %s: no candidates", model)
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("generate %s: empty response (finish reason %s)", model, out.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}
