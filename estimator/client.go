// Package estimator talks to an external text-generation service to price
// free-text bets. The service is asked for a payout multiplier and a short
// rationale; everything coming back is treated as untrusted input.
package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/manugarri/bb-league/model"
)

var ErrNoEstimate = errors.New("estimator returned no usable estimate")

type Client interface {
	// EstimateMultiplier prices a free-text bet prediction. The returned
	// estimate is already clamped to the allowed multiplier range.
	EstimateMultiplier(ctx context.Context, prompt string) (*model.MultiplierEstimate, error)
}

type client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func New(url, apiKey string) (Client, error) {
	if url == "" {
		return nil, errors.New("estimator url is required")
	}
	c := &client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	return c, nil
}

// NewForTest returns a client pointed at a test server, skipping URL
// validation.
func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// estimatePayload is the JSON document the service is prompted to emit.
type estimatePayload struct {
	Multiplier *float64 `json:"multiplier"`
	Confidence *float64 `json:"confidence"`
	Rationale  string   `json:"rationale"`
}

func (c *client) EstimateMultiplier(ctx context.Context, prompt string) (*model.MultiplierEstimate, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("error encoding estimator request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/generate", c.url), strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from estimator: %w", err)
	}

	return parseEstimate(parsed.Text)
}

// parseEstimate extracts the JSON document from the generated text. The
// service tends to wrap its answer in markdown code fences or surround it
// with prose, so scan for the outermost braces.
func parseEstimate(text string) (*model.MultiplierEstimate, error) {
	doc := extractJSON(text)
	if doc == "" {
		return nil, fmt.Errorf("%w: no JSON found in response", ErrNoEstimate)
	}

	var payload estimatePayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEstimate, err)
	}

	// Missing fields get conservative defaults rather than failing the
	// whole estimate.
	multiplier := model.DefaultAIMultiplier
	if payload.Multiplier != nil {
		multiplier = *payload.Multiplier
	}
	confidence := 0.5
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}

	return &model.MultiplierEstimate{
		Multiplier: model.ClampAIMultiplier(multiplier),
		Confidence: confidence,
		Rationale:  payload.Rationale,
	}, nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
