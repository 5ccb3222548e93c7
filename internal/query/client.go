// Package query provides a client for the remote answering service.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/madhavasok/chatai/pkg/models"
)

// DefaultBaseURL points at a locally running answering service.
const DefaultBaseURL = "http://localhost:8000/api/query"

// Client is an answering-service API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new answering client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	Sources  []models.Source `json:"sources"`
	Error    string          `json:"error"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Ask dispatches one natural-language query and returns the answer with
// its source citations.
func (c *Client) Ask(ctx context.Context, query string) (models.Answer, error) {
	body, err := json.Marshal(askRequest{Query: query})
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/general", bytes.NewReader(body))
	if err != nil {
		return models.Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to reach answering service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Detail != "" {
			return models.Answer{}, fmt.Errorf("answering service: %s", errResp.Detail)
		}
		return models.Answer{}, fmt.Errorf("answering service returned status %d", resp.StatusCode)
	}

	var ask askResponse
	if err := json.Unmarshal(data, &ask); err != nil {
		return models.Answer{}, fmt.Errorf("failed to decode answer: %w", err)
	}
	if ask.Error != "" {
		return models.Answer{}, fmt.Errorf("answering service: %s", ask.Error)
	}

	sources := ask.Sources
	if sources == nil {
		sources = []models.Source{}
	}

	return models.Answer{Answer: ask.Answer, Sources: sources}, nil
}
