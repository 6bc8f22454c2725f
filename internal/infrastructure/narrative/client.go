// Package narrative wraps the external text-generation endpoint that
// turns a compiled fact sheet into prose. Callers treat any error as
// "service unavailable" and compose the summary locally instead.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/config"
)

type Client interface {
	Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResult, error)
}

type SummarizeRequest struct {
	Facts string
	Notes string
	URLs  []string
}

type SummarizeResult struct {
	Summary  string
	Oneliner string
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

type summarizeRequest struct {
	Facts string   `json:"facts"`
	Notes string   `json:"notes"`
	URLs  []string `json:"urls"`
}

type summarizeResponse struct {
	Summary  string `json:"summary"`
	Oneliner string `json:"oneliner"`
}

// NewClient returns nil when no endpoint is configured; callers must
// nil-check and skip remote generation entirely in that case.
func NewClient(cfg config.NarrativeConfig, logger *log.Logger) Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) Summarize(ctx context.Context, in SummarizeRequest) (SummarizeResult, error) {
	if c == nil {
		return SummarizeResult{}, errors.New("nil narrative client")
	}
	if c.client == nil {
		return SummarizeResult{}, errors.New("nil http client")
	}
	endpoint := c.baseURL + "/summarize"

	urls := in.URLs
	if urls == nil {
		urls = make([]string, 0)
	}
	body := summarizeRequest{Facts: in.Facts, Notes: in.Notes, URLs: urls}
	b, err := json.Marshal(body)
	if err != nil {
		return SummarizeResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return SummarizeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return SummarizeResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("summarize failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Narrative] Summarize error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return SummarizeResult{}, err
	}

	var out summarizeResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&out); err != nil {
		return SummarizeResult{}, err
	}

	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return SummarizeResult{}, errors.New("summarize returned empty summary")
	}
	return SummarizeResult{
		Summary:  summary,
		Oneliner: strings.TrimSpace(out.Oneliner),
	}, nil
}

var _ Client = (*httpClient)(nil)
