// Package translation provides the production Translator, Aligner and
// Tokenizer implementations that internal/markup.Pipeline is wired
// against: HTTP JSON clients talking to configurable MT/alignment
// services, plus a regex-based default tokenizer for when no remote
// tokenizer is configured.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"doctranslate/internal/config"
	"doctranslate/pkg/logger"
)

const maxRetries = 3

// HTTPTranslator calls a configurable MT HTTP endpoint that accepts
// translator-view text and returns its own sentence split of the source
// alongside the matching translated sentences.
type HTTPTranslator struct {
	endpoint config.ServiceEndpoint
	client   *http.Client
}

// NewHTTPTranslator builds an HTTPTranslator against endpoint.
func NewHTTPTranslator(endpoint config.ServiceEndpoint) *HTTPTranslator {
	return &HTTPTranslator{endpoint: endpoint, client: &http.Client{Timeout: 2 * time.Minute}}
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	SourceSentences []string `json:"source_sentences"`
	TargetSentences []string `json:"target_sentences"`
}

// Translate implements markup.Translator.
func (t *HTTPTranslator) Translate(ctx context.Context, text string) ([]string, []string, error) {
	var resp translateResponse
	if err := postJSON(ctx, t.client, t.endpoint, translateRequest{Text: text}, &resp); err != nil {
		return nil, nil, fmt.Errorf("translate request: %w", err)
	}
	return resp.SourceSentences, resp.TargetSentences, nil
}

// HTTPAligner calls a configurable word-alignment HTTP endpoint,
// dispatching one request per sentence pair concurrently via errgroup:
// the core pipeline hands it a whole batch at once, and fanning the
// per-sentence calls out over the network is exactly the kind of
// transport-level concurrency that belongs to the collaborator, not to
// internal/markup.
type HTTPAligner struct {
	endpoint    config.ServiceEndpoint
	client      *http.Client
	concurrency int
}

// NewHTTPAligner builds an HTTPAligner against endpoint. concurrency
// bounds the number of in-flight per-sentence alignment requests; values
// <= 0 default to 4.
func NewHTTPAligner(endpoint config.ServiceEndpoint, concurrency int) *HTTPAligner {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &HTTPAligner{endpoint: endpoint, client: &http.Client{Timeout: time.Minute}, concurrency: concurrency}
}

type alignRequest struct {
	Source []string `json:"source"`
	Target []string `json:"target"`
}

type alignResponse struct {
	Pairs [][2]int `json:"pairs"`
}

// Align implements markup.Aligner.
func (a *HTTPAligner) Align(ctx context.Context, srcBatch, tgtBatch [][]string) ([][][2]int, error) {
	out := make([][][2]int, len(srcBatch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i := range srcBatch {
		i := i
		g.Go(func() error {
			var resp alignResponse
			req := alignRequest{Source: srcBatch[i], Target: tgtBatch[i]}
			if err := postJSON(ctx, a.client, a.endpoint, req, &resp); err != nil {
				return fmt.Errorf("align request for sentence %d: %w", i, err)
			}
			out[i] = resp.Pairs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// HTTPTokenizer delegates tokenization to a remote service instead of
// using RegexTokenizer, for languages the built-in rules handle poorly.
type HTTPTokenizer struct {
	endpoint config.ServiceEndpoint
	client   *http.Client
}

// NewHTTPTokenizer builds an HTTPTokenizer against endpoint.
func NewHTTPTokenizer(endpoint config.ServiceEndpoint) *HTTPTokenizer {
	return &HTTPTokenizer{endpoint: endpoint, client: &http.Client{Timeout: 30 * time.Second}}
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// Tokenize implements markup.Tokenizer.
func (t *HTTPTokenizer) Tokenize(s string) ([]string, error) {
	var resp tokenizeResponse
	if err := postJSON(context.Background(), t.client, t.endpoint, tokenizeRequest{Text: s}, &resp); err != nil {
		return nil, fmt.Errorf("tokenize request: %w", err)
	}
	return resp.Tokens, nil
}

// postJSON sends body as a JSON POST to endpoint.URL, decoding the JSON
// response into out. Transient network errors (anything client.Do itself
// returns, as opposed to a non-2xx status) are retried, up to maxRetries
// attempts in all, sleeping attempt² seconds between attempts, mirroring the retry posture of this codebase's other outbound
// HTTP clients.
func postJSON(ctx context.Context, client *http.Client, endpoint config.ServiceEndpoint, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	var resp *http.Response
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if endpoint.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+endpoint.APIKey)
		}

		resp, err = client.Do(req)
		if err == nil {
			break
		}
		logger.Warn("translation service request failed", "url", endpoint.URL, "attempt", attempt, "error", err)
		if attempt == maxRetries {
			return fmt.Errorf("request to %s: %w", endpoint.URL, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * time.Second):
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("service %s returned status %d: %s", endpoint.URL, resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint.URL, err)
	}
	return nil
}
