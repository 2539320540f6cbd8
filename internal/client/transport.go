package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// API is the server surface the controller needs. HTTPTransport is the
// production implementation; tests substitute fakes.
type API interface {
	GetCounts(ctx context.Context, itemID string) (domain.Counts, error)
	ApplyReaction(ctx context.Context, itemID string, kind domain.Kind, intent domain.Intent, previous domain.Kind) (domain.Counts, error)
}

// HTTPTransport talks to the reaction service over its JSON API.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type countsResponse struct {
	Counts map[string]int `json:"counts"`
}

type reactionRequest struct {
	Kind         string `json:"kind"`
	Intent       string `json:"intent"`
	PreviousKind string `json:"previousKind,omitempty"`
}

type resetResponse struct {
	Message    string `json:"message"`
	ResetCount int    `json:"resetCount"`
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

func (t *HTTPTransport) GetCounts(ctx context.Context, itemID string) (domain.Counts, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/reactions/"+itemID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating counts request: %w", err)
	}
	return t.doCounts(req)
}

func (t *HTTPTransport) ApplyReaction(ctx context.Context, itemID string, kind domain.Kind, intent domain.Intent, previous domain.Kind) (domain.Counts, error) {
	body, err := json.Marshal(reactionRequest{
		Kind:         string(kind),
		Intent:       string(intent),
		PreviousKind: string(previous),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding reaction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/reactions/"+itemID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating reaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return t.doCounts(req)
}

// ResetAll clears counts for every known item and returns how many were reset.
func (t *HTTPTransport) ResetAll(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/reactions/reset-all", nil)
	if err != nil {
		return 0, fmt.Errorf("creating reset request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling reset endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}

	var out resetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decoding reset response: %w", err)
	}
	return out.ResetCount, nil
}

func (t *HTTPTransport) doCounts(req *http.Request) (domain.Counts, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling reaction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var out countsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding counts response: %w", err)
	}

	counts := make(domain.Counts, len(out.Counts))
	for kind, n := range out.Counts {
		counts[domain.Kind(kind)] = n
	}
	return counts, nil
}

// decodeError maps the server's error envelope back onto domain sentinels so
// callers can branch without parsing strings.
func decodeError(resp *http.Response) error {
	var envelope errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("reaction service returned status %d", resp.StatusCode)
	}

	switch envelope.Type {
	case "validation":
		return fmt.Errorf("%s: %w", envelope.Error, domain.ErrInvalidKind)
	case "not_found":
		return fmt.Errorf("%s: %w", envelope.Error, domain.ErrItemNotFound)
	case "store_unavailable":
		return fmt.Errorf("%s: %w", envelope.Error, domain.ErrStoreUnavailable)
	case "configuration":
		return fmt.Errorf("%s: %w", envelope.Error, domain.ErrWriteTokenMissing)
	default:
		return fmt.Errorf("reaction service error (%d): %s", resp.StatusCode, envelope.Error)
	}
}
