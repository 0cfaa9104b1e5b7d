// Package api implements the HTTP clients for the curated vault service:
// collection metadata, mint/unvault attestation, vault deletion, and the
// Torus signer JWT exchange.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
	"github.com/EmblemCompany/emblem-vault-sdk-sub000/retry"
)

// Client talks to the curated vault API.
type Client struct {
	// BaseURL is the curated API root (mint-curated, unvault-curated, meta).
	BaseURL string

	// V2BaseURL is the root of the v2 metadata API (delete). Defaults to
	// BaseURL when unset.
	V2BaseURL string

	// APIKey is sent on every request as x-api-key.
	APIKey string

	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a vault API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.V2BaseURL == "" {
		c.V2BaseURL = c.BaseURL
	}
	return c
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.HTTPClient = httpClient }
}

// WithV2BaseURL sets the v2 metadata API root.
func WithV2BaseURL(url string) ClientOption {
	return func(c *Client) { c.V2BaseURL = url }
}

// Request performs a raw API call. The x-api-key header is always sent;
// Content-Type is set only for requests carrying a body. The parsed JSON
// body is returned regardless of HTTP status — callers are expected to
// check payload-level error fields.
func (c *Client) Request(ctx context.Context, url, method string, body any, headers map[string]string) (json.RawMessage, error) {
	raw, _, err := c.do(ctx, url, method, body, headers)
	return raw, err
}

// do executes the request and returns the raw body plus the HTTP status for
// endpoints that do check it.
func (c *Client) do(ctx context.Context, url, method string, body any, headers map[string]string) (json.RawMessage, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", emblem.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if len(data) > 0 && !json.Valid(data) {
		return nil, resp.StatusCode, fmt.Errorf("invalid JSON response: status %d", resp.StatusCode)
	}

	return data, resp.StatusCode, nil
}

// CuratedRequest is the shared body shape of the mint/unvault/delete
// curated endpoints.
type CuratedRequest struct {
	Method    string `json:"method,omitempty"`
	TokenID   string `json:"tokenId"`
	Signature string `json:"signature"`
	ChainID   string `json:"chainId"`
}

// Collections fetches the curated collection records.
func (c *Client) Collections(ctx context.Context) ([]emblem.CollectionRecord, error) {
	raw, status, err := c.do(ctx, c.BaseURL+"/curated", http.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("curated endpoint failed: status %d", status)
	}

	var records []emblem.CollectionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection records: %w", err)
	}
	return records, nil
}

// RefreshCollections fetches the curated collection records under a bounded
// retry policy, retrying only transport-level failures.
func (c *Client) RefreshCollections(ctx context.Context, policy retry.Policy) ([]emblem.CollectionRecord, error) {
	return retry.Do(ctx, policy, isTransient, func() ([]emblem.CollectionRecord, error) {
		return c.Collections(ctx)
	})
}

// VaultMetadata fetches the metadata record for a vault.
func (c *Client) VaultMetadata(ctx context.Context, tokenID string) (*emblem.VaultMetadata, error) {
	raw, status, err := c.do(ctx, c.BaseURL+"/meta/"+tokenID, http.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("metadata fetch failed: status %d", status)
	}

	var meta emblem.VaultMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode vault metadata: %w", err)
	}
	return &meta, nil
}

// MintCurated requests a signed-price mint attestation. The response may
// signal failure through either an "error" or an "err" field; both are
// checked before decoding.
func (c *Client) MintCurated(ctx context.Context, req CuratedRequest) (*emblem.MintSignature, error) {
	raw, status, err := c.do(ctx, c.BaseURL+"/mint-curated", http.MethodPost, req, nil)
	if err != nil {
		return nil, err
	}
	if err := RemoteError(raw); err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("mint-curated failed: status %d", status)
	}

	var sig emblem.MintSignature
	if err := json.Unmarshal(raw, &sig); err != nil {
		return nil, fmt.Errorf("failed to decode mint signature: %w", err)
	}
	return &sig, nil
}

// UnvaultCurated requests a signed-price unvault attestation.
func (c *Client) UnvaultCurated(ctx context.Context, req CuratedRequest) (*emblem.UnvaultSignature, error) {
	raw, status, err := c.do(ctx, c.BaseURL+"/unvault-curated", http.MethodPost, req, nil)
	if err != nil {
		return nil, err
	}
	if err := RemoteError(raw); err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("unvault-curated failed: status %d", status)
	}

	var sig emblem.UnvaultSignature
	if err := json.Unmarshal(raw, &sig); err != nil {
		return nil, fmt.Errorf("failed to decode unvault signature: %w", err)
	}
	return &sig, nil
}

// DeleteVault deletes a vault's metadata record. Non-2xx responses surface
// the server's message field.
func (c *Client) DeleteVault(ctx context.Context, req CuratedRequest) error {
	headers := map[string]string{"service": "evmetadata"}
	raw, status, err := c.do(ctx, c.V2BaseURL+"/v2/delete", http.MethodPost, req, headers)
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return &RejectionError{Message: payload.Message}
	}
	return fmt.Errorf("delete failed: status %d", status)
}

func isTransient(err error) bool {
	return errors.Is(err, emblem.ErrAPIUnavailable)
}
