package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
	"gopkg.in/square/go-jose.v2/jwt"
)

// TorusClient exchanges a claim signature for a JWT at the Torus TEE signer
// service. The returned token authorizes the remote decryption-key fetch.
type TorusClient struct {
	// BaseURL is the Torus signer API root.
	BaseURL string

	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
}

// NewTorusClient creates a Torus signer client.
func NewTorusClient(baseURL string) *TorusClient {
	return &TorusClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type torusSignRequest struct {
	Signature string `json:"signature"`
	TokenID   string `json:"tokenId"`
}

type torusSignResponse struct {
	Token   string `json:"token"`
	Success *bool  `json:"success,omitempty"`
	Debug   any    `json:"debug,omitempty"`
}

// Sign posts the claim signature to the signer's /sign endpoint with the
// chain ID header and returns the JWT.
func (t *TorusClient) Sign(ctx context.Context, signature, tokenID string, chainID int64) (string, error) {
	body, err := json.Marshal(torusSignRequest{Signature: signature, TokenID: tokenID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/sign", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("chainid", emblem.ChainIDString(chainID))

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", emblem.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	var signResp torusSignResponse
	if err := json.NewDecoder(resp.Body).Decode(&signResp); err != nil {
		return "", fmt.Errorf("failed to decode sign response: %w", err)
	}

	if signResp.Success != nil && !*signResp.Success {
		msg := "torus signer rejected the signature"
		if signResp.Debug != nil {
			msg = fmt.Sprintf("%s: %v", msg, signResp.Debug)
		}
		return "", &RejectionError{Message: msg}
	}
	if signResp.Token == "" {
		return "", &RejectionError{Message: "torus signer returned no token"}
	}

	return signResp.Token, nil
}

// TokenExpiry parses the signer's JWT and returns its expiry. The token is
// produced and consumed by the same trust domain, so the signature is not
// re-verified here; this is a freshness check only.
func TokenExpiry(token string) (time.Time, error) {
	parsed, err := jwt.ParseSigned(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	var claims jwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to read token claims: %w", err)
	}
	if claims.Expiry == nil {
		return time.Time{}, fmt.Errorf("token carries no expiry")
	}

	return claims.Expiry.Time(), nil
}
