// Package media provides content-type helpers for vault asset presentation:
// a short-timeout network probe and the embeddability classification used by
// the rule engine.
package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ProbeTimeout bounds a single content-type probe. Probes run against
// arbitrary third-party asset hosts, so they are cancelled aggressively.
const ProbeTimeout = 3 * time.Second

// DefaultClient is the HTTP client used by ProbeContentType.
var DefaultClient = &http.Client{}

// ProbeContentType fetches the Content-Type of a URL with a bounded timeout.
// It tries HEAD first and falls back to GET for hosts that reject HEAD. The
// response body is never read.
func ProbeContentType(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	ct, err := probe(ctx, http.MethodHead, url)
	if err == nil && ct != "" {
		return ct, nil
	}

	return probe(ctx, http.MethodGet, url)
}

func probe(ctx context.Context, method, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("content-type probe failed: status %d", resp.StatusCode)
	}

	return resp.Header.Get("Content-Type"), nil
}

// IsEmbeddable reports whether content of the given type renders through an
// animation_url embed rather than a static image.
func IsEmbeddable(contentType string) bool {
	if contentType == "" {
		return false
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch ct {
	case "text/html", "image/svg+xml", "application/pdf":
		return true
	}

	for _, prefix := range []string{"video/", "audio/", "model/"} {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}
