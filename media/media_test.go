package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsEmbeddable(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"image/svg+xml", true},
		{"application/pdf", true},
		{"video/mp4", true},
		{"audio/mpeg", true},
		{"model/gltf-binary", true},
		{"VIDEO/MP4", true},
		{"image/png", false},
		{"image/gif", false},
		{"application/json", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsEmbeddable(tt.contentType); got != tt.want {
			t.Errorf("IsEmbeddable(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestProbeContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
	}))
	defer server.Close()

	ct, err := ProbeContentType(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if ct != "video/mp4" {
		t.Errorf("content type = %q, want video/mp4", ct)
	}
}

func TestProbeContentTypeFallsBackToGet(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png bytes"))
	}))
	defer server.Close()

	ct, err := ProbeContentType(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Errorf("methods = %v, want [HEAD GET]", methods)
	}
}

func TestProbeContentTypeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := ProbeContentType(context.Background(), server.URL); err == nil {
		t.Error("ProbeContentType succeeded on 404")
	}
}
