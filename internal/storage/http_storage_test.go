package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher() ImageFetcher {
	return NewHTTPImageFetcher(10*time.Second, 1024*1024)
}

func TestHTTPImageFetcher_RetryLogic(t *testing.T) {
	tests := []struct {
		name          string
		responses     []int // Status codes to return in sequence
		expectedCalls int32
		expectError   bool
		errorContains string
	}{
		{
			name:          "success on first attempt",
			responses:     []int{200},
			expectedCalls: 1,
		},
		{
			name:          "success after one 5xx",
			responses:     []int{500, 200},
			expectedCalls: 2,
		},
		{
			name:          "4xx is not retried",
			responses:     []int{404},
			expectedCalls: 1,
			expectError:   true,
			errorContains: "client error: status code 404",
		},
		{
			name:          "all 5xx exhausts retries",
			responses:     []int{500, 502, 503},
			expectedCalls: 3,
			expectError:   true,
			errorContains: "failed to fetch image after 3 attempts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				idx := int(n) - 1
				if idx >= len(tt.responses) {
					idx = len(tt.responses) - 1
				}
				status := tt.responses[idx]
				w.Header().Set("Content-Type", "image/png")
				w.WriteHeader(status)
				if status == http.StatusOK {
					w.Write([]byte("fake image bytes"))
				}
			}))
			defer server.Close()

			body, contentType, err := newTestFetcher().FetchImage(context.Background(), server.URL)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected an error")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %v", tt.errorContains, err)
				}
			} else {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if string(body) != "fake image bytes" {
					t.Errorf("Unexpected body %q", body)
				}
				if contentType != "image/png" {
					t.Errorf("Expected image/png content type, got %q", contentType)
				}
			}
			if calls != tt.expectedCalls {
				t.Errorf("Expected %d requests, got %d", tt.expectedCalls, calls)
			}
		})
	}
}

func TestHTTPImageFetcher_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(10*time.Second, 1024)
	_, _, err := fetcher.FetchImage(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "size limit") {
		t.Errorf("Expected size limit error, got %v", err)
	}
}

func TestHTTPImageFetcher_InvalidURL(t *testing.T) {
	_, _, err := newTestFetcher().FetchImage(context.Background(), "http://[::1]:namedport")
	if err == nil {
		t.Error("Expected error for malformed URL")
	}
}
