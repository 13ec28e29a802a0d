package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, h http.Handler, method string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, string(body)
}

func TestHandler_Methods(t *testing.T) {
	tests := []struct {
		method     string
		wantStatus int
		wantAllow  string
	}{
		{http.MethodGet, http.StatusOK, ""},
		{http.MethodPost, http.StatusMethodNotAllowed, ""},
		{http.MethodDelete, http.StatusMethodNotAllowed, ""},
		{http.MethodOptions, http.StatusNoContent, allowedMethods},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			h := New(":0", NewMetrics(), nil).Handler()
			resp, _ := doRequest(t, h, tt.method)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if got := resp.Header.Get("Allow"); got != tt.wantAllow {
				t.Errorf("Allow = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestHandler_OptionsNotCounted(t *testing.T) {
	h := New(":0", NewMetrics(), nil).Handler()

	doRequest(t, h, http.MethodOptions)
	doRequest(t, h, http.MethodOptions)
	doRequest(t, h, http.MethodPost)
	resp, body := doRequest(t, h, http.MethodGet)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	// The POST and the scrape itself are counted; the preflights are not.
	if !strings.Contains(body, "monitorthing_requests_total 2\n") {
		t.Errorf("expected requests_total 2 in body:\n%s", body)
	}
}
