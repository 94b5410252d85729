package webping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>\n  GOV.UK \n</title></head><body></body></html>"))
	}))
	defer srv.Close()

	res, err := Probe(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if res.StatusCode != 200 {
		t.Errorf("status = %d", res.StatusCode)
	}
	if res.Title != "GOV.UK" {
		t.Errorf("title = %q, want GOV.UK", res.Title)
	}
}

func TestProbeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := Probe(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for 503")
	}
}

func TestProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the port refuses connections

	if _, err := Probe(context.Background(), http.DefaultClient, srv.URL); err == nil {
		t.Error("expected error for refused connection")
	}
}
