package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andy/gstbill/internal/config"
)

func newTestExtractor(t *testing.T, handler http.HandlerFunc) *Extractor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewExtractorWithEndpoint(config.GeminiConfig{APIKey: "key"}, srv.URL)
}

func TestExtract(t *testing.T) {
	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "key" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":
			"{\"clientName\":\"Acme Traders\",\"items\":[{\"description\":\"Steel rods\",\"hsn\":\"7214\",\"quantity\":10,\"unit\":\"KGS\",\"unitPrice\":450}]}"
		}]}}]}`))
	})

	got, err := e.Extract(context.Background(), "10 kg steel rods at 450 for Acme Traders")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.ClientName != "Acme Traders" {
		t.Errorf("ClientName = %q", got.ClientName)
	}
	if len(got.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(got.Items))
	}
	it := got.Items[0]
	if it.Description != "Steel rods" || it.HSN != "7214" || it.Unit != "KGS" {
		t.Errorf("item = %+v", it)
	}
	if it.Total != 4500 {
		t.Errorf("item.Total = %v, want 4500 (derived)", it.Total)
	}
	if it.ID == "" {
		t.Error("extracted items must get local ids")
	}
}

func TestExtractDefaultsUnit(t *testing.T) {
	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":
			"{\"items\":[{\"description\":\"Consulting\",\"quantity\":1,\"unitPrice\":5000}]}"
		}]}}]}`))
	})

	got, err := e.Extract(context.Background(), "consulting 5000")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Items[0].Unit != "NOS" {
		t.Errorf("Unit = %q, want NOS fallback", got.Items[0].Unit)
	}
}

func TestExtractMalformedModelOutput(t *testing.T) {
	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json at all"}]}}]}`))
	})

	got, err := e.Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("malformed output must not error, got %v", err)
	}
	if len(got.Items) != 0 {
		t.Errorf("Items = %+v, want empty", got.Items)
	}
}

func TestExtractAPIError(t *testing.T) {
	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	if _, err := e.Extract(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
