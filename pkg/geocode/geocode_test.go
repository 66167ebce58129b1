package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.GeocodeConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil)
}

func TestReverse_FullAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/reverse" {
			t.Errorf("path = %q, want /reverse", got)
		}
		w.Write([]byte(`{"address":{"suburb":"Karol Bagh","city":"New Delhi","state":"Delhi","country":"India","postcode":"110005"}}`))
	})

	addr, err := c.Reverse(context.Background(), model.Location{Lat: 28.65, Lon: 77.19})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr.Locality != "Karol Bagh" || addr.City != "New Delhi" {
		t.Errorf("addr = %+v", addr)
	}
	want := "Karol Bagh, New Delhi, Delhi, India, 110005"
	if got := addr.Display(); got != want {
		t.Errorf("Display = %q, want %q", got, want)
	}
}

// Any subset of components may be absent; the client tolerates all of
// them missing.
func TestReverse_PartialAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"village":"Theog","county":"Shimla","country":"India"}}`))
	})

	addr, err := c.Reverse(context.Background(), model.Location{Lat: 31.12, Lon: 77.35})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr.Locality != "Theog" {
		t.Errorf("locality = %q, want village fallback Theog", addr.Locality)
	}
	if addr.City != "Shimla" {
		t.Errorf("city = %q, want county fallback Shimla", addr.City)
	}
	if got := addr.Display(); got != "Theog, Shimla, India" {
		t.Errorf("Display = %q", got)
	}
}

func TestReverse_EmptyAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	})

	addr, err := c.Reverse(context.Background(), model.Location{})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if got := addr.Display(); got != "" {
		t.Errorf("Display = %q, want empty", got)
	}
}

func TestReverse_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := c.Reverse(context.Background(), model.Location{}); err == nil {
		t.Errorf("Reverse succeeded against a 503 upstream")
	}
}
