package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *CatalogService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCatalogService(shared.ProviderConfig{BaseURL: server.URL})
}

func TestCatalogServiceGet(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		var gotPath string
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"videoId": "v1", "name": "Title", "channelId": "UC1"}`))
		})

		attrs, err := service.Get(context.Background(), models.KindVideo, "v1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPath != "/videos/v1" {
			t.Errorf("expected plural endpoint /videos/v1, got %q", gotPath)
		}
		if attrs.String("videoId") != "v1" || attrs.String("name") != "Title" {
			t.Errorf("unexpected attrs: %v", attrs)
		}
	})

	t.Run("NotFoundIsNil", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		attrs, err := service.Get(context.Background(), models.KindChannel, "UC-missing")
		if err != nil {
			t.Fatalf("expected nil error for 404, got %v", err)
		}
		if attrs != nil {
			t.Errorf("expected nil attrs for 404, got %v", attrs)
		}
	})

	t.Run("EmptyDocumentIsNil", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		attrs, err := service.Get(context.Background(), models.KindChannel, "UC1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attrs != nil {
			t.Errorf("expected nil attrs for empty document, got %v", attrs)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "quota exceeded"}`))
		})

		_, err := service.Get(context.Background(), models.KindVideo, "v1")
		if !errors.Is(err, shared.ErrProviderRequest) {
			t.Fatalf("expected ErrProviderRequest, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "quota exceeded") {
			t.Errorf("expected detail in error, got %q", got)
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := service.Get(context.Background(), models.Kind("bogus"), "x")
		if !errors.Is(err, shared.ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("APIKeyQueryParam", func(t *testing.T) {
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("key")
			w.Write([]byte(`{"string": "music"}`))
		}))
		t.Cleanup(server.Close)

		service := NewCatalogService(shared.ProviderConfig{BaseURL: server.URL, APIKey: "secret"})
		if _, err := service.Get(context.Background(), models.KindTag, "music"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotKey != "secret" {
			t.Errorf("expected api key query param, got %q", gotKey)
		}
	})
}

func TestCatalogServiceGetChannelItems(t *testing.T) {
	t.Run("DiscriminatorPopped", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/channels/UC1/items" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			w.Write([]byte(`[
				{"itemKind": "video", "videoId": "v1", "name": "First"},
				{"itemKind": "playlist", "playlistId": "PL1", "name": "Mix"},
				{"videoId": "v2", "name": "No discriminator"}
			]`))
		})

		items, err := service.GetChannelItems(context.Background(), "UC1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected every returned entry kept, got %d items", len(items))
		}
		if items[0].ItemKind != "video" || items[1].ItemKind != "playlist" {
			t.Errorf("unexpected item kinds: %+v", items)
		}
		if items[0].Attrs.Has("itemKind") {
			t.Error("expected discriminator removed from attributes")
		}
		// Entries without a discriminator pass through with an empty kind so
		// the engine can count and record them.
		if items[2].ItemKind != "" || items[2].Attrs.String("videoId") != "v2" {
			t.Errorf("unexpected discriminator-less entry: %+v", items[2])
		}
	})

	t.Run("RequestError", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		if _, err := service.GetChannelItems(context.Background(), "UC1"); !errors.Is(err, shared.ErrProviderRequest) {
			t.Errorf("expected ErrProviderRequest, got %v", err)
		}
	})
}

func TestNewCatalogServiceDefaults(t *testing.T) {
	service := NewCatalogService(shared.ProviderConfig{})
	if service.baseURL != defaultCatalogBaseURL {
		t.Errorf("expected default base URL, got %q", service.baseURL)
	}
	if service.Name() != "catalog" {
		t.Errorf("unexpected provider name %q", service.Name())
	}
}
