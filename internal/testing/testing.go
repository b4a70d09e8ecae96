// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/services"
)

// MockProvider is a test double for [services.Provider] backed by canned
// payloads keyed by kind and key.
type MockProvider struct {
	Items    map[string]models.Attrs           // "kind/key" -> payload; nil entry simulates a provider miss
	Listings map[string][]services.ItemPayload // channel key -> listing
	GetCalls []string                          // records every Get as "kind/key"
	Err      error                             // returned from every call when set
}

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Items:    map[string]models.Attrs{},
		Listings: map[string][]services.ItemPayload{},
	}
}

// Add registers a canned payload for a kind and key.
func (m *MockProvider) Add(kind models.Kind, key string, attrs models.Attrs) {
	m.Items[fmt.Sprintf("%s/%s", kind, key)] = attrs
}

func (m *MockProvider) Get(ctx context.Context, kind models.Kind, key string) (models.Attrs, error) {
	m.GetCalls = append(m.GetCalls, fmt.Sprintf("%s/%s", kind, key))
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items[fmt.Sprintf("%s/%s", kind, key)], nil
}

func (m *MockProvider) GetChannelItems(ctx context.Context, channelKey string) ([]services.ItemPayload, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Listings[channelKey], nil
}

func (m *MockProvider) Name() string { return "mock" }

var _ services.Provider = (*MockProvider)(nil)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
