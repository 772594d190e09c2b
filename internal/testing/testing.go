// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/mvribeiro/talpha/internal/models"
)

// MockProductAPI is a configurable test double satisfying services.ProductAPI.
// Unset hooks return zero values.
type MockProductAPI struct {
	GetAllFn func(ctx context.Context) ([]models.Product, error)
	GetFn    func(ctx context.Context, id string) (*models.Product, error)
	CreateFn func(ctx context.Context, input models.ProductInput) error
	UpdateFn func(ctx context.Context, id string, input models.ProductInput) error
	DeleteFn func(ctx context.Context, id string) error

	// Calls records the order of invoked operations, e.g. "GetAllProducts".
	Calls []string
}

func (m *MockProductAPI) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	m.Calls = append(m.Calls, "GetAllProducts")
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return nil, nil
}

func (m *MockProductAPI) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.Calls = append(m.Calls, "GetProduct:"+id)
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &models.Product{ID: id}, nil
}

func (m *MockProductAPI) CreateProduct(ctx context.Context, input models.ProductInput) error {
	m.Calls = append(m.Calls, "CreateProduct")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input)
	}
	return nil
}

func (m *MockProductAPI) UpdateProduct(ctx context.Context, id string, input models.ProductInput) error {
	m.Calls = append(m.Calls, "UpdateProduct:"+id)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, input)
	}
	return nil
}

func (m *MockProductAPI) DeleteProduct(ctx context.Context, id string) error {
	m.Calls = append(m.Calls, "DeleteProduct:"+id)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// MemorySession is an in-memory session store for tests.
type MemorySession struct {
	TokenValue string
	Sidebar    bool
}

func (s *MemorySession) Token() (string, bool) {
	return s.TokenValue, s.TokenValue != ""
}

func (s *MemorySession) SetToken(value string) error {
	s.TokenValue = value
	return nil
}

func (s *MemorySession) Clear() error {
	s.TokenValue = ""
	return nil
}

func (s *MemorySession) SidebarExpanded() bool { return s.Sidebar }

func (s *MemorySession) SetSidebarExpanded(expanded bool) error {
	s.Sidebar = expanded
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
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
