package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvribeiro/talpha/internal/models"
	tu "github.com/mvribeiro/talpha/internal/testing"
)

func TestProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("GetAllProducts decodes the collection", func(t *testing.T) {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.Write([]byte(envelopeBody(true, "ok", map[string]any{
				"products": []models.Product{
					{ID: "p1", Name: "Widget", Price: 9.9, Stock: 3},
					{ID: "p2", Name: "Gadget", Price: 24.5, Stock: 0},
				},
			})))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		products, err := client.GetAllProducts(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet || gotPath != "/api/products/get-all-products" {
			t.Errorf("unexpected request %s %s", gotMethod, gotPath)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
		if products[0].ID != "p1" || products[1].Name != "Gadget" {
			t.Errorf("unexpected products: %+v", products)
		}
	})

	t.Run("GetProduct decodes a single record", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(envelopeBody(true, "ok", map[string]any{
				"product": models.Product{ID: "p1", Name: "Widget", Price: 9.9, Stock: 3},
			})))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		product, err := client.GetProduct(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPath != "/api/products/get-one-product/p1" {
			t.Errorf("unexpected path %q", gotPath)
		}
		if product.Name != "Widget" {
			t.Errorf("unexpected product: %+v", product)
		}
	})

	t.Run("CreateProduct posts the input without an id", func(t *testing.T) {
		var gotMethod string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(envelopeBody(true, "created", nil)))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		input := models.ProductInput{Name: "Widget", Price: 9.9, Description: "a widget", Stock: 3}
		if err := client.CreateProduct(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPost {
			t.Errorf("expected POST, got %s", gotMethod)
		}
		if _, ok := gotBody["id"]; ok {
			t.Error("create payload must not carry an id")
		}
		if gotBody["name"] != "Widget" || gotBody["stock"] != float64(3) {
			t.Errorf("unexpected body: %v", gotBody)
		}
	})

	t.Run("UpdateProduct patches by id", func(t *testing.T) {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.Write([]byte(envelopeBody(true, "updated", nil)))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		if err := client.UpdateProduct(ctx, "p1", models.ProductInput{Name: "Widget"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPatch || gotPath != "/api/products/update-product/p1" {
			t.Errorf("unexpected request %s %s", gotMethod, gotPath)
		}
	})

	t.Run("DeleteProduct issues a DELETE by id", func(t *testing.T) {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.Write([]byte(envelopeBody(true, "deleted", nil)))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		if err := client.DeleteProduct(ctx, "p1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodDelete || gotPath != "/api/products/delete-product/p1" {
			t.Errorf("unexpected request %s %s", gotMethod, gotPath)
		}
	})

	t.Run("ids are path-escaped", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			w.Write([]byte(envelopeBody(true, "ok", map[string]any{"product": models.Product{}})))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), &tu.MemorySession{TokenValue: "tok"})

		client.GetProduct(ctx, "a b/c")
		if gotPath != "/api/products/get-one-product/a%20b%2Fc" {
			t.Errorf("unexpected path %q", gotPath)
		}
	})
}
