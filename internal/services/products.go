package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mvribeiro/talpha/internal/models"
)

// ProductAPI is the product-operations surface of the client. The TUI and the
// export engine depend on this interface rather than on [Client] so tests can
// substitute a double.
type ProductAPI interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) error
	UpdateProduct(ctx context.Context, id string, input models.ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
}

var _ ProductAPI = (*Client)(nil)

// GetAllProducts retrieves the full product collection.
func (c *Client) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var data struct {
		Products []models.Product `json:"products"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/products/get-all-products", nil, &data); err != nil {
		return nil, err
	}

	return data.Products, nil
}

// GetProduct retrieves a single product by its server-assigned id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var data struct {
		Product models.Product `json:"product"`
	}

	path := "/api/products/get-one-product/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	return &data.Product, nil
}

// CreateProduct submits a new product. The id is assigned remotely; callers
// re-fetch the collection instead of guessing at the created record.
func (c *Client) CreateProduct(ctx context.Context, input models.ProductInput) error {
	return c.do(ctx, http.MethodPost, "/api/products/create-product", input, nil)
}

// UpdateProduct patches the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input models.ProductInput) error {
	path := "/api/products/update-product/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPatch, path, input, nil)
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := "/api/products/delete-product/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
