package models

import "fmt"

// Product represents a product record as served by the remote API.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

// Validate checks the invariants the remote API guarantees for a fetched
// product. A violation indicates a malformed response, not user error.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product is missing an id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %s has an empty name", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s has a negative price", p.ID)
	}
	if p.Stock < 0 {
		return fmt.Errorf("product %s has negative stock", p.ID)
	}
	return nil
}

// ProductInput is the payload for create and update operations. The id is
// never part of the body; updates address the product through the URL path.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Name      string `json:"name"`
	TaxNumber string `json:"taxNumber"`
	Mail      string `json:"mail"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}
