package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mvribeiro/talpha/internal/models"
)

var _ list.Item = productItem{}

// productItem wraps [models.Product] to implement [list.Item].
type productItem struct {
	product models.Product
}

func (i productItem) FilterValue() string { return i.product.Name }
func (i productItem) Title() string {
	return fmt.Sprintf("%s · $ %.2f", i.product.Name, i.product.Price)
}
func (i productItem) Description() string {
	desc := fmt.Sprintf("id %s · stock %d", i.product.ID, i.product.Stock)
	if i.product.Description != "" {
		desc = fmt.Sprintf("%s · %s", desc, i.product.Description)
	}
	return desc
}

// newProductList builds the list widget for the current collection.
func newProductList(products []models.Product, width, height int) list.Model {
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Products"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetSize(width, height)
	return l
}
