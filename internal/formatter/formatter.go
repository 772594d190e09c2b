// package formatter renders product collections to exchange formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/mvribeiro/talpha/internal/models"
)

// ExportToCSV converts products to CSV with columns: ID, Name, Price, Stock, Description
func ExportToCSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Price", "Stock", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Stock),
			p.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts products to a Markdown table under a title heading.
func ExportToMarkdown(title string, products []models.Product) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("%d products\n\n", len(products)))
	buf.WriteString("| ID | Name | Price | Stock | Description |\n")
	buf.WriteString("|---|---|---|---|---|\n")

	for _, p := range products {
		buf.WriteString(fmt.Sprintf("| %s | %s | %.2f | %d | %s |\n",
			p.ID, p.Name, p.Price, p.Stock, p.Description))
	}

	return buf.Bytes(), nil
}

// ExportToText converts products to aligned plain text for terminal output.
func ExportToText(products []models.Product) []byte {
	var buf bytes.Buffer

	for _, p := range products {
		buf.WriteString(fmt.Sprintf("%s\n", p.Name))
		buf.WriteString(fmt.Sprintf("  id: %s\n", p.ID))
		buf.WriteString(fmt.Sprintf("  price: %.2f\n", p.Price))
		buf.WriteString(fmt.Sprintf("  stock: %d\n", p.Stock))
		if p.Description != "" {
			buf.WriteString(fmt.Sprintf("  description: %s\n", p.Description))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
