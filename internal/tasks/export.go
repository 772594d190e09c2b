package tasks

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mvribeiro/talpha/internal/formatter"
	"github.com/mvribeiro/talpha/internal/models"
	"github.com/mvribeiro/talpha/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for a product export.
type ExportOpts struct {
	Format     string  // Export format: csv, markdown, txt
	OutputPath string  // Output file (default: products_export_{epoch}.{ext})
	Detailed   bool    // Re-fetch each product individually before writing
	NumWorkers int     // Concurrent detail fetchers (default: 4)
	RateLimit  float64 // Requests per second for detail fetches (default: 5)
}

type detailResult struct {
	index   int
	product models.Product
	err     error
}

// Run exports the product collection to a file.
//
// The collection is always fetched fresh. With Detailed set, every product is
// additionally re-fetched by id through a rate-limited worker pool; a failed
// detail fetch is recorded and the collection copy of that record is exported
// instead, so partial failures never abort the export.
func (e *ExportEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	format, ext, err := resolveFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.OutputPath == "" {
		opts.OutputPath = fmt.Sprintf("products_export_%d.%s", time.Now().Unix(), ext)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchingCollectionUpdate())

	products, err := e.api.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := &ExportResult{
		TotalProducts: len(products),
		OutputPath:    opts.OutputPath,
	}

	if opts.Detailed {
		result.Failures = e.fetchDetails(ctx, prog, products, opts)
	}

	e.sendProgress(prog, writingOutputUpdate(opts.OutputPath))

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(products)
	case "markdown":
		data, err = formatter.ExportToMarkdown("Products", products)
	case "txt":
		data = formatter.ExportToText(products)
	}
	if err != nil {
		return result, fmt.Errorf("failed to format export: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, data, 0644); err != nil {
		return result, fmt.Errorf("failed to write export file: %w", err)
	}

	return result, nil
}

// fetchDetails re-fetches products by id through a worker pool, replacing
// collection entries in place. The limiter spaces requests so the export
// doesn't hammer the API.
func (e *ExportEngine) fetchDetails(ctx context.Context, prog chan<- ProgressUpdate, products []models.Product, opts ExportOpts) []FetchFailure {
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int, len(products))
	results := make(chan detailResult, len(products))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- detailResult{index: idx, err: err}
					continue
				}

				p, err := e.api.GetProduct(ctx, products[idx].ID)
				if err != nil {
					results <- detailResult{index: idx, err: err}
					continue
				}
				results <- detailResult{index: idx, product: *p}
			}
		}()
	}

	for i := range products {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var failures []FetchFailure
	completed := 0
	for res := range results {
		completed++
		if res.err != nil {
			failures = append(failures, FetchFailure{ProductID: products[res.index].ID, Err: res.err})
		} else {
			products[res.index] = res.product
		}
		e.sendProgress(prog, fetchingDetailUpdate(completed, len(products), products[res.index].Name))
	}

	return failures
}

// resolveFormat normalizes the format flag and picks the file extension.
func resolveFormat(format string) (string, string, error) {
	switch format {
	case "", "csv":
		return "csv", "csv", nil
	case "markdown", "md":
		return "markdown", "md", nil
	case "txt", "text":
		return "txt", "txt", nil
	default:
		return "", "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}
}
