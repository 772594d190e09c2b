package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvribeiro/talpha/internal/formatter"
	"github.com/mvribeiro/talpha/internal/forms"
	"github.com/mvribeiro/talpha/internal/shared"
	"github.com/mvribeiro/talpha/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ProductsList fetches and prints the full product collection.
func (r *Runner) ProductsList(ctx context.Context, cmd *cli.Command) error {
	products, err := r.api.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(products, cmd.Bool("pretty"))
	}

	if len(products) == 0 {
		r.writePlain("No products registered\n")
		return nil
	}

	r.writePlain("%s", formatter.ExportToText(products))
	r.writePlainln("%d product(s)", len(products))
	return nil
}

// ProductsGet fetches and prints a single product.
func (r *Runner) ProductsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: product id", shared.ErrMissingArgument)
	}

	product, err := r.api.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(product, cmd.Bool("pretty"))
	}

	r.writePlain("Id:          %s\n", product.ID)
	r.writePlain("Name:        %s\n", product.Name)
	r.writePlain("Price:       $ %.2f\n", product.Price)
	r.writePlain("Stock:       %d\n", product.Stock)
	r.writePlain("Description: %s\n", product.Description)
	return nil
}

// ProductsCreate validates the flags as a product form and submits it.
func (r *Runner) ProductsCreate(ctx context.Context, cmd *cli.Command) error {
	form := productForm(cmd)
	if errs := form.Validate(); !errs.Empty() {
		return fmt.Errorf("%w: %s", shared.ErrValidation, fieldErrLine(errs))
	}

	if err := r.api.CreateProduct(ctx, form.Input()); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Info("product created", "name", form.Name)
	r.writePlain("✓ Product created\n")
	return nil
}

// ProductsUpdate validates the flags as a product form and patches the
// product with the given id.
func (r *Runner) ProductsUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: product id", shared.ErrMissingArgument)
	}

	form := productForm(cmd)
	if errs := form.Validate(); !errs.Empty() {
		return fmt.Errorf("%w: %s", shared.ErrValidation, fieldErrLine(errs))
	}

	if err := r.api.UpdateProduct(ctx, id, form.Input()); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Info("product updated", "id", id)
	r.writePlain("✓ Product updated\n")
	return nil
}

// ProductsDelete removes the product with the given id.
func (r *Runner) ProductsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: product id", shared.ErrMissingArgument)
	}

	if err := r.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Info("product deleted", "id", id)
	r.writePlain("✓ Product deleted\n")
	return nil
}

// ProductsExport snapshots the collection to a file via the export engine.
func (r *Runner) ProductsExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputPath: cmd.String("output"),
		Detailed:   cmd.Bool("detailed"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.Workers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RateLimit
	}

	prog := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := r.engine.Run(ctx, prog, opts)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d product(s) to %s\n", result.TotalProducts, result.OutputPath)
	for _, failure := range result.Failures {
		r.writePlain("  detail fetch failed for %s: %v\n", failure.ProductID, failure.Err)
	}
	return nil
}

func productForm(cmd *cli.Command) forms.Product {
	return forms.Product{
		Name:        cmd.String("name"),
		Price:       cmd.String("price"),
		Description: cmd.String("description"),
		Stock:       cmd.String("stock"),
	}
}
