// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the session database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account and session operations",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and persist the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tax-number",
						Aliases:  []string{"t"},
						Usage:    "Account tax number (CPF or CNPJ)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Account holder name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "tax-number",
						Aliases:  []string{"t"},
						Usage:    "Account tax number (CPF or CNPJ)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "mail",
						Usage:    "E-mail address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "phone",
						Usage:    "Phone number",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show whether a session token is stored",
				Action: r.AuthStatus,
			},
		},
	}
}

// productsCommand handles product CRUD and export operations
func productsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "products",
		Aliases: []string{"p"},
		Usage:   "Product operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all products",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ProductsList,
			},
			{
				Name:  "get",
				Usage: "Fetch a single product by id",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "id",
						UsageText: "Product id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ProductsGet,
			},
			{
				Name:  "create",
				Usage: "Create a product",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Product name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "price",
						Usage:    "Unit price, e.g. 19.90",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Aliases:  []string{"d"},
						Usage:    "Product description",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "stock",
						Usage:    "Units in stock",
						Required: true,
					},
				},
				Action: r.ProductsCreate,
			},
			{
				Name:  "update",
				Usage: "Update a product",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "id",
						UsageText: "Product id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Product name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "price",
						Usage:    "Unit price, e.g. 19.90",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Aliases:  []string{"d"},
						Usage:    "Product description",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "stock",
						Usage:    "Units in stock",
						Required: true,
					},
				},
				Action: r.ProductsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a product",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "id",
						UsageText: "Product id",
					},
				},
				Action: r.ProductsDelete,
			},
			{
				Name:  "export",
				Usage: "Export the product collection to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.BoolFlag{
						Name:  "detailed",
						Usage: "Re-fetch each product individually before writing",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent detail fetchers",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Detail fetch requests per second",
					},
				},
				Action: r.ProductsExport,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive console",
		Action: r.TUI,
	}
}
