package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eol-check/internal/app"
)

type productsOptions struct {
	Source   sourceOptions
	Products []string
}

func newProductsCommand() *cobra.Command {
	opts := productsOptions{}
	cmd := &cobra.Command{
		Use:   "products [name...]",
		Short: "List products in the EOL data with their supported releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Products = args
			return runProducts(cmd.Context(), cmd, opts)
		},
	}
	addSourceFlags(cmd, &opts.Source)
	return cmd
}

func runProducts(ctx context.Context, cmd *cobra.Command, opts productsOptions) error {
	service := newAppService()
	result, err := service.Products(ctx, app.ProductsRequest{
		Source:   resolveSourceRequest(cmd, opts.Source),
		Products: opts.Products,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, product := range result.Products {
		supported := "none"
		if len(product.Supported) > 0 {
			supported = strings.Join(product.Supported, ", ")
		}
		fmt.Fprintf(out, "%-30s %s\n", product.Name, supported)
	}
	return nil
}
