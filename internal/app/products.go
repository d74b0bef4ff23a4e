package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/samber/lo"

	"eol-check/internal/core"
)

// Products lists catalog entries with their currently supported releases.
// With no names requested every product is listed.
func (s Service) Products(ctx context.Context, req ProductsRequest) (ProductsResult, error) {
	source := s.eolSource(ctx, req.Source)
	data, err := source.Load(ctx)
	if err != nil {
		return ProductsResult{}, err
	}
	catalog := core.NewCatalog(data)
	today := s.now().UTC()

	names := lo.Uniq(lo.Filter(lo.Map(req.Products, func(name string, _ int) string {
		return strings.TrimSpace(name)
	}), func(name string, _ int) bool {
		return name != ""
	}))
	if len(names) == 0 {
		names = catalog.Products()
	}

	result := ProductsResult{Source: source.Describe()}
	for _, name := range names {
		product, ok := catalog.Lookup(name)
		if !ok {
			return ProductsResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("product %q not found in EOL data", name))
		}
		result.Products = append(result.Products, ProductSummary{
			Name:      name,
			Supported: catalog.SupportedVersions(name, today),
			Releases:  len(product.Releases),
		})
	}
	return result, nil
}
