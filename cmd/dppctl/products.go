// cmd/dppctl/products.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/services"
	"github.com/norruva/dpp-backend/internal/utils"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List every product with its completeness score",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func runProducts(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, records, err := openRecords(ctx)
	if err != nil {
		return err
	}
	defer records.Close()

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return err
	}
	productService := services.NewProductService(records, services.NewSupplierService(records), ai.NewSimulated(), storageService)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSCORE")

	params := utils.PaginationParams{Page: 1, Limit: 100, Sort: "productName", Order: "asc"}
	for {
		page, total, err := productService.ListProducts(ctx, params)
		if err != nil {
			return err
		}
		for _, p := range page {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\n", p.ProductID, p.ProductName, p.Category, p.Completeness)
		}
		if int64(params.Page*params.Limit) >= total {
			break
		}
		params.Page++
	}
	return tw.Flush()
}
