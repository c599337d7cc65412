// cmd/dppctl/score.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/norruva/dpp-backend/internal/completeness"
	"github.com/norruva/dpp-backend/internal/models"
)

var scoreFlags struct {
	output string
}

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Print the completeness of a product JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreFlags.output, "output", "o", "json", "Output format: json or yaml")
}

func runScore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read product: %w", err)
	}

	product, err := decodeProduct(data)
	if err != nil {
		return fmt.Errorf("parse product: %w", err)
	}

	return writeResult(cmd.OutOrStdout(), completeness.Calculate(product), scoreFlags.output)
}

// productFile reads specifications separately so a malformed sheet degrades
// to an empty one instead of failing the whole file.
type productFile struct {
	models.Product
	Specifications json.RawMessage `json:"specifications"`
}

func decodeProduct(data []byte) (*models.Product, error) {
	var file productFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	product := file.Product
	specs, err := models.DecodeSpecifications(file.Specifications)
	if err != nil {
		logrus.WithError(err).WithField("product_id", product.ProductID).Warn("Specifications are malformed, using empty specifications")
		specs = models.Specifications{}
	}
	product.Specifications = specs
	return &product, nil
}

func writeResult(w io.Writer, result completeness.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
