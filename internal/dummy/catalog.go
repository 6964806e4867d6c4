package dummy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry the commerce simulator can match
// order lines against.
type Product struct {
	MaterialID string          `json:"material_id"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
}

// Catalog resolves barcodes to products.
type Catalog struct {
	byBarcode map[string]Product
}

// LoadCatalog reads a JSON product list from disk and indexes it by
// barcode. Entries without a barcode are skipped.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return NewCatalog(products), nil
}

// NewCatalog builds a catalog from a product list.
func NewCatalog(products []Product) *Catalog {
	byBarcode := make(map[string]Product, len(products))
	for _, p := range products {
		barcode := strings.TrimSpace(p.Barcode)
		if barcode == "" {
			continue
		}
		p.Barcode = barcode
		byBarcode[barcode] = p
	}
	return &Catalog{byBarcode: byBarcode}
}

// Lookup returns the product for a barcode.
func (c *Catalog) Lookup(barcode string) (Product, bool) {
	p, ok := c.byBarcode[strings.TrimSpace(barcode)]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.byBarcode)
}
