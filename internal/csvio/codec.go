// Package csvio serializes the catalog and package collections to CSV
// and parses uploaded product CSV files back into records.
//
// Import is deliberately forgiving at the field level: a malformed or
// missing field falls back to its zero default and never aborts the
// import. Only a structurally malformed file (bad quoting, uneven
// record lengths, missing header) rejects the upload as a whole.
package csvio

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/pricing"
)

// productRow keeps every field as text so that import can apply
// per-field defaulting instead of failing on unparsable values.
type productRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	UnitPrice   string `csv:"unitPrice"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// packageRow is the aggregate export shape: items are not individually
// exported, only their count and the computed total.
type packageRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	TotalPrice  string `csv:"totalPrice"`
	ItemCount   int    `csv:"itemCount"`
	CreatedAt   string `csv:"createdAt"`
}

// ExportProducts writes one row per product, all fields verbatim.
// Prices keep their natural decimal form rather than a fixed scale.
func ExportProducts(w io.Writer, products []model.Product) error {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ID:          p.ID,
			Name:        p.Name,
			UnitPrice:   strconv.FormatFloat(p.UnitPrice, 'f', -1, 64),
			Description: p.Description,
			Category:    p.Category,
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal product csv: %w", err)
	}

	return nil
}

// ExportPackages writes one aggregate row per package. The total is
// computed through the pricing engine and formatted to two decimals.
func ExportPackages(w io.Writer, packages []model.Package, products []model.Product) error {
	rows := make([]packageRow, 0, len(packages))
	for _, pkg := range packages {
		rows = append(rows, packageRow{
			ID:          pkg.ID,
			Name:        pkg.Name,
			Description: pkg.Description,
			TotalPrice:  fmt.Sprintf("%.2f", pricing.PackageTotal(pkg, products)),
			ItemCount:   len(pkg.Items),
			CreatedAt:   pkg.CreatedAt.Format(time.RFC3339),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal package csv: %w", err)
	}

	return nil
}

// ImportProducts parses a product CSV with a header row. Rows are not
// checked for id uniqueness against anything: duplicates stay in the
// returned sequence in file order.
func ImportProducts(r io.Reader) ([]model.Product, error) {
	var rows []productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse product csv: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		if id == "" {
			generated, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("generate product id: %w", err)
			}
			id = generated.String()
		}

		products = append(products, model.Product{
			ID:   id,
			Name: row.Name,
			// cast resolves unparsable prices to 0
			UnitPrice:   cast.ToFloat64(row.UnitPrice),
			Description: row.Description,
			Category:    row.Category,
		})
	}

	return products, nil
}
