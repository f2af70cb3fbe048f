// Package xlsx exports the catalog and packages as a two-sheet
// workbook. Column sets match the CSV formats so the spreadsheet and
// CSV exports stay interchangeable.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/pricing"
)

const (
	productSheet = "Products"
	packageSheet = "Packages"
)

// Export writes the workbook to w. Read-only over both collections.
func Export(w io.Writer, packages []model.Package, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productSheet); err != nil {
		return fmt.Errorf("rename product sheet: %w", err)
	}
	if err := writeProductSheet(f, products); err != nil {
		return err
	}

	if _, err := f.NewSheet(packageSheet); err != nil {
		return fmt.Errorf("create package sheet: %w", err)
	}
	if err := writePackageSheet(f, packages, products); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeProductSheet(f *excelize.File, products []model.Product) error {
	header := []any{"id", "name", "unitPrice", "description", "category"}
	if err := f.SetSheetRow(productSheet, "A1", &header); err != nil {
		return fmt.Errorf("write product header: %w", err)
	}

	for i, p := range products {
		row := []any{p.ID, p.Name, p.UnitPrice, p.Description, p.Category}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(productSheet, cell, &row); err != nil {
			return fmt.Errorf("write product row %d: %w", i+1, err)
		}
	}

	return nil
}

func writePackageSheet(f *excelize.File, packages []model.Package, products []model.Product) error {
	header := []any{"id", "name", "description", "totalPrice", "itemCount", "createdAt"}
	if err := f.SetSheetRow(packageSheet, "A1", &header); err != nil {
		return fmt.Errorf("write package header: %w", err)
	}

	for i, pkg := range packages {
		row := []any{
			pkg.ID,
			pkg.Name,
			pkg.Description,
			pricing.PackageTotal(pkg, products),
			len(pkg.Items),
			pkg.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(packageSheet, cell, &row); err != nil {
			return fmt.Errorf("write package row %d: %w", i+1, err)
		}
	}

	return nil
}
