// Package pdf renders the package collection into a printable tabular
// document: per package a heading, description and line-item table,
// then a trailing grand total. The exporter only reads the collections.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/pricing"
)

const (
	marginLeft = 20.0
	marginTop  = 20.0
	// a new page begins before a package heading written past this line
	headingBreakY = 250.0
)

var columnWidths = [4]float64{80, 25, 30, 35}

// Export writes the document for the given packages to w. Line items
// whose product reference dangles are excluded from the table; their
// lines contribute nothing to the printed totals either, so the table
// and the totals always agree.
func Export(w io.Writer, packages []model.Package, products []model.Product) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginLeft, marginTop, marginLeft)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 10, "Service Packages")
	doc.Ln(12)
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, "Generated on: "+time.Now().Format("2006-01-02"))
	doc.Ln(14)

	byID := indexProducts(products)

	for i, pkg := range packages {
		if doc.GetY() > headingBreakY {
			doc.AddPage()
		}

		doc.SetFont("Helvetica", "B", 16)
		doc.Cell(0, 9, fmt.Sprintf("%d. %s", i+1, pkg.Name))
		doc.Ln(10)

		doc.SetFont("Helvetica", "", 10)
		doc.Cell(0, 6, "Description: "+pkg.Description)
		doc.Ln(8)

		writeItemTable(doc, pkg.Items, byID)

		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(0, 8, fmt.Sprintf("Package Total: $%.2f", pricing.PackageTotal(pkg, products)))
		doc.Ln(14)
	}

	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 9, fmt.Sprintf("Grand Total: $%.2f", pricing.GrandTotal(packages, products)))

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	return nil
}

// writeItemTable renders the resolved line items. Row output relies on
// the document's auto page break, so a long table may span pages.
func writeItemTable(doc *gofpdf.Fpdf, items []model.PackageItem, byID map[string]model.Product) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(59, 130, 246)
	doc.SetTextColor(255, 255, 255)
	headers := [4]string{"Product", "Quantity", "Unit Price", "Subtotal"}
	for i, h := range headers {
		doc.CellFormat(columnWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}

		price := product.UnitPrice
		if item.CustomPrice != nil {
			price = *item.CustomPrice
		}
		subtotal := price * float64(item.Quantity)

		doc.CellFormat(columnWidths[0], 7, product.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(columnWidths[1], 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(columnWidths[2], 7, fmt.Sprintf("$%.2f", price), "1", 0, "R", false, 0, "")
		doc.CellFormat(columnWidths[3], 7, fmt.Sprintf("$%.2f", subtotal), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	doc.Ln(4)
}

func indexProducts(products []model.Product) map[string]model.Product {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}
