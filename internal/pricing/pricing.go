// Package pricing computes package totals from line items and the
// current catalog. All functions are pure: totals are derived on every
// call and never stored.
package pricing

import "github.com/openbarpro/openbar/internal/model"

// LineTotal resolves one line item against the catalog. A dangling
// product reference contributes 0. When the item carries a custom
// price it replaces the product's unit price for this line only.
// Quantities and prices are taken as-is: negative inputs propagate.
func LineTotal(item model.PackageItem, products []model.Product) float64 {
	product, ok := findProduct(products, item.ProductID)
	if !ok {
		return 0
	}

	price := product.UnitPrice
	if item.CustomPrice != nil {
		price = *item.CustomPrice
	}

	return price * float64(item.Quantity)
}

// PackageTotal sums LineTotal over the package's items. Summation
// follows item order; no floating-point compensation is performed.
func PackageTotal(pkg model.Package, products []model.Product) float64 {
	var total float64
	for _, item := range pkg.Items {
		total += LineTotal(item, products)
	}
	return total
}

// GrandTotal sums PackageTotal over all packages.
func GrandTotal(packages []model.Package, products []model.Product) float64 {
	var total float64
	for _, pkg := range packages {
		total += PackageTotal(pkg, products)
	}
	return total
}

func findProduct(products []model.Product, id string) (model.Product, bool) {
	// Last match wins so that id-keyed lookups agree with duplicate
	// tolerance on CSV import.
	found := model.Product{}
	ok := false
	for _, p := range products {
		if p.ID == id {
			found, ok = p, true
		}
	}
	return found, ok
}
