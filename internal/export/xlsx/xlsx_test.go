package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/openbarpro/openbar/internal/export/xlsx"
	"github.com/openbarpro/openbar/internal/model"
)

func TestExport_Workbook(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Name: "Draft Beer", UnitPrice: 10, Category: "drinks"},
	}
	packages := []model.Package{{
		ID:          "k1",
		Name:        "Happy Hour",
		Description: "two hours",
		Items:       []model.PackageItem{{ProductID: "p1", Quantity: 3}},
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, xlsx.Export(&buf, packages, products))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Products", "Packages"}, f.GetSheetList())

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "name", "unitPrice", "description", "category"}, rows[0])
	assert.Equal(t, "p1", rows[1][0])
	assert.Equal(t, "Draft Beer", rows[1][1])

	rows, err = f.GetRows("Packages")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "k1", rows[1][0])
	assert.Equal(t, "30", rows[1][3])
	assert.Equal(t, "1", rows[1][4])
}

func TestExport_EmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsx.Export(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Packages")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
