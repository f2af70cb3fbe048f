package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/openbarpro/openbar/internal/csvio"
	"github.com/openbarpro/openbar/internal/export/pdf"
	"github.com/openbarpro/openbar/internal/export/xlsx"
	"github.com/openbarpro/openbar/internal/service"
)

type exportHandler struct {
	svc        *Service
	catalogSvc service.CatalogService
}

func newExportHandler(svc *Service, catalogSvc service.CatalogService) *exportHandler {
	return &exportHandler{svc: svc, catalogSvc: catalogSvc}
}

// Every export renders into a buffer first so that a failed render
// never leaves a partial download behind.
func (h *exportHandler) send(w http.ResponseWriter, r *http.Request, buf *bytes.Buffer, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.svc.logger.WarnContext(r.Context(), "error writing export", slog.Any("error", err))
	}
}

func (h *exportHandler) productsCSV(w http.ResponseWriter, r *http.Request) {
	products, _ := h.catalogSvc.Snapshot()

	var buf bytes.Buffer
	if err := csvio.ExportProducts(&buf, products); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.send(w, r, &buf, "text/csv; charset=utf-8", "products.csv")
}

func (h *exportHandler) packagesCSV(w http.ResponseWriter, r *http.Request) {
	products, packages := h.catalogSvc.Snapshot()

	var buf bytes.Buffer
	if err := csvio.ExportPackages(&buf, packages, products); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.send(w, r, &buf, "text/csv; charset=utf-8", "packages.csv")
}

func (h *exportHandler) catalogXLSX(w http.ResponseWriter, r *http.Request) {
	products, packages := h.catalogSvc.Snapshot()

	var buf bytes.Buffer
	if err := xlsx.Export(&buf, packages, products); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.send(w, r, &buf,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"openbar-catalog.xlsx")
}

func (h *exportHandler) packagesPDF(w http.ResponseWriter, r *http.Request) {
	products, packages := h.catalogSvc.Snapshot()

	var buf bytes.Buffer
	if err := pdf.Export(&buf, packages, products); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.send(w, r, &buf, "application/pdf", "openbar-packages.pdf")
}
