package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openbarpro/openbar/internal/apperr"
	"github.com/openbarpro/openbar/internal/service"
)

type productPayload struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (p productPayload) params() service.ProductParams {
	return service.ProductParams{
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		Description: p.Description,
		Category:    p.Category,
	}
}

type importResult struct {
	Imported int `json:"imported"`
}

type productHandler struct {
	svc        *Service
	catalogSvc service.CatalogService
}

func newProductHandler(svc *Service, catalogSvc service.CatalogService) *productHandler {
	return &productHandler{svc: svc, catalogSvc: catalogSvc}
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	h.svc.respond(w, r, http.StatusOK, h.catalogSvc.Products())
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.svc.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	product, err := h.catalogSvc.CreateProduct(payload.params())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusCreated, product)
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.svc.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	product, err := h.catalogSvc.UpdateProduct(chi.URLParam(r, "id"), payload.params())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusOK, product)
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusNoContent, nil)
}

// importCSV accepts one CSV file per invocation, either as a multipart
// "file" part or as a raw request body.
func (h *productHandler) importCSV(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.svc.respondError(w, r, apperr.ImportFailedErr.WrapParent(err))
			return
		}
		defer file.Close()
		body = file
	}

	imported, err := h.catalogSvc.ImportProducts(body)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusOK, importResult{Imported: len(imported)})
}
