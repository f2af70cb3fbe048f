package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openbarpro/openbar/internal/apperr"
	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/pricing"
	"github.com/openbarpro/openbar/internal/service"
)

type packageItemPayload struct {
	ProductID   string   `json:"productId"`
	Quantity    int      `json:"quantity"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
}

type packagePayload struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Items       []packageItemPayload `json:"items"`
}

func (p packagePayload) params() service.PackageParams {
	items := make([]service.PackageItemParams, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, service.PackageItemParams{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			CustomPrice: item.CustomPrice,
		})
	}

	return service.PackageParams{
		Name:        p.Name,
		Description: p.Description,
		Items:       items,
	}
}

// packageResponse carries the derived total next to the stored fields.
type packageResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Items       []model.PackageItem `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	TotalPrice  float64             `json:"totalPrice"`
}

func toPackageResponse(pkg model.Package, products []model.Product) packageResponse {
	return packageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Items:       pkg.Items,
		CreatedAt:   pkg.CreatedAt,
		TotalPrice:  pricing.PackageTotal(pkg, products),
	}
}

type packageHandler struct {
	svc        *Service
	catalogSvc service.CatalogService
}

func newPackageHandler(svc *Service, catalogSvc service.CatalogService) *packageHandler {
	return &packageHandler{svc: svc, catalogSvc: catalogSvc}
}

func (h *packageHandler) list(w http.ResponseWriter, r *http.Request) {
	products, packages := h.catalogSvc.Snapshot()

	items := make([]packageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, toPackageResponse(pkg, products))
	}

	h.svc.respond(w, r, http.StatusOK, items)
}

func (h *packageHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload packagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.svc.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	pkg, err := h.catalogSvc.CreatePackage(payload.params())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	products := h.catalogSvc.Products()
	h.svc.respond(w, r, http.StatusCreated, toPackageResponse(pkg, products))
}

func (h *packageHandler) update(w http.ResponseWriter, r *http.Request) {
	var payload packagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.svc.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	pkg, err := h.catalogSvc.UpdatePackage(chi.URLParam(r, "id"), payload.params())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	products := h.catalogSvc.Products()
	h.svc.respond(w, r, http.StatusOK, toPackageResponse(pkg, products))
}

func (h *packageHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.DeletePackage(chi.URLParam(r, "id")); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respond(w, r, http.StatusNoContent, nil)
}

func (h *packageHandler) summary(w http.ResponseWriter, r *http.Request) {
	h.svc.respond(w, r, http.StatusOK, h.catalogSvc.Summary())
}
