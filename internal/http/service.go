package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/openbarpro/openbar/internal/config"
	"github.com/openbarpro/openbar/internal/http/apierr"
	"github.com/openbarpro/openbar/internal/http/middleware"
	"github.com/openbarpro/openbar/internal/service"
)

// Service represents the HTTP service.
type Service struct {
	cfg    config.HTTP
	logger *slog.Logger

	catalogSvc service.CatalogService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	catalogSvc service.CatalogService,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     log.With(slog.String("service", "http")),
		catalogSvc: catalogSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		chimiddleware.RequestID,
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	products := newProductHandler(s, s.catalogSvc)
	packages := newPackageHandler(s, s.catalogSvc)
	exports := newExportHandler(s, s.catalogSvc)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.list)
			r.Post("/", products.create)
			r.Post("/import", products.importCSV)
			r.Put("/{id}", products.update)
			r.Delete("/{id}", products.delete)
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", packages.list)
			r.Post("/", packages.create)
			r.Put("/{id}", packages.update)
			r.Delete("/{id}", packages.delete)
		})

		r.Get("/summary", packages.summary)

		r.Route("/export", func(r chi.Router) {
			r.Get("/products.csv", exports.productsCSV)
			r.Get("/packages.csv", exports.packagesCSV)
			r.Get("/catalog.xlsx", exports.catalogXLSX)
			r.Get("/packages.pdf", exports.packagesPDF)
		})
	})
}

func (s *Service) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}

func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	s.respond(w, r, res.StatusCode, res)
}
