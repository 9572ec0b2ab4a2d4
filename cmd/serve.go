package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/offerstack/compare-cli/internal/catalog"
	"github.com/offerstack/compare-cli/internal/compare"
	"github.com/offerstack/compare-cli/internal/model"
	"github.com/offerstack/compare-cli/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the comparison HTTP API",
	Long:  "Loads the configured catalogs into memory and serves comparison, catalog, and run-history endpoints until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// server holds the API's shared state. Services are swapped wholesale on
// reload; in-flight requests keep the snapshot they resolved.
type server struct {
	mu       sync.RWMutex
	services map[model.Category]*compare.Service
	store    store.Store
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	srv := &server{store: st}
	if err := srv.reload(ctx); err != nil {
		return err
	}

	timeout := time.Duration(cfg.Server.TimeoutSecs) * time.Second
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", srv.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", srv.handleCatalog)
		r.Post("/catalog/reload", srv.handleReload)
		r.Post("/compare", srv.handleCompare)
		r.Get("/runs", srv.handleRuns)
		r.Get("/runs/{runID}", srv.handleRun)
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("serve: listening", zap.Int("port", cfg.Server.Port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// reload rebuilds every category's service from the configured catalog
// path and records the loads.
func (s *server) reload(ctx context.Context) error {
	files, err := loadCatalogFiles(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	canon := catalog.NewCanonicalizer()
	services := make(map[model.Category]*compare.Service, len(files))
	for _, f := range files {
		pool := canon.BuildPool(f)
		services[f.Category] = compare.NewService(pool, serviceOptions(f))

		_, hasChoice := pool.EditorsChoice()
		if _, err := s.store.RecordCatalogLoad(ctx, f.Category, pool.Len(), hasChoice); err != nil {
			zap.L().Warn("serve: recording catalog load failed",
				zap.String("category", string(f.Category)),
				zap.Error(err),
			)
		}
		zap.L().Info("serve: catalog loaded",
			zap.String("category", string(f.Category)),
			zap.Int("records", pool.Len()),
			zap.Bool("editors_choice", hasChoice),
		)
	}

	s.mu.Lock()
	s.services = services
	s.mu.Unlock()
	return nil
}

// service resolves the category's service, defaulting when only one
// catalog is loaded.
func (s *server) service(category string) (*compare.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" {
		if len(s.services) == 1 {
			for _, svc := range s.services {
				return svc, nil
			}
		}
		return nil, fmt.Errorf("catalog has %d categories, category is required", len(s.services))
	}
	svc, ok := s.services[model.Category(category)]
	if !ok {
		return nil, fmt.Errorf("no catalog for category %q", category)
	}
	return svc, nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type catalogSummary struct {
	Category      model.Category `json:"category"`
	Records       int            `json:"records"`
	EditorsChoice bool           `json:"editors_choice"`
	Products      []model.Column `json:"products"`
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summaries := make([]catalogSummary, 0, len(s.services))
	for _, svc := range s.services {
		pool := svc.Pool()
		_, hasChoice := pool.EditorsChoice()
		summary := catalogSummary{
			Category:      pool.Category(),
			Records:       pool.Len(),
			EditorsChoice: hasChoice,
		}
		for _, rec := range pool.Records() {
			summary.Products = append(summary.Products, model.Column{ID: rec.ID, Name: rec.Name})
		}
		summaries = append(summaries, summary)
	}
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, summaries)
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.handleCatalog(w, r)
}

type compareRequest struct {
	Category string   `json:"category"`
	IDs      []string `json:"ids"`
	Save     bool     `json:"save"`
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	svc, err := s.service(req.Category)
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}

	result, err := svc.Compare(r.Context(), req.IDs)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if req.Save {
		if _, err := s.store.SaveRun(r.Context(), svc.Pool().Category(), req.IDs, result); err != nil {
			zap.L().Warn("serve: saving run failed", zap.Error(err))
		}
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *server) handleRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Category: model.Category(r.URL.Query().Get("category")),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []model.CompareRun{}
	}
	respondJSON(w, http.StatusOK, runs)
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("serve: encoding response failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
