package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/auth"
	"github.com/RaphMerc007/WeCook/internal/blob"
	"github.com/RaphMerc007/WeCook/internal/clients"
	"github.com/RaphMerc007/WeCook/internal/config"
	"github.com/RaphMerc007/WeCook/internal/meals"
	"github.com/RaphMerc007/WeCook/internal/reports"
	"github.com/RaphMerc007/WeCook/internal/selections"
	"github.com/RaphMerc007/WeCook/internal/storage"
	"github.com/RaphMerc007/WeCook/internal/uploads"
)

// Server wires the services onto an http.ServeMux behind the CORS, rate
// limit, auth, and request-logging middleware.
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	storage storage.Storage
	log     *zap.Logger

	authMiddleware *auth.Middleware
}

// New creates the server and registers all routes.
func New(cfg *config.Config, store storage.Storage, blobs blob.Store, log *zap.Logger) *Server {
	s := &Server{
		config:  cfg,
		mux:     http.NewServeMux(),
		storage: store,
		log:     log,
	}

	authService := auth.NewService(cfg)
	s.authMiddleware = auth.NewMiddleware(cfg, authService)

	selectionsService := selections.NewService(store, store, log)
	mealsService := meals.NewService(store, store, log)
	clientsService := clients.NewService(store, log)
	uploadsService := uploads.NewService(mealsService, blobs, log)
	reportGenerator := reports.NewGenerator(store, store, store)

	selectionsHandler := selections.NewHandler(selectionsService)
	mealsHandler := meals.NewHandler(mealsService)
	clientsHandler := clients.NewHandler(clientsService)
	uploadsHandler := uploads.NewHandler(uploadsService, cfg)
	reportsHandler := reports.NewHandler(reportGenerator)
	authHandler := auth.NewHandler(cfg, authService)

	s.mux.HandleFunc("GET /{$}", s.handleHealth)

	s.mux.HandleFunc("GET /api/selections", selectionsHandler.HandleGet)
	s.mux.HandleFunc("POST /api/selections", selectionsHandler.HandleReplace)
	s.mux.HandleFunc("POST /api/selections/quantity", selectionsHandler.HandleQuantityChange)
	s.mux.HandleFunc("GET /api/selections/client/{id}", selectionsHandler.HandleClientProjection)
	s.mux.HandleFunc("GET /api/selections/totals", selectionsHandler.HandleTotals)

	s.mux.HandleFunc("GET /api/meals", mealsHandler.HandleList)
	s.mux.HandleFunc("GET /api/meals/{id}", mealsHandler.HandleGet)
	s.mux.HandleFunc("POST /api/meals", mealsHandler.HandleImport)
	s.mux.HandleFunc("POST /api/meals/clear", mealsHandler.HandleClear)

	s.mux.HandleFunc("GET /api/clients", clientsHandler.HandleList)
	s.mux.HandleFunc("POST /api/clients", clientsHandler.HandleCreate)
	s.mux.HandleFunc("GET /api/clients/{id}", clientsHandler.HandleGet)
	s.mux.HandleFunc("PUT /api/clients/{id}", clientsHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /api/clients/{id}", clientsHandler.HandleDelete)

	s.mux.HandleFunc("POST /api/upload", uploadsHandler.HandleUpload)
	s.mux.HandleFunc("GET /api/reports/week", reportsHandler.HandleWeekReport)
	s.mux.HandleFunc("POST /api/auth/token", authHandler.HandleIssueToken)

	return s
}

// Handler returns the full middleware chain, outermost first: request
// logging, CORS, rate limit, auth.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.authMiddleware.RequireAuth(h)
	h = RateLimitMiddleware(s.config, h)
	h = CORSMiddleware(s.config, h)
	h = RequestLogMiddleware(s.log, h)
	return h
}

// Start listens on the configured port and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Info("server listening", zap.String("addr", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth handles GET /. It reports the storage connection state for
// the web app's status banner.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbState := "connected"
	if err := s.storage.Ping(ctx); err != nil {
		dbState = "disconnected"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "WeCook backend is running",
		"mongodb": dbState,
	})
}
