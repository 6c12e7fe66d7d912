package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/matchsight/matchsight/internal/pkg/config"
	"github.com/matchsight/matchsight/internal/pkg/metrics"
	"github.com/matchsight/matchsight/internal/pkg/predictor"
	"github.com/matchsight/matchsight/internal/pkg/storage"
)

// Server exposes the session core and its collaborators over HTTP for the
// dashboard frontend.
type Server struct {
	cfg     *config.Config
	session *Session
	model   *predictor.Model
	storage storage.MatchStorage // nil when no database is configured
	client  *MatchesClient       // nil when no data source is configured
	hub     *Hub
	metrics *metrics.DashboardMetrics

	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	session *Session,
	model *predictor.Model,
	matchStorage storage.MatchStorage,
	client *MatchesClient,
	hub *Hub,
	m *metrics.DashboardMetrics,
) *Server {
	return &Server{
		cfg:     cfg,
		session: session,
		model:   model,
		storage: matchStorage,
		client:  client,
		hub:     hub,
		metrics: m,
	}
}

// Start blocks serving HTTP until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/predictions/generate", s.handleGeneratePrediction).Methods("POST")
	api.HandleFunc("/predictions", s.handleSavePrediction).Methods("POST")
	api.HandleFunc("/predictions", s.handleGetPredictions).Methods("GET")
	api.HandleFunc("/value-bets", s.handleSaveValueBet).Methods("POST")
	api.HandleFunc("/value-bets", s.handleUpdateValueBet).Methods("PUT")
	api.HandleFunc("/value-bets", s.handleGetValueBets).Methods("GET")
	api.HandleFunc("/active-prediction", s.handleActivePrediction).Methods("GET")
	api.HandleFunc("/active-bets", s.handleActiveBets).Methods("GET")
	api.HandleFunc("/league-stats", s.handleLeagueStats).Methods("GET")
	api.HandleFunc("/refresh", s.handleRefresh).Methods("POST")

	router.HandleFunc("/ws", s.hub.HandleWS)
	router.HandleFunc("/ping", handlePing).Methods("GET")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	allowedOrigins := s.cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           c.Handler(router),
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("Dashboard server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
