package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PanelSource exposes the most recent panel.
type PanelSource interface {
	Latest() (domain.Panel, bool)
}

// Server exposes health, readiness, metrics, and the current panel over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and /panel routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, panels PanelSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /panel", handlePanel(panels))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type panelLine struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type panelResponse struct {
	Title     string      `json:"title"`
	Border    string      `json:"border"`
	Lines     []panelLine `json:"lines"`
	Footer    string      `json:"footer"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// handlePanel serves the latest panel as JSON, or as plain text with ?format=text.
func handlePanel(panels PanelSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := panels.Latest()
		if !ok {
			sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "no panel yet",
			})
			return
		}

		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(p.PlainText()))
			return
		}

		resp := panelResponse{
			Title:     p.Title,
			Border:    string(p.Border),
			Lines:     make([]panelLine, 0, len(p.Lines)),
			Footer:    p.Footer.Text,
			UpdatedAt: p.UpdatedAt,
		}
		for _, l := range p.Lines {
			resp.Lines = append(resp.Lines, panelLine{Text: l.Text, Color: string(l.Color)})
		}
		sharedobs.WriteJSON(w, http.StatusOK, resp)
	}
}
