package server

import (
	"log/slog"
	"net/http"

	"kazungula-dashboard/internal/handlers"
	"kazungula-dashboard/internal/services"
)

type Server struct {
	analytics     *services.Analytics
	mux           *http.ServeMux
	logger        *slog.Logger
	apiHandlers   *handlers.APIHandlers
	sseHandlers   *handlers.SSEHandlers
	chartHandlers *handlers.ChartHandlers
	exportHandler *handlers.ExportHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:     analytics,
		mux:           http.NewServeMux(),
		logger:        logger,
		apiHandlers:   handlers.NewAPIHandlers(analytics, logger),
		sseHandlers:   handlers.NewSSEHandlers(analytics, logger),
		chartHandlers: handlers.NewChartHandlers(analytics, logger),
		exportHandler: handlers.NewExportHandlers(analytics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard page and operational endpoints
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/arrivals", s.apiHandlers.HandleArrivals)
	s.mux.HandleFunc("GET /api/source-markets", s.apiHandlers.HandleSourceMarkets)
	s.mux.HandleFunc("GET /api/seasonality", s.apiHandlers.HandleSeasonality)
	s.mux.HandleFunc("GET /api/accommodation", s.apiHandlers.HandleAccommodation)
	s.mux.HandleFunc("GET /api/capacity", s.apiHandlers.HandleCapacity)
	s.mux.HandleFunc("GET /api/revenue", s.apiHandlers.HandleRevenue)
	s.mux.HandleFunc("GET /api/impact", s.apiHandlers.HandleImpact)
	s.mux.HandleFunc("GET /api/roi", s.apiHandlers.HandleROI)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/kpis", s.sseHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /sse/arrivals", s.sseHandlers.HandleArrivals)
	s.mux.HandleFunc("GET /sse/source-markets", s.sseHandlers.HandleSourceMarkets)
	s.mux.HandleFunc("GET /sse/seasonality", s.sseHandlers.HandleSeasonality)
	s.mux.HandleFunc("GET /sse/accommodation", s.sseHandlers.HandleAccommodation)
	s.mux.HandleFunc("GET /sse/revenue", s.sseHandlers.HandleRevenue)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)

	// Server-rendered chart images
	s.mux.HandleFunc("GET /charts/arrivals.png", s.chartHandlers.HandleArrivalsChart)
	s.mux.HandleFunc("GET /charts/seasonality.png", s.chartHandlers.HandleSeasonalityChart)
	s.mux.HandleFunc("GET /charts/markets.png", s.chartHandlers.HandleMarketsChart)
	s.mux.HandleFunc("GET /charts/revenue.png", s.chartHandlers.HandleRevenueChart)

	// Report export
	s.mux.HandleFunc("GET /api/export.xlsx", s.exportHandler.HandleExport)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
