// Package api exposes the controller to UI collaborators over HTTP: intent
// endpoints to drive the strip, and an SSE stream for state-change
// notifications.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/MikeBeradino/neoctl/internal/events"
	"github.com/MikeBeradino/neoctl/internal/logging"
	"github.com/MikeBeradino/neoctl/internal/serial"
	"github.com/MikeBeradino/neoctl/internal/strip"
	"github.com/MikeBeradino/neoctl/internal/version"
)

// PortLister enumerates the host's serial devices. It is a seam so tests do
// not touch real hardware.
type PortLister func() ([]serial.PortInfo, error)

// Options configures the API server.
type Options struct {
	Controller *strip.Controller
	EventBus   *events.Bus

	// ListPorts defaults to serial.ListPorts when nil.
	ListPorts PortLister

	// PrometheusHandler, when set, is mounted at GET /metrics outside the
	// huma API (no OpenAPI entry, matching the usual scrape setup).
	PrometheusHandler http.Handler
}

// Server is the Huma v2 API server.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	controller *strip.Controller
	eventBus   *events.Bus
	listPorts  PortLister
	logger     *slog.Logger
}

// NewServer creates the API server on Go 1.22+ native routing.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("neoctl API", version.String())
	config.Info.Description = "Segment color control for a serial-attached LED strip"
	// An empty servers list makes OpenAPI use relative paths, working with any host.
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)

	listPorts := opts.ListPorts
	if listPorts == nil {
		listPorts = serial.ListPorts
	}

	server := &Server{
		api:        api,
		mux:        mux,
		controller: opts.Controller,
		eventBus:   opts.EventBus,
		listPorts:  listPorts,
		logger:     logging.GetLogger("api"),
	}

	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(HTTPLoggingMiddleware)

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	return server
}

// GetMux returns the underlying HTTP ServeMux.
func (s *Server) GetMux() *http.ServeMux {
	return s.mux
}

// Start starts the HTTP server on the specified address.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server without waiting for open connections; SSE
// clients would otherwise hold shutdown forever.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Body struct {
		Status  string `json:"status" example:"ok" doc:"Health status"`
		Message string `json:"message" example:"API is healthy" doc:"Status message"`
	}
}

// VersionResponse carries build metadata.
type VersionResponse struct {
	Body version.Info
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
	}, func(ctx context.Context, input *struct{}) (*HealthResponse, error) {
		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		resp.Body.Message = "API is healthy"
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
	}, func(ctx context.Context, input *struct{}) (*VersionResponse, error) {
		return &VersionResponse{Body: version.Get()}, nil
	})

	s.registerConnectionRoutes()
	s.registerSegmentRoutes()
	s.registerStripRoutes()
	s.registerSSERoutes()
}
