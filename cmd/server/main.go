package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/metrics"
	"github.com/baditaflorin/go_text_similarity/internal/config"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
	"github.com/baditaflorin/l"
)

// Default configuration
const (
	DefaultAddr           = ":8080"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
)

// Request represents a similarity computation request
type Request struct {
	Original   string `json:"original"`
	Comparison string `json:"comparison"`
}

// Response represents a similarity computation response
type Response struct {
	Score          float64                `json:"score"`
	Metric         string                 `json:"metric"`
	Path           string                 `json:"path,omitempty"`
	Passed         *bool                  `json:"suspected,omitempty"`
	Threshold      float64                `json:"threshold,omitempty"`
	Cosine         float64                `json:"cosine,omitempty"`
	Edit           float64                `json:"edit,omitempty"`
	Jaccard        float64                `json:"jaccard,omitempty"`
	Tokens1        int                    `json:"original_tokens,omitempty"`
	Tokens2        int                    `json:"comparison_tokens,omitempty"`
	ProcessingTime string                 `json:"processing_time"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server holds the handler dependencies.
type server struct {
	sim     *similarity.Similarity
	logger  l.Logger
	metrics fasthttp.RequestHandler
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("SIMILARITY_ADDR", DefaultAddr), "HTTP listen address")
	configPath := flag.String("config", os.Getenv("SIMILARITY_CONFIG"), "TOML configuration file")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = default)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting similarity HTTP server",
		"addr", *addr,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	srv, err := newServer(cfg, logger, *warmUp)
	if err != nil {
		logger.Error("Failed to initialize similarity scorer", "error", err)
		os.Exit(1)
	}

	httpServer := &fasthttp.Server{
		Handler:               srv.handle,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", *addr)
	if err := httpServer.ListenAndServe(*addr); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// newServer wires the scorer, its Prometheus observer and the /metrics handler.
func newServer(cfg *config.Config, logger l.Logger, warmUp bool) (*server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	observer, err := metrics.NewPrometheusObserver("text_similarity", registry)
	if err != nil {
		return nil, err
	}

	opts := append(similarity.OptionsFromConfig(cfg),
		similarity.WithLogger(logger),
		similarity.WithObserver(observer),
		similarity.WithWarmUp(warmUp),
	)

	sim, err := similarity.New(opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Similarity scorer initialized",
		"warm_up", warmUp,
		"segmenter", cfg.Segmenter.Kind,
		"cpus", runtime.NumCPU(),
	)

	return &server{
		sim:     sim,
		logger:  logger,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	}, nil
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	requestID := uuid.NewString()

	ctx.Response.Header.Set("X-Request-Id", requestID)
	ctx.Response.Header.Set("Server", "SimilarityServer")

	switch string(ctx.Path()) {
	case "/health":
		ctx.Response.Header.Set("Content-Type", "application/json")
		s.handleHealthCheck(ctx)
	case "/metrics":
		s.metrics(ctx)
	case "/score", "/comprehensive", "/compare":
		ctx.Response.Header.Set("Content-Type", "application/json")
		s.handleSimilarity(ctx)
	default:
		ctx.Response.Header.Set("Content-Type", "application/json")
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleSimilarity scores one pair of documents. Empty texts are valid input.
func (s *server) handleSimilarity(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	start := time.Now()
	var resp Response
	switch string(ctx.Path()) {
	case "/comprehensive":
		resp = Response{
			Metric: "comprehensive",
			Score:  s.sim.Comprehensive(req.Original, req.Comparison),
		}
	case "/compare":
		result := s.sim.Compare(req.Original, req.Comparison)
		passed := result.Passed
		resp = Response{
			Metric:    "score",
			Score:     result.Score,
			Path:      string(result.Path),
			Passed:    &passed,
			Threshold: result.Threshold,
			Cosine:    result.Cosine,
			Edit:      result.Edit,
			Jaccard:   result.Jaccard,
			Tokens1:   result.Tokens1,
			Tokens2:   result.Tokens2,
			Details:   result.Details,
		}
	default:
		resp = Response{
			Metric: "score",
			Score:  s.sim.Score(req.Original, req.Comparison),
		}
	}
	resp.ProcessingTime = time.Since(start).String()

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// createLogger creates and configures a logger
func createLogger(cfg config.Logging) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
