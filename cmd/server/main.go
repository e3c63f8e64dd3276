package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/normalizer"
	"github.com/baditaflorin/mesi/internal/adapters/telemetry"
	"github.com/baditaflorin/mesi/internal/core/metric"
	"github.com/baditaflorin/mesi/internal/ports"
	"github.com/baditaflorin/mesi/internal/warmup"
	"github.com/baditaflorin/mesi/pkg/mesi"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

// DistanceRequest asks for the distance between two texts.
type DistanceRequest struct {
	First            string `json:"first"`
	Second           string `json:"second"`
	Algorithm        string `json:"algorithm,omitempty"`
	IgnoreWhitespace bool   `json:"ignore_whitespace,omitempty"`
}

// DistanceResponse carries a computed distance. Distance is null and
// Infinite is set when the metric reports an infinite distance.
type DistanceResponse struct {
	Algorithm      string   `json:"algorithm"`
	Distance       *float64 `json:"distance"`
	Infinite       bool     `json:"infinite,omitempty"`
	ProcessingTime string   `json:"processing_time"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	comparer *mesi.Comparer
	recorder *telemetry.Recorder
	logger   ports.Logger
	metrics  fasthttp.RequestHandler
}

func newServer(log ports.Logger) (*server, error) {
	recorder := telemetry.NewRecorder()
	comparer, err := mesi.New(mesi.WithPortsLogger(log), mesi.WithRecorder(recorder))
	if err != nil {
		return nil, err
	}
	return &server{
		comparer: comparer,
		recorder: recorder,
		logger:   log,
		metrics:  fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(recorder.Gatherer(), promhttp.HandlerOpts{})),
	}, nil
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Run every algorithm once on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	baseLogger, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.FromExisting(baseLogger)
	defer log.Close()

	log.Info("Starting distance HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	srv, err := newServer(log)
	if err != nil {
		log.Error("Failed to initialize comparer", "error", err)
		os.Exit(1)
	}

	if *warmUp {
		runWarmUp(log)
	}

	server := &fasthttp.Server{
		Handler:               srv.handle,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // requests are logged by the handler
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	log.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

func runWarmUp(log ports.Logger) {
	wm := warmup.NewManager(log, warmup.DefaultConfig())
	registry := metric.Default()
	for _, name := range registry.Names() {
		fn, err := registry.Resolve(name)
		if err != nil {
			continue
		}
		wm.RegisterMetric(name, fn)
	}
	wm.RegisterNormalizer(normalizer.NewWhitespaceNormalizer())
	wm.WarmUp(context.Background())
	log.Info("Algorithms warmed up", "algorithms", len(registry.Names()), "cpus", runtime.NumCPU())
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Server", "MesiServer")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/algorithms":
		s.handleAlgorithms(ctx)
	case "/distance":
		s.handleDistance(ctx)
	case "/metrics":
		s.metrics(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleAlgorithms(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, mesi.Algorithms())
}

func (s *server) handleDistance(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req DistanceRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = mesi.DefaultAlgorithm
	}

	start := time.Now()
	distance, err := s.comparer.DistanceWith(req.Algorithm, req.First, req.Second, req.IgnoreWhitespace)
	elapsed := time.Since(start)
	if err != nil {
		switch {
		case errors.Is(err, mesi.ErrUnknownMetric):
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.recorder.RunFailed("unknown_metric")
		case errors.Is(err, mesi.ErrMetricPrecondition):
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			s.recorder.RunFailed("metric_precondition")
		default:
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			s.recorder.RunFailed("other")
		}
		s.writeJSONError(ctx, err.Error())
		return
	}
	s.recorder.BytesLoaded(len(req.First) + len(req.Second))
	s.recorder.PairCompared(req.Algorithm, elapsed.Seconds())

	resp := DistanceResponse{
		Algorithm:      req.Algorithm,
		ProcessingTime: elapsed.String(),
	}
	if math.IsInf(distance, 0) {
		resp.Infinite = true
	} else {
		resp.Distance = &distance
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	ctx.SetContentType("application/json")
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
	ctx.SetContentType("application/json")
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
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
