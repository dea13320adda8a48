package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hexmap/pkg/buildinfo"
	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/observability"
	"github.com/matzehuels/hexmap/pkg/pipeline"
)

const (
	headerRequestID = "X-Request-Id"
	headerCache     = "X-Cache"
	headerVersion   = "X-Hexmap-Version"

	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redis    string
	redisDB  int
	maxItems int
	noCache  bool
}

// serveCommand creates the serve command: an HTTP API over the pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Endpoints:
  GET /v1/layout?items=N[&format=json|yaml]   coordinate document
  GET /v1/render.png?items=N                  PNG picture
  GET /v1/render.svg?items=N                  SVG picture
  GET /v1/groups.svg?items=N                  group spiral
  GET /healthz                                liveness
  GET /metrics                                Prometheus metrics

With --redis, layouts and renders are cached in Redis and shared between
instances; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				opts.addr = c.Config.Server.Addr
			}
			if !flags.Changed("max-items") {
				opts.maxItems = c.Config.Server.MaxItems
			}
			if flags.Changed("redis") {
				c.Config.Cache.RedisAddr = opts.redis
			}
			if flags.Changed("redis-db") {
				c.Config.Cache.RedisDB = opts.redisDB
			}
			return c.runServe(cmd.Context(), newPrinter(cmd.OutOrStdout()), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for a shared cache")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().IntVar(&opts.maxItems, "max-items", 100_000, "largest item count accepted (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, out printer, opts serveOpts) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, reg, opts.maxItems, c.Config.Render.FontSize, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}
	out.success("Listening on %s", ln.Addr())
	return serveHTTP(ctx, srv, ln, c.Logger)
}

// serveHTTP serves on ln until ctx is done, then shuts down gracefully.
func serveHTTP(ctx context.Context, srv *http.Server, ln net.Listener, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "addr", ln.Addr().String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// =============================================================================
// Handlers
// =============================================================================

// server holds the dependencies of the HTTP handlers.
type server struct {
	runner   *pipeline.Runner
	registry *prometheus.Registry
	maxItems int
	fontSize float64
	logger   *log.Logger
}

func newServer(runner *pipeline.Runner, reg *prometheus.Registry, maxItems int, fontSize float64, logger *log.Logger) *server {
	return &server{
		runner:   runner,
		registry: reg,
		maxItems: maxItems,
		fontSize: fontSize,
		logger:   logger,
	}
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.SetHeader(headerVersion, buildinfo.Short()))
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/render.png", s.artifactHandler(pipeline.FormatPNG))
		r.Get("/render.svg", s.artifactHandler(pipeline.FormatSVG))
		r.Get("/groups.svg", s.artifactHandler(pipeline.FormatGroups))
	})

	return r
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "":
		format = pipeline.FormatJSON
	case pipeline.FormatJSON, pipeline.FormatYAML:
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "format must be json or yaml, got %q", format))
		return
	}
	s.serveArtifact(w, r, format)
}

func (s *server) artifactHandler(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveArtifact(w, r, format)
	}
}

// serveArtifact runs the pipeline for ?items=N and writes one artifact.
func (s *server) serveArtifact(w http.ResponseWriter, r *http.Request, format string) {
	n, err := errors.ParseItemCount(r.URL.Query().Get("items"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Items:    n,
		MaxItems: s.maxItems,
		Formats:  []string{format},
		FontSize: s.fontSize,
		Logger:   s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(headerCache, cacheStatus)
	_, _ = w.Write(res.Artifacts[format])
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps client errors to 400 and everything else to 500.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := http.StatusInternalServerError
	if errors.IsClientError(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", w.Header().Get(headerRequestID), "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

// =============================================================================
// Middleware
// =============================================================================

// requestID propagates the caller's request id or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// instrument reports each request to the HTTP hooks, labelled by route
// pattern. Requests that match no route share one label.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status,
			"request_id", w.Header().Get(headerRequestID), "duration", time.Since(start))
	})
}
