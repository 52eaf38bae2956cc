package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/danlester/mcpdoc/internal/config"
	"github.com/danlester/mcpdoc/internal/convert"
	"github.com/danlester/mcpdoc/internal/engine"
	"github.com/danlester/mcpdoc/internal/httpclient"
	"github.com/danlester/mcpdoc/internal/logging"
	"github.com/danlester/mcpdoc/internal/policy"
	"github.com/danlester/mcpdoc/internal/registry"
	"github.com/danlester/mcpdoc/internal/sources"
	"github.com/danlester/mcpdoc/internal/telemetry"
	"github.com/danlester/mcpdoc/internal/versions"
)

const (
	defaultGracefulTimeout  = 10 * time.Second
	serverReadHeaderTimeout = 10 * time.Second

	serverName = "llms-txt"
)

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := logging.New(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	jsonPath := viper.GetString("json")
	urls := viper.GetStringSlice("urls")
	if jsonPath == "" && len(urls) == 0 {
		return errors.New("at least one source option (--json or --urls) is required")
	}

	store := config.NewStore(jsonPath)
	seeds, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load doc sources: %w", err)
	}
	seeds = mergeDocSources(seeds, docSourcesFromURLs(urls))

	reg := registry.New(sources.NewResolver(viper.GetInt("max-tool-name-length")))
	allowed := policy.New(viper.GetStringSlice("allowed-domains"), remoteLocations(seeds))
	fetcher := httpclient.NewDefaultClient(viper.GetDuration("timeout"), viper.GetBool("follow-redirects"))
	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	mcpServer := server.NewMCPServer(
		serverName,
		versions.GetVersionInfo().Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Use the tools to fetch docs for a given library or package."),
	)

	eng, err := engine.New(engine.NewMCPHost(mcpServer), seeds, engine.Options{
		Registry: reg,
		Store:    store,
		Allowed:  allowed,
		Fetcher:  fetcher,
		Convert:  convert.ToMarkdown,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	switch transport := viper.GetString("transport"); transport {
	case "stdio":
		logger.Info("starting mcpdoc server",
			zap.String("transport", "stdio"),
			zap.Int("doc_sources", eng.SourceCount()))
		return server.ServeStdio(mcpServer)
	case "sse":
		return serveSSE(mcpServer, eng, logger)
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or sse)", transport)
	}
}

func serveSSE(mcpServer *server.MCPServer, eng *engine.Engine, logger *zap.Logger) error {
	addr := net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))

	printSplash(eng.SourceCount())

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/", server.NewSSEServer(mcpServer))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting mcpdoc server",
			zap.String("transport", "sse"),
			zap.String("address", addr),
			zap.Int("doc_sources", eng.SourceCount()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// docSourcesFromURLs parses --urls entries. An entry is either a bare URL or
// path, or 'name:url_or_path'; the name split never applies to http(s) URLs.
// Blank entries are skipped.
func docSourcesFromURLs(urls []string) []sources.DocSource {
	out := make([]sources.DocSource, 0, len(urls))
	for _, entry := range urls {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		if strings.Contains(entry, ":") && !sources.IsRemote(entry) {
			name, location, _ := strings.Cut(entry, ":")
			out = append(out, sources.DocSource{Name: name, LlmsTxt: location})
			continue
		}
		out = append(out, sources.DocSource{LlmsTxt: entry})
	}
	return out
}

// mergeDocSources appends entries from extra that are not already present in
// base (exact descriptor match).
func mergeDocSources(base, extra []sources.DocSource) []sources.DocSource {
	for _, candidate := range extra {
		duplicate := false
		for _, existing := range base {
			if existing == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			base = append(base, candidate)
		}
	}
	return base
}

func remoteLocations(seeds []sources.DocSource) []string {
	out := make([]string, 0, len(seeds))
	for _, src := range seeds {
		if sources.IsRemote(src.LlmsTxt) {
			out = append(out, src.LlmsTxt)
		}
	}
	return out
}
