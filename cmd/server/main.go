// Command server exposes the document similarity metrics over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/metrics"
	"github.com/baditaflorin/go_document_similarity/internal/config"
	"github.com/baditaflorin/go_document_similarity/internal/warmup"
)

func main() {
	v := config.New()

	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	configPath := flags.String("config", "", "Config file path")
	flags.Int("port", 8080, "HTTP server port")
	flags.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	flags.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	flags.Int("max-request-size", 10*1024*1024, "Maximum request size in bytes")
	flags.Int("concurrency", 0, "Maximum number of concurrent requests (0 = fasthttp default)")
	flags.Bool("warm-up", true, "Perform system warm-up on startup")
	flags.String("log-file", "", "Log file path (empty = stdout)")
	_ = flags.Parse(os.Args[1:])

	for key, name := range map[string]string{
		config.KeyServerPort:     "port",
		config.KeyReadTimeout:    "read-timeout",
		config.KeyWriteTimeout:   "write-timeout",
		config.KeyMaxRequestSize: "max-request-size",
		config.KeyConcurrency:    "concurrency",
		config.KeyWarmUp:         "warm-up",
		config.KeyLogFile:        "log-file",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	if err := config.ReadFile(v, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithOptions(logger.Options{
		FilePath:   cfg.Log.File,
		JSONFormat: true,
		AsyncWrite: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting similarity HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", cfg.Server.Concurrency,
	)

	srv, err := NewServer(cfg, log, metrics.NewRecorder())
	if err != nil {
		log.Error("Failed to initialize similarity calculators", "error", err)
		os.Exit(1)
	}
	if cfg.Server.WarmUp {
		stats := srv.WarmUp(context.Background(), warmup.DefaultConfig())
		log.Info("Warm-up finished",
			"runs", stats.Runs,
			"failures", stats.Failures,
			"duration", stats.Duration,
			"cpus", runtime.NumCPU(),
		)
	}

	server := &fasthttp.Server{
		Handler:               srv.Handler(),
		Name:                  "SimilarityServer",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

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

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}
