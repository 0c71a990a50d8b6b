package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petasbytes/imagegen-mcp/internal/config"
	"github.com/petasbytes/imagegen-mcp/internal/imagegen"
	"github.com/petasbytes/imagegen-mcp/internal/mcp"
	"github.com/petasbytes/imagegen-mcp/internal/provider"
	"github.com/petasbytes/imagegen-mcp/tools"
)

const (
	serverName    = "imagegen-mcp"
	serverVersion = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file; environment variables override it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !cfg.KeyLooksStandard() {
		logger.Warn("OPENAI_API_KEY does not look like a standard key",
			zap.String("key", cfg.MaskedKey()))
	}

	client := provider.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	adapter := imagegen.NewAdapter(&client.Images, http.DefaultClient, logger)

	srv := mcp.NewServer(serverName, serverVersion, logger)
	for _, def := range tools.Registry(adapter) {
		if err := srv.RegisterTool(def.Tool()); err != nil {
			logger.Fatal("register tool", zap.String("name", def.Name), zap.Error(err))
		}
	}

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	transport := mcp.NewStdioTransport(os.Stdin, os.Stdout)
	if err := srv.Serve(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("serve", zap.Error(err))
	}
}

// newLogger builds a zap logger writing to stderr only: stdout belongs to the
// protocol.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
