package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/recase/pkg/api"
	"github.com/hazyhaar/recase/pkg/recaser"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

type serveConfig struct {
	Addr  string `yaml:"addr"`
	Model string `yaml:"model"`
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	model := fs.String("model", "", "model file (overrides config)")
	mcpMode := fs.Bool("mcp", false, "serve MCP tools on stdio instead of HTTP")
	fs.Parse(args)

	logger := newLogger(true)

	cfg := loadServeConfig(*cfgPath, logger)
	if *model != "" {
		cfg.Model = *model
	}
	if cfg.Model == "" {
		fmt.Fprintln(os.Stderr, "no model file configured (set model: in config or pass --model)")
		os.Exit(1)
	}

	holder, err := recaser.NewHolder(cfg.Model, logger)
	if err != nil {
		fatal(logger, "load model", err)
	}
	info := holder.Model().Describe()
	logger.Info("model loaded", "path", cfg.Model, "features", info.NumFeatures, "patterns", info.NumPatterns)

	if *mcpMode {
		// MCP on stdio; logging already goes to stderr.
		srv := server.NewMCPServer("recase", "1.0.0", server.WithToolCapabilities(false))
		api.RegisterMCPTools(srv, holder)
		if err := server.ServeStdio(srv); err != nil {
			fatal(logger, "mcp server error", err)
		}
		return
	}

	router := api.NewRouter(holder, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload the model file.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading model")
			if err := holder.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				info := holder.Model().Describe()
				logger.Info("model reloaded", "features", info.NumFeatures, "patterns", info.NumPatterns)
			}
		}
	}()

	go func() {
		logger.Info("recase listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func loadServeConfig(path string, logger *slog.Logger) serveConfig {
	cfg := serveConfig{
		Addr:  ":8430",
		Model: "recase.model",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
