package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/pantry-voice/pkg/api"
	"github.com/hazyhaar/pantry-voice/pkg/chassis"
	"github.com/hazyhaar/pantry-voice/pkg/pantry"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

type config struct {
	Addr      string `yaml:"addr"`
	DBPath    string `yaml:"db_path"`
	AliasFile string `yaml:"alias_file"`
	CertFile  string `yaml:"cert_file"`
	KeyFile   string `yaml:"key_file"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "seed":
		cmdSeed(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pantryd <command>\n\nCommands:\n  serve   Start the pantry voice server\n  seed    Import pantry items from a CSV file\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadConfig(*cfgPath, logger)

	store, err := pantry.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open pantry store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		logger.Error("failed to query pantry store", "error", err)
		os.Exit(1)
	}
	logger.Info("pantry store opened", "path", cfg.DBPath, "items", n)

	// Lexicon: builtin aliases plus optional YAML overrides.
	lex := voice.DefaultLexicon()
	if cfg.AliasFile != "" {
		if err := lex.LoadOverrides(cfg.AliasFile); err != nil {
			logger.Error("failed to load alias overrides", "path", cfg.AliasFile, "error", err)
			os.Exit(1)
		}
		logger.Info("alias overrides loaded", "path", cfg.AliasFile)
	}

	svc := &api.Service{
		Store:    store,
		Resolver: voice.NewResolver(lex),
		Lexicon:  lex,
	}

	router := api.NewRouter(svc, logger)

	mcpSrv := server.NewMCPServer("pantry-voice", "1.0.0",
		server.WithToolCapabilities(false),
	)
	api.RegisterMCPTools(mcpSrv, svc)

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	// SIGHUP: hot reload alias overrides.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading lexicon")
			if err := lex.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("lexicon reloaded")
			}
		}
	}()

	go func() {
		logger.Info("pantry-voice listening", "addr", cfg.Addr)
		if err := srv.Start(ctx); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Stop(context.Background())
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8420",
		DBPath: "pantry.db",
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
