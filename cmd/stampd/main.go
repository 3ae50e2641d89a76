// Command stampd serves the sticker batch workflow over HTTP. A
// multipart POST to /v1/stamps runs a batch and responds with the
// packed archive as a download.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mhpenta/stampgen"
	"github.com/mhpenta/stampgen/provider/gemini"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stampd:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := InitConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	gen, err := gemini.New(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("creating Gemini provider: %w", err)
	}

	orch := stampgen.NewOrchestrator(gen,
		stampgen.WithLogger(logger),
		stampgen.WithLimits(stampgen.BatchLimits{
			MinCount: cfg.Limits.MinCount,
			MaxCount: cfg.Limits.MaxCount,
		}),
		stampgen.WithConcurrency(cfg.Generator.Parallel),
	)
	defer orch.Close()

	logger.Info("stampd listening", "port", cfg.Server.Port)
	return NewService(cfg, orch).Start()
}
