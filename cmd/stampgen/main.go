// Command stampgen generates a sticker pack from the command line and
// writes it to a zip archive.
//
// Usage:
//
//	stampgen -count 8 -desc "a grumpy orange cat" -texts captions.txt -out stamps.zip
//
// The Gemini API key is read from GEMINI_API_KEY or GOOGLE_API_KEY,
// optionally via a .env file in the working directory.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mhpenta/stampgen"
	"github.com/mhpenta/stampgen/provider/gemini"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stampgen:", err)
		os.Exit(1)
	}
}

func run() error {
	// Best effort; a missing .env just means the key comes from the
	// environment.
	_ = godotenv.Load()

	var (
		count      = flag.Int("count", 8, "number of stamps to generate")
		desc       = flag.String("desc", "", "character description (required unless -image is set)")
		textsPath  = flag.String("texts", "", "file with one caption per line")
		imagePath  = flag.String("image", "", "base character image (png/jpeg/webp)")
		style      = flag.String("style", "", "style prompt override")
		out        = flag.String("out", stampgen.DefaultArchiveName, "output zip path")
		model      = flag.String("model", "", "model name (default: provider default)")
		parallel   = flag.Int("parallel", 1, "number of concurrent generation calls")
		consistent = flag.Bool("consistent", false, "seed later stamps with earlier ones")
		verbose    = flag.Bool("v", false, "debug logging")
		timeout    = flag.Duration("timeout", 10*time.Minute, "overall batch timeout")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return fmt.Errorf("GEMINI_API_KEY or GOOGLE_API_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gen, err := gemini.New(ctx, nil)
	if err != nil {
		return fmt.Errorf("creating Gemini provider: %w", err)
	}

	req := stampgen.BatchRequest{
		Count:               *count,
		Description:         *desc,
		StylePrompt:         *style,
		PreserveConsistency: *consistent,
	}

	if *textsPath != "" {
		texts, err := readLines(*textsPath)
		if err != nil {
			return fmt.Errorf("reading captions: %w", err)
		}
		req.Texts = texts
	}

	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("reading base image: %w", err)
		}
		req.Reference = &stampgen.InputImage{
			Data:     data,
			MIMEType: stampgen.GetMIMEType(*imagePath),
		}
	}

	orch := stampgen.NewOrchestrator(gen,
		stampgen.WithLogger(logger),
		stampgen.WithConcurrency(*parallel),
		stampgen.WithProgress(func(r stampgen.StampResult) {
			if r.Succeeded() {
				fmt.Printf("stamp %d/%d done\n", r.Index, *count)
			} else {
				fmt.Printf("stamp %d/%d FAILED: %v\n", r.Index, *count, r.Err)
			}
		}),
	)
	defer orch.Close()

	cfg := stampgen.DefaultConfig()
	if *model != "" {
		cfg = cfg.WithModel(stampgen.Model(*model))
	}

	archive, results, err := orch.RunAndPack(ctx, req, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, archive, 0o644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	fmt.Printf("wrote %s (%d/%d stamps)\n", *out, stampgen.CountSuccesses(results), *count)
	return nil
}

// readLines reads non-empty trimmed lines from a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
