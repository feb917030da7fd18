package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cardtrace/internal/batch"
	"cardtrace/internal/config"
	"cardtrace/internal/logger"
	"cardtrace/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .yaml config file")
	out := flag.String("output", "", `PPM output path, "-" for stdout (default: stdout)`)
	webp := flag.String("webp", "", "Also write a lossless WebP copy to this path")
	tga := flag.String("tga", "", "Also write a TGA copy to this path")
	preview := flag.String("preview", "", "Also write a downscaled WebP preview to this path")
	previewSize := flag.Int("preview-size", 0, "Preview edge length in pixels (default: 128)")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the outputs to this path")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	seed := flag.Int64("seed", 0, "Random seed; equal seeds give byte-identical images")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")
	logFile := flag.String("log-file", "", "Also log to this rotating file")

	flag.Parse()

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Output:      *out,
		WebP:        *webp,
		TGA:         *tga,
		Preview:     *preview,
		PreviewSize: *previewSize,
		Manifest:    *manifest,
		Workers:     *workers,
		Seed:        *seed,
		SeedSet:     seedSet,
		LogLevel:    *logLevel,
		LogFile:     *logFile,
	})

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("rendering",
		zap.Int("size", raster.Size),
		zap.Int("samples", raster.Samples),
		zap.Int("workers", cfg.Workers),
		zap.Int64("seed", cfg.Seed))

	start := time.Now()
	fb := raster.Render(raster.Options{
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Progress: 2 * time.Second,
	})
	elapsed := time.Since(start)

	jobs := []batch.Job{{Format: batch.PPM, Path: cfg.Output}}
	if cfg.WebP != "" {
		jobs = append(jobs, batch.Job{Format: batch.WebP, Path: cfg.WebP})
	}
	if cfg.TGA != "" {
		jobs = append(jobs, batch.Job{Format: batch.TGA, Path: cfg.TGA})
	}
	if cfg.Preview != "" {
		jobs = append(jobs, batch.Job{Format: batch.Preview, Path: cfg.Preview})
	}

	results := batch.Run(batch.Config{
		Frame:       fb,
		Stdout:      os.Stdout,
		PreviewSize: cfg.PreviewSize,
		Workers:     cfg.Workers,
	}, jobs)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			logger.Error("write failed", zap.String("path", r.Path), zap.String("error", r.Error))
			continue
		}
		if r.Path != batch.Stdout {
			logger.Info("wrote", zap.String("format", string(r.Format)), zap.String("path", r.Path), zap.Int64("bytes", r.Bytes))
		}
	}

	if cfg.Manifest != "" {
		m := batch.NewManifest(cfg.Seed, elapsed.String(), results)
		if err := batch.WriteManifest(cfg.Manifest, m); err != nil {
			logger.Warn("manifest write failed", zap.Error(err))
		}
	}

	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}
