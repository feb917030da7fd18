package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"cardtrace/internal/logger"
	"cardtrace/internal/output"
	"cardtrace/internal/postprocess"
	"cardtrace/internal/raster"
)

// Format names an output encoding.
type Format string

const (
	PPM     Format = "ppm"
	WebP    Format = "webp"
	TGA     Format = "tga"
	Preview Format = "preview" // downscaled WebP
)

// Stdout is the job path that writes to Config.Stdout instead of a file.
const Stdout = "-"

// Job is one encoding of the rendered frame.
type Job struct {
	Format Format
	Path   string
}

// Config holds all shared resources for an output run.
type Config struct {
	Frame       *raster.FrameBuffer
	Stdout      io.Writer
	PreviewSize int
	Workers     int
}

// Result holds the outcome of writing one job.
type Result struct {
	Format  Format
	Path    string
	Bytes   int64
	Success bool
	Error   string
}

// Run writes all jobs using a worker pool. Results keep job order.
func Run(cfg Config, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	workers := cfg.Workers
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}

	// NRGBA conversion is shared by every image encoder.
	var once sync.Once
	var img *image.NRGBA
	frameImage := func() *image.NRGBA {
		once.Do(func() { img = cfg.Frame.Image() })
		return img
	}

	jobChan := make(chan int, len(jobs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx], frameImage)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	return results
}

func processJob(cfg Config, job Job, frameImage func() *image.NRGBA) Result {
	res := Result{Format: job.Format, Path: job.Path}

	n, err := writeJob(cfg, job, frameImage)
	res.Bytes = n
	if err != nil {
		res.Error = err.Error()
		logger.Warn("output failed", zap.String("format", string(job.Format)), zap.String("path", job.Path), zap.Error(err))
		return res
	}
	res.Success = true
	logger.Debug("output written", zap.String("format", string(job.Format)), zap.String("path", job.Path), zap.Int64("bytes", n))
	return res
}

func writeJob(cfg Config, job Job, frameImage func() *image.NRGBA) (int64, error) {
	if job.Path == Stdout {
		if job.Format != PPM {
			return 0, fmt.Errorf("%s cannot be written to stdout", job.Format)
		}
		if cfg.Stdout == nil {
			return 0, fmt.Errorf("no stdout writer configured")
		}
		cw := &countingWriter{w: cfg.Stdout}
		err := output.WritePPM(cw, cfg.Frame)
		return cw.n, err
	}

	if err := os.MkdirAll(filepath.Dir(job.Path), 0755); err != nil {
		return 0, err
	}
	f, err := os.Create(job.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cw := &countingWriter{w: f}
	switch job.Format {
	case PPM:
		err = output.WritePPM(cw, cfg.Frame)
	case WebP:
		err = output.WriteWebP(cw, frameImage())
	case TGA:
		err = output.WriteTGA(cw, frameImage())
	case Preview:
		err = output.WriteWebP(cw, postprocess.Downsample(frameImage(), cfg.PreviewSize))
	default:
		err = fmt.Errorf("unknown format %q", job.Format)
	}
	if err != nil {
		return cw.n, err
	}
	return cw.n, f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
