package raster

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"cardtrace/internal/logger"
)

// Options controls how the image is rendered. None of them change the
// scene or the camera.
type Options struct {
	Workers  int           // goroutines; <= 0 means NumCPU
	Seed     int64         // base seed for the per-row generators
	Progress time.Duration // progress log interval; 0 disables
}

// RowSeed derives the generator seed for one row, so the result does not
// depend on which worker renders it.
func RowSeed(seed int64, row int) int64 {
	return seed*1000003 + int64(row)
}

// Render traces the full Size x Size image.
func Render(opts Options) *FrameBuffer {
	fb := NewFrameBuffer(Size, Size)
	RenderRows(fb, 0, Size, opts)
	return fb
}

// RenderRows traces loop rows [from, to) into fb, which must be Size x Size.
func RenderRows(fb *FrameBuffer, from, to int, opts Options) {
	if from < 0 {
		from = 0
	}
	if to > fb.Height {
		to = fb.Height
	}
	if from >= to {
		return
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cam := DefaultCamera()
	total := to - from
	var processed atomic.Int64
	start := time.Now()

	logger.Debug("render start",
		zap.Int("rows", total),
		zap.Int("workers", workers),
		zap.Int64("seed", opts.Seed))

	// Progress reporter
	done := make(chan struct{})
	if opts.Progress > 0 {
		go func() {
			ticker := time.NewTicker(opts.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						logger.Sugar.Infof("[%d/%d] %.1f rows/sec", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for yi := range rowChan {
				renderRow(cam, fb, yi, rand.New(rand.NewSource(RowSeed(opts.Seed, yi))))
				processed.Add(1)
			}
		}()
	}

	for yi := from; yi < to; yi++ {
		rowChan <- yi
	}
	close(rowChan)

	wg.Wait()
	close(done)

	logger.Info("render done",
		zap.Int("rows", total),
		zap.Duration("elapsed", time.Since(start)))
}

func renderRow(cam Camera, fb *FrameBuffer, yi int, rng *rand.Rand) {
	row := fb.Row(yi)
	for xi := 0; xi < fb.Width; xi++ {
		px := cam.Pixel(xi, yi, rng)
		copy(row[xi*3:xi*3+3], px[:])
	}
}
