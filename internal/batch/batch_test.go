package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardtrace/internal/raster"
)

func frame() *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(raster.Size, raster.Size)
	for i := range fb.Color {
		fb.Color[i] = uint8(13 + i%200)
	}
	return fb
}

func TestRunWritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	jobs := []Job{
		{Format: PPM, Path: Stdout},
		{Format: PPM, Path: filepath.Join(dir, "out.ppm")},
		{Format: WebP, Path: filepath.Join(dir, "webp", "out.webp")},
		{Format: TGA, Path: filepath.Join(dir, "out.tga")},
		{Format: Preview, Path: filepath.Join(dir, "preview.webp")},
	}

	results := Run(Config{Frame: frame(), Stdout: &stdout, PreviewSize: 64, Workers: 3}, jobs)

	for i, r := range results {
		if !r.Success {
			t.Fatalf("job %d (%s) failed: %s", i, r.Format, r.Error)
		}
		if r.Format != jobs[i].Format || r.Path != jobs[i].Path {
			t.Fatalf("result %d out of order: %+v", i, r)
		}
		if r.Path != Stdout {
			st, err := os.Stat(r.Path)
			if err != nil {
				t.Fatalf("stat %s: %v", r.Path, err)
			}
			if st.Size() != r.Bytes {
				t.Fatalf("%s: reported %d bytes, file has %d", r.Path, r.Bytes, st.Size())
			}
		}
	}

	if !strings.HasPrefix(stdout.String(), "P6 512 512 255 ") {
		t.Fatal("stdout missing PPM header")
	}
	if int64(stdout.Len()) != results[0].Bytes {
		t.Fatalf("stdout bytes %d, reported %d", stdout.Len(), results[0].Bytes)
	}
	file, err := os.ReadFile(jobs[1].Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(file, stdout.Bytes()) {
		t.Fatal("file and stdout PPM differ")
	}

	preview, err := os.ReadFile(jobs[4].Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(preview[:4]) != "RIFF" || string(preview[8:12]) != "WEBP" {
		t.Fatalf("preview is not WebP: % x", preview[:12])
	}
	if results[4].Bytes >= results[2].Bytes {
		t.Fatalf("preview (%d bytes) not smaller than full webp (%d bytes)", results[4].Bytes, results[2].Bytes)
	}
}

func TestRunReportsFailures(t *testing.T) {
	jobs := []Job{
		{Format: WebP, Path: Stdout},
		{Format: "bmp", Path: filepath.Join(t.TempDir(), "x.bmp")},
		{Format: PPM, Path: Stdout},
	}
	results := Run(Config{Frame: frame()}, jobs)
	for i, r := range results {
		if r.Success || r.Error == "" {
			t.Fatalf("job %d should fail: %+v", i, r)
		}
	}
	if len(Run(Config{Frame: frame()}, nil)) != 0 {
		t.Fatal("empty job list should give no results")
	}
}

func TestManifest(t *testing.T) {
	results := []Result{
		{Format: PPM, Path: "out.ppm", Bytes: 786447, Success: true},
		{Format: TGA, Path: "out.tga", Error: "disk full"},
	}
	path := filepath.Join(t.TempDir(), "sub", "manifest.json")
	if err := WriteManifest(path, NewManifest(42, "1.5s", results)); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Seed != 42 || m.Width != 512 || m.Samples != 64 || len(m.Files) != 1 || m.Files[0].Path != "out.ppm" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}
