// Package output encodes rendered frame buffers.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"cardtrace/internal/raster"
)

// WritePPM writes fb as binary PPM: the header "P6 W H 255 " followed by the
// raw RGB bytes in raster order.
func WritePPM(w io.Writer, fb *raster.FrameBuffer) error {
	if len(fb.Color) != fb.Width*fb.Height*3 {
		return fmt.Errorf("output: ppm: buffer has %d bytes, want %d", len(fb.Color), fb.Width*fb.Height*3)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255 ", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("output: ppm header: %w", err)
	}
	if _, err := bw.Write(fb.Color); err != nil {
		return fmt.Errorf("output: ppm pixels: %w", err)
	}
	return bw.Flush()
}

// ReadPPM parses a binary P6 stream with maxval 255.
func ReadPPM(r io.Reader) (*raster.FrameBuffer, error) {
	br := bufio.NewReader(r)

	var fields [4]string
	for i := range fields {
		tok, err := readToken(br)
		if err != nil {
			return nil, fmt.Errorf("output: ppm header: %w", err)
		}
		fields[i] = tok
	}
	if fields[0] != "P6" {
		return nil, fmt.Errorf("output: ppm: bad magic %q", fields[0])
	}
	w, err := strconv.Atoi(fields[1])
	if err != nil || w <= 0 {
		return nil, fmt.Errorf("output: ppm: bad width %q", fields[1])
	}
	h, err := strconv.Atoi(fields[2])
	if err != nil || h <= 0 {
		return nil, fmt.Errorf("output: ppm: bad height %q", fields[2])
	}
	if fields[3] != "255" {
		return nil, fmt.Errorf("output: ppm: unsupported maxval %q", fields[3])
	}

	fb := raster.NewFrameBuffer(w, h)
	if _, err := io.ReadFull(br, fb.Color); err != nil {
		return nil, fmt.Errorf("output: ppm pixels: %w", err)
	}
	return fb, nil
}

// readToken reads one whitespace-terminated header field and consumes the
// single separator after it. Comments are not supported.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		if isSpace(c) {
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		}
		tok = append(tok, c)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
