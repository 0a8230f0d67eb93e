// Package archive writes and reads show list backups, optionally compressed.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// Format is the on-disk encoding of a backup.
type Format string

const (
	FormatJSON   Format = "json"
	FormatGzip   Format = "gzip"
	FormatZstd   Format = "zstd"
	FormatBrotli Format = "br"
)

// extensions maps file suffixes to formats, longest first.
var extensions = []struct {
	suffix string
	format Format
}{
	{".json.gz", FormatGzip},
	{".json.zst", FormatZstd},
	{".json.br", FormatBrotli},
	{".json", FormatJSON},
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ext.format, nil
		}
	}
	return "", fmt.Errorf("unsupported backup file %q: expected .json, .json.gz, .json.zst or .json.br", path)
}

// Write encodes shows to w in the given format.
func Write(w io.Writer, format Format, shows []models.Show) error {
	docs := make([]map[string]any, len(shows))
	for i, show := range shows {
		docs[i] = show.ToDocument()
	}

	cw, err := compressor(w, format)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		_ = cw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	// Close flushes the compressed frame.
	if err := cw.Close(); err != nil {
		return fmt.Errorf("finish %s backup: %w", format, err)
	}
	return nil
}

// Read decodes a backup from r in the given format.
func Read(r io.Reader, format Format) ([]models.Show, error) {
	dr, err := decompressor(r, format)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	var docs []map[string]any
	if err := json.NewDecoder(dr).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode %s backup: %w", format, err)
	}
	return models.ShowsFromDocuments(docs)
}

// WriteFile writes shows to path, choosing the format from its extension.
func WriteFile(path string, shows []models.Show) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, shows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads shows from path, choosing the format from its extension.
func ReadFile(path string) ([]models.Show, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, format Format) (io.WriteCloser, error) {
	switch format {
	case FormatJSON:
		return nopWriteCloser{w}, nil
	case FormatGzip:
		return gzip.NewWriter(w), nil
	case FormatZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create zstd writer: %w", err)
		}
		return zw, nil
	case FormatBrotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown backup format %q", format)
	}
}

func decompressor(r io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatJSON:
		return io.NopCloser(r), nil
	case FormatGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip backup: %w", err)
		}
		return gr, nil
	case FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd backup: %w", err)
		}
		return zr.IOReadCloser(), nil
	case FormatBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unknown backup format %q", format)
	}
}
