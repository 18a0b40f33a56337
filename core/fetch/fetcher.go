// Package fetch implements the Fetcher interface.
// It reads an exported notebook from disk and decodes it as ISO-8859-1,
// the encoding OneNote's exporter actually writes, ignoring whatever
// charset the document declares.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/onestandard/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// FileFetcher reads notebooks from the local filesystem.
type FileFetcher struct {
	decoder func() *encoding.Decoder
}

// New creates a FileFetcher decoding latin-1.
func New() *FileFetcher {
	return &FileFetcher{decoder: charmap.ISO8859_1.NewDecoder}
}

// Fetch reads and decodes the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	decoded, err := f.decoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &core.FetchResult{
		Path: path,
		HTML: string(decoded),
	}, nil
}
