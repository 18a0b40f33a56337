// Package cmd — conversion.
// This is the command body that orchestrates the pipeline:
// fetch → parse → extract → normalize → link → package → write.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/onestandard/core"
	"github.com/gaurav-prasanna/onestandard/core/config"
	"github.com/gaurav-prasanna/onestandard/core/extract"
	"github.com/gaurav-prasanna/onestandard/core/fetch"
	"github.com/gaurav-prasanna/onestandard/core/logging"
	"github.com/gaurav-prasanna/onestandard/core/model"
	"github.com/gaurav-prasanna/onestandard/core/normalize"
	"github.com/gaurav-prasanna/onestandard/core/output"
	"github.com/gaurav-prasanna/onestandard/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagOutputDir string
	flagMarkdown  bool
	flagPDF       bool
)

func init() {
	rootCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	rootCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Also write a Markdown digest of the notes")
	rootCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Also write a PDF digest of the notes")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}

	logger := logging.New(cfg.Log, os.Stderr)

	var digests []core.Renderer
	if flagMarkdown {
		digests = append(digests, render.NewMarkdownRenderer())
	}
	if flagPDF {
		digests = append(digests, render.NewPDFRenderer())
	}

	return convert(cmd.Context(), args[0], cfg, digests, logger)
}

// convert runs the full pipeline for one input file.
func convert(ctx context.Context, path string, cfg *config.Config, digests []core.Renderer, logger *slog.Logger) error {
	extractor := extract.New(extract.WithLogger(logger), extract.WithMarker(noteMarker(cfg.Input)))
	pkg, tag, err := buildPackage(ctx, path, fetch.New(), extractor, normalize.New(), logger)
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	data, err := render.NewJSONRenderer().Render(pkg)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Output.File, err)
	}
	written, err := writer.WritePackage(data, cfg.Output.File)
	if err != nil {
		return err
	}
	logger.Info("package written", "path", written, "items", pkg.Len())

	for _, r := range digests {
		data, err := r.Render(pkg)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Extension(), err)
		}
		digest, err := writer.WriteDigest(tag.Title, data, r.Extension())
		if err != nil {
			return err
		}
		logger.Info("digest written", "path", digest)
	}
	return nil
}

// buildPackage converts the notebook at path into a package holding one tag
// named after the file followed by its notes in document order.
func buildPackage(
	ctx context.Context,
	path string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	normalizer core.Normalizer,
	logger *slog.Logger,
) (*model.Package, *model.Tag, error) {
	// 1. Fetch
	result, err := fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Parse
	doc, err := extract.ParseString(result.HTML)
	if err != nil {
		return nil, nil, err
	}

	tag, err := model.NewTag(tagTitle(path))
	if err != nil {
		return nil, nil, err
	}

	// 3. Extract, normalize and link each note
	var notes []*model.Note
	for parts := range extractor.Notes(doc) {
		raw, err := normalizer.Normalize(parts)
		if err != nil {
			return nil, nil, fmt.Errorf("normalize: %w", err)
		}
		note, err := model.NewNote(raw.Title, raw.Markdown)
		if err != nil {
			return nil, nil, err
		}
		model.Link(note, tag)
		notes = append(notes, note)
		logger.Debug("note converted", "title", note.Title, "uuid", note.GUID())
	}

	// 4. Package. Snapshots are taken after linking so the tag lists every note.
	pkg := model.NewPackage()
	pkg.Add(tag)
	for _, note := range notes {
		pkg.Add(note)
	}
	return pkg, tag, nil
}

// tagTitle is the base name of path up to its first dot.
func tagTitle(path string) string {
	base := filepath.Base(path)
	title, _, _ := strings.Cut(base, ".")
	return title
}

func noteMarker(cfg config.InputConfig) extract.Marker {
	if cfg.NoteStyle == "" {
		return extract.StyleMarker(extract.NoteStyle)
	}
	return extract.StyleMarker(cfg.NoteStyle)
}
