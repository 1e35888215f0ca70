package lore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/world"
)

// SourceProperty is the entity property recording which page a description
// was imported from.
const SourceProperty = "lore_source"

// Importer fetches lore pages and writes them onto world entities.
type Importer struct {
	fetcher   *Fetcher
	extractor *Extractor
	logger    *slog.Logger
}

// NewImporter creates a lore importer. A nil fetcher gets the package
// defaults; a nil logger falls back to slog.Default.
func NewImporter(fetcher *Fetcher, logger *slog.Logger) *Importer {
	if fetcher == nil {
		fetcher = NewFetcher(0, "", 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		fetcher:   fetcher,
		extractor: NewExtractor(),
		logger:    logger,
	}
}

// Import pulls the page at source, extracts its article, and stores the
// markdown as the named entity's description. The source is recorded on
// the entity under SourceProperty. HTTPS URLs go through the fetcher;
// local .html paths are read directly.
func (im *Importer) Import(ctx context.Context, w *world.World, entityName, source string) (*ExtractResult, error) {
	if _, err := w.Entity(entityName); err != nil {
		return nil, err
	}

	body, pageURL, err := im.read(ctx, source)
	if err != nil {
		return nil, err
	}

	result, err := im.extractor.Extract(body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}
	if result.Markdown == "" {
		return nil, fmt.Errorf("no readable content in %q", source)
	}

	if err := w.SetDescription(entityName, result.Markdown); err != nil {
		return nil, err
	}
	patch := entity.NewProperties()
	patch.Set(SourceProperty, entity.String(source))
	if err := w.UpdateProperties(entityName, patch); err != nil {
		return nil, err
	}

	im.logger.Info("imported lore",
		"entity", entityName,
		"source", source,
		"title", result.Title,
		"chars", len(result.Markdown))

	return result, nil
}

// read loads the raw page bytes for a source, either over HTTPS or from a
// local HTML file.
func (im *Importer) read(ctx context.Context, source string) ([]byte, *url.URL, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		body, err := im.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, nil, err
		}
		return body, u, nil
	}

	ext := strings.ToLower(filepath.Ext(source))
	if ext != ".html" && ext != ".htm" {
		return nil, nil, fmt.Errorf("unsupported lore source %q: want an HTTPS URL or a .html file", source)
	}
	body, err := os.ReadFile(source)
	if err != nil {
		return nil, nil, fmt.Errorf("read lore file: %w", err)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	return body, &url.URL{Scheme: "file", Path: abs}, nil
}
