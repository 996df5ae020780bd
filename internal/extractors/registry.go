package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches raw media to the best matching extractor.
// Extension-specific extractors win over kind-level fallbacks; among
// candidates the highest priority is selected.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(extractor driven.Extractor) {
	r.extractors = append(r.extractors, extractor)
}

// Extract runs the best matching extractor for the raw media.
// A missing extractor degrades to a failed extraction result rather
// than an error, so the file is still recorded and listable.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	best := r.match(raw)
	if best == nil {
		logger.Warn("No extractor for kind=%s file=%s", raw.Kind, raw.Filename)
		return &domain.ExtractionResult{
			Status:     domain.ExtractionFailed,
			Diagnostic: fmt.Sprintf("no extractor registered for kind %q", raw.Kind),
		}, nil
	}

	logger.Debug("Extracting %s with %T", raw.Filename, best)
	return best.Extract(ctx, raw)
}

// match selects the highest-priority extractor whose kind and
// extension constraints accept the file.
func (r *Registry) match(raw *domain.RawMedia) driven.Extractor {
	ext := strings.ToLower(filepath.Ext(raw.Filename))

	var best driven.Extractor
	for _, e := range r.extractors {
		if e.Kind() != raw.Kind {
			continue
		}
		if !acceptsExtension(e, ext) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	return best
}

func acceptsExtension(e driven.Extractor, ext string) bool {
	supported := e.SupportedExtensions()
	if len(supported) == 0 {
		return true // kind-level fallback
	}
	for _, s := range supported {
		if s == ext {
			return true
		}
	}
	return false
}
