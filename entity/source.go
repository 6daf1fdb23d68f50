package entity

import (
	"context"
)

type SourceFactories map[string]SourceFactory

// SourceFactory enables data sources to be handled as plug-ins.
// A factory is registered with Config.RegisterSourceType() for a resource
// type to be available in conversion specs.
type SourceFactory interface {
	// SourceId returns the resource type for which the source is implemented
	SourceId() string

	// NewSource creates a new source entity for one resource
	NewSource(ctx context.Context, c Config) (Source, error)

	// Close is called after the client has called iconize.Shutdown()
	Close() error
}

// Source is the interface required for data source implementations.
// Each source reads its resource once and returns a read-only snapshot
// Table, mapping each Code to the partial record this source knows
// about. Missing codes and missing fields are not errors.
type Source interface {
	ExtractTable(ctx context.Context) (Table, error)
}

// GlyphExporter is an optional interface for sources backed by a font
// resource. ExportGlyphs renders every enumerable glyph into a
// standalone vector file under dir and returns a Table with one
// {svgfile} record per exported glyph.
type GlyphExporter interface {
	ExportGlyphs(ctx context.Context, dir string) (Table, error)
}
