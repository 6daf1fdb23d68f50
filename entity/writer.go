package entity

import (
	"context"
)

type WriterFactories map[string]WriterFactory

// WriterFactory enables output writers to be handled as plug-ins.
// A factory is registered with Config.RegisterWriterType() for an output
// format to be available in conversion specs.
type WriterFactory interface {
	// FormatId returns the output format for which the writer is implemented
	FormatId() string

	// NewWriter creates a new writer entity for one output directive
	NewWriter(ctx context.Context, c Config) (Writer, error)

	// Close is called after the client has called iconize.Shutdown()
	Close() error
}

// Writer is the interface required for output writer implementations.
//
// FileWriter implementations copy one already-exported vector file per
// record to its rendered destination path.
//
// SetWriter implementations write the whole projected record set to a
// single destination.
//
// A writer implements whichever of the two fits its format; the engine
// picks by type assertion.
type Writer interface {
	// Called during shutdown of the pipeline
	Shutdown()
}

// FileWriter copies srcPath to dstPath, creating any missing parent
// directories of dstPath. Failure is fatal for the run, no retries.
type FileWriter interface {
	Writer
	Copy(ctx context.Context, srcPath, dstPath string) error
}

// SetWriter writes the projected record set to its destination.
type SetWriter interface {
	Writer
	WriteSet(ctx context.Context, records []Record) error
}
