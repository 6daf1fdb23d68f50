// Package iconize converts glyph resources from a font/stylesheet pair
// into individually exported SVG icon files, annotated with metadata
// fields joined from multiple data sources and written to
// caller-specified filenames.
package iconize

import (
	"context"
	"errors"
	"fmt"

	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/internal/service"
)

// Error values returned by the iconize API.
// Many of these errors will also contain additional details about the error.
// Error matching can still be done with 'if errors.Is(err, ErrInvalidConversionSpec)'
// etc. due to error wrapping.
var (
	ErrConfigNotInitialized  = errors.New("iconize.Config needs to be created with NewConfig()")
	ErrIconizeNotInitialized = errors.New("iconize not initialized")
	ErrInvalidConversionSpec = errors.New("conversion spec is not valid")
	ErrInvalidEntityId       = errors.New("invalid source/writer ID")
	ErrInternalProcessing    = errors.New("internal processing error")
)

type Iconize struct {
	service *service.Service
	spec    *entity.Spec
}

// New validates the conversion spec and assembles the pipeline based on
// the provided config, which needs to be initially created with
// NewConfig(). Built-in source and writer types are registered
// automatically; custom ones must have been registered on the config
// before this call.
func New(ctx context.Context, specData []byte, config *Config) (*Iconize, error) {
	if config == nil || config.sources == nil || config.writers == nil {
		return nil, ErrConfigNotInitialized
	}

	spec, err := entity.NewSpec(specData)
	if err != nil {
		return nil, errWithDetails(ErrInvalidConversionSpec, err)
	}

	i := &Iconize{spec: spec}
	i.service, err = service.New(ctx, preProcessConfig(spec, config))
	if err != nil {
		return nil, errWithDetails(ErrInternalProcessing, err)
	}
	return i, nil
}

// Run executes the conversion once, synchronously: extract tables from
// all resources, merge, filter, export vector files, and write outputs.
// Any failure aborts the run with an error describing the record, field
// or template involved.
func (i *Iconize) Run(ctx context.Context) error {
	if i.service == nil {
		return ErrIconizeNotInitialized
	}
	if err := i.service.Run(ctx); err != nil {
		return errWithDetails(ErrInternalProcessing, err)
	}
	return nil
}

// Records returns the merged, filtered record set from the last Run,
// for programmatic consumers. The records include the rewritten svgfile
// locations of any exported vector files.
func (i *Iconize) Records() []entity.Record {
	if i.service == nil {
		return nil
	}
	return i.service.Pipeline().Records()
}

// Spec returns the validated conversion spec.
func (i *Iconize) Spec() *entity.Spec {
	return i.spec
}

// NotifyChannel returns the channel receiving all operational events,
// regardless of the Config.Ops.Log setting.
func (i *Iconize) NotifyChannel() (entity.NotifyChan, error) {
	if i.service == nil {
		return nil, ErrIconizeNotInitialized
	}
	return i.service.NotifyChan(), nil
}

// Shutdown closes the registered source/writer factories. It should be
// called when the app is done with the pipeline.
func (i *Iconize) Shutdown(ctx context.Context) error {
	if i.service == nil {
		return ErrIconizeNotInitialized
	}
	i.service.Shutdown(ctx)
	return nil
}

// Entities returns the IDs of all registered Sources/Writers.
// The keys for the first map are:
//
//	"source"
//	"writer"
//
// Each of those keys holds the id/name of the source/writer types that
// have been registered.
func (i *Iconize) Entities() map[string]map[string]bool {
	return i.service.Entities()
}

func errWithDetails(err error, errDetails error) error {
	return fmt.Errorf("%w, details: %v", err, errDetails)
}
