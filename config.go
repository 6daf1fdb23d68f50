package iconize

import (
	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/entity/transform"
	"github.com/vintern/iconize/internal/pkg/entity/csssrc"
	"github.com/vintern/iconize/internal/pkg/entity/filesink"
	"github.com/vintern/iconize/internal/pkg/entity/fontsrc"
	"github.com/vintern/iconize/internal/pkg/entity/jsonsink"
	"github.com/vintern/iconize/internal/pkg/entity/jsonsrc"
	"github.com/vintern/iconize/internal/service"
)

// Config needs to be created with NewConfig() and filled in with config
// as applicable for the intended setup, and provided in the call to
// iconize.New(). All config fields are optional.
type Config struct {
	Ops OpsConfig

	// Modifiers replaces the default field modifier registry. If nil the
	// default set (camelcase, upper, lower) is used; start from
	// transform.DefaultModifiers() to extend rather than replace.
	Modifiers transform.ModifierRegistry

	// Sources and Writers are added to the config with
	// Config.RegisterSourceType() and Config.RegisterWriterType().
	sources entity.SourceFactories
	writers entity.WriterFactories
}

// OpsConfig provides options for observability.
type OpsConfig struct {

	// Size of the notification channel buffer
	NotifyChanSize int

	// If set to true native logging will be used (debug, info, warn, and
	// error logs). If set to false (default) no standard logging will be
	// done, but the same type of information will be provided on the
	// notification channel, accessible with Iconize.NotifyChannel().
	Log bool
}

// NewConfig returns an initialized Config struct, required for
// iconize.New(). With this config, custom source/writer types can be
// registered before calling iconize.New().
func NewConfig() *Config {
	return &Config{
		sources: make(entity.SourceFactories),
		writers: make(entity.WriterFactories),
	}
}

// RegisterSourceType makes this particular resource source type
// available for conversion specs to use. This can only be done after a
// NewConfig() and prior to creating the pipeline with New().
func (c *Config) RegisterSourceType(sourceFactory entity.SourceFactory) error {
	if _, ok := entity.ReservedEntityNames[sourceFactory.SourceId()]; ok {
		return ErrInvalidEntityId
	}
	c.registerSourceType(sourceFactory)
	return nil
}

// RegisterWriterType makes this particular output writer type available
// for conversion specs to use. This can only be done after a NewConfig()
// and prior to creating the pipeline with New().
func (c *Config) RegisterWriterType(writerFactory entity.WriterFactory) error {
	if _, ok := entity.ReservedEntityNames[writerFactory.FormatId()]; ok {
		return ErrInvalidEntityId
	}
	c.registerWriterType(writerFactory)
	return nil
}

func (c *Config) registerSourceType(sourceFactory entity.SourceFactory) {
	c.sources[sourceFactory.SourceId()] = sourceFactory
}

func (c *Config) registerWriterType(writerFactory entity.WriterFactory) {
	c.writers[writerFactory.FormatId()] = writerFactory
}

func preProcessConfig(spec *entity.Spec, config *Config) service.Config {

	// Register native source/writer types
	config.registerSourceType(fontsrc.NewSourceFactory())
	config.registerSourceType(csssrc.NewSourceFactory())
	config.registerSourceType(jsonsrc.NewSourceFactory())
	config.registerWriterType(filesink.NewWriterFactory())
	config.registerWriterType(jsonsink.NewWriterFactory())

	// Convert external config to internal
	var c service.Config
	c.Spec = spec
	c.Sources = config.sources
	c.Writers = config.writers
	c.Modifiers = config.Modifiers
	c.NotifyChanSize = config.Ops.NotifyChanSize
	c.Log = config.Ops.Log

	return c
}
