// Package service assembles a runnable Pipeline from a validated
// conversion spec and the registered source/writer factories.
package service

import (
	"context"
	"fmt"

	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/entity/transform"
	"github.com/vintern/iconize/internal/pkg/engine"
	"github.com/vintern/iconize/internal/pkg/pathtmpl"
)

const defaultNotifyChanSize = 128

// Config is the internal service config, converted from the public
// iconize.Config by the root package.
type Config struct {
	Spec           *entity.Spec
	Sources        entity.SourceFactories
	Writers        entity.WriterFactories
	Modifiers      transform.ModifierRegistry
	NotifyChanSize int
	Log            bool
}

// Service owns the notify channel and the assembled pipeline.
type Service struct {
	config     Config
	notifyChan entity.NotifyChan
	pipeline   *engine.Pipeline
}

// New builds sources for every spec resource and writers for every spec
// output, then creates the pipeline. Unknown resource types and output
// formats are assembly errors.
func New(ctx context.Context, config Config) (*Service, error) {

	s := &Service{config: config}

	chanSize := config.NotifyChanSize
	if chanSize <= 0 {
		chanSize = defaultNotifyChanSize
	}
	s.notifyChan = make(entity.NotifyChan, chanSize)

	interpreter := transform.NewInterpreter(config.Modifiers)

	engineConfig := engine.Config{
		Spec:        config.Spec,
		Interpreter: interpreter,
		NotifyChan:  s.notifyChan,
		Log:         config.Log,
	}

	for _, resource := range config.Spec.Resources {
		factory, ok := config.Sources[string(resource.Type)]
		if !ok {
			return nil, fmt.Errorf("no source registered for resource type %q", resource.Type)
		}
		source, err := factory.NewSource(ctx, s.entityConfig(resource.Path))
		if err != nil {
			return nil, fmt.Errorf("could not create source for resource %s: %v", resource.Path, err)
		}
		engineConfig.Sources = append(engineConfig.Sources, source)
	}

	for _, output := range config.Spec.Outputs {
		factory, ok := config.Writers[output.Format]
		if !ok {
			return nil, fmt.Errorf("no writer registered for output format %q", output.Format)
		}
		writer, err := factory.NewWriter(ctx, s.entityConfig(output.Path))
		if err != nil {
			return nil, fmt.Errorf("could not create writer for output %s: %v", output.Path, err)
		}

		switch w := writer.(type) {
		case entity.FileWriter:
			formatter, err := pathtmpl.NewFilenameFormatter(
				output.Path, entity.DefaultSvgExt, entity.DefaultSvgFilename, interpreter)
			if err != nil {
				return nil, err
			}
			engineConfig.SvgOutputs = append(engineConfig.SvgOutputs, engine.SvgOutput{
				Writer:    w,
				Formatter: formatter,
			})
		case entity.SetWriter:
			engineConfig.SetWriters = append(engineConfig.SetWriters, w)
		default:
			return nil, fmt.Errorf("writer for format %q implements neither FileWriter nor SetWriter", output.Format)
		}
	}

	pipeline, err := engine.NewPipeline(engineConfig)
	if err != nil {
		return nil, err
	}
	s.pipeline = pipeline
	return s, nil
}

func (s *Service) Pipeline() *engine.Pipeline {
	return s.pipeline
}

func (s *Service) NotifyChan() entity.NotifyChan {
	return s.notifyChan
}

// Run executes the pipeline once.
func (s *Service) Run(ctx context.Context) error {
	return s.pipeline.Run(ctx)
}

// Shutdown shuts down the pipeline's writers and closes all registered
// factories.
func (s *Service) Shutdown(ctx context.Context) {
	s.pipeline.Shutdown()
	for _, factory := range s.config.Sources {
		_ = factory.Close()
	}
	for _, factory := range s.config.Writers {
		_ = factory.Close()
	}
}

// Entities returns the IDs of all registered source/writer types.
func (s *Service) Entities() map[string]map[string]bool {
	e := map[string]map[string]bool{
		"source": make(map[string]bool),
		"writer": make(map[string]bool),
	}
	for id := range s.config.Sources {
		e["source"][id] = true
	}
	for id := range s.config.Writers {
		e["writer"][id] = true
	}
	return e
}

func (s *Service) entityConfig(path string) entity.Config {
	return entity.Config{
		Spec:       s.config.Spec,
		ID:         s.config.Spec.Id(),
		Path:       path,
		NotifyChan: s.notifyChan,
		Log:        s.config.Log,
	}
}
