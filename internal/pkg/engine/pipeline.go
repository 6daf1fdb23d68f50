// Package engine executes one conversion run: extract a table per
// resource, export glyph vector files, combine the tables into merged
// records, filter, write per-record and per-set outputs, and project the
// requested fields.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/teltech/logger"

	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/entity/transform"
	"github.com/vintern/iconize/internal/pkg/entity/svgsrc"
	"github.com/vintern/iconize/internal/pkg/pathtmpl"
	"github.com/vintern/iconize/pkg/notify"
)

// SvgOutput pairs a file writer with its compiled filename template.
type SvgOutput struct {
	Writer    entity.FileWriter
	Formatter *pathtmpl.FilenameFormatter
}

// Config holds the assembled collaborators for one Pipeline.
type Config struct {
	Spec        *entity.Spec
	Sources     []entity.Source // in spec resource order
	SvgOutputs  []SvgOutput
	SetWriters  []entity.SetWriter
	Interpreter *transform.Interpreter
	NotifyChan  entity.NotifyChan
	Log         bool
}

// Pipeline is the single-run, synchronous execution engine. All
// processing is sequential; the only side effects are file writes
// (glyph export, directory creation, output copies). Any error aborts
// the run.
type Pipeline struct {
	id          string
	config      Config
	transformer *transform.Transformer
	notifier    *notify.Notifier
	records     []entity.Record
}

func NewPipeline(config Config) (*Pipeline, error) {

	transformer, err := transform.NewTransformer(config.Spec, config.Interpreter)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		id:          uuid.New().String(),
		config:      config,
		transformer: transformer,
	}

	var log *logger.Log
	if config.Log {
		log = logger.New()
	}
	p.notifier = notify.New(config.NotifyChan, log, "pipeline", p.id, config.Spec.Id())
	return p, nil
}

func (p *Pipeline) ID() string {
	return p.id
}

// Shutdown shuts down all writers of the pipeline.
func (p *Pipeline) Shutdown() {
	for _, output := range p.config.SvgOutputs {
		output.Writer.Shutdown()
	}
	for _, writer := range p.config.SetWriters {
		writer.Shutdown()
	}
}

// Records returns the merged, filtered record set from the last Run.
func (p *Pipeline) Records() []entity.Record {
	return p.records
}

// Run executes the pipeline once. Tables are built as read-only
// snapshots in resource order; a source backed by a font resource
// additionally exports its glyphs and contributes the exported file
// table and the extracted vector geometry table directly after its own.
func (p *Pipeline) Run(ctx context.Context) error {

	p.records = nil

	tables, err := p.buildTables(ctx)
	if err != nil {
		return err
	}

	records := p.transformer.Merge(tables...)
	p.notifier.Notify(entity.NotifyLevelInfo, "merged %d records from %d tables", len(records), len(tables))

	records, err = p.transformer.Filter(records)
	if err != nil {
		return err
	}
	p.notifier.Notify(entity.NotifyLevelInfo, "%d records after filtering", len(records))

	for _, output := range p.config.SvgOutputs {
		if err := p.exportRecords(ctx, output, records); err != nil {
			return err
		}
	}

	projected := p.transformer.Project(records)
	for _, writer := range p.config.SetWriters {
		if err := writer.WriteSet(ctx, projected); err != nil {
			return err
		}
	}

	p.records = records
	p.notifier.Notify(entity.NotifyLevelInfo, "run completed, %d records emitted", len(projected))
	return nil
}

func (p *Pipeline) buildTables(ctx context.Context) ([]entity.Table, error) {

	var tables []entity.Table
	for i, source := range p.config.Sources {
		table, err := source.ExtractTable(ctx)
		if err != nil {
			return nil, fmt.Errorf("resource %d (%s): %v", i, p.config.Spec.Resources[i].Type, err)
		}
		tables = append(tables, table)

		exporter, ok := source.(entity.GlyphExporter)
		if !ok {
			continue
		}
		files, err := exporter.ExportGlyphs(ctx, p.config.Spec.SvgDir)
		if err != nil {
			return nil, fmt.Errorf("glyph export to %s: %v", p.config.Spec.SvgDir, err)
		}
		p.notifier.Notify(entity.NotifyLevelInfo, "exported %d glyphs to %s", len(files), p.config.Spec.SvgDir)

		geometry, err := svgsrc.NewSource(files).ExtractTable(ctx)
		if err != nil {
			return nil, err
		}
		tables = append(tables, files, geometry)
	}
	return tables, nil
}

// exportRecords copies each record's exported vector file to its
// rendered destination and rewrites the record's svgfile field in place
// to the new location. A record lacking a field referenced by the
// filename template, or lacking an exported file, fails the run.
func (p *Pipeline) exportRecords(ctx context.Context, output SvgOutput, records []entity.Record) error {

	// The static part of the destination template is known up front, so
	// the output root exists even for an empty record set. Per-record
	// placeholder directories are created by the writer at copy time.
	if dir := output.Formatter.Dir(); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create output directory %s: %v", dir, err)
		}
	}

	for _, record := range records {
		dst, err := output.Formatter.Render(record)
		if err != nil {
			return err
		}

		src, presence := record.Lookup(entity.FieldSvgFile)
		if presence != entity.Present {
			return fmt.Errorf("record %s has no exported vector file to copy", record.Code())
		}

		if err := output.Writer.Copy(ctx, src.(string), dst); err != nil {
			return fmt.Errorf("record %s: %v", record.Code(), err)
		}
		record[entity.FieldSvgFile] = dst
	}
	p.notifier.Notify(entity.NotifyLevelInfo, "wrote %d vector files", len(records))
	return nil
}
