package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/entity/transform"
	"github.com/vintern/iconize/internal/pkg/pathtmpl"
)

const testSvgDoc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 2048 2048"><path d="M0 0L10 10Z"/></svg>`

// fakeFontSource mimics a font resource: partial glyph records on
// extraction plus glyph export producing real files on disk.
type fakeFontSource struct {
	codes []string
}

func (s *fakeFontSource) ExtractTable(ctx context.Context) (entity.Table, error) {
	table := make(entity.Table)
	for i, code := range s.codes {
		table[entity.Code(code)] = entity.Record{
			entity.FieldCode:      code,
			entity.FieldGlyphName: "uni" + code,
			entity.FieldGlyph:     i + 1,
		}
	}
	return table, nil
}

func (s *fakeFontSource) ExportGlyphs(ctx context.Context, dir string) (entity.Table, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	table := make(entity.Table)
	for i, code := range s.codes {
		svgfile := filepath.Join(dir, fmt.Sprintf("%d.svg", i+1))
		if err := os.WriteFile(svgfile, []byte(testSvgDoc), 0644); err != nil {
			return nil, err
		}
		table[entity.Code(code)] = entity.Record{entity.FieldSvgFile: svgfile}
	}
	return table, nil
}

type fakeMetaSource struct {
	table entity.Table
}

func (s *fakeMetaSource) ExtractTable(ctx context.Context) (entity.Table, error) {
	return s.table, nil
}

type fakeFileWriter struct {
	copies   map[string]string // dst -> src
	shutdown bool
}

func (w *fakeFileWriter) Copy(ctx context.Context, srcPath, dstPath string) error {
	if w.copies == nil {
		w.copies = make(map[string]string)
	}
	w.copies[dstPath] = srcPath
	return nil
}

func (w *fakeFileWriter) Shutdown() {
	w.shutdown = true
}

type fakeSetWriter struct {
	written  []entity.Record
	shutdown bool
}

func (w *fakeSetWriter) WriteSet(ctx context.Context, records []entity.Record) error {
	w.written = records
	return nil
}

func (w *fakeSetWriter) Shutdown() {
	w.shutdown = true
}

func testPipelineSpec(t *testing.T, svgDir string) *entity.Spec {
	t.Helper()
	spec, err := entity.NewSpec([]byte(fmt.Sprintf(`
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [
	      {"type": "font", "path": "icons.ttf"},
	      {"type": "css", "path": "icons.css"}
	   ],
	   "svgDir": %q,
	   "fields": ["code", "iconname:icon:camelcase"],
	   "filters": [{"field": "group", "pattern": "md"}],
	   "outputs": [
	      {"format": "svg", "path": "{group}/{code}.svg"},
	      {"format": "json", "path": "icons.json"}
	   ]
	}
	`, svgDir)))
	require.NoError(t, err)
	return spec
}

func TestPipelineRun(t *testing.T) {

	svgDir := filepath.Join(t.TempDir(), "svg")
	spec := testPipelineSpec(t, svgDir)

	fontSource := &fakeFontSource{codes: []string{"e900", "e901"}}
	metaSource := &fakeMetaSource{table: entity.Table{
		"e900": {
			entity.FieldName:     "md-battery-full",
			entity.FieldGroup:    "md",
			entity.FieldIconName: "battery-full",
		},
		"e901": {
			entity.FieldName:     "fa-wifi",
			entity.FieldGroup:    "fa",
			entity.FieldIconName: "wifi",
		},
	}}

	formatter, err := pathtmpl.NewFilenameFormatter(
		"{group}/{code}.svg", entity.DefaultSvgExt, entity.DefaultSvgFilename,
		transform.NewInterpreter(nil))
	require.NoError(t, err)

	fileWriter := &fakeFileWriter{}
	setWriter := &fakeSetWriter{}
	notifyChan := make(entity.NotifyChan, 32)

	pipeline, err := NewPipeline(Config{
		Spec:       spec,
		Sources:    []entity.Source{fontSource, metaSource},
		SvgOutputs: []SvgOutput{{Writer: fileWriter, Formatter: formatter}},
		SetWriters: []entity.SetWriter{setWriter},
		NotifyChan: notifyChan,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pipeline.ID())

	require.NoError(t, pipeline.Run(context.Background()))

	// The fa record is filtered out, leaving the md one
	records := pipeline.Records()
	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "e900", record[entity.FieldCode])
	assert.Equal(t, "md-battery-full", record[entity.FieldName])

	// Glyph export contributed vector geometry to the merged record
	assert.Equal(t, "0 0 2048 2048", record[entity.FieldViewBox])
	assert.Equal(t, []string{"M0 0L10 10Z"}, record[entity.FieldPaths])

	// The exported file got copied to its rendered destination and the
	// record rewritten to point at it
	dst := filepath.Join("md", "e900.svg")
	assert.Equal(t, filepath.Join(svgDir, "1.svg"), fileWriter.copies[dst])
	assert.Equal(t, dst, record[entity.FieldSvgFile])

	// The set writer received the projected fields only
	require.Len(t, setWriter.written, 1)
	assert.Equal(t, entity.Record{"code": "e900", "icon": "batteryFull"}, setWriter.written[0])

	// Progress events were emitted
	assert.NotEmpty(t, len(notifyChan))

	// Shutdown reaches every writer
	pipeline.Shutdown()
	assert.True(t, fileWriter.shutdown)
	assert.True(t, setWriter.shutdown)
}

func TestPipelineRunFilterFieldMissing(t *testing.T) {

	spec, err := entity.NewSpec([]byte(`
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "icons.css"}],
	   "filters": [{"field": "group", "pattern": "md"}],
	   "outputs": [{"format": "json", "path": "icons.json"}]
	}
	`))
	require.NoError(t, err)

	source := &fakeMetaSource{table: entity.Table{
		"e900": {entity.FieldCode: "e900", entity.FieldName: "md-battery"},
	}}

	pipeline, err := NewPipeline(Config{
		Spec:    spec,
		Sources: []entity.Source{source},
	})
	require.NoError(t, err)

	err = pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group")
	assert.Nil(t, pipeline.Records())
}

func TestPipelineRunCreatesOutputDir(t *testing.T) {

	outDir := filepath.Join(t.TempDir(), "icons", "md")
	spec, err := entity.NewSpec([]byte(fmt.Sprintf(`
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "icons.css"}],
	   "filters": [{"field": "group", "pattern": "nomatch"}],
	   "outputs": [{"format": "svg", "path": "%s/{code}.svg"}]
	}
	`, outDir)))
	require.NoError(t, err)

	source := &fakeMetaSource{table: entity.Table{
		"e900": {entity.FieldCode: "e900", entity.FieldName: "md-battery", entity.FieldGroup: "md"},
	}}

	formatter, err := pathtmpl.NewFilenameFormatter(
		outDir+"/{code}.svg", entity.DefaultSvgExt, entity.DefaultSvgFilename,
		transform.NewInterpreter(nil))
	require.NoError(t, err)
	require.Equal(t, outDir, formatter.Dir())

	pipeline, err := NewPipeline(Config{
		Spec:       spec,
		Sources:    []entity.Source{source},
		SvgOutputs: []SvgOutput{{Writer: &fakeFileWriter{}, Formatter: formatter}},
	})
	require.NoError(t, err)

	// No record passes the filter, the static output dir still exists
	require.NoError(t, pipeline.Run(context.Background()))
	assert.Empty(t, pipeline.Records())
	info, err := os.Stat(outDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPipelineRunNoExportedFile(t *testing.T) {

	spec, err := entity.NewSpec([]byte(`
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "icons.css"}],
	   "outputs": [{"format": "svg", "path": "{code}.svg"}]
	}
	`))
	require.NoError(t, err)

	source := &fakeMetaSource{table: entity.Table{
		"e900": {entity.FieldCode: "e900", entity.FieldName: "md-battery"},
	}}

	formatter, err := pathtmpl.NewFilenameFormatter(
		"{code}.svg", entity.DefaultSvgExt, entity.DefaultSvgFilename,
		transform.NewInterpreter(nil))
	require.NoError(t, err)

	pipeline, err := NewPipeline(Config{
		Spec:       spec,
		Sources:    []entity.Source{source},
		SvgOutputs: []SvgOutput{{Writer: &fakeFileWriter{}, Formatter: formatter}},
	})
	require.NoError(t, err)

	err = pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no exported vector file")
}
