// Package svgsrc implements the Vector Image Data Source: given exported
// SVG files it extracts each file's bounding box (viewBox) and the
// ordered list of its path geometry ("d") attributes.
package svgsrc

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/vintern/iconize/entity"
)

// svgDoc is the subset of the SVG root element this source cares about.
type svgDoc struct {
	ViewBox string `xml:"viewBox,attr"`
	Paths   []struct {
		D string `xml:"d,attr"`
	} `xml:"path"`
}

// Source extracts vector geometry from exported SVG files. It is driven
// by a {svgfile} table (as produced by glyph export) rather than a
// resource path, so it has no factory; the engine constructs it directly.
type Source struct {
	files entity.Table
}

func NewSource(files entity.Table) *Source {
	return &Source{files: files}
}

// ExtractTable parses every svgfile in the input table and returns a
// {viewbox, paths} record per code.
func (s *Source) ExtractTable(ctx context.Context) (entity.Table, error) {

	table := make(entity.Table, len(s.files))
	for code, record := range s.files {
		svgfile, presence := record.Lookup(entity.FieldSvgFile)
		if presence != entity.Present {
			continue
		}
		extracted, err := ExtractFile(svgfile.(string))
		if err != nil {
			return nil, err
		}
		table[code] = extracted
	}
	return table, nil
}

// ExtractFile parses one SVG file into a {viewbox, paths} record.
func ExtractFile(path string) (entity.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read svg file %s: %v", path, err)
	}
	record, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse svg file %s: %v", path, err)
	}
	return record, nil
}

// Extract parses SVG bytes into a {viewbox, paths} record.
func Extract(data []byte) (entity.Record, error) {
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(doc.Paths))
	for _, p := range doc.Paths {
		paths = append(paths, p.D)
	}
	return entity.Record{
		entity.FieldViewBox: doc.ViewBox,
		entity.FieldPaths:   paths,
	}, nil
}
