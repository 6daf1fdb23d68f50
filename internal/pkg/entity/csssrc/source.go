// Package csssrc implements the Style-sheet Data Source: it scans a
// stylesheet for icon-name declarations ("nf-<group>-<iconname>") and
// their associated escape-code values, producing per-icon textual
// metadata keyed by code.
package csssrc

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/vintern/iconize/entity"
)

const sourceTypeId = "css"

var (
	nameRegexp = regexp.MustCompile(`nf-(.*):`)
	codeRegexp = regexp.MustCompile(`"\\(.*)"`)
)

type SourceFactory struct {
}

func NewSourceFactory() entity.SourceFactory {
	return &SourceFactory{}
}

func (sf *SourceFactory) SourceId() string {
	return sourceTypeId
}

func (sf *SourceFactory) NewSource(ctx context.Context, c entity.Config) (entity.Source, error) {
	return newSource(c), nil
}

func (sf *SourceFactory) Close() error {
	return nil
}

type source struct {
	c entity.Config
}

func newSource(c entity.Config) *source {
	return &source{c: c}
}

// ExtractTable reads the stylesheet and returns one record per icon
// declaration: {code, name, group, iconname}. Declarations and escape
// codes are paired positionally, which is how the stylesheets this tool
// consumes are generated (one "nf-..." class per content rule).
func (s *source) ExtractTable(ctx context.Context) (entity.Table, error) {

	css, err := os.ReadFile(s.c.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read css file %s: %v", s.c.Path, err)
	}
	return Extract(string(css))
}

// Extract parses stylesheet text. Exposed separately from the file-bound
// source for testability and for callers holding the text already.
func Extract(css string) (entity.Table, error) {

	names := collectGroup(nameRegexp, css)
	codes := collectGroup(codeRegexp, css)

	if len(names) != len(codes) {
		return nil, fmt.Errorf("css declaration mismatch: %d icon names vs %d codes", len(names), len(codes))
	}

	table := make(entity.Table, len(names))
	for i, name := range names {
		group, iconname := splitName(name)
		code := entity.Code(codes[i])
		table[code] = entity.Record{
			entity.FieldCode:     codes[i],
			entity.FieldName:     name,
			entity.FieldGroup:    group,
			entity.FieldIconName: iconname,
		}
	}
	return table, nil
}

func collectGroup(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m[1])
	}
	return result
}

// splitName splits "md-battery-full" into group "md" and iconname
// "battery-full" on the first dash.
func splitName(name string) (group, iconname string) {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
