// Package jsonsrc implements a JSON metadata source for glyph-name
// documents of the form
//
//	{
//	  "METADATA": { ... },
//	  "md-battery-full": { "char": "...", "code": "f0079" }
//	}
//
// i.e. one top-level member per icon, keyed "<group>-<iconname>", with
// the code in a nested field.
package jsonsrc

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vintern/iconize/entity"
)

const sourceTypeId = "json"

// Metadata members to skip (not icon entries).
const metadataKey = "METADATA"

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

// ExtractTable returns one {code, name, group, iconname} record per icon
// member. Members without a code field are skipped.
func (s *source) ExtractTable(ctx context.Context) (entity.Table, error) {

	data, err := os.ReadFile(s.c.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read json file %s: %v", s.c.Path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json in %s", s.c.Path)
	}
	return Extract(data), nil
}

// Extract parses a glyph-name JSON document. Exposed separately from the
// file-bound source for testability.
func Extract(data []byte) entity.Table {

	table := make(entity.Table)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == metadataKey || !value.IsObject() {
			return true
		}
		code := strings.ToLower(value.Get("code").String())
		if code == "" {
			return true
		}
		group, iconname := splitName(name)
		table[entity.Code(code)] = entity.Record{
			entity.FieldCode:     code,
			entity.FieldName:     name,
			entity.FieldGroup:    group,
			entity.FieldIconName: iconname,
		}
		return true
	})
	return table
}

func splitName(name string) (group, iconname string) {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
