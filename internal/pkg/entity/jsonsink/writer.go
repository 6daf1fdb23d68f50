// Package jsonsink writes the projected record set to a single JSON
// document: an array with one object per record, fields in record
// insertion-independent (sorted) order.
package jsonsink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/vintern/iconize/entity"
)

const formatId = "json"

type WriterFactory struct {
}

func NewWriterFactory() entity.WriterFactory {
	return &WriterFactory{}
}

func (wf *WriterFactory) FormatId() string {
	return formatId
}

func (wf *WriterFactory) NewWriter(ctx context.Context, c entity.Config) (entity.Writer, error) {
	return newWriter(c), nil
}

func (wf *WriterFactory) Close() error {
	return nil
}

type writer struct {
	c entity.Config
}

func newWriter(c entity.Config) *writer {
	return &writer{c: c}
}

// WriteSet marshals the record set and writes it to the output path,
// creating parent directories as needed.
func (w *writer) WriteSet(ctx context.Context, records []entity.Record) error {

	doc, err := Marshal(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for %s: %v", w.c.Path, err)
		}
	}
	if err := os.WriteFile(w.c.Path, doc, 0644); err != nil {
		return fmt.Errorf("could not write json output %s: %v", w.c.Path, err)
	}
	return nil
}

func (w *writer) Shutdown() {}

// Marshal builds the JSON array document from the records, with each
// record's fields emitted in sorted key order for stable output.
func Marshal(records []entity.Record) ([]byte, error) {

	doc := []byte("[]")
	var err error
	for i, record := range records {
		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		item := []byte("{}")
		for _, key := range keys {
			item, err = sjson.SetBytes(item, escapePath(key), record[key])
			if err != nil {
				return nil, fmt.Errorf("could not marshal record %s field %s: %v", record.Code(), key, err)
			}
		}
		doc, err = sjson.SetRawBytes(doc, fmt.Sprintf("%d", i), item)
		if err != nil {
			return nil, fmt.Errorf("could not marshal record %s: %v", record.Code(), err)
		}
	}
	return doc, nil
}

// Field names come from the rename grammar and may contain characters
// that are path syntax to sjson; they must be set as literal keys.
var pathEscaper = strings.NewReplacer(
	"\\", "\\\\",
	".", "\\.",
	"*", "\\*",
	"?", "\\?",
)

func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
