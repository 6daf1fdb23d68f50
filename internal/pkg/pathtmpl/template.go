// Package pathtmpl renders filename templates containing embedded field
// specs, e.g. "icons/{group}/{code:upper}.svg", into concrete per-record
// destination paths. Templates are parsed into an explicit AST of
// literal and placeholder segments; rendering with a record lacking a
// referenced field fails with a typed MissingValueError rather than
// producing an empty path.
package pathtmpl

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vintern/iconize/entity"
	"github.com/vintern/iconize/entity/transform"
)

// MissingValueError is returned by Render when a placeholder's field has
// no substitution, i.e. the record misses the field or holds an empty
// value for it.
type MissingValueError struct {
	Field    string
	Template string
	Code     entity.Code
	Presence entity.Presence
}

func (e *MissingValueError) Error() string {
	cause := "missing from record"
	if e.Presence == entity.Empty {
		cause = "empty in record"
	}
	return fmt.Sprintf("template %q: value for {%s} %s %s", e.Template, e.Field, cause, e.Code)
}

type segment struct {
	literal string // used when field is empty
	field   string
}

// Template is a parsed filename template: a sequence of literal and
// named placeholder segments.
type Template struct {
	raw      string
	segments []segment
}

// Parse builds a Template from a path string. Placeholders are bare
// "{field}" names; an unterminated brace is a parse error.
func Parse(raw string) (*Template, error) {

	t := &Template{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, fmt.Errorf("template %q: unterminated placeholder", raw)
		}
		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
		}
		t.segments = append(t.segments, segment{field: rest[open+1 : open+closing]})
		rest = rest[open+closing+1:]
	}
	if rest != "" {
		t.segments = append(t.segments, segment{literal: rest})
	}
	return t, nil
}

// String returns the raw template text.
func (t *Template) String() string {
	return t.raw
}

// Render substitutes values into the template. Every placeholder must
// have a value in the substitution map or rendering fails with a
// MissingValueError.
func (t *Template) Render(values map[string]string) (string, error) {

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.field == "" {
			b.WriteString(seg.literal)
			continue
		}
		value, ok := values[seg.field]
		if !ok {
			return "", &MissingValueError{Field: seg.field, Template: t.raw}
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

// FilenameFormatter renders a destination path per record from a
// template path containing embedded no-rename field specs
// ("{field[:modifier...]}"). The static leading directory part is
// available via Dir() for eager creation; any directory segment still
// containing a placeholder is deferred into the filename template since
// it cannot be created until render time.
type FilenameFormatter struct {
	dir        string
	template   *Template
	formatters []*transform.FieldFormatter
}

// NewFilenameFormatter builds a formatter for path. If path does not end
// with ext, the whole path is treated as a directory and
// defaultName+ext (itself a template) is appended inside it.
func NewFilenameFormatter(path, ext, defaultName string, interpreter *transform.Interpreter) (*FilenameFormatter, error) {

	if ext != "" && defaultName != "" && !strings.HasSuffix(path, ext) {
		path = filepath.Join(path, defaultName+ext)
	}

	dir, filename := splitPath(path)

	bare, specs, err := stripSpecs(filename)
	if err != nil {
		return nil, err
	}

	template, err := Parse(bare)
	if err != nil {
		return nil, err
	}

	f := &FilenameFormatter{dir: dir, template: template}
	for _, spec := range specs {
		formatter, err := interpreter.Parse(spec, false)
		if err != nil {
			return nil, err
		}
		f.formatters = append(f.formatters, formatter)
	}
	return f, nil
}

// Dir returns the static directory part of the template, free of
// placeholders. It may be empty.
func (f *FilenameFormatter) Dir() string {
	return f.dir
}

// Render computes the destination path for one record. Field values that
// are absent produce no substitution, so any placeholder they feed fails
// the render with a MissingValueError naming the record.
func (f *FilenameFormatter) Render(record entity.Record) (string, error) {

	values := make(map[string]string, len(f.formatters))
	for _, formatter := range f.formatters {
		name, value, ok := formatter.Format(record)
		if !ok {
			continue
		}
		values[name] = fmt.Sprintf("%v", value)
	}

	rendered, err := f.template.Render(values)
	if err != nil {
		if mve, ok := err.(*MissingValueError); ok {
			mve.Code = record.Code()
			_, mve.Presence = record.Lookup(mve.Field)
		}
		return "", err
	}
	if f.dir != "" {
		rendered = filepath.Join(f.dir, rendered)
	}
	return rendered, nil
}

// splitPath splits off the trailing path segment as the filename and
// peels directory segments back into the filename, innermost first,
// until no directory segment contains a placeholder.
func splitPath(path string) (dir, filename string) {
	dir, filename = filepath.Split(path)
	dir = strings.TrimSuffix(dir, string(filepath.Separator))
	for strings.ContainsRune(dir, '{') {
		var peeled string
		dir, peeled = filepath.Split(dir)
		dir = strings.TrimSuffix(dir, string(filepath.Separator))
		filename = filepath.Join(peeled, filename)
	}
	return dir, filename
}

// stripSpecs replaces each "{field[:modifier...]}" placeholder with a
// bare "{field}" and collects the embedded field specs in order.
func stripSpecs(filename string) (bare string, specs []string, err error) {

	var b strings.Builder
	rest := filename
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", nil, fmt.Errorf("template %q: unterminated placeholder", filename)
		}
		spec := rest[open+1 : open+closing]
		field := spec
		if i := strings.Index(spec, transform.SpecDelimiter); i >= 0 {
			field = spec[:i]
		}
		b.WriteString(rest[:open])
		b.WriteString("{" + field + "}")
		specs = append(specs, spec)
		rest = rest[open+closing+1:]
	}
	b.WriteString(rest)
	return b.String(), specs, nil
}
