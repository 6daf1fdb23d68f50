package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Code is the join key shared by all data sources: a lowercase
// hexadecimal string identifying one icon, e.g. "e900".
type Code string

// Table maps Codes to the partial records contributed by one data source.
// Different sources populate different (possibly overlapping) field
// subsets for the same code.
type Table map[Code]Record

// Record holds the fields known for one Code. The canonical field set is
// code, name, glyphname, iconname, group, glyph (int), svgfile (string),
// viewbox (string) and paths ([]string), but no field is guaranteed to be
// present. Absence of a field is distinct from a present-but-empty value;
// use Lookup to tell the two apart.
type Record map[string]any

// Canonical record field names.
const (
	FieldCode      = "code"
	FieldName      = "name"
	FieldGlyphName = "glyphname"
	FieldIconName  = "iconname"
	FieldGroup     = "group"
	FieldGlyph     = "glyph"
	FieldSvgFile   = "svgfile"
	FieldViewBox   = "viewbox"
	FieldPaths     = "paths"
)

// Presence is the outcome of a field lookup. It keeps "field not there"
// apart from "field there but empty/zero", which the formatting rules
// otherwise conflate.
type Presence int

const (
	Missing Presence = iota // field does not exist in the record
	Empty                   // field exists with an empty/zero value
	Present                 // field exists with a non-empty value
)

// Lookup returns the value of the named field together with its Presence.
// A value counts as Empty if it is an empty string, a zero int, or an
// empty slice.
func (r Record) Lookup(field string) (any, Presence) {
	value, ok := r[field]
	if !ok {
		return nil, Missing
	}
	if isEmptyValue(value) {
		return value, Empty
	}
	return value, Present
}

// Code returns the record's join key, or "" if not set.
func (r Record) Code() Code {
	code, _ := r[FieldCode].(string)
	return Code(code)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func (r Record) String() string {

	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var strOut = "{ "
	for j, key := range keys {
		if j > 0 {
			strOut += ", "
		}
		var str string
		switch value := r[key].(type) {
		case int:
			str = fmt.Sprintf("%d (int)", value)
		case int64:
			str = fmt.Sprintf("%d (int64)", value)
		case string:
			str = fmt.Sprintf("%s (string)", value)
		case []string:
			str = fmt.Sprintf("[%s] ([]string)", strings.Join(value, ", "))
		default:
			str = fmt.Sprintf("%v (%T)", value, value)
		}
		strOut += fmt.Sprintf("\"%s\": \"%s\"", key, str)
	}
	return strOut + " }"
}
