package transform

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vintern/iconize/entity"
)

// Delimiter between the tokens of a field spec.
const SpecDelimiter = ":"

// Modifier is a named, pure value transform applicable to a field's
// string value, e.g. case conversion.
type Modifier func(string) string

// ModifierRegistry maps modifier names to their transforms. The registry
// is injected into NewInterpreter so that callers (and tests) can extend
// or replace the built-in set without global state.
type ModifierRegistry map[string]Modifier

// DefaultModifiers returns the built-in modifier set:
//
//	camelcase - dash/underscore-joined words to lowerCamelCase
//	upper     - upper-case the whole value
//	lower     - lower-case the whole value
func DefaultModifiers() ModifierRegistry {
	return ModifierRegistry{
		"camelcase": strcase.ToLowerCamel,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
	}
}

// Interpreter parses field specs on the grammar
//
//	field[:newName[:modifier...]]   (rename allowed)
//	field[:modifier...]             (rename not allowed)
//
// against its modifier registry. Unknown modifier names are silently
// dropped from the chain.
type Interpreter struct {
	modifiers ModifierRegistry
}

// NewInterpreter creates an Interpreter with the provided registry.
// A nil registry gets the default modifier set.
func NewInterpreter(modifiers ModifierRegistry) *Interpreter {
	if modifiers == nil {
		modifiers = DefaultModifiers()
	}
	return &Interpreter{modifiers: modifiers}
}

// Parse compiles one field spec into a FieldFormatter. The only parse
// error is an empty source field name.
func (i *Interpreter) Parse(spec string, allowRename bool) (*FieldFormatter, error) {

	tokens := strings.Split(spec, SpecDelimiter)
	if tokens[0] == "" {
		return nil, fmt.Errorf("field spec %q has no source field name", spec)
	}

	f := &FieldFormatter{
		name:    tokens[0],
		newName: tokens[0],
	}

	modifierTokens := tokens[1:]
	if allowRename && len(tokens) > 1 {
		if tokens[1] != "" {
			f.newName = tokens[1]
		}
		modifierTokens = tokens[2:]
	}

	for _, token := range modifierTokens {
		if m, ok := i.modifiers[token]; ok {
			f.modifiers = append(f.modifiers, m)
		}
	}
	return f, nil
}

// FieldFormatter applies one parsed field spec to records: it selects the
// source field, applies the modifier chain in order and emits the value
// under the output name.
type FieldFormatter struct {
	name      string
	newName   string
	modifiers []Modifier
}

// Name returns the source field name.
func (f *FieldFormatter) Name() string {
	return f.name
}

// NewName returns the output field name (equal to Name without rename).
func (f *FieldFormatter) NewName() string {
	return f.newName
}

// Format looks up the source field in the record and returns the output
// name and transformed value. ok is false when the field is missing from
// the record or present with an empty/zero value; such fields are to be
// omitted from the output entirely, not emitted as empty. Both cases are
// dropped on purpose (keeping the established pipeline behavior); use
// Record.Lookup directly where the distinction matters.
func (f *FieldFormatter) Format(record entity.Record) (name string, value any, ok bool) {
	v, presence := record.Lookup(f.name)
	if presence != entity.Present {
		return "", nil, false
	}
	return f.newName, f.applyModifiers(v), true
}

// Modifiers operate on strings; non-string values pass through the chain
// via their string form only if a chain is present, otherwise unchanged.
func (f *FieldFormatter) applyModifiers(value any) any {
	if len(f.modifiers) == 0 {
		return value
	}
	s := toString(value)
	for _, m := range f.modifiers {
		s = m(s)
	}
	return s
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
