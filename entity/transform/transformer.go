package transform

import (
	"sort"

	"github.com/vintern/iconize/entity"
)

// Transformer is the spec-driven facade over the combine/filter/project
// primitives (stateless, immutable). It compiles the transformation
// rules of a conversion Spec once and applies them to merged tables.
type Transformer struct {
	spec       *entity.Spec
	predicates []Predicate
	projector  *Projector
}

// NewTransformer compiles the spec's filters and output field specs with
// the provided interpreter. A nil interpreter gets the default modifier
// registry.
func NewTransformer(spec *entity.Spec, interpreter *Interpreter) (*Transformer, error) {

	if interpreter == nil {
		interpreter = NewInterpreter(nil)
	}

	predicates, err := NewPredicates(spec.Filters)
	if err != nil {
		return nil, err
	}

	projector, err := NewProjector(interpreter, spec.Fields)
	if err != nil {
		return nil, err
	}

	return &Transformer{
		spec:       spec,
		predicates: predicates,
		projector:  projector,
	}, nil
}

// Merge combines the per-source tables and returns the merged records in
// deterministic (code-sorted) order, with unnamed records removed if the
// spec requires a name.
func (t *Transformer) Merge(tables ...entity.Table) []entity.Record {

	merged := Combine(tables...)
	if *t.spec.RequireNamed {
		merged = removeUnnamed(merged)
	}
	return sortedRecords(merged)
}

// Filter applies the spec's predicates to the merged record set.
func (t *Transformer) Filter(records []entity.Record) ([]entity.Record, error) {
	return Filter(records, t.predicates)
}

// Project renders the spec's output fields for each record.
func (t *Transformer) Project(records []entity.Record) []entity.Record {
	return t.projector.ProjectAll(records)
}

// removeUnnamed drops records whose name field is missing or empty.
// Unnamed glyphs are control/notdef entries with no icon meaning.
func removeUnnamed(table entity.Table) entity.Table {
	result := make(entity.Table, len(table))
	for code, record := range table {
		if _, presence := record.Lookup(entity.FieldName); presence == entity.Present {
			result[code] = record
		}
	}
	return result
}

func sortedRecords(table entity.Table) []entity.Record {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)

	records := make([]entity.Record, 0, len(codes))
	for _, code := range codes {
		records = append(records, table[entity.Code(code)])
	}
	return records
}
