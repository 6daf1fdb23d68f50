package transform

import (
	"fmt"
	"regexp"

	"github.com/vintern/iconize/entity"
)

// Predicate is one compiled (field, pattern) filter. The pattern is
// anchored at the start of the field value, so a pattern matching only a
// prefix of the value still passes.
type Predicate struct {
	Field   string
	pattern *regexp.Regexp
}

// NewPredicate compiles one filter from the spec.
func NewPredicate(filter entity.Filter) (Predicate, error) {
	// Anchor at the start without changing the pattern's own semantics.
	re, err := regexp.Compile("^(?:" + filter.Pattern + ")")
	if err != nil {
		return Predicate{}, fmt.Errorf("invalid filter pattern for field %s: %v", filter.Field, err)
	}
	return Predicate{Field: filter.Field, pattern: re}, nil
}

// NewPredicates compiles all filters from the spec.
func NewPredicates(filters []entity.Filter) ([]Predicate, error) {
	predicates := make([]Predicate, 0, len(filters))
	for _, filter := range filters {
		p, err := NewPredicate(filter)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

// Match reports whether the record passes this predicate. A record
// missing the filtered field entirely is a fatal lookup failure, not a
// silent exclusion; callers filtering on non-merge-guaranteed fields
// must pre-validate.
func (p Predicate) Match(record entity.Record) (bool, error) {
	value, presence := record.Lookup(p.Field)
	if presence == entity.Missing {
		return false, fmt.Errorf("record %s has no field %q to filter on", record.Code(), p.Field)
	}
	return p.pattern.MatchString(toString(value)), nil
}

// Filter returns the records passing every predicate, in input order,
// without deduplication. An empty predicate list passes every record.
func Filter(records []entity.Record, predicates []Predicate) ([]entity.Record, error) {

	result := make([]entity.Record, 0, len(records))
	for _, record := range records {
		pass := true
		for _, p := range predicates {
			match, err := p.Match(record)
			if err != nil {
				return nil, err
			}
			if !match {
				pass = false
				break
			}
		}
		if pass {
			result = append(result, record)
		}
	}
	return result, nil
}
