package transform

import (
	"github.com/vintern/iconize/entity"
)

// Projector renders the fields a caller requested into output records,
// using rename-allowed field specs.
type Projector struct {
	formatters []*FieldFormatter
}

// NewProjector compiles the provided field specs with the interpreter.
// An empty spec list yields a pass-through projector.
func NewProjector(interpreter *Interpreter, fieldSpecs []string) (*Projector, error) {

	p := &Projector{}
	for _, spec := range fieldSpecs {
		f, err := interpreter.Parse(spec, true)
		if err != nil {
			return nil, err
		}
		p.formatters = append(p.formatters, f)
	}
	return p, nil
}

// Project applies each field formatter to the record and collects all
// non-absent (name, value) pairs into a fresh record. Fields not
// requested, or producing an absent result, are not present in the
// output at all. With no field specs configured the record is returned
// as a shallow copy.
func (p *Projector) Project(record entity.Record) entity.Record {

	if len(p.formatters) == 0 {
		return record.Clone()
	}

	out := make(entity.Record, len(p.formatters))
	for _, f := range p.formatters {
		if name, value, ok := f.Format(record); ok {
			out[name] = value
		}
	}
	return out
}

// ProjectAll maps Project over a record slice, preserving order.
func (p *Projector) ProjectAll(records []entity.Record) []entity.Record {
	out := make([]entity.Record, 0, len(records))
	for _, record := range records {
		out = append(out, p.Project(record))
	}
	return out
}
