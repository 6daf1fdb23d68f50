package transform

import (
	"github.com/vintern/iconize/entity"
)

// Combine merges any number of Tables into one. The key set of the
// result is the union of all input key sets. For each key, the partial
// records are folded in table order with a shallow per-field merge, so
// when two tables both define a field for the same code the later table
// wins. Absent keys and fields are simply absent; Combine never fails.
func Combine(tables ...entity.Table) entity.Table {

	result := make(entity.Table)
	for _, table := range tables {
		for code, partial := range table {
			merged, ok := result[code]
			if !ok {
				merged = make(entity.Record, len(partial))
				result[code] = merged
			}
			for field, value := range partial {
				merged[field] = value
			}
		}
	}
	return result
}
