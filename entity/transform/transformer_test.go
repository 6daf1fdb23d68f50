package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintern/iconize/entity"
)

func testSpec(t *testing.T, specJson string) *entity.Spec {
	t.Helper()
	spec, err := entity.NewSpec([]byte(specJson))
	require.NoError(t, err)
	return spec
}

func TestTransformerMerge(t *testing.T) {

	spec := testSpec(t, `
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "a.css"}],
	   "outputs": [{"format": "json", "path": "out.json"}]
	}
	`)

	transformer, err := NewTransformer(spec, nil)
	require.NoError(t, err)

	fontTable := entity.Table{
		"e900": {"code": "e900", "glyphname": "uniE900", "glyph": 1},
		"e901": {"code": "e901", "glyphname": "uniE901", "glyph": 2},
		"e9fe": {"code": "e9fe", "glyphname": "uniE9FE", "glyph": 3},
		"e9ff": {"code": "e9ff", "glyphname": "uniE9FF", "glyph": 4},
	}
	cssTable := entity.Table{
		"e900": {"name": "md-battery", "group": "md", "iconname": "battery"},
		"e901": {"name": "fa-wifi", "group": "fa", "iconname": "wifi"},
		"e9fe": {"name": ""},
	}

	records := transformer.Merge(fontTable, cssTable)

	// Both the unnamed e9ff record and the empty-named e9fe record are
	// removed, the rest come out code-sorted
	require.Len(t, records, 2)
	assert.Equal(t, "e900", records[0]["code"])
	assert.Equal(t, "e901", records[1]["code"])
	assert.Equal(t, "md-battery", records[0]["name"])
	assert.Equal(t, 1, records[0]["glyph"])
}

func TestTransformerMergeKeepsUnnamed(t *testing.T) {

	spec := testSpec(t, `
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "a.css"}],
	   "requireNamed": false,
	   "outputs": [{"format": "json", "path": "out.json"}]
	}
	`)

	transformer, err := NewTransformer(spec, nil)
	require.NoError(t, err)

	records := transformer.Merge(entity.Table{
		"e900": {"code": "e900"},
		"e901": {"code": "e901", "name": ""},
	})
	assert.Len(t, records, 2)
}

func TestTransformerFilterAndProject(t *testing.T) {

	spec := testSpec(t, `
	{
	   "name": "icons",
	   "version": 1,
	   "resources": [{"type": "css", "path": "a.css"}],
	   "fields": ["code:id:upper", "name"],
	   "filters": [{"field": "group", "pattern": "md"}],
	   "outputs": [{"format": "json", "path": "out.json"}]
	}
	`)

	transformer, err := NewTransformer(spec, nil)
	require.NoError(t, err)

	records := []entity.Record{
		{"code": "e900", "name": "md-battery", "group": "md"},
		{"code": "e901", "name": "fa-wifi", "group": "fa"},
	}

	filtered, err := transformer.Filter(records)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	projected := transformer.Project(filtered)
	require.Len(t, projected, 1)
	assert.Equal(t, entity.Record{"id": "E900", "name": "md-battery"}, projected[0])
}
