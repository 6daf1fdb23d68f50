package jsonsink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vintern/iconize/entity"
)

func TestMarshal(t *testing.T) {

	records := []entity.Record{
		{"code": "e900", "name": "md-battery", "paths": []string{"M0 0 Z"}},
		{"code": "e901", "name": "fa-wifi"},
	}

	doc, err := Marshal(records)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(doc))

	parsed := gjson.ParseBytes(doc)
	require.True(t, parsed.IsArray())
	require.Len(t, parsed.Array(), 2)

	assert.Equal(t, "e900", parsed.Get("0.code").String())
	assert.Equal(t, "md-battery", parsed.Get("0.name").String())
	assert.Equal(t, "M0 0 Z", parsed.Get("0.paths.0").String())
	assert.Equal(t, "fa-wifi", parsed.Get("1.name").String())
}

func TestMarshalPathSyntaxFieldNames(t *testing.T) {

	// Renamed output fields may contain gjson path syntax; they must end
	// up as literal object keys, not nested paths or wildcards.
	records := []entity.Record{
		{"code": "e900", "size.px": 24, "f*": "star", "f?": "question"},
	}

	doc, err := Marshal(records)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(doc))

	parsed := gjson.ParseBytes(doc)
	assert.Equal(t, int64(24), parsed.Get(`0.size\.px`).Int())
	assert.Equal(t, "star", parsed.Get(`0.f\*`).String())
	assert.Equal(t, "question", parsed.Get(`0.f\?`).String())
	assert.False(t, parsed.Get("0.size").Exists())
}

func TestMarshalEmpty(t *testing.T) {
	doc, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))
}

func TestWriteSet(t *testing.T) {

	path := filepath.Join(t.TempDir(), "out", "icons.json")

	factory := NewWriterFactory()
	assert.Equal(t, "json", factory.FormatId())

	w, err := factory.NewWriter(context.Background(), entity.Config{Path: path})
	require.NoError(t, err)
	sw, ok := w.(entity.SetWriter)
	require.True(t, ok)

	records := []entity.Record{{"code": "e900", "name": "md-battery"}}
	require.NoError(t, sw.WriteSet(context.Background(), records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "e900", gjson.GetBytes(data, "0.code").String())

	w.Shutdown()
	assert.NoError(t, factory.Close())
}
