package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintern/iconize/entity"
)

func TestProject(t *testing.T) {

	interpreter := NewInterpreter(nil)
	projector, err := NewProjector(interpreter, []string{
		"code",
		"name:iconname:camelcase",
		"viewbox",
	})
	require.NoError(t, err)

	record := entity.Record{
		"code":    "e900",
		"name":    "md-battery-full",
		"group":   "md",
		"viewbox": "0 0 2048 2048",
	}

	out := projector.Project(record)
	assert.Equal(t, entity.Record{
		"code":     "e900",
		"iconname": "mdBatteryFull",
		"viewbox":  "0 0 2048 2048",
	}, out)
}

func TestProjectAbsentFieldsDropped(t *testing.T) {

	interpreter := NewInterpreter(nil)
	projector, err := NewProjector(interpreter, []string{"code", "name", "group"})
	require.NoError(t, err)

	out := projector.Project(entity.Record{"code": "e900", "name": ""})

	// Neither the empty name nor the missing group appear at all
	assert.Equal(t, entity.Record{"code": "e900"}, out)
	_, ok := out["name"]
	assert.False(t, ok)
}

func TestProjectPassThrough(t *testing.T) {

	interpreter := NewInterpreter(nil)
	projector, err := NewProjector(interpreter, nil)
	require.NoError(t, err)

	record := entity.Record{"code": "e900", "group": "md"}
	out := projector.Project(record)
	assert.Equal(t, record, out)

	// Pass-through is a copy, not the same map
	out["group"] = "fa"
	assert.Equal(t, "md", record["group"])
}

func TestProjectAll(t *testing.T) {

	interpreter := NewInterpreter(nil)
	projector, err := NewProjector(interpreter, []string{"code"})
	require.NoError(t, err)

	records := []entity.Record{
		{"code": "e900", "group": "md"},
		{"code": "e901", "group": "fa"},
	}
	out := projector.ProjectAll(records)
	require.Len(t, out, 2)
	assert.Equal(t, entity.Record{"code": "e900"}, out[0])
	assert.Equal(t, entity.Record{"code": "e901"}, out[1])
}

func TestNewProjectorInvalidSpec(t *testing.T) {
	_, err := NewProjector(NewInterpreter(nil), []string{""})
	assert.Error(t, err)
}
