package filesink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintern/iconize/entity"
)

func TestCopy(t *testing.T) {

	dir := t.TempDir()
	src := filepath.Join(dir, "src.svg")
	require.NoError(t, os.WriteFile(src, []byte("<svg/>"), 0644))

	factory := NewWriterFactory()
	assert.Equal(t, "svg", factory.FormatId())

	w, err := factory.NewWriter(context.Background(), entity.Config{})
	require.NoError(t, err)
	fw, ok := w.(entity.FileWriter)
	require.True(t, ok)

	// Destination with a not-yet-existing directory chain
	dst := filepath.Join(dir, "out", "md", "e900.svg")
	require.NoError(t, fw.Copy(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	// Missing source file
	err = fw.Copy(context.Background(), filepath.Join(dir, "missing.svg"), dst)
	assert.Error(t, err)

	w.Shutdown()
	assert.NoError(t, factory.Close())
}
