// Package filesink implements the Output Writer for exported vector
// files: it copies a source file to a final destination path, creating
// any missing parent directories.
package filesink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vintern/iconize/entity"
)

const formatId = "svg"

type WriterFactory struct {
}

func NewWriterFactory() entity.WriterFactory {
	return &WriterFactory{}
}

func (wf *WriterFactory) FormatId() string {
	return formatId
}

func (wf *WriterFactory) NewWriter(ctx context.Context, c entity.Config) (entity.Writer, error) {
	return newWriter(c), nil
}

func (wf *WriterFactory) Close() error {
	return nil
}

type writer struct {
	c entity.Config
}

func newWriter(c entity.Config) *writer {
	return &writer{c: c}
}

// Copy copies srcPath to dstPath, creating dstPath's directory chain
// first. A failure is returned as-is; the pipeline treats it as fatal
// and does not retry.
func (w *writer) Copy(ctx context.Context, srcPath, dstPath string) error {

	if dir := filepath.Dir(dstPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for %s: %v", dstPath, err)
		}
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("could not open source file %s: %v", srcPath, err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("could not create destination file %s: %v", dstPath, err)
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("could not copy %s to %s: %v", srcPath, dstPath, err)
	}
	return nil
}

func (w *writer) Shutdown() {}
