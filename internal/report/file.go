package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// IsJSONL reports whether path selects JSON lines output.
func IsJSONL(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(path, ".zst"), ".jsonl")
}

// WriteFile writes through a temp file and renames it into place. A ".zst"
// suffix compresses the output with zstd.
func WriteFile(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	err = writeMaybeCompressed(f, strings.HasSuffix(path, ".zst"), write)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeMaybeCompressed(f io.Writer, compress bool, write func(w io.Writer) error) error {
	if !compress {
		return write(f)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := write(enc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
