package patfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-patgen/pattern"
)

// Save writes the engine to path. The file is written to a temporary
// sibling and renamed into place, so a failed save never leaves a partial
// file behind.
func Save(path string, e *pattern.Engine) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, e); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	return nil
}

// Load reads an engine from path.
func Load(path string, opts ...pattern.Option) (*pattern.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load pattern: %w", err)
	}
	defer f.Close()

	e, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return e, nil
}

// LoadOrDefault is Load, falling back to a default engine when the file
// cannot be used. The load error is returned alongside the fallback so the
// caller can report it.
func LoadOrDefault(path string, opts ...pattern.Option) (*pattern.Engine, error) {
	e, err := Load(path, opts...)
	if err == nil {
		return e, nil
	}
	def, derr := pattern.New(opts...)
	if derr != nil {
		return nil, derr
	}
	return def, err
}
