package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// validateOutputDir accepts a directory that either does not exist yet or
// is a directory. Exporters create it on demand.
func validateOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("missing output directory")
	}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output %s is not a directory", dir)
	}
	return nil
}
