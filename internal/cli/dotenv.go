package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"snipman/internal/store"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads <configdir>/.env and ./.env into the process environment.
// Missing files are skipped and variables already set are never overridden.
func LoadDotEnv() error {
	var paths []string
	if dir, err := store.ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	paths = append(paths, ".env")

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}
