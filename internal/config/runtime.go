package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".calbot"

// GetRuntimePath returns the runtime directory. Relative paths are resolved
// against the user's home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("CALBOT_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
