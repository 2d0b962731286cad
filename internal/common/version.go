package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Build metadata, set via -ldflags or a .version file beside the executable
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile applies the .version file next to the executable, if any
func LoadVersionFromFile() string {
	exePath, err := os.Executable()
	if err != nil {
		return Version
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(exePath), ".version"))
	if err != nil {
		return Version
	}

	applyVersionFile(string(data))
	return Version
}

// applyVersionFile accepts either a bare version or "key: value" lines
// with keys version, build and commit.
func applyVersionFile(content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	if !strings.Contains(content, ":") {
		Version = content
		return
	}

	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, ":")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "version":
			Version = value
		case "build":
			Build = value
		case "commit":
			GitCommit = value
		}
	}
}
