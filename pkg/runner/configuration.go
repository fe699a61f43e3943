package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigurationNotFoundError means a configuration file was named but does
// not exist. It is raised before any subprocess starts.
type ConfigurationNotFoundError struct {
	Path string
}

func (e *ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// CheckConfiguration verifies that path exists and is a regular file. An
// empty path means "no configuration" and always passes.
//
// pyproject.toml-style files are also decoded; a file that does not parse
// is an error, and one without a [tool.<section>] table only logs a warning
// because the tool will silently ignore it.
func CheckConfiguration(path, section string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ConfigurationNotFoundError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("checking configuration %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("configuration %s is a directory", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return nil
	}
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return fmt.Errorf("parsing configuration %s: %w", path, err)
	}
	if !hasToolTable(doc, section) {
		log.Warning("%s has no [tool.%s] table; %s will use its defaults", path, section, section)
	}
	return nil
}

func hasToolTable(doc map[string]any, section string) bool {
	tools, ok := doc["tool"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = tools[section]
	return ok
}
