package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by FindPath.
const FileName = ".pylens.yaml"

// ToolConfig holds per-tool settings.
type ToolConfig struct {
	Binary string `yaml:"binary"`
	Config string `yaml:"config"`
	Args   string `yaml:"args"`
}

// File is the contents of .pylens.yaml.
type File struct {
	Tool      string                `yaml:"tool"`
	Theme     string                `yaml:"theme"`
	Format    string                `yaml:"format"`
	Interface string                `yaml:"interface"`
	Tools     map[string]ToolConfig `yaml:"tools"`
}

// Load reads a configuration file. Unknown keys are an error so typos do
// not silently fall back to defaults. An empty file is an empty config.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is either user-supplied or from FindPath
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// LoadDefault loads the file FindPath selects for dir, or an empty config
// when there is none. It returns the path that was used.
func LoadDefault(dir string) (*File, string, error) {
	path := FindPath(dir)
	if path == "" {
		log.Debug("no %s found, using defaults", FileName)
		return &File{}, "", nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	log.Debug("loaded config from %s", path)
	return f, path, nil
}

// FindPath looks for .pylens.yaml in dir, then in the user config
// directory ($XDG_CONFIG_HOME/pylens on Linux).
func FindPath(dir string) string {
	local := filepath.Join(dir, FileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" || configDir == "/" {
		return ""
	}
	xdgPath := filepath.Join(configDir, "pylens", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
