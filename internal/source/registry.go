package source

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Registry is the startup-loaded set of publication sources.
type Registry struct {
	// Application is the name of the application being updated.
	Application string `yaml:"application" mapstructure:"application"`
	// Sources lists the configured origins in priority order.
	Sources []Source `yaml:"sources" mapstructure:"sources"`
}

// Parse decodes a YAML source configuration document.
func Parse(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse source configuration: %w", err)
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Load reads a source configuration file through viper. When path is empty
// the embedded default configuration is used instead.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Parse(defaultSources)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read source configuration %s: %w", path, err)
	}

	var reg Registry
	if err := v.Unmarshal(&reg); err != nil {
		return nil, fmt.Errorf("failed to decode source configuration %s: %w", path, err)
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *Registry) validate() error {
	for i, src := range r.Sources {
		if src.Name == "" {
			return fmt.Errorf("source %d has no name", i)
		}
		if src.BaseLocation == "" {
			return fmt.Errorf("source %q has no base location", src.Name)
		}
		if src.ManifestPath == "" {
			return fmt.Errorf("source %q has no manifest path", src.Name)
		}
	}
	return nil
}

// ByName looks a source up by its configured name, case-insensitively.
func (r *Registry) ByName(name string) (Source, bool) {
	for _, src := range r.Sources {
		if strings.EqualFold(src.Name, name) {
			return src, true
		}
	}
	return Source{}, false
}
