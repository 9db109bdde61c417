package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for label-file loading.
var (
	ErrFileNotFound = errors.New("label file not found")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("label file is empty")
	ErrNoLabels     = errors.New("label file defines no labels")
)

// Label is one named template to run.
type Label struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// LogConfig holds the logging settings for the CLI.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// File is a parsed label file.
type File struct {
	Log    LogConfig `yaml:"log"`
	Labels []Label   `yaml:"labels"`
}

// Load reads and validates a label file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read label file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return Parse(data)
}

// Parse parses and validates label-file content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every label is usable and names are unique.
func (f *File) Validate() error {
	if len(f.Labels) == 0 {
		return ErrNoLabels
	}

	seen := make(map[string]bool, len(f.Labels))
	for i, label := range f.Labels {
		if label.Name == "" {
			return fmt.Errorf("label %d: name is required", i)
		}
		if label.Template == "" {
			return fmt.Errorf("label %q: template is required", label.Name)
		}
		if seen[label.Name] {
			return fmt.Errorf("label %q: duplicate name", label.Name)
		}
		seen[label.Name] = true
	}
	return nil
}
