package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// Get returns the effective value of a dotted setting key as a string.
func Get(opts LoadOptions, key string) (string, error) {
	s, err := Load(opts)
	if err != nil {
		return "", err
	}
	v := viper.New()
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling settings: %w", err)
	}
	v.SetConfigType(fileType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("reading settings: %w", err)
	}
	if !v.IsSet(key) {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	value := v.Get(key)
	switch value.(type) {
	case string, bool, int, float64:
		return fmt.Sprint(value), nil
	default:
		out, err := yaml.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("marshaling %s: %w", key, err)
		}
		return string(out), nil
	}
}

// Set writes key=value into the settings file at path, creating it if
// needed. Only keys present in the file are persisted; defaults are not
// materialized. The result is validated before it is written.
func Set(path, key, value string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading settings file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat settings file %s: %w", path, err)
	}

	v.Set(key, coerce(value))

	issues, err := validateValue(v.AllSettings())
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return &ValidationError{File: path, Issues: issues}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}

// Marshal renders settings as YAML.
func Marshal(s *Settings) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling settings: %w", err)
	}
	return out, nil
}

// coerce turns "true"/"false" into booleans so boolean settings keep their
// type when set from the command line.
func coerce(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
