// Package spec defines the declarative environment specification and its
// content fingerprint. The fingerprint of the raw spec bytes is the cache
// key for the whole provisioning pipeline.
package spec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"envstash/pkg/errors"
	"envstash/pkg/platform"
)

// EnvironmentSpec is the parsed form of an environment spec file.
// The spec is immutable input: identity is the fingerprint of the raw
// bytes, not of this struct, so formatting and comment changes
// intentionally produce a different cache key.
type EnvironmentSpec struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []string `yaml:"dependencies"`
}

// Load reads and parses an environment spec file. The raw bytes are
// returned alongside the parsed form because fingerprinting operates on
// the bytes as written, never on a re-serialization.
func Load(p platform.Platform, path string) (*EnvironmentSpec, []byte, error) {
	data, err := p.ReadFile(path)
	if err != nil {
		return nil, nil, errors.NewSpecUnavailableError(path, err)
	}

	var s EnvironmentSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, nil, errors.WrapSpecError(path, fmt.Errorf("%w: %v", errors.ErrInvalidSpec, err))
	}

	if err := s.Validate(); err != nil {
		return nil, nil, errors.WrapSpecError(path, err)
	}

	return &s, data, nil
}

// Validate checks the parsed spec for the minimum a build needs.
func (s *EnvironmentSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", errors.ErrInvalidSpec)
	}
	if strings.ContainsAny(s.Name, "/ \t") {
		return fmt.Errorf("%w: name %q must be a single path-safe token", errors.ErrInvalidSpec, s.Name)
	}
	if len(s.Dependencies) == 0 {
		return fmt.Errorf("%w: no dependencies listed", errors.ErrInvalidSpec)
	}
	return nil
}
