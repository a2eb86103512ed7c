package installers

import (
	"context"

	"envstash/internal/envstash/spec"
)

// Installer defines the interface for materializing an environment from a
// spec using a particular package-manager family.
type Installer interface {
	// Install generates the build command for the given spec and prefix.
	Install(ctx context.Context, req *InstallRequest) (*InstallResult, error)

	// Validate checks if the installer can handle the given spec.
	Validate(s *spec.EnvironmentSpec) error

	// GetKind returns the installer kind this installer handles.
	GetKind() string
}

// InstallRequest contains the parameters needed for an environment build.
type InstallRequest struct {
	Spec         *spec.EnvironmentSpec
	Prefix       string
	WorkDir      string
	BootstrapURL string
}

// InstallResult contains the generated build command.
type InstallResult struct {
	Command string
	Args    []string
	Message string
}

// TemplateData contains the data passed to installation templates.
type TemplateData struct {
	Name         string
	Prefix       string
	WorkDir      string
	BootstrapURL string
	Channels     string
	Dependencies string
}
