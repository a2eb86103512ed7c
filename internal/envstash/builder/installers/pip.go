package installers

import (
	"context"
	"fmt"
	"strings"

	"envstash/internal/envstash/spec"
)

// PipInstaller materializes pure-Python environments as a venv on top of
// the node's system interpreter. Lighter than conda when no native
// packages are needed.
type PipInstaller struct {
	*BaseInstaller
}

// NewPipInstaller creates a new pip environment installer
func NewPipInstaller() *PipInstaller {
	return &PipInstaller{
		BaseInstaller: NewBaseInstaller("pip_install.sh"),
	}
}

// Install generates the build script for a pip-style spec
func (p *PipInstaller) Install(ctx context.Context, req *InstallRequest) (*InstallResult, error) {
	templateData := &TemplateData{
		Name:         req.Spec.Name,
		Prefix:       req.Prefix,
		WorkDir:      req.WorkDir,
		Dependencies: strings.Join(quoteAll(req.Spec.Dependencies), " "),
	}

	installScript, err := p.RenderTemplate(templateData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pip install script: %w", err)
	}

	return p.CreateInstallResult(installScript,
		fmt.Sprintf("pip build script generated for %s", req.Spec.Name)), nil
}

// Validate checks if the spec is buildable with pip
func (p *PipInstaller) Validate(s *spec.EnvironmentSpec) error {
	if len(s.Dependencies) == 0 {
		return fmt.Errorf("pip installer requires at least one dependency")
	}
	if len(s.Channels) != 0 {
		return fmt.Errorf("pip installer does not support channels")
	}
	return nil
}

// GetKind returns the installer kind handled by this installer
func (p *PipInstaller) GetKind() string {
	return "pip"
}
