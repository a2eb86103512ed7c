package installers

import (
	"context"
	"fmt"
	"strings"

	"envstash/internal/envstash/spec"
)

// CondaInstaller materializes conda-style environments using a
// self-bootstrapped micromamba, so compute nodes need no pre-installed
// conda distribution.
type CondaInstaller struct {
	*BaseInstaller
}

// NewCondaInstaller creates a new conda environment installer
func NewCondaInstaller() *CondaInstaller {
	return &CondaInstaller{
		BaseInstaller: NewBaseInstaller("conda_install.sh"),
	}
}

// Install generates the build script for a conda-style spec
func (c *CondaInstaller) Install(ctx context.Context, req *InstallRequest) (*InstallResult, error) {
	channels := req.Spec.Channels
	if len(channels) == 0 {
		channels = []string{"conda-forge"}
	}

	var channelArgs []string
	for _, ch := range channels {
		channelArgs = append(channelArgs, "-c "+ch)
	}

	templateData := &TemplateData{
		Name:         req.Spec.Name,
		Prefix:       req.Prefix,
		WorkDir:      req.WorkDir,
		BootstrapURL: req.BootstrapURL,
		Channels:     strings.Join(channelArgs, " "),
		Dependencies: strings.Join(quoteAll(req.Spec.Dependencies), " "),
	}

	installScript, err := c.RenderTemplate(templateData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate conda install script: %w", err)
	}

	return c.CreateInstallResult(installScript,
		fmt.Sprintf("conda build script generated for %s", req.Spec.Name)), nil
}

// Validate checks if the spec is buildable with conda
func (c *CondaInstaller) Validate(s *spec.EnvironmentSpec) error {
	if len(s.Dependencies) == 0 {
		return fmt.Errorf("conda installer requires at least one dependency")
	}
	return nil
}

// GetKind returns the installer kind handled by this installer
func (c *CondaInstaller) GetKind() string {
	return "conda"
}

// quoteAll single-quotes each token for safe interpolation into a shell
// script. Version pins like numpy=1.26 contain characters the shell would
// otherwise interpret.
func quoteAll(tokens []string) []string {
	quoted := make([]string, 0, len(tokens))
	for _, t := range tokens {
		quoted = append(quoted, "'"+strings.ReplaceAll(t, "'", `'\''`)+"'")
	}
	return quoted
}
