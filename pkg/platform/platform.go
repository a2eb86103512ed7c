// Package platform isolates OS-level operations behind an interface so the
// provisioning pipeline can be tested without touching real storage,
// networks, or process state.
package platform

import (
	"context"
	"os"
	"os/exec"
	"syscall"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Platform provides the OS operations the provisioning pipeline depends on.
//
//counterfeiter:generate . Platform
type Platform interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(dir string, perm os.FileMode) error
	RemoveAll(dir string) error
	Stat(name string) (os.FileInfo, error)

	// Filesystem helpers
	DirExists(path string) bool
	FileExists(path string) bool

	// Environment
	Getenv(key string) string
	Environ() []string
	LookPath(file string) (string, error)

	// Process execution
	RunCommand(ctx context.Context, name string, args ...string) ([]byte, error)
	Exec(argv0 string, argv []string, envv []string) error
}

// hostPlatform is the real implementation backed by the local OS.
type hostPlatform struct{}

// NewPlatform creates the host platform implementation.
// envstash targets Linux batch nodes; no OS detection needed.
func NewPlatform() Platform {
	return &hostPlatform{}
}

func (p *hostPlatform) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *hostPlatform) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (p *hostPlatform) MkdirAll(dir string, perm os.FileMode) error {
	return os.MkdirAll(dir, perm)
}

func (p *hostPlatform) RemoveAll(dir string) error {
	return os.RemoveAll(dir)
}

func (p *hostPlatform) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (p *hostPlatform) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (p *hostPlatform) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (p *hostPlatform) Getenv(key string) string {
	return os.Getenv(key)
}

func (p *hostPlatform) Environ() []string {
	return os.Environ()
}

func (p *hostPlatform) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// RunCommand runs a command to completion and returns its combined output.
// The command is killed when ctx is canceled by the caller.
func (p *hostPlatform) RunCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Exec replaces the current process image. Does not return on success.
func (p *hostPlatform) Exec(argv0 string, argv []string, envv []string) error {
	return syscall.Exec(argv0, argv, envv)
}
