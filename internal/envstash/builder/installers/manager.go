package installers

import (
	"fmt"
)

// Manager selects the installer for a given installer kind.
type Manager struct {
	installers map[string]Installer
}

// NewManager creates a manager with all built-in installers registered.
func NewManager() *Manager {
	m := &Manager{
		installers: make(map[string]Installer),
	}
	m.register(NewCondaInstaller())
	m.register(NewPipInstaller())
	return m
}

func (m *Manager) register(installer Installer) {
	m.installers[installer.GetKind()] = installer
}

// Get returns the installer for the given kind.
func (m *Manager) Get(kind string) (Installer, error) {
	installer, ok := m.installers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown installer kind %q", kind)
	}
	return installer, nil
}

// Kinds returns the registered installer kinds.
func (m *Manager) Kinds() []string {
	kinds := make([]string, 0, len(m.installers))
	for k := range m.installers {
		kinds = append(kinds, k)
	}
	return kinds
}
