// Package pkgmgr describes the package managers outfitter can drive and how
// an install invocation is shaped for each of them.
package pkgmgr

import (
	"os/exec"
	"runtime"
	"sort"
)

// Manager describes one package manager.
type Manager struct {
	// Name is the manager's step-type name in task documents.
	Name string
	// Binary is the executable invoked for installs.
	Binary string
	// InstallArgs are the arguments placed between the binary and the
	// package name.
	InstallArgs []string
	// RequiresSudo marks managers that need elevated privileges on
	// non-Windows systems.
	RequiresSudo bool
	// Platforms restricts which platforms the manager exists on.
	// Empty means all platforms.
	Platforms []string
}

// managers maps step-type names to manager definitions.
var managers = map[string]Manager{
	"brew":   {Name: "brew", Binary: "brew", InstallArgs: []string{"install"}, Platforms: []string{"darwin", "linux"}},
	"apt":    {Name: "apt", Binary: "apt-get", InstallArgs: []string{"install", "-y"}, RequiresSudo: true, Platforms: []string{"linux"}},
	"dnf":    {Name: "dnf", Binary: "dnf", InstallArgs: []string{"install", "-y"}, RequiresSudo: true, Platforms: []string{"linux"}},
	"pacman": {Name: "pacman", Binary: "pacman", InstallArgs: []string{"-S", "--noconfirm"}, RequiresSudo: true, Platforms: []string{"linux"}},
	"choco":  {Name: "choco", Binary: "choco", InstallArgs: []string{"install", "-y"}, Platforms: []string{"windows"}},
	"winget": {Name: "winget", Binary: "winget", InstallArgs: []string{"install", "--accept-package-agreements", "--accept-source-agreements"}, Platforms: []string{"windows"}},
	"npm":    {Name: "npm", Binary: "npm", InstallArgs: []string{"install", "-g"}},
	"pip":    {Name: "pip", Binary: "pip3", InstallArgs: []string{"install"}},
	"cargo":  {Name: "cargo", Binary: "cargo", InstallArgs: []string{"install"}},
	"go":     {Name: "go", Binary: "go", InstallArgs: []string{"install"}},
}

// Get returns the manager for a step-type name.
func Get(name string) (Manager, bool) {
	m, ok := managers[name]
	return m, ok
}

// IsKnown reports whether a step-type name is a known package manager.
func IsKnown(name string) bool {
	_, ok := managers[name]
	return ok
}

// Names returns all manager names in sorted order.
func Names() []string {
	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstallArgv builds the argument vector for installing a package, without
// any sudo prefix.
func (m Manager) InstallArgv(pkg string, extraArgs []string) []string {
	argv := make([]string, 0, 2+len(m.InstallArgs)+len(extraArgs))
	argv = append(argv, m.Binary)
	argv = append(argv, m.InstallArgs...)
	argv = append(argv, pkg)
	argv = append(argv, extraArgs...)
	return argv
}

// SupportsPlatform reports whether the manager exists on a platform.
func (m Manager) SupportsPlatform(platform string) bool {
	if len(m.Platforms) == 0 {
		return true
	}
	for _, p := range m.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// Available reports whether the manager's binary is on PATH.
func (m Manager) Available() bool {
	_, err := exec.LookPath(m.Binary)
	return err == nil
}

// Detect returns the managers plausible on this platform that are actually
// installed, sorted by name.
func Detect() []Manager {
	var found []Manager
	for _, name := range Names() {
		m := managers[name]
		if !m.SupportsPlatform(runtime.GOOS) {
			continue
		}
		if m.Available() {
			found = append(found, m)
		}
	}
	return found
}
