package formula

import "github.com/outfitterhq/outfitter/internal/pkgmgr"

// Step kinds that are not package-manager installs. Any other step type
// names a package manager known to the pkgmgr package.
const (
	StepShell    = "shell"
	StepDownload = "download"
	StepGitClone = "git-clone"
)

// Step is one shell-level action belonging to a task. The meaning of
// Command depends on Type: a package name for manager kinds, a literal
// shell command for shell, a URL for download, a repository for git-clone.
type Step struct {
	Name        string            `yaml:"name" toml:"name"`
	Type        string            `yaml:"type" toml:"type"`
	Command     string            `yaml:"command" toml:"command"`
	Args        []string          `yaml:"args,omitempty" toml:"args,omitempty"`
	Platforms   []string          `yaml:"platforms,omitempty" toml:"platforms,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	WorkingDir  string            `yaml:"workingDir,omitempty" toml:"workingDir,omitempty"`
	Optional    bool              `yaml:"optional,omitempty" toml:"optional,omitempty"`
	PostInstall []string          `yaml:"postInstall,omitempty" toml:"postInstall,omitempty"`
}

// Task is an installable unit: ordered install steps plus the metadata
// needed to check whether the tool is already present.
type Task struct {
	ID             string   `yaml:"id" toml:"id"`
	Name           string   `yaml:"name" toml:"name"`
	Description    string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Homepage       string   `yaml:"homepage,omitempty" toml:"homepage,omitempty"`
	Tags           []string `yaml:"tags,omitempty" toml:"tags,omitempty"`
	Dependencies   []string `yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	Steps          []Step   `yaml:"steps" toml:"steps"`
	VersionCommand string   `yaml:"versionCommand,omitempty" toml:"versionCommand,omitempty"`
	VersionRegex   string   `yaml:"versionRegex,omitempty" toml:"versionRegex,omitempty"`
	RequireSudo    bool     `yaml:"require-sudo,omitempty" toml:"require-sudo,omitempty"`
}

// ValidStepType reports whether a step type belongs to the closed kind
// enumeration: the literal kinds above or a known package manager name.
func ValidStepType(t string) bool {
	switch t {
	case StepShell, StepDownload, StepGitClone:
		return true
	}
	return pkgmgr.IsKnown(t)
}
