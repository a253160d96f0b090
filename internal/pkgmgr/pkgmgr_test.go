package pkgmgr

import (
	"reflect"
	"sort"
	"testing"
)

func TestIsKnown(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"brew", true},
		{"apt", true},
		{"npm", true},
		{"pip", true},
		{"go", true},
		{"winget", true},
		{"shell", false},
		{"download", false},
		{"yum", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKnown(tt.name); got != tt.want {
				t.Errorf("IsKnown(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInstallArgv(t *testing.T) {
	tests := []struct {
		manager string
		pkg     string
		args    []string
		want    []string
	}{
		{"brew", "jq", nil, []string{"brew", "install", "jq"}},
		{"apt", "git", nil, []string{"apt-get", "install", "-y", "git"}},
		{"pacman", "docker", nil, []string{"pacman", "-S", "--noconfirm", "docker"}},
		{"pip", "httpie", nil, []string{"pip3", "install", "httpie"}},
		{"npm", "typescript", []string{"--no-fund"}, []string{"npm", "install", "-g", "typescript", "--no-fund"}},
		{"go", "golang.org/x/tools/cmd/goimports@latest", nil, []string{"go", "install", "golang.org/x/tools/cmd/goimports@latest"}},
	}

	for _, tt := range tests {
		t.Run(tt.manager+"_"+tt.pkg, func(t *testing.T) {
			m, ok := Get(tt.manager)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.manager)
			}
			got := m.InstallArgv(tt.pkg, tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InstallArgv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportsPlatform(t *testing.T) {
	tests := []struct {
		manager  string
		platform string
		want     bool
	}{
		{"brew", "darwin", true},
		{"brew", "linux", true},
		{"brew", "windows", false},
		{"apt", "linux", true},
		{"apt", "darwin", false},
		{"choco", "windows", true},
		{"choco", "linux", false},
		{"npm", "darwin", true},
		{"npm", "windows", true},
		{"cargo", "linux", true},
	}

	for _, tt := range tests {
		t.Run(tt.manager+"_"+tt.platform, func(t *testing.T) {
			m, ok := Get(tt.manager)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.manager)
			}
			if got := m.SupportsPlatform(tt.platform); got != tt.want {
				t.Errorf("SupportsPlatform(%q) = %v, want %v", tt.platform, got, tt.want)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names() returned no managers")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, required := range []string{"brew", "apt", "npm", "cargo"} {
		found := false
		for _, n := range names {
			if n == required {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Names() missing %q", required)
		}
	}
}

func TestRequiresSudo(t *testing.T) {
	sudoManagers := map[string]bool{
		"apt": true, "dnf": true, "pacman": true,
		"brew": false, "npm": false, "cargo": false, "choco": false,
	}
	for name, want := range sudoManagers {
		m, ok := Get(name)
		if !ok {
			t.Fatalf("Get(%q) not found", name)
		}
		if m.RequiresSudo != want {
			t.Errorf("%s RequiresSudo = %v, want %v", name, m.RequiresSudo, want)
		}
	}
}
