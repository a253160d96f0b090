package executor

import (
	"regexp"
	"strings"

	"github.com/outfitterhq/outfitter/internal/formula"
)

// varPattern matches variable references in the format ${varname}.
// Captures the variable name in group 1.
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// escapePlaceholder temporarily replaces escaped variable syntax
// ($${var}) during interpolation so the user can write a literal
// ${var}. NUL bytes cannot appear in shell command strings or in values
// decoded from YAML/TOML documents, so the sentinel never collides.
const escapePlaceholder = "\x00ESCAPED\x00"

// Expand replaces ${var} references with values from vars. Unknown
// references are left untouched, which lets environment variables like
// ${HOME} pass through to the shell. $${var} yields a literal ${var}.
func Expand(s string, vars map[string]string) string {
	result := strings.ReplaceAll(s, "$${", escapePlaceholder)

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})

	return strings.ReplaceAll(result, escapePlaceholder, "${")
}

// ExpandStep returns a copy of step with formula variables expanded in
// its command, arguments, environment values, working directory, and
// post-install commands.
func ExpandStep(step formula.Step, vars map[string]string) formula.Step {
	if len(vars) == 0 {
		return step
	}

	out := step
	out.Command = Expand(step.Command, vars)
	out.WorkingDir = Expand(step.WorkingDir, vars)
	if len(step.Args) > 0 {
		out.Args = make([]string, len(step.Args))
		for i, a := range step.Args {
			out.Args[i] = Expand(a, vars)
		}
	}
	if len(step.Env) > 0 {
		out.Env = make(map[string]string, len(step.Env))
		for k, v := range step.Env {
			out.Env[k] = Expand(v, vars)
		}
	}
	if len(step.PostInstall) > 0 {
		out.PostInstall = make([]string, len(step.PostInstall))
		for i, c := range step.PostInstall {
			out.PostInstall[i] = Expand(c, vars)
		}
	}
	return out
}
