// Package docs renders formula documentation from markdown templates.
// Templates carry $NAME$ placeholders that expand from the resolved
// formula, so a repository can keep a live machine-setup reference next
// to its code.
package docs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/outfitterhq/outfitter/internal/formula"
)

// Context provides the values placeholders resolve against.
type Context struct {
	Formula *formula.ResolvedFormula

	// Ordered is the dependency-ordered task list, as the scheduler
	// would run it.
	Ordered []formula.ResolvedTask

	// EngineVersion stamps the generated-by footer.
	EngineVersion string
}

type resolverFunc func(ctx *Context) string

var placeholders = map[string]resolverFunc{
	"FORMULA_NAME":        func(ctx *Context) string { return ctx.Formula.Name },
	"FORMULA_VERSION":     func(ctx *Context) string { return ctx.Formula.Version },
	"FORMULA_DESCRIPTION": func(ctx *Context) string { return ctx.Formula.Description },
	"TASK_COUNT":          func(ctx *Context) string { return fmt.Sprintf("%d", len(ctx.Formula.Tasks)) },
	"TASK_TABLE":          resolveTaskTable,
	"INSTALL_ORDER":       resolveInstallOrder,
	"GENERATED_BY":        resolveGeneratedBy,
}

var placeholderPattern = regexp.MustCompile(`\$([A-Z][A-Z0-9_]*)\$`)

// Render expands every known placeholder in template. Unknown
// placeholders are left in place and reported as warnings, never
// errors: a template typo must not break a documentation build.
func Render(template string, ctx *Context) (string, []string) {
	result := template
	for name, resolve := range placeholders {
		p := "$" + name + "$"
		if strings.Contains(result, p) {
			result = strings.ReplaceAll(result, p, resolve(ctx))
		}
	}

	var warnings []string
	for _, name := range unknownPlaceholders(result) {
		warnings = append(warnings, fmt.Sprintf("unknown placeholder $%s$ (left as is)", name))
	}
	return result, warnings
}

// Available lists the supported placeholder names in sorted order.
func Available() []string {
	names := make([]string, 0, len(placeholders))
	for name := range placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unknownPlaceholders finds placeholder-shaped tokens that survived
// rendering, each name once.
func unknownPlaceholders(content string) []string {
	var unknowns []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if _, known := placeholders[name]; !known && !seen[name] {
			unknowns = append(unknowns, name)
			seen[name] = true
		}
	}
	return unknowns
}

func resolveTaskTable(ctx *Context) string {
	var b strings.Builder
	b.WriteString("| Task | Version | Category | Description |\n")
	b.WriteString("|------|---------|----------|-------------|\n")
	for _, t := range ctx.Formula.Tasks {
		constraint := t.Constraint
		if constraint == "" {
			constraint = "latest"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", t.ID, constraint, t.Category, t.Description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func resolveInstallOrder(ctx *Context) string {
	var b strings.Builder
	for i, t := range ctx.Ordered {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.ID)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func resolveGeneratedBy(ctx *Context) string {
	if ctx.EngineVersion == "" {
		return "outfitter"
	}
	return "outfitter " + ctx.EngineVersion
}
