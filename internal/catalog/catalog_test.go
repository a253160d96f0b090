package catalog

import (
	"reflect"
	"testing"

	"github.com/outfitterhq/outfitter/internal/formula"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}

	ids := c.IDs()
	if len(ids) == 0 {
		t.Fatal("Builtin() returned an empty catalog")
	}

	for _, id := range []string{"git", "curl", "node", "docker"} {
		if !c.Has(id) {
			t.Errorf("Has(%q) = false, want true", id)
		}
		task, ok := c.Get(id)
		if !ok {
			t.Fatalf("Get(%q) = _, false, want task", id)
		}
		if task.ID != id {
			t.Errorf("Get(%q).ID = %q, want %q", id, task.ID, id)
		}
		if len(task.Steps) == 0 {
			t.Errorf("builtin task %q has no steps", id)
		}
	}

	if c.Has("no-such-task") {
		t.Error(`Has("no-such-task") = true, want false`)
	}
}

func TestBuiltinDependenciesResolvable(t *testing.T) {
	t.Parallel()

	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}

	for _, id := range c.IDs() {
		task, _ := c.Get(id)
		for _, dep := range task.Dependencies {
			if !c.Has(dep) {
				t.Errorf("builtin task %q depends on %q, which is not in the catalog", id, dep)
			}
		}
	}
}

func TestBuiltinVersionRegexes(t *testing.T) {
	t.Parallel()

	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}

	// Parsing already rejects invalid regexes; make sure every builtin
	// definition that checks versions also says how to extract one.
	for _, id := range c.IDs() {
		task, _ := c.Get(id)
		if task.VersionCommand != "" && task.VersionRegex == "" {
			t.Errorf("builtin task %q has versionCommand but no versionRegex", id)
		}
	}
}

func TestFromTasks(t *testing.T) {
	t.Parallel()

	a := &formula.Task{ID: "a", Name: "A"}
	b := &formula.Task{ID: "b", Name: "B"}
	a2 := &formula.Task{ID: "a", Name: "A v2"}

	c := FromTasks([]*formula.Task{a, b, a2})

	if got, want := c.IDs(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	got, ok := c.Get("a")
	if !ok || got.Name != "A v2" {
		t.Errorf("Get(a) = %+v, %v, want the later definition to win", got, ok)
	}
	if !c.Has("b") {
		t.Error("Has(b) = false, want true")
	}
	if c.Has("c") {
		t.Error("Has(c) = true, want false")
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := FromTasks([]*formula.Task{{ID: "x"}, {ID: "y"}})
	ids := c.IDs()
	ids[0] = "mutated"

	if got := c.IDs(); got[0] != "x" {
		t.Errorf("IDs() after caller mutation = %v, want [x y]", got)
	}
}
