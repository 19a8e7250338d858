package flowfile

import (
	"strings"
	"testing"

	"github.com/dshills/flowstep-go/flow"
)

const signupYAML = `
flow: signup
steps:
  - name: account
    completed_if: account_created
  - name: profile
    dependencies: [account]
    completed_if: profile_saved
    on_enter: show_profile_form
  - name: confirm
    dependencies: [profile]
`

// TestLoad verifies YAML parsing and validation.
func TestLoad(t *testing.T) {
	t.Run("valid definition", func(t *testing.T) {
		cfg, err := Load(strings.NewReader(signupYAML))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Flow != "signup" {
			t.Errorf("expected flow %q, got %q", "signup", cfg.Flow)
		}
		if len(cfg.Steps) != 3 {
			t.Fatalf("expected 3 steps, got %d", len(cfg.Steps))
		}
		if cfg.Steps[1].Name != "profile" {
			t.Errorf("expected second step %q, got %q", "profile", cfg.Steps[1].Name)
		}
		if len(cfg.Steps[1].Dependencies) != 1 || cfg.Steps[1].Dependencies[0] != "account" {
			t.Errorf("unexpected dependencies: %v", cfg.Steps[1].Dependencies)
		}
		if cfg.Steps[1].OnEnter != "show_profile_form" {
			t.Errorf("unexpected on_enter: %q", cfg.Steps[1].OnEnter)
		}
	})

	t.Run("missing flow name", func(t *testing.T) {
		_, err := Load(strings.NewReader("steps:\n  - name: a\n"))
		if err == nil {
			t.Error("expected error for missing flow name")
		}
	})

	t.Run("no steps", func(t *testing.T) {
		_, err := Load(strings.NewReader("flow: empty\n"))
		if err == nil {
			t.Error("expected error for empty step list")
		}
	})

	t.Run("duplicate step names", func(t *testing.T) {
		_, err := Load(strings.NewReader("flow: dup\nsteps:\n  - name: a\n  - name: a\n"))
		if err == nil || !strings.Contains(err.Error(), "duplicate step name") {
			t.Errorf("expected duplicate step error, got %v", err)
		}
	})

	t.Run("nameless step", func(t *testing.T) {
		_, err := Load(strings.NewReader("flow: f\nsteps:\n  - dependencies: [a]\n"))
		if err == nil || !strings.Contains(err.Error(), "has no name") {
			t.Errorf("expected nameless step error, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(strings.NewReader("flow: [unclosed"))
		if err == nil {
			t.Error("expected parse error")
		}
	})
}

// TestConfig_Build verifies registry binding.
func TestConfig_Build(t *testing.T) {
	t.Run("binds predicates and hooks", func(t *testing.T) {
		cfg, err := Load(strings.NewReader(signupYAML))
		if err != nil {
			t.Fatal(err)
		}

		accountCreated := false
		profileSaved := false
		entered := 0

		reg := NewRegistry()
		reg.RegisterPredicate("account_created", func() bool { return accountCreated })
		reg.RegisterPredicate("profile_saved", func() bool { return profileSaved })
		reg.RegisterHook("show_profile_form", func(e *flow.Engine) { entered++ })

		decls, err := cfg.Build(reg)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(decls) != 3 {
			t.Fatalf("expected 3 declarations, got %d", len(decls))
		}

		engine, err := flow.New(decls, flow.WithFlowID(cfg.Flow))
		if err != nil {
			t.Fatal(err)
		}

		// Nothing completed: falls back to the first unmet prerequisite.
		if err := engine.Go("confirm"); err != nil {
			t.Fatal(err)
		}
		if engine.CurrentStep() != "account" {
			t.Fatalf("expected fallback to %q, got %q", "account", engine.CurrentStep())
		}

		accountCreated = true
		if err := engine.Go("confirm"); err != nil {
			t.Fatal(err)
		}
		if engine.CurrentStep() != "profile" {
			t.Fatalf("expected %q, got %q", "profile", engine.CurrentStep())
		}
		if entered != 1 {
			t.Errorf("on_enter hook ran %d times, want 1", entered)
		}
	})

	t.Run("unknown predicate key", func(t *testing.T) {
		cfg, err := Load(strings.NewReader(signupYAML))
		if err != nil {
			t.Fatal(err)
		}

		reg := NewRegistry()
		reg.RegisterPredicate("account_created", func() bool { return false })
		// profile_saved and show_profile_form missing.

		_, err = cfg.Build(reg)
		if err == nil || !strings.Contains(err.Error(), "unknown predicate") {
			t.Errorf("expected unknown predicate error, got %v", err)
		}
	})

	t.Run("unknown hook key", func(t *testing.T) {
		cfg, err := Load(strings.NewReader(signupYAML))
		if err != nil {
			t.Fatal(err)
		}

		reg := NewRegistry()
		reg.RegisterPredicate("account_created", func() bool { return false })
		reg.RegisterPredicate("profile_saved", func() bool { return false })

		_, err = cfg.Build(reg)
		if err == nil || !strings.Contains(err.Error(), "unknown hook") {
			t.Errorf("expected unknown hook error, got %v", err)
		}
	})
}

// TestRegistry verifies registration and lookup.
func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	reg.RegisterPredicate("done", func() bool { return true })
	reg.RegisterHook("noop", func(e *flow.Engine) {})

	if _, err := reg.Predicate("done"); err != nil {
		t.Errorf("registered predicate not found: %v", err)
	}
	if _, err := reg.Hook("noop"); err != nil {
		t.Errorf("registered hook not found: %v", err)
	}
	if _, err := reg.Predicate("absent"); err == nil {
		t.Error("expected error for unknown predicate")
	}
	if _, err := reg.Hook("absent"); err == nil {
		t.Error("expected error for unknown hook")
	}

	if names := reg.Predicates(); len(names) != 1 || names[0] != "done" {
		t.Errorf("unexpected predicate names: %v", names)
	}
	if names := reg.Hooks(); len(names) != 1 || names[0] != "noop" {
		t.Errorf("unexpected hook names: %v", names)
	}
}
