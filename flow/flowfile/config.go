// Package flowfile loads declarative flow definitions from YAML.
//
// A flow file names the steps, their dependencies, and — by registry key —
// the completion predicates and hooks to bind. Predicates and hooks are Go
// functions registered in a Registry, because behavior cannot live in YAML.
//
// Example flow file:
//
//	flow: signup
//	steps:
//	  - name: account
//	    completed_if: account_created
//	    on_enter: show_account_form
//	    on_leave: hide_account_form
//	  - name: profile
//	    dependencies: [account]
//	    completed_if: profile_saved
//	  - name: confirm
//	    dependencies: [profile]
package flowfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/flowstep-go/flow"
)

// Config represents a complete flow definition loaded from YAML.
type Config struct {
	// Flow is the flow identifier, used as the engine's flow ID.
	Flow string `yaml:"flow"`

	// Steps lists the step definitions in declaration order.
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig represents one step definition from YAML.
type StepConfig struct {
	// Name is the step's unique identifier.
	Name string `yaml:"name"`

	// Dependencies lists the names of prerequisite steps.
	Dependencies []string `yaml:"dependencies,omitempty"`

	// CompletedIf is the registry key of the step's completion predicate.
	// Empty means the step is always considered completed.
	CompletedIf string `yaml:"completed_if,omitempty"`

	// OnEnter and OnLeave are registry keys of the step's hooks.
	// Empty means no-op.
	OnEnter string `yaml:"on_enter,omitempty"`
	OnLeave string `yaml:"on_leave,omitempty"`
}

// Load parses a flow definition from a reader.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow definition: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flow definition: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile parses a flow definition from a file path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flow definition: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Validate checks structural validity of the definition.
//
// It requires a non-empty flow name and non-empty, unique step names.
// Referential integrity of dependencies is intentionally not checked: the
// engine resolves dependencies lazily, and a dependency naming an
// undeclared step only fails if a transition actually reaches it.
func (c *Config) Validate() error {
	if c.Flow == "" {
		return fmt.Errorf("flow name is required")
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("flow %q declares no steps", c.Flow)
	}

	seen := make(map[string]bool, len(c.Steps))
	for i, step := range c.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d has no name", i)
		}
		if seen[step.Name] {
			return fmt.Errorf("duplicate step name: %s", step.Name)
		}
		seen[step.Name] = true
	}

	return nil
}

// Build resolves the definition against a registry and returns the step
// declarations in declared order, ready for flow.New.
//
// Every non-empty completed_if/on_enter/on_leave key must be registered;
// an unknown key is a build error.
//
// Example:
//
//	cfg, err := flowfile.LoadFile("signup.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	decls, err := cfg.Build(reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := flow.New(decls, flow.WithFlowID(cfg.Flow))
func (c *Config) Build(reg *Registry) ([]flow.Declaration, error) {
	decls := make([]flow.Declaration, 0, len(c.Steps))

	for _, step := range c.Steps {
		decl := flow.Declaration{
			Name:         step.Name,
			Dependencies: step.Dependencies,
		}

		if step.CompletedIf != "" {
			pred, err := reg.Predicate(step.CompletedIf)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			decl.CompletedIf = pred
		}

		if step.OnEnter != "" {
			hook, err := reg.Hook(step.OnEnter)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			decl.OnEnter = hook
		}

		if step.OnLeave != "" {
			hook, err := reg.Hook(step.OnLeave)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			decl.OnLeave = hook
		}

		decls = append(decls, decl)
	}

	return decls, nil
}
