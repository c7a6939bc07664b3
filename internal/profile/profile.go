package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
)

// Profile is the parsed form of a profile file.
type Profile struct {
	// Variables maps a variable name to the edits applied to it.
	Variables map[string]VariableEdit `json:"variables" yaml:"variables"`
}

// VariableEdit lists the edits for one variable. Set and Unset replace
// the whole value and cannot be combined with the list edits.
type VariableEdit struct {
	// Set overwrites the variable with this raw value.
	Set *string `json:"set,omitempty" yaml:"set,omitempty"`

	// Unset removes the variable.
	Unset bool `json:"unset,omitempty" yaml:"unset,omitempty"`

	// Remove drops these elements from the list.
	Remove []string `json:"remove,omitempty" yaml:"remove,omitempty"`

	// Prepend inserts these elements, in order, in front of the list.
	Prepend []string `json:"prepend,omitempty" yaml:"prepend,omitempty"`

	// Append inserts these elements, in order, at the end of the list.
	Append []string `json:"append,omitempty" yaml:"append,omitempty"`
}

func (v VariableEdit) hasListEdits() bool {
	return len(v.Remove) > 0 || len(v.Prepend) > 0 || len(v.Append) > 0
}

// Load reads a profile file. Files ending in .yaml or .yml are parsed as
// YAML; anything else as JSONC.
//
// Returns a CLIError with ExitProfileNotFound if the file does not exist.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitProfileNotFound,
				fmt.Sprintf("profile not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p *Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		p, err = ParseJSONC(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile at %s: %w", path, err)
	}
	return p, nil
}

// ParseJSONC parses a profile written as JSON with comments and trailing
// commas, then validates it.
func ParseJSONC(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseYAML parses a YAML profile, then validates it.
func ParseYAML(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects empty names and contradictory edits.
func (p *Profile) Validate() error {
	for _, name := range p.Names() {
		v := p.Variables[name]
		if name == "" {
			return fmt.Errorf("profile: empty variable name: %w", env.ErrInvalidArgument)
		}
		if v.Set != nil && v.Unset {
			return fmt.Errorf("profile: %s: set and unset are mutually exclusive: %w", name, env.ErrInvalidArgument)
		}
		if (v.Set != nil || v.Unset) && v.hasListEdits() {
			return fmt.Errorf("profile: %s: set/unset cannot be combined with remove, prepend or append: %w", name, env.ErrInvalidArgument)
		}
	}
	return nil
}

// Names returns the variable names in sorted order, which is the order
// Apply processes them in.
func (p *Profile) Names() []string {
	names := make([]string, 0, len(p.Variables))
	for name := range p.Variables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply performs the profile's edits through e.
//
// For list edits the variable is loaded once, elements are removed,
// prepended (keeping their listed order), and appended, and the result is
// saved once. A list that ends up empty unsets the variable.
func (p *Profile) Apply(e *env.Env) error {
	for _, name := range p.Names() {
		if err := applyVariable(e, name, p.Variables[name]); err != nil {
			return fmt.Errorf("profile: %s: %w", name, err)
		}
	}
	return nil
}

func applyVariable(e *env.Env, name string, v VariableEdit) error {
	switch {
	case v.Unset:
		return e.Remove(name)
	case v.Set != nil:
		return e.Set(name, *v.Set)
	case !v.hasListEdits():
		return nil
	}

	l, err := e.Load(name)
	if err != nil {
		return err
	}
	for _, value := range v.Remove {
		l.Remove(value)
	}
	for i := len(v.Prepend) - 1; i >= 0; i-- {
		if err := l.Insert(v.Prepend[i], true); err != nil {
			return err
		}
	}
	for _, value := range v.Append {
		if err := l.Insert(value, false); err != nil {
			return err
		}
	}
	return e.Save(l, name)
}
