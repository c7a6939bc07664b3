// edits.go defines the edit flags shared by the show and
// exec commands and applies them in a fixed order.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
	"github.com/shinji-kodama/envlist/internal/profile"
)

// editFlags holds the edit flag values for show and exec.
type editFlags struct {
	profile string   // --profile: JSONC or YAML profile applied first
	set     []string // --set NAME=VALUE
	unset   []string // --unset NAME
	remove  []string // --remove NAME=VALUE
	prepend []string // --prepend NAME=VALUE
	append  []string // --append NAME=VALUE
}

// register binds the edit flags to cmd. StringArray is used instead of
// StringSlice so values containing commas are not split.
func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Profile file (.jsonc, .json, .yaml, .yml) applied before other edits")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "Set NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&f.unset, "unset", nil, "Unset NAME (repeatable)")
	cmd.Flags().StringArrayVar(&f.remove, "remove", nil, "Remove the elements of VALUE from list NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&f.prepend, "prepend", nil, "Prepend the elements of VALUE to list NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&f.append, "append", nil, "Append the elements of VALUE to list NAME=VALUE (repeatable)")
}

// edits parses the flag values into edits, ordered set, unset, remove,
// prepend, append. Flags of one kind keep their command-line order.
func (f *editFlags) edits() ([]model.Edit, error) {
	groups := []struct {
		kind model.EditKind
		args []string
	}{
		{model.EditSet, f.set},
		{model.EditUnset, f.unset},
		{model.EditRemove, f.remove},
		{model.EditPrepend, f.prepend},
		{model.EditAppend, f.append},
	}

	var edits []model.Edit
	for _, g := range groups {
		for _, arg := range g.args {
			ed, err := model.ParseEdit(g.kind, arg)
			if err != nil {
				return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid edit flag", err)
			}
			edits = append(edits, ed)
		}
	}
	return edits, nil
}

// apply performs the profile, then the flag edits, through e. It returns
// the names of the variables touched, in first-touched order.
func (f *editFlags) apply(e *env.Env) ([]string, error) {
	edits, err := f.edits()
	if err != nil {
		return nil, err
	}

	var touched []string
	seen := make(map[string]bool)
	touch := func(name string) {
		if !seen[name] {
			seen[name] = true
			touched = append(touched, name)
		}
	}

	if f.profile != "" {
		p, err := profile.Load(f.profile)
		if err != nil {
			return nil, err
		}
		VerboseLog("Applying profile %s (%d variables)", f.profile, len(p.Variables))
		if err := p.Apply(e); err != nil {
			return nil, err
		}
		for _, name := range p.Names() {
			touch(name)
		}
	}

	for _, ed := range edits {
		VerboseLog("Applying %s %s=%q", ed.Kind, ed.Name, ed.Value)
		if err := ed.Apply(e); err != nil {
			return nil, err
		}
		touch(ed.Name)
	}
	return touched, nil
}
