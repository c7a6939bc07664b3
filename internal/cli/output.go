package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/envlist/internal/model"
)

// variableResult is the structured output for one variable, shared by the
// list, get, first, and show commands.
type variableResult struct {
	Name     string   `json:"name" yaml:"name"`
	Set      bool     `json:"set" yaml:"set"`
	Value    string   `json:"value" yaml:"value"`
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// printStructured writes v as JSON or YAML according to the global
// --output flag. It returns false for text output, leaving the caller to
// print its own human-readable form.
func printStructured(w io.Writer, v interface{}) (bool, error) {
	switch format {
	case model.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case model.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode YAML output: %w", err)
		}
		_, err = w.Write(data)
		return true, err
	default:
		return false, nil
	}
}
