// Package profile loads and applies declarative environment edits.
//
// A profile names variables and, for each, the edits to perform: set or
// unset the raw value, or remove, prepend, and append list elements.
// Profiles are written as JSONC (JSON with comments, stripped with
// github.com/tidwall/jsonc) or YAML (parsed with gopkg.in/yaml.v3); the
// file extension picks the parser.
package profile
