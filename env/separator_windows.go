//go:build windows

package env

// Separator joins the elements of a list variable such as PATH.
const Separator = ';'
