package env

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"v.io/x/lib/envvar"
)

// List is the decomposed form of one delimited environment variable.
//
// A List never holds an empty element or an element containing its
// separator; Insert and Replace refuse such values. The zero value is not
// usable, create lists with NewList or Decompose.
type List struct {
	sep    rune
	values []string
}

// NewList returns an empty list whose elements are separated by sep.
func NewList(sep rune) *List {
	return &List{sep: sep}
}

// Decompose splits raw on sep.
//
// Empty segments produced by leading, trailing, or consecutive separators
// are dropped, so "", ":" and "::" all yield an empty list.
func Decompose(raw string, sep rune) *List {
	l := NewList(sep)
	l.values = envvar.SplitTokens(raw, string(sep))
	return l
}

// Compose joins the elements of l with sep.
//
// ok is false when l is nil or empty: the caller should remove the
// variable rather than set it to an empty string. An element that is empty
// or contains sep yields ErrInvalidArgument.
func Compose(l *List, sep rune) (raw string, ok bool, err error) {
	if l.Len() == 0 {
		return "", false, nil
	}
	for _, v := range l.values {
		if err := checkElement(v, sep); err != nil {
			return "", false, err
		}
	}
	return envvar.JoinTokens(l.values, string(sep)), true, nil
}

// checkElement reports whether v may be stored as one list element.
func checkElement(v string, sep rune) error {
	if v == "" {
		return fmt.Errorf("empty list element: %w", ErrInvalidArgument)
	}
	if strings.ContainsRune(v, sep) {
		return fmt.Errorf("list element %q contains separator %q: %w", v, sep, ErrInvalidArgument)
	}
	return nil
}

// Separator returns the rune that separates the elements of l.
func (l *List) Separator() rune {
	return l.sep
}

// Len returns the number of elements. A nil list has none.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.values)
}

// At returns the element at index i, or false when i is out of range.
func (l *List) At(i int) (string, bool) {
	if i < 0 || i >= l.Len() {
		return "", false
	}
	return l.values[i], true
}

// Values returns a copy of the elements in order.
func (l *List) Values() []string {
	if l.Len() == 0 {
		return nil
	}
	return slices.Clone(l.values)
}

// All iterates over the elements with their indices.
func (l *List) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; i < l.Len(); i++ {
			if !yield(i, l.values[i]) {
				return
			}
		}
	}
}

// Contains reports whether value is an element of l.
func (l *List) Contains(value string) bool {
	return l.Len() > 0 && slices.Contains(l.values, value)
}

// Insert adds value at the head or the tail of the list.
//
// A value already present is moved to the requested end instead of being
// duplicated. Empty values and values containing the list separator are
// rejected with ErrInvalidArgument.
func (l *List) Insert(value string, toHead bool) error {
	if err := checkElement(value, l.sep); err != nil {
		return err
	}
	l.Remove(value)
	if toHead {
		l.values = slices.Insert(l.values, 0, value)
	} else {
		l.values = append(l.values, value)
	}
	return nil
}

// Replace clears the list and, when value is not empty, stores it as the
// only element.
func (l *List) Replace(value string) error {
	if value != "" {
		if err := checkElement(value, l.sep); err != nil {
			return err
		}
	}
	l.Clear()
	if value != "" {
		l.values = append(l.values, value)
	}
	return nil
}

// Remove deletes every occurrence of value and reports whether any was found.
func (l *List) Remove(value string) bool {
	n := len(l.values)
	l.values = slices.DeleteFunc(l.values, func(v string) bool { return v == value })
	return len(l.values) != n
}

// Clear drops all elements.
func (l *List) Clear() {
	l.values = l.values[:0]
}

// String returns the elements joined by the list separator.
func (l *List) String() string {
	if l.Len() == 0 {
		return ""
	}
	return envvar.JoinTokens(l.values, string(l.sep))
}
