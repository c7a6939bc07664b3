package env

import (
	"fmt"

	"go.uber.org/zap"
	"v.io/x/lib/envvar"
)

// Env binds the list operations to one environment table.
type Env struct {
	accessor Accessor
	sep      rune
	logger   *zap.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithAccessor replaces the process environment with a.
func WithAccessor(a Accessor) Option {
	return func(e *Env) { e.accessor = a }
}

// WithSeparator overrides the platform list separator.
func WithSeparator(sep rune) Option {
	return func(e *Env) { e.sep = sep }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// New returns an Env over the process environment using the platform
// separator. Options override either.
func New(opts ...Option) *Env {
	e := &Env{
		accessor: OS(),
		sep:      Separator,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Separator returns the list separator in use.
func (e *Env) Separator() rune {
	return e.sep
}

// NewList returns an empty list using the separator of e.
func (e *Env) NewList() *List {
	return NewList(e.sep)
}

// Load decomposes the variable name. An unset variable yields an empty
// list; the element count is the list's Len.
func (e *Env) Load(name string) (*List, error) {
	raw, found, err := e.accessor.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !found {
		e.logger.Debug("variable not set", zap.String("name", name))
		return e.NewList(), nil
	}
	l := Decompose(raw, e.sep)
	e.logger.Debug("loaded list", zap.String("name", name), zap.Int("count", l.Len()))
	return l, nil
}

// Save composes l into the variable name, overwriting it. An empty list
// removes the variable instead of setting it to "".
func (e *Env) Save(l *List, name string) error {
	raw, ok, err := Compose(l, e.sep)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	if !ok {
		e.logger.Debug("empty list, removing variable", zap.String("name", name))
		return e.accessor.Unset(name)
	}
	e.logger.Debug("saving list", zap.String("name", name), zap.Int("count", l.Len()))
	return e.accessor.Set(name, raw)
}

// Get returns the raw value of name.
func (e *Env) Get(name string) (string, bool, error) {
	return e.accessor.Lookup(name)
}

// Set overwrites name with the raw, possibly delimited, value.
func (e *Env) Set(name, raw string) error {
	return e.accessor.Set(name, raw)
}

// Remove unsets name.
func (e *Env) Remove(name string) error {
	e.logger.Debug("removing variable", zap.String("name", name))
	return e.accessor.Unset(name)
}

// First returns the first element of name without building a list.
// found is false when the variable is unset or holds no element.
func (e *Env) First(name string) (string, bool, error) {
	raw, found, err := e.accessor.Lookup(name)
	if err != nil || !found {
		return "", false, err
	}
	first, ok := firstElement(raw, e.sep)
	return first, ok, nil
}

// firstElement returns the first non-empty segment of raw.
func firstElement(raw string, sep rune) (string, bool) {
	tokens := envvar.SplitTokens(raw, string(sep))
	if len(tokens) == 0 {
		return "", false
	}
	return tokens[0], true
}

// FirstInto copies the first element of name into buf followed by a NUL
// byte and returns the element length. The whole raw value plus its
// terminator must fit in buf, otherwise ErrBufferTooSmall is returned.
// An unset or empty variable yields 0 and a nil error.
func (e *Env) FirstInto(name string, buf []byte) (int, error) {
	raw, found, err := e.accessor.Lookup(name)
	if err != nil || !found || raw == "" {
		return 0, err
	}
	if len(raw)+1 > len(buf) {
		return 0, fmt.Errorf("%s needs %d bytes, have %d: %w", name, len(raw)+1, len(buf), ErrBufferTooSmall)
	}
	first, ok := firstElement(raw, e.sep)
	if !ok {
		return 0, nil
	}
	n := copy(buf, first)
	buf[n] = 0
	return n, nil
}

// Add inserts the elements of the delimited raw value into name without
// dropping what is already there. With toHead the elements keep their
// relative order in front of the existing ones; otherwise they are
// appended. Elements already present are moved rather than duplicated.
func (e *Env) Add(name, raw string, toHead bool) error {
	l, err := e.Load(name)
	if err != nil {
		return err
	}
	values := Decompose(raw, e.sep).Values()
	if toHead {
		for i := len(values) - 1; i >= 0; i-- {
			if err := l.Insert(values[i], true); err != nil {
				return err
			}
		}
	} else {
		for _, v := range values {
			if err := l.Insert(v, false); err != nil {
				return err
			}
		}
	}
	return e.Save(l, name)
}
