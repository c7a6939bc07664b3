package env

import (
	"slices"
	"sync"

	"v.io/x/lib/envvar"
)

// Memory is an Accessor over an in-process map. It never touches the
// process environment, which makes it the accessor of choice for tests
// and for previewing edits.
type Memory struct {
	mu   sync.Mutex
	vars map[string]string
}

// NewMemory returns a Memory seeded from KEY=VALUE entries, typically
// os.Environ(). Later entries win over earlier ones with the same key.
func NewMemory(environ []string) *Memory {
	vars := envvar.SliceToMap(environ)
	if vars == nil {
		vars = make(map[string]string)
	}
	return &Memory{vars: vars}
}

func (m *Memory) Lookup(name string) (string, bool, error) {
	if err := validateName(name); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.vars[name]
	return value, found, nil
}

func (m *Memory) Set(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateValue(name, value); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
	return nil
}

func (m *Memory) Unset(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, name)
	return nil
}

// Environ returns the table as sorted KEY=VALUE entries.
func (m *Memory) Environ() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := envvar.MapToSlice(m.vars)
	slices.Sort(out)
	return out
}
