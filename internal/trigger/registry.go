// Package trigger holds the name-keyed table of placeholder replacements.
//
// A Registry is built once during setup and then only read. Registration is
// not synchronized: every Register call must happen before the first lookup
// that should observe it.
package trigger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoNames is returned when a descriptor has no usable name.
	ErrNoNames = errors.New("trigger: no names given")
	// ErrDuplicateName is returned when a name is already registered.
	ErrDuplicateName = errors.New("trigger: name already registered")
	// ErrNoValue is returned for Computed(nil).
	ErrNoValue = errors.New("trigger: empty replacement")
)

// Replacement is a tagged value: either a static string or a function
// producing one on demand.
type Replacement struct {
	static  string
	compute func() (string, bool)
	isFunc  bool
}

// Static returns a replacement that always yields s.
func Static(s string) Replacement {
	return Replacement{static: s}
}

// Computed returns a replacement that calls fn on every lookup. fn returning
// false means "no value": the placeholder is left as typed.
func Computed(fn func() (string, bool)) Replacement {
	return Replacement{compute: fn, isFunc: true}
}

// IsComputed reports whether the replacement is function-valued.
func (r Replacement) IsComputed() bool {
	return r.isFunc
}

// Produce yields the replacement value.
func (r Replacement) Produce() (string, bool) {
	if !r.isFunc {
		return r.static, true
	}
	if r.compute == nil {
		return "", false
	}
	return r.compute()
}

// Descriptor describes one registered trigger.
type Descriptor struct {
	Names       []string
	Value       Replacement
	Description string
}

// Outcome classifies a single lookup.
type Outcome int

const (
	// Unknown means no trigger is registered under the name.
	Unknown Outcome = iota
	// Declined means the trigger exists but produced no value.
	Declined
	// Found means the trigger produced a value.
	Found
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case Unknown:
		return "unknown"
	case Declined:
		return "declined"
	case Found:
		return "found"
	default:
		return "invalid"
	}
}

// Registry maps normalized trigger names to descriptors.
type Registry struct {
	byName map[string]*Descriptor
	order  []*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
		order:  make([]*Descriptor, 0),
	}
}

// Normalize trims and lowercases a trigger name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a trigger under every name in names. Names are normalized;
// blank names are skipped. Either all names are registered or none.
func (r *Registry) Register(names []string, value Replacement, description string) error {
	if value.isFunc && value.compute == nil {
		return ErrNoValue
	}
	normalized := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		n := Normalize(name)
		if n == "" || seen[n] {
			continue
		}
		if _, exists := r.byName[n]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		seen[n] = true
		normalized = append(normalized, n)
	}
	if len(normalized) == 0 {
		return ErrNoNames
	}

	d := &Descriptor{
		Names:       normalized,
		Value:       value,
		Description: description,
	}
	for _, n := range normalized {
		r.byName[n] = d
	}
	r.order = append(r.order, d)
	return nil
}

// RegisterFunc is shorthand for Register(names, Computed(fn), description).
func (r *Registry) RegisterFunc(names []string, fn func() (string, bool), description string) error {
	return r.Register(names, Computed(fn), description)
}

// MustRegister is like Register but panics on error. Intended for static
// tables assembled at startup.
func (r *Registry) MustRegister(names []string, value Replacement, description string) {
	if err := r.Register(names, value, description); err != nil {
		panic(err)
	}
}

// Descriptor returns the descriptor registered under name, if any.
func (r *Registry) Descriptor(name string) (*Descriptor, bool) {
	d, ok := r.byName[Normalize(name)]
	return d, ok
}

// Lookup resolves name to a value and reports how the lookup went.
func (r *Registry) Lookup(name string) (string, Outcome) {
	d, ok := r.byName[Normalize(name)]
	if !ok {
		return "", Unknown
	}
	v, ok := d.Value.Produce()
	if !ok {
		return "", Declined
	}
	return v, Found
}

// Descriptors lists descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Names lists every registered name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for _, d := range r.order {
		names = append(names, d.Names...)
	}
	return names
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.order)
}
