package template

import "fmt"

// Registry is a read-only site-template table keyed by SiteKey. It is built
// once at startup and never mutated afterwards.
type Registry struct {
	templates map[string]*Template
	keys      []string // insertion order
}

// NewRegistry validates the given templates and builds a registry. A later
// template with the same key replaces an earlier one, which is how a user
// templates file overrides the builtin table; the key keeps its original
// position in Keys().
func NewRegistry(templates ...*Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, seen := r.templates[t.SiteKey]; !seen {
			r.keys = append(r.keys, t.SiteKey)
		}
		r.templates[t.SiteKey] = t.clone()
	}
	return r, nil
}

// Builtin returns a registry holding only the builtin template table.
func Builtin() (*Registry, error) {
	return NewRegistry(builtinTemplates...)
}

// Merged returns a registry of the builtin table with the templates from
// path (if non-empty) layered over it.
func Merged(path string) (*Registry, error) {
	all := make([]*Template, 0, len(builtinTemplates))
	all = append(all, builtinTemplates...)
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, loaded...)
	}
	return NewRegistry(all...)
}

// Get returns a copy of the template for key. The bool reports whether the
// key is known; an unknown key is a normal outcome, not an error. Callers
// may freely mutate the returned copy.
func (r *Registry) Get(key string) (*Template, bool) {
	t, ok := r.templates[key]
	if !ok {
		return nil, false
	}
	return t.clone(), true
}

// Keys returns all registered site keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

func (r *Registry) String() string {
	return fmt.Sprintf("template.Registry(%d sites)", len(r.templates))
}
