package view

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
)

var (
	ErrUnknownProvider   = errors.New("view: unknown provider")
	ErrDuplicateProvider = errors.New("view: provider already registered")
	ErrProviderName      = errors.New("view: provider name is required")
)

// Registry selects a Provider by name, so the presentation layer can be
// chosen at runtime (a CLI mode, a request parameter). Providers keep their
// registration order. Registries are built once at startup and are not safe
// for concurrent registration.
type Registry struct {
	providers map[string]Provider
	names     []string
}

// NewRegistry creates a registry holding providers.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds p under p.Name().
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return &field.UsageError{Op: "register provider", Err: ErrProviderName, Detail: "provider is nil"}
	}
	name := strings.TrimSpace(p.Name())
	if name == "" {
		return &field.UsageError{Op: "register provider", Err: ErrProviderName}
	}
	if _, exists := r.providers[name]; exists {
		return &field.UsageError{Op: "register provider", ID: name, Err: ErrDuplicateProvider}
	}
	r.providers[name] = p
	r.names = append(r.names, name)
	return nil
}

// Get returns the provider registered under name. An unknown name yields
// ErrUnknownProvider with the closest registered name as suggestion.
func (r *Registry) Get(name string) (Provider, error) {
	name = strings.TrimSpace(name)
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	return nil, &field.UsageError{
		Op:         "lookup provider",
		ID:         name,
		Err:        ErrUnknownProvider,
		Suggestion: form.Suggest(name, r.names),
	}
}

// Names lists the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Walk looks up the named provider and walks f with it.
func (r *Registry) Walk(f *form.Form, name string) ([]SectionView, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return Walk(f, p)
}
