package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/schema"
)

// Entry is a registered tool: its spec and the handler bound to it.
type Entry struct {
	Spec    domain.ToolSpec
	Handler domain.ToolHandler
}

// Registry holds the available tools and prompts.
// It is filled at startup and frozen before serving; there is no removal.
type Registry struct {
	mu      sync.RWMutex
	frozen  bool
	tools   map[string]Entry
	order   []string
	prompts map[string]domain.PromptSpec
	porder  []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]Entry),
		prompts: make(map[string]domain.PromptSpec),
	}
}

// Register binds handler to spec.
// It fails with domain.ErrDuplicateName if the name is taken, keeping the first registration.
func (r *Registry) Register(spec domain.ToolSpec, handler domain.ToolHandler) error {
	if spec.Name == "" {
		return fmt.Errorf("register tool: empty name")
	}
	if handler == nil {
		return fmt.Errorf("register tool %q: nil handler", spec.Name)
	}
	seen := make(map[string]struct{}, len(spec.Parameters))
	for _, p := range spec.Parameters {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("register tool %q: parameter %q declared twice", spec.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if _, err := schema.ParseType(string(p.Type)); err != nil {
			return fmt.Errorf("register tool %q: parameter %q: %w", spec.Name, p.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register tool %q: %w", spec.Name, domain.ErrRegistryFrozen)
	}
	if _, exists := r.tools[spec.Name]; exists {
		return fmt.Errorf("register tool %q: %w", spec.Name, domain.ErrDuplicateName)
	}

	spec.Parameters = append([]domain.Parameter(nil), spec.Parameters...)
	r.tools[spec.Name] = Entry{Spec: spec, Handler: handler}
	r.order = append(r.order, spec.Name)
	return nil
}

// RegisterPrompt adds a prompt template. Same duplicate rules as Register.
func (r *Registry) RegisterPrompt(spec domain.PromptSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("register prompt: empty name")
	}
	if spec.Render == nil {
		return fmt.Errorf("register prompt %q: nil render function", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register prompt %q: %w", spec.Name, domain.ErrRegistryFrozen)
	}
	if _, exists := r.prompts[spec.Name]; exists {
		return fmt.Errorf("register prompt %q: %w", spec.Name, domain.ErrDuplicateName)
	}

	spec.Arguments = append([]domain.PromptArgument(nil), spec.Arguments...)
	r.prompts[spec.Name] = spec
	r.porder = append(r.porder, spec.Name)
	return nil
}

// Freeze makes the registry immutable. Subsequent registrations fail.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup returns the entry registered under name, or domain.ErrUnknownTool.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	entry, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	return entry, nil
}

// LookupPrompt returns the prompt registered under name, or domain.ErrUnknownPrompt.
func (r *Registry) LookupPrompt(name string) (domain.PromptSpec, error) {
	r.mu.RLock()
	spec, ok := r.prompts[name]
	r.mu.RUnlock()

	if !ok {
		return domain.PromptSpec{}, fmt.Errorf("%w: %s", domain.ErrUnknownPrompt, name)
	}
	return spec, nil
}

// Tools returns the registered specs in registration order.
func (r *Registry) Tools() []domain.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]domain.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec)
	}
	return specs
}

// Prompts returns the registered prompts in registration order.
func (r *Registry) Prompts() []domain.PromptSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]domain.PromptSpec, 0, len(r.porder))
	for _, name := range r.porder {
		specs = append(specs, r.prompts[name])
	}
	return specs
}
