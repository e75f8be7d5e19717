package routing

import (
	"sort"

	"github.com/ai-gateway/conversation-relay/internal/provider"
)

// Router maps provider names to implementations.
type Router struct {
	providers map[string]provider.Provider
	defaultP  provider.Provider
}

func New() *Router {
	return &Router{providers: make(map[string]provider.Provider)}
}

// Register associates a name with a provider implementation. The first
// registered provider becomes the default.
func (r *Router) Register(name string, p provider.Provider) {
	r.providers[name] = p
	if r.defaultP == nil {
		r.defaultP = p
	}
}

// ProviderFor returns the named provider or the default provider.
func (r *Router) ProviderFor(name string) provider.Provider {
	if p, ok := r.providers[name]; ok {
		return p
	}
	return r.defaultP
}

// Has reports whether name was registered.
func (r *Router) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

func (r *Router) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
