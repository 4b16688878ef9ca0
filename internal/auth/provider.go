package auth

import "context"

// ExternalIdentity is what an identity provider resolves a login to.
type ExternalIdentity struct {
	Provider   string
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	Avatar     string
}

// Provider exchanges an OAuth authorization code for an external identity.
// One implementation exists per supported identity provider; a provider is
// only registered when its credentials are configured.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// Registry maps provider tags to their implementations.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names lists the registered provider tags.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
