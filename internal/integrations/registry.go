package integrations

import (
	"fmt"
	"sync"
)

// Registry holds the configured collaborator implementations. Providers are
// registered once at startup; lookups happen per request.
type Registry struct {
	accounting map[string]AccountingProvider
	messengers map[string]Messenger
	active     string
	mu         sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		accounting: make(map[string]AccountingProvider),
		messengers: make(map[string]Messenger),
	}
}

func (r *Registry) RegisterAccounting(p AccountingProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounting[p.Name()]; exists {
		return fmt.Errorf("accounting provider %q already registered", p.Name())
	}
	r.accounting[p.Name()] = p
	if r.active == "" {
		r.active = p.Name()
	}
	return nil
}

func (r *Registry) RegisterMessenger(m Messenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.messengers[m.Name()]; exists {
		return fmt.Errorf("messenger %q already registered", m.Name())
	}
	r.messengers[m.Name()] = m
	return nil
}

func (r *Registry) ActiveAccounting() (AccountingProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == "" {
		return nil, fmt.Errorf("no accounting provider configured")
	}
	return r.accounting[r.active], nil
}

func (r *Registry) Messenger(name string) (Messenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.messengers[name]
	if !ok {
		return nil, fmt.Errorf("messenger %q is not registered", name)
	}
	return m, nil
}
