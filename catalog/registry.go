package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/qconnect/core"
)

// Registry indexes operation descriptors by name and command verb
// (both case-insensitive). It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]*core.Operation
	byCommand map[string]*core.Operation
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*core.Operation),
		byCommand: make(map[string]*core.Operation),
	}
}

// Default returns a registry holding every operation in All.
func Default() *Registry {
	r := NewRegistry()
	for _, op := range All() {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

// Register validates op and adds it. Duplicate names or commands are rejected.
func (r *Registry) Register(op *core.Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	name := strings.ToLower(op.Name)
	cmd := strings.ToLower(op.Command)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("operation %s already registered", op.Name)
	}
	if cmd != "" {
		if _, exists := r.byCommand[cmd]; exists {
			return fmt.Errorf("command %s already registered", op.Command)
		}
		r.byCommand[cmd] = op
	}
	r.byName[name] = op
	return nil
}

// Get looks up an operation by operation name or command verb.
func (r *Registry) Get(name string) (*core.Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if op, ok := r.byName[key]; ok {
		return op, nil
	}
	if op, ok := r.byCommand[key]; ok {
		return op, nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnknownOperation, name)
}

// List returns all registered operations sorted by name.
func (r *Registry) List() []*core.Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Operation, 0, len(r.byName))
	for _, op := range r.byName {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// All returns fresh descriptors for every supported operation.
func All() []*core.Operation {
	return []*core.Operation{
		CreateAssistant(),
		GetAssistant(),
		CreateSession(),
		UpdateSession(),
		UpdateSessionData(),
		SendMessage(),
		GetNextMessage(),
		GetRecommendations(),
		SearchSessions(),
		SearchContent(),
		CreateMessageTemplate(),
		UpdateMessageTemplate(),
		ActivateMessageTemplate(),
		PutFeedback(),
		CreateAIAgent(),
		UpdateAIPrompt(),
		StartContentUpload(),
	}
}
