package markup

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
)

// Phase tells a factory why it is being called.
type Phase int

const (
	PhaseInitialize Phase = iota
	PhaseRecreate
	PhaseUninitialize
	PhaseCreateControl
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "initialize"
	case PhaseRecreate:
		return "recreate"
	case PhaseUninitialize:
		return "uninitialize"
	case PhaseCreateControl:
		return "create_control"
	default:
		return "unknown"
	}
}

// Sentinel errors for descriptions.
var (
	ErrEmptyDocument = errors.New("empty description")
	ErrNotMapping    = errors.New("description must be a mapping")
	ErrNotContainer  = errors.New("widget type cannot hold children")
)

// CreateFunc creates a widget of one type. Only PhaseCreateControl
// produces a widget; other phases let the type set up or tear down shared
// state and return nil. node may be nil.
type CreateFunc func(t *core.Tree, phase Phase, node *yaml.Node) core.Widget

// Registry maps type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]CreateFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]CreateFunc)}
}

// Register adds or replaces the factory for name. Names are case-insensitive.
func (r *Registry) Register(name string, fn CreateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = fn
}

// Lookup returns the factory for name.
func (r *Registry) Lookup(name string) (CreateFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[strings.ToLower(name)]
	return fn, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// Broadcast calls every factory with phase and no description, in name
// order. It is used for the Initialize, Recreate and Uninitialize phases.
func (r *Registry) Broadcast(t *core.Tree, phase Phase) {
	for _, name := range r.Names() {
		if fn, ok := r.Lookup(name); ok {
			fn(t, phase, nil)
		}
	}
}

// Create is the shared body of a CreateFunc. For PhaseCreateControl it
// allocates a widget, applies the description and adopts it into t. A
// missing description is reported as a hint; a bad one as an error, in
// which case nil is returned.
func Create(t *core.Tree, phase Phase, node *yaml.Node, typeName string, alloc func() core.Widget) core.Widget {
	if phase != PhaseCreateControl {
		return nil
	}
	op := typeName + ".CreateControl"
	if node == nil {
		errors.Report(t.Diagnostics(), &errors.Diagnostic{
			Level:   errors.LevelHint,
			Op:      op,
			Kind:    errors.KindCreate,
			Message: "node null",
		})
	}
	w := alloc()
	if w == nil {
		errors.Fail(t.Diagnostics(), op, errors.KindCreate, "", errors.New("allocation failed"))
		return nil
	}
	if node != nil {
		d, err := Decode(node)
		if err == nil {
			err = d.Apply(w.Node())
		}
		if err != nil {
			errors.Fail(t.Diagnostics(), op, errors.KindCreate, w.Node().Name(), err)
			return nil
		}
	}
	if _, err := t.Adopt(w); err != nil {
		return nil
	}
	return w
}
