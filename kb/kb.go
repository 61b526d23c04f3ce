package kb

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/model"
)

var (
	// ErrInstanceExists is returned when adding an instance whose id is taken.
	ErrInstanceExists = errors.New("instance already exists")
	// ErrInstanceNotFound is returned for unknown instance ids.
	ErrInstanceNotFound = errors.New("instance not found")
	// ErrNoReport is returned when an instance has not been solved yet.
	ErrNoReport = errors.New("instance has no report")
)

// EventType indicates what kind of change happened in the KB.
type EventType int

const (
	EventInstanceAdded EventType = iota
	EventInstanceSolved
	EventInstanceRemoved
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type       EventType
	InstanceID string
}

// MetricsRecorder receives the number of stored instances after every
// change.
type MetricsRecorder interface {
	SetStoredInstances(n int)
}

type entry struct {
	inst   *model.Instance
	report *instance.Report
}

// KnowledgeBase is an in-memory, thread-safe store of problem instances and
// the latest report produced for each.
type KnowledgeBase struct {
	mu sync.RWMutex

	entries map[string]*entry

	subs    []func(Event)
	metrics MetricsRecorder
}

// NewKnowledgeBase constructs an empty KB.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		entries: make(map[string]*entry),
	}
}

// SetMetricsRecorder wires a recorder that tracks the instance count.
func (kb *KnowledgeBase) SetMetricsRecorder(r MetricsRecorder) {
	kb.mu.Lock()
	kb.metrics = r
	n := len(kb.entries)
	kb.mu.Unlock()
	if r != nil {
		r.SetStoredInstances(n)
	}
}

// AddInstance stores in under its id. The instance must be valid and must
// carry a non-empty id that is not already stored.
func (kb *KnowledgeBase) AddInstance(in *model.Instance) error {
	if in == nil || in.ID == "" {
		return fmt.Errorf("%w: instance id is required", model.ErrInvalidInstance)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	kb.mu.Lock()
	if _, exists := kb.entries[in.ID]; exists {
		kb.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInstanceExists, in.ID)
	}
	kb.entries[in.ID] = &entry{inst: in}
	n, rec := len(kb.entries), kb.metrics
	kb.mu.Unlock()

	kb.afterChange(rec, n, Event{Type: EventInstanceAdded, InstanceID: in.ID})
	return nil
}

// GetInstance returns the instance stored under id.
func (kb *KnowledgeBase) GetInstance(id string) (*model.Instance, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	e, ok := kb.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, id)
	}
	return e.inst, nil
}

// ListInstances returns all stored instances ordered by id.
func (kb *KnowledgeBase) ListInstances() []*model.Instance {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	out := make([]*model.Instance, 0, len(kb.entries))
	for _, e := range kb.entries {
		out = append(out, e.inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RemoveInstance deletes the instance and its report.
func (kb *KnowledgeBase) RemoveInstance(id string) error {
	kb.mu.Lock()
	if _, ok := kb.entries[id]; !ok {
		kb.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInstanceNotFound, id)
	}
	delete(kb.entries, id)
	n, rec := len(kb.entries), kb.metrics
	kb.mu.Unlock()

	kb.afterChange(rec, n, Event{Type: EventInstanceRemoved, InstanceID: id})
	return nil
}

// SetReport records the latest report for a stored instance.
func (kb *KnowledgeBase) SetReport(id string, r *instance.Report) error {
	kb.mu.Lock()
	e, ok := kb.entries[id]
	if !ok {
		kb.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInstanceNotFound, id)
	}
	e.report = r
	n, rec := len(kb.entries), kb.metrics
	kb.mu.Unlock()

	kb.afterChange(rec, n, Event{Type: EventInstanceSolved, InstanceID: id})
	return nil
}

// GetReport returns the latest report of a stored instance.
func (kb *KnowledgeBase) GetReport(id string) (*instance.Report, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	e, ok := kb.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, id)
	}
	if e.report == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoReport, id)
	}
	return e.report, nil
}

// Subscribe registers a callback invoked after every change. Callbacks run
// on the mutating goroutine, outside the store lock.
func (kb *KnowledgeBase) Subscribe(fn func(Event)) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.subs = append(kb.subs, fn)
}

func (kb *KnowledgeBase) afterChange(rec MetricsRecorder, n int, ev Event) {
	if rec != nil {
		rec.SetStoredInstances(n)
	}
	kb.mu.RLock()
	subs := slices.Clone(kb.subs)
	kb.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
