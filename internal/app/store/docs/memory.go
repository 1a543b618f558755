package docs

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Store. Reads and writes deep-copy documents, so
// callers can never mutate stored state except through Commit. Failure
// injection hooks let tests exercise degraded reads and failed commits.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	order       map[string][]string
	commitErr   error
	loadErrs    map[string]error
	commits     int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
		loadErrs:    make(map[string]error),
	}
}

// Put stores a document directly, replacing any existing one.
func (m *Memory) Put(collection, id string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, Clone(fields))
}

func (m *Memory) put(collection, id string, fields map[string]any) {
	c, ok := m.collections[collection]
	if !ok {
		c = make(map[string]map[string]any)
		m.collections[collection] = c
	}
	if _, exists := c[id]; !exists {
		m.order[collection] = append(m.order[collection], id)
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	c[id] = fields
}

// FailNextCommit makes the next Commit return err without applying anything.
func (m *Memory) FailNextCommit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitErr = err
}

// FailLoad makes every read of collection return err until cleared with nil.
func (m *Memory) FailLoad(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.loadErrs, collection)
		return
	}
	m.loadErrs[collection] = err
}

// Commits is the number of successful commits.
func (m *Memory) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

// Collections lists the collections holding at least one document.
func (m *Memory) Collections() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.collections))
	for name, c := range m.collections {
		if len(c) > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (m *Memory) All(ctx context.Context, collection string) ([]Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.loadErrs[collection]; err != nil {
		return nil, err
	}
	c := m.collections[collection]
	out := make([]Doc, 0, len(c))
	for _, id := range m.order[collection] {
		if f, ok := c[id]; ok {
			out = append(out, Doc{ID: id, Fields: Clone(f)})
		}
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Doc, error) {
	if err := ctx.Err(); err != nil {
		return Doc{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.loadErrs[collection]; err != nil {
		return Doc{}, err
	}
	f, ok := m.collections[collection][id]
	if !ok {
		return Doc{}, ErrNotFound
	}
	return Doc{ID: id, Fields: Clone(f)}, nil
}

func (m *Memory) FindEq(ctx context.Context, collection, field string, value any) ([]Doc, error) {
	all, err := m.All(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, d := range all {
		if Equal(GetPath(d.Fields, field), value) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Commit validates every write against a staged copy before installing any
// of them, so a failing write leaves the store untouched.
func (m *Memory) Commit(ctx context.Context, b *Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.commitErr; err != nil {
		m.commitErr = nil
		return err
	}

	staged := make(map[writeKey]map[string]any)
	var keys []writeKey
	for _, w := range b.Writes() {
		k := writeKey{w.Collection, w.ID}
		cur, ok := staged[k]
		if !ok {
			if existing, exists := m.collections[w.Collection][w.ID]; exists {
				cur = Clone(existing)
			}
		}
		switch w.Op {
		case OpCreate:
			if cur != nil {
				return fmt.Errorf("create %s/%s: document already exists", w.Collection, w.ID)
			}
			cur = Clone(w.Fields)
		case OpSet:
			if cur == nil {
				return fmt.Errorf("set %s/%s: %w", w.Collection, w.ID, ErrNotFound)
			}
			for path, v := range w.Fields {
				SetPath(cur, path, cloneValue(v))
			}
		}
		if _, seen := staged[k]; !seen {
			keys = append(keys, k)
		}
		staged[k] = cur
	}

	for _, k := range keys {
		m.put(k.collection, k.id, staged[k])
	}
	m.commits++
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}
