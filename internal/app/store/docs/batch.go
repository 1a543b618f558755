package docs

import (
	"sort"
)

// Op is the kind of a batched write.
type Op int

const (
	// OpSet merges field patches into an existing document. Keys may be
	// dotted paths ("coach.email") addressing nested maps.
	OpSet Op = iota
	// OpCreate inserts a new document and fails if the id is taken.
	OpCreate
)

// Write is one document write inside a Batch.
type Write struct {
	Collection string
	ID         string
	Op         Op
	Fields     map[string]any
}

type writeKey struct {
	collection string
	id         string
}

// Batch collects writes for one atomic commit. Set calls against the same
// document are merged into a single write, later values winning.
type Batch struct {
	writes []*Write
	index  map[writeKey]*Write
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{index: make(map[writeKey]*Write)}
}

// Set queues a field patch. An empty patch is ignored.
func (b *Batch) Set(collection, id string, fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	k := writeKey{collection, id}
	if w, ok := b.index[k]; ok {
		for f, v := range fields {
			w.Fields[f] = v
		}
		return
	}
	w := &Write{Collection: collection, ID: id, Op: OpSet, Fields: make(map[string]any, len(fields))}
	for f, v := range fields {
		w.Fields[f] = v
	}
	b.writes = append(b.writes, w)
	b.index[k] = w
}

// Create queues a document insert.
func (b *Batch) Create(collection, id string, fields map[string]any) {
	w := &Write{Collection: collection, ID: id, Op: OpCreate, Fields: make(map[string]any, len(fields))}
	for f, v := range fields {
		w.Fields[f] = v
	}
	b.writes = append(b.writes, w)
	b.index[writeKey{collection, id}] = w
}

// Pending returns the fields already queued for a document, or nil.
func (b *Batch) Pending(collection, id string) map[string]any {
	if w, ok := b.index[writeKey{collection, id}]; ok {
		return w.Fields
	}
	return nil
}

// Writes returns the queued writes in insertion order.
func (b *Batch) Writes() []Write {
	out := make([]Write, 0, len(b.writes))
	for _, w := range b.writes {
		out = append(out, *w)
	}
	return out
}

// Len is the number of distinct document writes.
func (b *Batch) Len() int { return len(b.writes) }

// Empty reports whether nothing is queued.
func (b *Batch) Empty() bool { return len(b.writes) == 0 }

// Collections returns the sorted set of collections the batch touches.
func (b *Batch) Collections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range b.writes {
		if !seen[w.Collection] {
			seen[w.Collection] = true
			out = append(out, w.Collection)
		}
	}
	sort.Strings(out)
	return out
}

// IDs groups the queued document ids by collection.
func (b *Batch) IDs() map[string][]string {
	out := make(map[string][]string)
	for _, w := range b.writes {
		out[w.Collection] = append(out[w.Collection], w.ID)
	}
	return out
}
