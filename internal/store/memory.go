package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Values are deep-copied on the way in and out
// so callers never share maps with the store.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{} // full path -> data
	now  func() time.Time
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]map[string]interface{}),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type memoryDocument struct {
	id   string
	data map[string]interface{}
}

func (d memoryDocument) ID() string { return d.id }

func (d memoryDocument) DataTo(dest interface{}) error { return Decode(d.data, dest) }

func (m *Memory) Get(ctx context.Context, path string, dest interface{}) error {
	if _, _, err := SplitDocPath(path); err != nil {
		return err
	}
	m.mu.RLock()
	data, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if dest == nil {
		return nil
	}
	return Decode(data, dest)
}

func (m *Memory) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if _, _, err := SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = copyMap(Resolve(data, m.now()))
	return nil
}

func (m *Memory) Merge(ctx context.Context, path string, data map[string]interface{}) error {
	if _, _, err := SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := map[string]interface{}{}
	if existing, ok := m.docs[path]; ok {
		next = copyMap(existing)
	}
	MergeInto(next, copyMap(Resolve(data, m.now())))
	m.docs[path] = next
	return nil
}

func (m *Memory) Update(ctx context.Context, path string, updates []Update) error {
	if _, _, err := SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[path]
	if !ok {
		return ErrNotFound
	}
	next := copyMap(existing)
	if err := ApplyUpdates(next, updates, m.now()); err != nil {
		return err
	}
	m.docs[path] = next
	return nil
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	if _, _, err := SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.docs, path)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if err := ValidCollectionPath(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := m.Set(ctx, Join(collection, id), data); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Stream(ctx context.Context, collection string, filters []Filter, fn func(Document) error) error {
	if err := ValidCollectionPath(collection); err != nil {
		return err
	}

	// Snapshot under the lock, then call fn without holding it
	m.mu.RLock()
	var results []memoryDocument
	for path, data := range m.docs {
		parent, id, err := SplitDocPath(path)
		if err != nil || parent != collection {
			continue
		}
		if !Matches(data, filters) {
			continue
		}
		results = append(results, memoryDocument{id: id, data: copyMap(data)})
	}
	m.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool { return results[i].id < results[j].id })

	for _, doc := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// Len returns the number of stored documents across all collections
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *Memory) String() string {
	return fmt.Sprintf("memory store (%d documents)", m.Len())
}

func copyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case map[string]interface{}:
			dst[k] = copyMap(val)
		case []interface{}:
			cp := make([]interface{}, len(val))
			copy(cp, val)
			dst[k] = cp
		case []string:
			cp := make([]string, len(val))
			copy(cp, val)
			dst[k] = cp
		default:
			dst[k] = v
		}
	}
	return dst
}
