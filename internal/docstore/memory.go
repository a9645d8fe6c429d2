package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	docs   map[string]map[int64]Document
	nextID map[string]int64
	keys   []UniqueKey
}

// NewMemoryStore keeps documents in process memory and enforces keys on
// every write.
func NewMemoryStore(keys []UniqueKey) Store {
	s := &memoryStore{
		docs:   make(map[string]map[int64]Document),
		nextID: make(map[string]int64),
		keys:   keys,
	}
	for _, r := range Resources {
		s.docs[r] = make(map[int64]Document)
		s.nextID[r] = 1
	}
	return s
}

func (s *memoryStore) collection(resource string) (map[int64]Document, error) {
	c, ok := s.docs[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	return c, nil
}

func (s *memoryStore) List(ctx context.Context, resource string, q Query) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		d := c[id]
		if matches(d, q) {
			out = append(out, d.withID(id))
		}
	}
	return out, nil
}

func matches(d Document, q Query) bool {
	for _, f := range q.Filters {
		v, ok := d[f.Field]
		if !ok || fieldString(v) != f.Value {
			return false
		}
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	for _, v := range d {
		var s string
		if str, ok := v.(string); ok {
			s = str
		} else {
			b, _ := json.Marshal(v)
			s = string(b)
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func (s *memoryStore) Get(ctx context.Context, resource string, id int64) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	d, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d.withID(id), nil
}

func (s *memoryStore) Create(ctx context.Context, resource string, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	body := doc.body()
	if s.violates(resource, body, 0) {
		return nil, ErrConflict
	}

	id := s.nextID[resource]
	s.nextID[resource] = id + 1
	c[id] = body
	return body.withID(id), nil
}

func (s *memoryStore) Patch(ctx context.Context, resource string, id int64, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	existing, ok := c[id]
	if !ok {
		return nil, ErrNotFound
	}

	merged := existing.body()
	for k, v := range doc.body() {
		merged[k] = v
	}
	if s.violates(resource, merged, id) {
		return nil, ErrConflict
	}
	c[id] = merged
	return merged.withID(id), nil
}

func (s *memoryStore) Replace(ctx context.Context, resource string, id int64, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	if _, ok := c[id]; !ok {
		return nil, ErrNotFound
	}
	body := doc.body()
	if s.violates(resource, body, id) {
		return nil, ErrConflict
	}
	c[id] = body
	return body.withID(id), nil
}

func (s *memoryStore) Delete(ctx context.Context, resource string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return err
	}
	if _, ok := c[id]; !ok {
		return ErrNotFound
	}
	delete(c, id)
	return nil
}

func (s *memoryStore) Seed(ctx context.Context, data map[string][]Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for resource, docs := range data {
		c, err := s.collection(resource)
		if err != nil {
			return err
		}
		if len(c) > 0 {
			continue
		}
		for _, d := range docs {
			id, ok := d.ID()
			if !ok {
				id = s.nextID[resource]
			}
			c[id] = d.body()
			if id >= s.nextID[resource] {
				s.nextID[resource] = id + 1
			}
		}
	}
	return nil
}

// violates reports whether body collides with another document on any
// unique key. skip excludes the document being updated.
func (s *memoryStore) violates(resource string, body Document, skip int64) bool {
	for _, k := range s.keys {
		if k.Resource != resource {
			continue
		}
		want, ok := k.value(body)
		if !ok {
			continue
		}
		for id, d := range s.docs[resource] {
			if id == skip {
				continue
			}
			if got, ok := k.value(d); ok && got == want {
				return true
			}
		}
	}
	return false
}
