// Package property implements the per-node property store backing Slate's
// style cascade. Every node in the UI tree (widget, cell, layout, container,
// and the application root) owns exactly one Store. A lookup that misses
// locally defers to the parent chain and terminates at the root with the
// caller-supplied default, so "not found" is a normal outcome, never an
// error.
package property

// Store is a string key/value map with a single non-owning parent
// reference. The parent pointer is set by whichever component attaches a
// child (a cell attaching a widget, a layout attaching a cell) and is
// simply overwritten on re-parenting. Node lifetime is owned top-down by
// the component that constructed the node, never by the Store.
type Store struct {
	parent *Store
	values map[string]string
}

// NewStore creates an empty store with no parent.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// SetParent points the store at a new cascade parent. Passing nil detaches
// the store from the chain.
func (s *Store) SetParent(parent *Store) {
	s.parent = parent
}

// Parent returns the cascade parent, or nil at the root.
func (s *Store) Parent() *Store {
	return s.parent
}

// Get returns the value for key, walking up the parent chain on a local
// miss. If no store in the chain defines the key, def is returned.
func (s *Store) Get(key, def string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	if s.parent != nil {
		return s.parent.Get(key, def)
	}
	return def
}

// Set stores value under key locally, shadowing any ancestor value. It
// always succeeds, overwrites silently, and returns the store for chaining.
func (s *Store) Set(key, value string) *Store {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return s
}

// Has reports whether key resolves to a non-empty value anywhere in the
// chain. An explicitly set empty string is indistinguishable from absent.
func (s *Store) Has(key string) bool {
	return s.Get(key, "") != ""
}

// Local returns the value set directly on this store, bypassing the chain.
func (s *Store) Local(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Delete removes a local key. Ancestor values are untouched and become
// visible again.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Len returns the number of local keys.
func (s *Store) Len() int {
	return len(s.values)
}
