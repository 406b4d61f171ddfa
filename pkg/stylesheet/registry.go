// Package stylesheet loads CSS-like style rules and applies them to
// property stores as classes. The grammar is a deliberately small subset of
// CSS: class selectors with optional pseudo-states, flat declaration
// blocks, no nesting and no at-rules. Parsing is permissive; malformed
// fragments are skipped rather than rejected, matching how desktop themes
// degrade in the wild.
package stylesheet

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/telemetry"
)

// pseudoStates are the selector suffixes recognized after a class name.
// Anything else after the colon is ignored along with its declarations.
var pseudoStates = map[string]bool{
	"hover":    true,
	"active":   true,
	"checked":  true,
	"selected": true,
	"focus":    true,
	"disabled": true,
}

// classKey is the property under which a node's applied class list lives.
const classKey = "class"

// Registry holds parsed style classes and applies them to property stores.
// It is an explicit value handed to whoever needs it; there is no process
// singleton. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]map[string]string
	hub     *telemetry.Hub
}

// New creates an empty registry. hub may be nil.
func New(hub *telemetry.Hub) *Registry {
	return &Registry{
		classes: make(map[string]map[string]string),
		hub:     hub,
	}
}

// Load parses stylesheet source and merges its rules into the registry.
// Later rules for the same class/property overwrite earlier ones. origin
// names the source for telemetry only. Returns the number of rules merged.
func (r *Registry) Load(source, origin string) int {
	rules := parse(source)
	r.mu.Lock()
	for class, props := range rules {
		dst, ok := r.classes[class]
		if !ok {
			dst = make(map[string]string, len(props))
			r.classes[class] = dst
		}
		for k, v := range props {
			dst[k] = v
		}
	}
	r.mu.Unlock()

	r.hub.Emit(telemetry.EventStylesheetLoaded, origin, map[string]any{
		"rules": len(rules),
	})
	return len(rules)
}

// LoadFile reads and loads a stylesheet from disk.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load stylesheet %s: %w", path, err)
	}
	r.Load(string(data), path)
	return nil
}

// Define registers a class programmatically, merging over any parsed rule.
func (r *Registry) Define(class string, props map[string]string) {
	if class == "" || len(props) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	dst, ok := r.classes[class]
	if !ok {
		dst = make(map[string]string, len(props))
		r.classes[class] = dst
	}
	for k, v := range props {
		dst[k] = v
	}
}

// Class returns a copy of the properties registered under class.
func (r *Registry) Class(class string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.classes[class]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Classes returns the sorted names of all registered classes.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AddClass splits names on whitespace, adds each token to the store's
// class set, and re-applies the set's style properties. The set is kept
// sorted and de-duplicated in the "class" property as a space-separated
// list. Adding only classes already present is a no-op.
func (r *Registry) AddClass(s *property.Store, names string) {
	if s == nil {
		return
	}
	set := classSet(s.Get(classKey, ""))
	changed := false
	for _, n := range strings.Fields(names) {
		if !set[n] {
			set[n] = true
			changed = true
		}
	}
	if !changed {
		return
	}
	s.Set(classKey, joinClasses(set))
	r.apply(s, set)
}

// RemoveClass splits names on whitespace, removes each token from the
// store's class set, and re-applies the remaining classes. Properties
// contributed only by the removed classes are not retracted; they keep
// their last value until another class or an explicit Set overwrites them.
func (r *Registry) RemoveClass(s *property.Store, names string) {
	if s == nil {
		return
	}
	set := classSet(s.Get(classKey, ""))
	changed := false
	for _, n := range strings.Fields(names) {
		if set[n] {
			delete(set, n)
			changed = true
		}
	}
	if !changed {
		return
	}
	s.Set(classKey, joinClasses(set))
	r.apply(s, set)
}

// HasClass reports whether every whitespace-separated token of names is in
// the store's class set.
func (r *Registry) HasClass(s *property.Store, names string) bool {
	if s == nil {
		return false
	}
	tokens := strings.Fields(names)
	if len(tokens) == 0 {
		return false
	}
	set := classSet(s.Get(classKey, ""))
	for _, n := range tokens {
		if !set[n] {
			return false
		}
	}
	return true
}

// ToggleClass adds name if absent, removes it if present.
func (r *Registry) ToggleClass(s *property.Store, name string) {
	if r.HasClass(s, name) {
		r.RemoveClass(s, name)
	} else {
		r.AddClass(s, name)
	}
}

// Reapply pushes the store's current class set onto it again, picking up
// any rules loaded since the classes were added.
func (r *Registry) Reapply(s *property.Store) {
	if s == nil {
		return
	}
	r.apply(s, classSet(s.Get(classKey, "")))
}

func (r *Registry) apply(s *property.Store, set map[string]bool) {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range names {
		for k, v := range r.classes[n] {
			s.Set(k, v)
		}
	}
}

func classSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(list) {
		set[f] = true
	}
	return set
}

func joinClasses(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}
