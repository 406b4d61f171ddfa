package property

// State carries the interaction flags consulted during style resolution.
type State struct {
	Selected bool
	Enabled  bool
	Hovered  bool
	Active   bool
}

// Normal is the resting state: enabled, nothing else.
var Normal = State{Enabled: true}

// ResolveStyle resolves a style property through three specificity levels,
// most specific first:
//
//  1. "{elementKind}:{variantKind}:{prop}" when variantKind is non-empty
//  2. "{elementKind}:{prop}" when elementKind is non-empty
//  3. the bare prop
//
// Each level is probed through the state suffixes (see resolveState); the
// first level producing a non-empty value wins. If every level comes up
// empty, def is returned. An empty string is treated identically to "not
// found" at every step, so a style cannot be overridden back to empty
// through this path.
func (s *Store) ResolveStyle(prop, def, elementKind, variantKind string, st State) string {
	if variantKind != "" && elementKind != "" {
		if v := s.resolveState(elementKind+":"+variantKind+":"+prop, st); v != "" {
			return v
		}
	}
	if elementKind != "" {
		if v := s.resolveState(elementKind+":"+prop, st); v != "" {
			return v
		}
	}
	if v := s.resolveState(prop, st); v != "" {
		return v
	}
	return def
}

// resolveState probes state-qualified variants of base in a fixed tie-break
// order: disabled (only when the element is not enabled), then hover, then
// selected, then active, then the unqualified base. Disabled styling beats
// hover and selection on a disabled element, and hover beats selection.
// Callers depend on this exact order.
func (s *Store) resolveState(base string, st State) string {
	if !st.Enabled {
		if v := s.Get(base+":disabled", ""); v != "" {
			return v
		}
	}
	if st.Hovered {
		if v := s.Get(base+":hover", ""); v != "" {
			return v
		}
	}
	if st.Selected {
		if v := s.Get(base+":selected", ""); v != "" {
			return v
		}
	}
	if st.Active {
		if v := s.Get(base+":active", ""); v != "" {
			return v
		}
	}
	return s.Get(base, "")
}
