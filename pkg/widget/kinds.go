package widget

import "sync"

// PropertyKind classifies what a property change invalidates. The set is
// closed: a change either needs a repaint, needs the layout re-arranged,
// or has no visual effect at all.
type PropertyKind int

const (
	// KindPaint properties change appearance without affecting size.
	KindPaint PropertyKind = iota
	// KindLayout properties can change a widget's measured size.
	KindLayout
	// KindBehavior properties have no visual effect.
	KindBehavior
)

var kindsMu sync.RWMutex

// propertyKinds maps property names to their kind. Unregistered
// properties default to KindPaint, the safe over-invalidation.
var propertyKinds = map[string]PropertyKind{
	"color":            KindPaint,
	"background-color": KindPaint,
	"border-color":     KindPaint,
	"class":            KindPaint,
	"variant":          KindPaint,

	"text":    KindLayout,
	"width":   KindLayout,
	"height":  KindLayout,
	"padding": KindLayout,
	"margin":  KindLayout,

	"tooltip": KindBehavior,
	"name":    KindBehavior,
}

// RegisterPropertyKind declares the kind of a custom property. Widgets
// introducing their own properties register them once at package init.
func RegisterPropertyKind(name string, kind PropertyKind) {
	kindsMu.Lock()
	propertyKinds[name] = kind
	kindsMu.Unlock()
}

// PropertyKindOf returns the registered kind for a property name.
func PropertyKindOf(name string) PropertyKind {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if k, ok := propertyKinds[name]; ok {
		return k
	}
	return KindPaint
}
