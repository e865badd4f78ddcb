// fastview is a small server-side-view kit: a data model streams in, a
// conversion maps it to a view-model, and one or more views turn view-models
// into idempotent element updates pushed to the browser over a websocket.
package fastview

import "html/template"

// EleUpdate targets one element by id with a set of attribute/content ops.
type EleUpdate struct {
	// EleId locates the element in the page.
	EleId string
	// Ops are applied in order; the reserved key 'textContent' sets the
	// element text, every other key sets an attribute of that name.
	Ops []Op
}

// Op is one attribute key and its new value.
type Op struct {
	Key   string
	Value string
}

// ViewComponent is a server-side view: Parse adds the view's template to the
// passed parent (inheriting its func-map) and returns the template name;
// Updates exposes the element updates the view emits as data flows.
type ViewComponent interface {
	Updates() <-chan []EleUpdate
	Parse(*template.Template) (string, error)
}
