package arena_views

import (
	"fmt"
	"html/template"

	"neuroarena/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// ObjectMapView colors each discrete state's cell by its object identity. The
// landscape only changes on episode reset, but updates are cheap enough to
// send with every frame and let the batcher dedup them.
type ObjectMapView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewObjectMapView(
	done <-chan struct{},
	frames <-chan Frame,
) *ObjectMapView {
	ov := &ObjectMapView{id: "objectmapview"}
	ov.updates = channerics.Convert(done, frames, ov.onUpdate)
	return ov
}

func (ov *ObjectMapView) Updates() <-chan []fastview.EleUpdate {
	return ov.updates
}

func (ov *ObjectMapView) onUpdate(frame Frame) (ops []fastview.EleUpdate) {
	for _, cell := range frame.Cells {
		ops = append(ops, fastview.EleUpdate{
			EleId: fmt.Sprintf("object_cell_%d", cell.Index),
			Ops: []fastview.Op{
				{Key: "fill", Value: cell.Fill},
			},
		})
	}
	return
}

func (ov *ObjectMapView) Parse(parent *template.Template) (string, error) {
	_, err := parent.Parse(`
	{{ define "` + ov.id + `" }}
	<div id="objectmap">
		<svg width="{{ .Width }}px" height="{{ .Height }}px" style="shape-rendering: crispEdges;">
			{{ range $cell := .Cells }}
			<rect id="object_cell_{{ $cell.Index }}"
				x="{{ $cell.X }}" y="{{ $cell.Y }}"
				width="{{ $cell.W }}" height="{{ $cell.H }}"
				fill="{{ $cell.Fill }}" stroke="gray" stroke-width="1"/>
			{{ end }}
		</svg>
	</div>
	{{ end }}
	`)
	return ov.id, err
}
