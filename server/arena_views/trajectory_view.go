package arena_views

import (
	"fmt"
	"html/template"

	"neuroarena/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// TrajectoryView draws the room's walls with the agent's recent path and
// current position overlaid. Walls are static and rendered once in the
// template; updates move only the path, the marker, and the step readout.
type TrajectoryView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewTrajectoryView(
	done <-chan struct{},
	frames <-chan Frame,
) *TrajectoryView {
	tv := &TrajectoryView{id: "trajectoryview"}
	tv.updates = channerics.Convert(done, frames, tv.onUpdate)
	return tv
}

func (tv *TrajectoryView) Updates() <-chan []fastview.EleUpdate {
	return tv.updates
}

func (tv *TrajectoryView) onUpdate(frame Frame) []fastview.EleUpdate {
	return []fastview.EleUpdate{
		{
			EleId: "trajectory_path",
			Ops: []fastview.Op{
				{Key: "points", Value: frame.Path},
			},
		},
		{
			EleId: "agent_marker",
			Ops: []fastview.Op{
				{Key: "cx", Value: fmt.Sprintf("%.1f", frame.Agent.X)},
				{Key: "cy", Value: fmt.Sprintf("%.1f", frame.Agent.Y)},
			},
		},
		{
			EleId: "step_readout",
			Ops: []fastview.Op{
				{Key: "textContent", Value: fmt.Sprintf("episode %d, step %d", frame.Episode, frame.Step)},
			},
		},
	}
}

func (tv *TrajectoryView) Parse(parent *template.Template) (string, error) {
	_, err := parent.Parse(`
	{{ define "` + tv.id + `" }}
	<div id="trajectory">
		<p id="step_readout">episode 0, step 0</p>
		<svg width="{{ .Width }}px" height="{{ .Height }}px" style="shape-rendering: crispEdges;">
			<rect x="0" y="0" width="{{ .Width }}" height="{{ .Height }}" fill="ivory"/>
			{{ range $wall := .Walls }}
			<line x1="{{ $wall.X1 }}" y1="{{ $wall.Y1 }}" x2="{{ $wall.X2 }}" y2="{{ $wall.Y2 }}"
				stroke="firebrick" stroke-width="3"/>
			{{ end }}
			<polyline id="trajectory_path" points="{{ .Path }}"
				fill="none" stroke="steelblue" stroke-width="1.5" stroke-opacity="0.7"/>
			<circle id="agent_marker" cx="{{ .Agent.X }}" cy="{{ .Agent.Y }}" r="5" fill="darkorange"/>
		</svg>
	</div>
	{{ end }}
	`)
	return tv.id, err
}
