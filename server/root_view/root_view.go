// root_view composes the arena views into the main page: it owns the
// channel wiring from snapshots down to per-view ele-updates, and the
// index.html template with the websocket bootstrap code.
package root_view

import (
	"context"
	"html/template"
	"time"

	"neuroarena/server/arena_views"
	"neuroarena/server/fastview"
	"neuroarena/simulation"

	channerics "github.com/niceyeti/channerics/channels"
)

// RootView is the container for all the view components and the fan-in of
// their update channels.
type RootView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

// NewRootView builds the page's views and wires their channels. Snapshots
// flow through a single Frame conversion shared by every view.
func NewRootView(
	ctx context.Context,
	snapshots <-chan simulation.Snapshot,
) (*RootView, error) {
	views, err := fastview.NewViewBuilder[simulation.Snapshot, arena_views.Frame]().
		WithContext(ctx).
		WithModel(snapshots, arena_views.Convert).
		WithView(func(
			done <-chan struct{},
			frames <-chan arena_views.Frame) fastview.ViewComponent {
			return arena_views.NewTrajectoryView(done, frames)
		}).
		WithView(func(
			done <-chan struct{},
			frames <-chan arena_views.Frame) fastview.ViewComponent {
			return arena_views.NewObjectMapView(done, frames)
		}).
		Build()
	if err != nil {
		return nil, err
	}

	return &RootView{
		views:   views,
		updates: fanIn(ctx.Done(), views),
	}, nil
}

// Updates returns the batched ele-update channel for all the views.
func (rv *RootView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the main page's template, with websocket bootstrap code, and
// returns its name. Child view templates are parsed into the same tree.
func (rv *RootView) Parse(
	parent *template.Template,
) (name string, err error) {
	viewTemplates := []string{}
	for _, vc := range rv.views {
		var tname string
		if tname, err = vc.Parse(parent); err != nil {
			return
		}
		viewTemplates = append(viewTemplates, tname)
	}

	var bodySpec string
	for _, tname := range viewTemplates {
		bodySpec += (`{{ template "` + tname + `" . }}`)
	}

	// The main template bootstraps the rest: opens the client websocket and
	// applies pushed ele-updates, then aggregates the views.
	name = "mainpage"
	indexTemplate := `
	{{ define "` + name + `" }}
	<!DOCTYPE html>
	<html>
		<head>
			<link rel="icon" href="data:,">
			<script>
				const ws = new WebSocket("ws://" + location.host + "/ws");
				ws.onopen = function (event) {
					console.log("web socket opened")
				};

				ws.onerror = function (event) {
					console.log("web socket error: ", event);
				};

				// When the server pushes view updates, find the eles and update them.
				ws.onmessage = function (event) {
					items = JSON.parse(event.data)
					for (const update of items) {
						const ele = document.getElementById(update.EleId)
						for (const op of update.Ops) {
							if (op.Key === "textContent") {
								ele.textContent = op.Value;
							} else {
								ele.setAttribute(op.Key, op.Value)
							}
						}
					}
				}
			</script>
		</head>
		<body>
		` + bodySpec + `
		</body></html>
	{{ end }}
	`

	_, err = parent.Parse(indexTemplate)
	return
}

// fanIn aggregates the views' ele-update channels into a single batched
// channel.
func fanIn(
	done <-chan struct{},
	views []fastview.ViewComponent,
) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, view := range views {
		inputs[i] = view.Updates()
	}
	return batchify(
		done,
		channerics.Merge(done, inputs...),
		time.Millisecond*20)
}

// batchify batches within the passed time frame before sending, overwriting
// previously received values for the same ele-id. Redundant updates for an
// ele-id are thus not sent, only the latest values.
func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	rate time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)

		data := map[string]fastview.EleUpdate{}
		last := time.Now()
		for updates := range channerics.OrDone(done, source) {
			for _, update := range updates {
				data[update.EleId] = update
			}

			if time.Since(last) > rate && len(updates) > 0 {
				select {
				case output <- slicedVals(data):
					data = map[string]fastview.EleUpdate{}
					last = time.Now()
				case <-done:
					return
				}
			}
		}
	}()

	return output
}

func slicedVals[T1 comparable, T2 any](mp map[T1]T2) (sliced []T2) {
	for _, v := range mp {
		sliced = append(sliced, v)
	}
	return
}
