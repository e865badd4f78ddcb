package fastview

import (
	"context"
	"html/template"
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type echoView struct {
	updates <-chan []EleUpdate
}

func newEchoView(done <-chan struct{}, vms <-chan string) ViewComponent {
	updates := make(chan []EleUpdate)
	go func() {
		defer close(updates)
		for {
			select {
			case <-done:
				return
			case vm, ok := <-vms:
				if !ok {
					return
				}
				select {
				case updates <- []EleUpdate{{EleId: "echo", Ops: []Op{{Key: "textContent", Value: vm}}}}:
				case <-done:
					return
				}
			}
		}
	}()
	return &echoView{updates: updates}
}

func (ev *echoView) Updates() <-chan []EleUpdate {
	return ev.updates
}

func (ev *echoView) Parse(parent *template.Template) (string, error) {
	_, err := parent.Parse(`{{ define "echo" }}<div id="echo"></div>{{ end }}`)
	return "echo", err
}

func TestViewBuilder(t *testing.T) {
	Convey("When the builder is fully specified", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		input := make(chan int)
		views, err := NewViewBuilder[int, string]().
			WithContext(ctx).
			WithModel(input, strconv.Itoa).
			WithView(newEchoView).
			Build()
		So(err, ShouldBeNil)
		So(len(views), ShouldEqual, 1)

		Convey("Data flows through to ele-updates", func() {
			go func() { input <- 42 }()
			select {
			case updates := <-views[0].Updates():
				So(len(updates), ShouldEqual, 1)
				So(updates[0].EleId, ShouldEqual, "echo")
				So(updates[0].Ops[0].Value, ShouldEqual, "42")
			case <-time.After(time.Second):
				t.Fatal("no update received")
			}
		})
	})

	Convey("When no view is registered", t, func() {
		input := make(chan int)
		_, err := NewViewBuilder[int, string]().
			WithModel(input, strconv.Itoa).
			Build()
		So(err, ShouldEqual, ErrNoViews)
	})

	Convey("When no model is registered", t, func() {
		_, err := NewViewBuilder[int, string]().
			WithView(newEchoView).
			Build()
		So(err, ShouldEqual, ErrNoModel)
	})
}
