// server serves a live view of a running arena: an index page of SVG views,
// a websocket pushing ele-updates to them, and JSON endpoints exposing the
// current trajectory and run counters.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"sync"

	"neuroarena/arena"
	"neuroarena/server/arena_views"
	"neuroarena/server/fastview"
	"neuroarena/server/root_view"
	"neuroarena/simulation"

	"github.com/gorilla/mux"
	channerics "github.com/niceyeti/channerics/channels"
)

// Server wires the snapshot stream into the root view and serves it. The
// update channel backs a single viewer at a time; additional websocket
// clients would steal each other's updates, which is acceptable for a
// development dashboard.
type Server struct {
	addr     string
	rootView *root_view.RootView
	tel      *simulation.Telemetry

	mu     sync.RWMutex
	latest simulation.Snapshot
}

// NewServer builds the views and starts teeing snapshots: one branch feeds
// the views, the other retains the latest snapshot for the JSON endpoints
// and for rendering the index with current data.
func NewServer(
	ctx context.Context,
	addr string,
	initial simulation.Snapshot,
	snapshots <-chan simulation.Snapshot,
	tel *simulation.Telemetry,
) (*Server, error) {
	tees := channerics.Broadcast(ctx.Done(), snapshots, 2)

	rootView, err := root_view.NewRootView(ctx, tees[0])
	if err != nil {
		return nil, fmt.Errorf("building root view: %w", err)
	}

	server := &Server{
		addr:     addr,
		rootView: rootView,
		tel:      tel,
		latest:   initial,
	}
	go server.retainLatest(tees[1])

	return server, nil
}

func (server *Server) retainLatest(snapshots <-chan simulation.Snapshot) {
	for snap := range snapshots {
		server.mu.Lock()
		server.latest = snap
		server.mu.Unlock()
	}
}

func (server *Server) snapshot() simulation.Snapshot {
	server.mu.RLock()
	defer server.mu.RUnlock()
	return server.latest
}

// Serve blocks, serving the dashboard until the listener fails.
func (server *Server) Serve() error {
	router := mux.NewRouter()
	router.HandleFunc("/", server.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWebsocket)
	router.HandleFunc("/history", server.serveHistory).Methods(http.MethodGet)
	router.HandleFunc("/stats", server.serveStats).Methods(http.MethodGet)

	if err := http.ListenAndServe(server.addr, router); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serveWebsocket publishes view updates to the client until it disconnects.
func (server *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	client, err := fastview.NewClient(server.rootView.Updates(), w, r)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	if err := client.Sync(); err != nil {
		log.Println("websocket closed:", err)
	}
}

// serveHistory dumps the latest snapshot's trajectory as JSON.
func (server *Server) serveHistory(w http.ResponseWriter, r *http.Request) {
	snap := server.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		Episode int                `json:"episode"`
		Step    int                `json:"step"`
		History []arena.Transition `json:"history"`
	}{snap.Episode, snap.Step, snap.History}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveStats exposes the run's telemetry counters.
func (server *Server) serveStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(server.tel.Counters()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveIndex renders the main page with the latest snapshot's frame, so a
// freshly loaded page shows current data before the first push arrives.
func (server *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")

	frame := arena_views.Convert(server.snapshot())
	if err := renderTemplate(w, server.rootView, frame); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

func renderTemplate(
	w io.Writer,
	vc fastview.ViewComponent,
	data interface{},
) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}

	err = t.Execute(w, data)
	return
}
