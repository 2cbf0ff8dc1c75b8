// Package web exposes the route planner over HTTP: network state and
// derived views, route queries, traffic edits, history, and SSE updates.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/trafficlab/route-planner/pkg/history"
	"github.com/trafficlab/route-planner/pkg/logging"
	"github.com/trafficlab/route-planner/pkg/model"
	"github.com/trafficlab/route-planner/pkg/pubsub"
	"github.com/trafficlab/route-planner/pkg/roadnet"
	"github.com/trafficlab/route-planner/pkg/route"
	"github.com/trafficlab/route-planner/pkg/view"
)

// Server serves the planner API. It owns the derived-view cache and the
// route history; the graph store is shared with the watcher.
type Server struct {
	router    *mux.Router
	store     *model.Store
	cache     *view.Cache
	log       *history.Log
	baseline  model.Graph
	publisher *pubsub.SSEPublisher
}

// NewServer creates a web server around the given store. baseline is the
// network restored by POST /api/network/reset.
func NewServer(store *model.Store, baseline model.Graph, historyLimit int) *Server {
	publisher := pubsub.NewSSEPublisher()

	// Late subscribers only need the current network version, not the
	// full edit history.
	publisher.ConfigureTopic(pubsub.TopicNetwork, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})
	publisher.ConfigureTopic(pubsub.TopicRoutes, pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		store:     store,
		cache:     &view.Cache{},
		log:       history.NewLog(historyLimit),
		baseline:  baseline.Clone(),
		publisher: publisher,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/network", s.handleSubscribe(pubsub.TopicNetwork)).Methods("GET")
	s.router.HandleFunc("/api/subscribe/routes", s.handleSubscribe(pubsub.TopicRoutes)).Methods("GET")

	s.router.HandleFunc("/api/network", s.handleNetwork).Methods("GET")
	s.router.HandleFunc("/api/network/view", s.handleNetworkView).Methods("GET")
	s.router.HandleFunc("/api/network/edges/weight", s.handleUpdateWeight).Methods("POST")
	s.router.HandleFunc("/api/network/reset", s.handleReset).Methods("POST")
	s.router.HandleFunc("/api/route", s.handleRoute).Methods("GET")
	s.router.HandleFunc("/api/history", s.handleHistory).Methods("GET")
	s.router.HandleFunc("/api/history", s.handleClearHistory).Methods("DELETE")

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
}

// Handler returns the router wrapped with request-ID logging, for tests
// and for Start.
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

// Start runs the HTTP server on the given port. Blocks until the server
// stops.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("web server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ApplyNetwork replaces the store contents with g, used by the file
// watcher when the network file is rewritten on disk.
func (s *Server) ApplyNetwork(g model.Graph) error {
	if err := s.store.Reset(g); err != nil {
		return err
	}
	s.publishNetworkChange("network_reset", pubsub.NetworkChange{Version: s.store.Version()})
	return nil
}

func (s *Server) publishNetworkChange(eventType string, change pubsub.NetworkChange) {
	if err := s.publisher.Publish(pubsub.TopicNetwork, eventType, change); err != nil {
		logging.Warn("failed to publish network change", "error", err)
	}
}

// networkResponse is the payload for GET /api/network.
type networkResponse struct {
	Version uint64                        `json:"version"`
	Graph   map[string]map[string]float64 `json:"graph"`
	Stats   roadnet.Stats                 `json:"stats"`
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	g, version := s.store.Snapshot()
	writeJSON(w, http.StatusOK, networkResponse{
		Version: version,
		Graph:   g,
		Stats:   roadnet.Summarize(g),
	})
}

func (s *Server) handleNetworkView(w http.ResponseWriter, r *http.Request) {
	// The version is always taken from the store at request time; this
	// is what keeps the cached view coherent after traffic edits.
	g, version := s.store.Snapshot()
	v := s.cache.Get(g, version)
	writeJSON(w, http.StatusOK, v)
}

// updateWeightRequest is the payload for POST /api/network/edges/weight.
type updateWeightRequest struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

func (s *Server) handleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	var req updateWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	before := s.store.Version()
	if err := s.store.UpdateEdgeWeight(req.A, req.B, req.Weight); err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	version := s.store.Version()
	if version != before {
		logging.InfoContext(r.Context(), "traffic updated",
			"a", req.A, "b", req.B, "weight", req.Weight, "version", version)
		s.publishNetworkChange("weight_updated", pubsub.NetworkChange{
			Version: version,
			A:       req.A,
			B:       req.B,
			Weight:  req.Weight,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": version,
		"changed": version != before,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(s.baseline); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	version := s.store.Version()
	logging.InfoContext(r.Context(), "network reset", "version", version)
	s.publishNetworkChange("network_reset", pubsub.NetworkChange{Version: version})

	writeJSON(w, http.StatusOK, map[string]interface{}{"version": version})
}

// routeResponse is the payload for GET /api/route.
type routeResponse struct {
	Source      string       `json:"source"`
	Destination string       `json:"destination"`
	Version     uint64       `json:"version"`
	Result      route.Result `json:"result"`
	PathEdges   [][2]string  `json:"pathEdges,omitempty"`
	ElapsedNs   int64        `json:"elapsedNs"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("from")
	destination := r.URL.Query().Get("to")
	if source == "" || destination == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("both 'from' and 'to' query parameters are required"))
		return
	}

	// Routes are computed over the live store snapshot, never over the
	// derived view.
	g, version := s.store.Snapshot()

	start := time.Now()
	res, err := route.ShortestPath(g, source, destination)
	elapsed := time.Since(start)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	if res.Found {
		s.log.Record(source, destination, res, elapsed)
	}
	if err := s.publisher.Publish(pubsub.TopicRoutes, "route_computed", pubsub.RouteComputed{
		Source:      source,
		Destination: destination,
		TotalWeight: res.TotalWeight,
		Stops:       max(len(res.Path)-1, 0),
		Found:       res.Found,
	}); err != nil {
		logging.Warn("failed to publish route event", "error", err)
	}

	writeJSON(w, http.StatusOK, routeResponse{
		Source:      source,
		Destination: destination,
		Version:     version,
		Result:      res,
		PathEdges:   route.PathEdges(res.Path),
		ElapsedNs:   elapsed.Nanoseconds(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": s.log.Entries(),
		"stats":   s.log.Summarize(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.log.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Initial comment establishes the stream (Safari compatibility).
		fmt.Fprintf(w, ": connected\n\n")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.Warn("error writing SSE event", "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<title>Route Planner</title>
<h1>Route Planner API</h1>
<ul>
<li>GET /api/network</li>
<li>GET /api/network/view</li>
<li>GET /api/route?from=&amp;to=</li>
<li>POST /api/network/edges/weight</li>
<li>POST /api/network/reset</li>
<li>GET /api/history</li>
<li>GET /api/subscribe/network</li>
</ul>
`)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrEdgeNotFound), errors.Is(err, route.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidEdge), errors.Is(err, model.ErrInvalidWeight):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
