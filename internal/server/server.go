// Package server hosts the interactive design API: a JSON HTTP surface over
// the building generator plus a websocket channel that pushes every new scene
// document to connected viewers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/parataxis/massing/pkg/generator"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
	"github.com/parataxis/massing/pkg/validation"
)

var errNoBuilding = errors.New("no building generated yet")

// Server owns the long-lived generator context. Every state transition runs
// under one mutex: generation is the only path that replaces geometry, and
// the layer toggle is the only in-place mutation.
type Server struct {
	port int

	mu     sync.Mutex
	ctx    generator.Context
	report *validation.Report

	hub *hub
}

// New creates a server. A non-nil initial spec is generated immediately so
// the first client sees a building; nil starts the server empty.
func New(initial *spec.BuildingSpec, port int) *Server {
	s := &Server{
		port:   port,
		ctx:    generator.New(scene.NewTracker()),
		report: validation.NewReport(),
		hub:    newHub(),
	}
	if initial != nil {
		if _, _, err := s.generate(initial); err != nil {
			log.Printf("initial generation failed: %v", err)
		}
	}
	return s
}

// Handler returns the complete route set. It is separate from Start so tests
// can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/styles", s.handleStyles)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/dimensions", s.handleDimensions)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/extension", s.handleExtension)
	mux.HandleFunc("POST /api/layers", s.handleLayers)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Massing server starting on http://localhost%s", addr)

	s.mu.Lock()
	if s.ctx.HasBuilding() {
		log.Printf("Building: %s, %d floors, %d primitives",
			s.ctx.Style, s.ctx.Spec.Floors, s.ctx.Building.PrimCount())
	}
	s.mu.Unlock()

	return http.ListenAndServe(addr, s.Handler())
}

// --- state transitions ---

// generate replaces the current building under the state mutex. The returned
// document is nil on failure; the previous building survives rejected input.
func (s *Server) generate(bs *spec.BuildingSpec) (*scene.Document, *validation.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, report, err := generator.Generate(s.ctx, bs)
	s.ctx = next
	if report != nil {
		s.report = report
	}
	if err != nil {
		return nil, report, err
	}
	return generator.Document(s.ctx), report, nil
}

// extend attaches an annex under the state mutex.
func (s *Server) extend(ext spec.ExtensionSpec) (*scene.Document, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctx.HasBuilding() {
		return nil, 0, errNoBuilding
	}
	next, err := generator.AddExtension(s.ctx, ext)
	s.ctx = next
	if err != nil {
		return nil, s.ctx.Extensions, err
	}
	return generator.Document(s.ctx), s.ctx.Extensions, nil
}

// toggleLayer flips one structural layer in place under the state mutex.
func (s *Server) toggleLayer(layer scene.Layer, visible bool) (*scene.Document, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	affected := generator.SetLayerVisible(s.ctx, layer, visible)
	return generator.Document(s.ctx), affected
}

// document snapshots the current scene under the state mutex.
func (s *Server) document() *scene.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generator.Document(s.ctx)
}

// --- handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Massing</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Massing</h1>
<p>Viewer not yet embedded. Read <code>/api/scene</code> or subscribe on <code>/ws</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	kinds := spec.AllStyles()
	styles := make([]string, 0, len(kinds))
	for _, k := range kinds {
		styles = append(styles, k.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{"styles": styles})
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.document())
}

func (s *Server) handleDimensions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctx.HasBuilding() {
		writeJSON(w, http.StatusOK, map[string]any{"generated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"generated":  true,
		"style":      s.ctx.Style.String(),
		"floors":     s.ctx.Spec.Floors,
		"dimensions": s.ctx.Dims,
		"display":    layout.Display(s.ctx.Dims),
		"extensions": s.ctx.Extensions,
		"generation": s.ctx.Generation,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.report)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var bs spec.BuildingSpec
	if err := json.NewDecoder(r.Body).Decode(&bs); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding spec: %w", err), nil)
		return
	}

	doc, report, err := s.generate(&bs)
	if err != nil {
		writeError(w, statusFor(err), err, report)
		return
	}
	s.broadcastDocument(doc)
	writeJSON(w, http.StatusOK, map[string]any{
		"report":   report,
		"document": doc,
	})
}

func (s *Server) handleExtension(w http.ResponseWriter, r *http.Request) {
	var ext spec.ExtensionSpec
	if err := json.NewDecoder(r.Body).Decode(&ext); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding extension: %w", err), nil)
		return
	}

	doc, extensions, err := s.extend(ext)
	if err != nil {
		writeError(w, statusFor(err), err, nil)
		return
	}
	s.broadcastDocument(doc)
	writeJSON(w, http.StatusOK, map[string]any{
		"extensions": extensions,
		"document":   doc,
	})
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Layer   string `json:"layer"`
		Visible bool   `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding layer toggle: %w", err), nil)
		return
	}
	layer, err := scene.ParseLayer(req.Layer)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err, nil)
		return
	}

	doc, affected := s.toggleLayer(layer, req.Visible)
	s.broadcastDocument(doc)
	writeJSON(w, http.StatusOK, map[string]any{
		"layer":    layer,
		"visible":  req.Visible,
		"affected": affected,
	})
}

// --- response helpers ---

// statusFor maps mutation failures onto HTTP statuses: rejected parameters
// and unknown names are client errors, a missing building is a conflict,
// anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, spec.ErrUnknownStyle), errors.Is(err, layout.ErrInvalidParameter):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errNoBuilding):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error, report *validation.Report) {
	writeJSON(w, status, map[string]any{
		"error":  err.Error(),
		"report": report,
	})
}
