package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
	"github.com/parataxis/massing/pkg/validation"
)

func modernSpec() *spec.BuildingSpec {
	return &spec.BuildingSpec{
		SpecVersion: "1.0",
		Floors:      3,
		Volume:      1000,
		SurfaceArea: 300,
		Style:       spec.StyleModern,
	}
}

func detachedSpec() *spec.BuildingSpec {
	return &spec.BuildingSpec{
		SpecVersion: "1.0",
		Floors:      2,
		SurfaceArea: 2800,
		Style:       spec.StyleDetached,
	}
}

// do runs one request against the server's handler and decodes the JSON
// response into out when out is non-nil.
func do(t *testing.T, h http.Handler, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding %s %s response (%d): %v", method, path, rec.Code, err)
		}
	}
	return rec
}

type generateResponse struct {
	Report   *validation.Report `json:"report"`
	Document *scene.Document    `json:"document"`
}

type dimensionsResponse struct {
	Generated  bool              `json:"generated"`
	Style      string            `json:"style"`
	Floors     int               `json:"floors"`
	Dimensions layout.Dimensions `json:"dimensions"`
	Extensions int               `json:"extensions"`
	Generation int               `json:"generation"`
}

// --- endpoint tests ---

func TestStylesEndpoint(t *testing.T) {
	h := New(nil, 0).Handler()

	var resp struct {
		Styles []string `json:"styles"`
	}
	if rec := do(t, h, "GET", "/api/styles", nil, &resp); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Styles) != len(spec.AllStyles()) {
		t.Errorf("got %d styles, want %d", len(resp.Styles), len(spec.AllStyles()))
	}
	found := false
	for _, s := range resp.Styles {
		if s == "uk-detached" {
			found = true
		}
	}
	if !found {
		t.Errorf("styles %v missing uk-detached", resp.Styles)
	}
}

func TestSceneEmptyBeforeGeneration(t *testing.T) {
	h := New(nil, 0).Handler()

	var doc scene.Document
	if rec := do(t, h, "GET", "/api/scene", nil, &doc); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if doc.Metadata.Primitives != 0 {
		t.Errorf("empty server reports %d primitives", doc.Metadata.Primitives)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	h := New(nil, 0).Handler()

	var resp generateResponse
	if rec := do(t, h, "POST", "/api/generate", modernSpec(), &resp); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp.Report == nil || !resp.Report.Valid {
		t.Fatalf("report = %+v, want valid", resp.Report)
	}
	if resp.Document == nil || resp.Document.Metadata.Primitives == 0 {
		t.Fatal("generated document carries no primitives")
	}

	var dims dimensionsResponse
	do(t, h, "GET", "/api/dimensions", nil, &dims)
	if !dims.Generated {
		t.Fatal("dimensions report no building after generation")
	}
	if dims.Style != "modern" || dims.Floors != 3 || dims.Generation != 1 {
		t.Errorf("dimensions = %+v", dims)
	}
	if dims.Dimensions.Width != 15 {
		t.Errorf("width = %g, want 15", dims.Dimensions.Width)
	}

	var doc scene.Document
	do(t, h, "GET", "/api/scene", nil, &doc)
	if doc.Metadata.Primitives != resp.Document.Metadata.Primitives {
		t.Errorf("scene endpoint out of step: %d vs %d primitives",
			doc.Metadata.Primitives, resp.Document.Metadata.Primitives)
	}
}

func TestGenerateUnknownStyleRejected(t *testing.T) {
	h := New(nil, 0).Handler()

	bad := modernSpec()
	bad.Style = "brutalist"
	var resp struct {
		Error string `json:"error"`
	}
	if rec := do(t, h, "POST", "/api/generate", bad, &resp); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(resp.Error, "unknown building style") {
		t.Errorf("error = %q", resp.Error)
	}

	var dims dimensionsResponse
	do(t, h, "GET", "/api/dimensions", nil, &dims)
	if dims.Generated {
		t.Error("rejected generation still produced a building")
	}
}

func TestGenerateSchemaErrorKeepsPrevious(t *testing.T) {
	srv := New(modernSpec(), 0)
	h := srv.Handler()

	bad := modernSpec()
	bad.Extensions = []spec.ExtensionSpec{{Side: "right", Length: 4, Width: 6, Floors: 0}}
	var resp generateResponse
	if rec := do(t, h, "POST", "/api/generate", bad, &resp); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if resp.Report == nil || resp.Report.Valid {
		t.Errorf("rejection must carry an invalid report, got %+v", resp.Report)
	}

	var dims dimensionsResponse
	do(t, h, "GET", "/api/dimensions", nil, &dims)
	if !dims.Generated || dims.Generation != 1 {
		t.Errorf("previous building lost: %+v", dims)
	}
}

func TestGenerateBadFloorsRejected(t *testing.T) {
	h := New(nil, 0).Handler()

	bad := modernSpec()
	bad.Floors = 0
	if rec := do(t, h, "POST", "/api/generate", bad, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	h := New(nil, 0).Handler()
	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestExtensionEndpoint(t *testing.T) {
	srv := New(modernSpec(), 0)
	h := srv.Handler()

	var before scene.Document
	do(t, h, "GET", "/api/scene", nil, &before)

	ext := spec.ExtensionSpec{Side: "right", Length: 4, Width: 6, Floors: 1}
	var resp struct {
		Extensions int             `json:"extensions"`
		Document   *scene.Document `json:"document"`
	}
	if rec := do(t, h, "POST", "/api/extension", ext, &resp); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp.Extensions != 1 {
		t.Errorf("extensions = %d, want 1", resp.Extensions)
	}
	if resp.Document.Metadata.Primitives <= before.Metadata.Primitives {
		t.Errorf("extension did not grow the scene: %d -> %d",
			before.Metadata.Primitives, resp.Document.Metadata.Primitives)
	}
}

func TestExtensionWithoutBuilding(t *testing.T) {
	h := New(nil, 0).Handler()
	ext := spec.ExtensionSpec{Side: "left", Length: 4, Width: 6, Floors: 1}
	if rec := do(t, h, "POST", "/api/extension", ext, nil); rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestExtensionRejectsDegenerateFootprint(t *testing.T) {
	h := New(modernSpec(), 0).Handler()
	ext := spec.ExtensionSpec{Side: "front", Length: 0, Width: 6, Floors: 1}
	if rec := do(t, h, "POST", "/api/extension", ext, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestLayerToggleEndpoint(t *testing.T) {
	srv := New(detachedSpec(), 0)
	h := srv.Handler()

	var doc scene.Document
	do(t, h, "GET", "/api/scene", nil, &doc)
	walls := len(doc.Groups.Layers[scene.LayerWall])
	if walls == 0 {
		t.Fatal("floorplan building has no wall layer")
	}

	body := map[string]any{"layer": "wall", "visible": false}
	var resp struct {
		Affected int `json:"affected"`
	}
	if rec := do(t, h, "POST", "/api/layers", body, &resp); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp.Affected != walls {
		t.Errorf("affected = %d, want %d wall primitives", resp.Affected, walls)
	}

	// Re-enabling touches the same primitives; nothing was deleted.
	body["visible"] = true
	do(t, h, "POST", "/api/layers", body, &resp)
	if resp.Affected != walls {
		t.Errorf("re-enable affected = %d, want %d", resp.Affected, walls)
	}
}

func TestLayerToggleUnknownLayer(t *testing.T) {
	h := New(detachedSpec(), 0).Handler()
	body := map[string]any{"layer": "plumbing", "visible": false}
	if rec := do(t, h, "POST", "/api/layers", body, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestValidationEndpointTracksLastReport(t *testing.T) {
	h := New(nil, 0).Handler()

	var report validation.Report
	do(t, h, "GET", "/api/validation", nil, &report)
	if !report.Valid {
		t.Fatalf("fresh server report invalid: %+v", report)
	}

	bad := modernSpec()
	bad.Extensions = []spec.ExtensionSpec{{Side: "up", Length: -1, Width: 6, Floors: 1}}
	do(t, h, "POST", "/api/generate", bad, nil)

	do(t, h, "GET", "/api/validation", nil, &report)
	if report.Valid || len(report.Errors) == 0 {
		t.Errorf("rejected generation not reflected: %+v", report)
	}
}

func TestIndexServesHTML(t *testing.T) {
	h := New(nil, 0).Handler()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Massing") {
		t.Error("index page missing title")
	}
}

// --- websocket tests ---

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("reading websocket message: %v", err)
	}
	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decoding websocket message: %v", err)
	}
	return msg
}

func writeWSRequest(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encoding payload: %v", err)
	}
	msg, _ := json.Marshal(request{Type: typ, Payload: data})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
		t.Fatalf("writing websocket request: %v", err)
	}
}

func docPrimitives(t *testing.T, payload json.RawMessage) int {
	t.Helper()
	var doc scene.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("decoding scene payload: %v", err)
	}
	return doc.Metadata.Primitives
}

func TestWebSocketLifecycle(t *testing.T) {
	srv := New(nil, 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// 1. A fresh client is greeted with the current, still empty scene.
	c1 := dialWS(t, ts)
	defer c1.Close(websocket.StatusNormalClosure, "")
	hello := readWS(t, c1)
	if hello.Type != "scene" {
		t.Fatalf("greeting type = %q, want scene", hello.Type)
	}
	if n := docPrimitives(t, hello.Payload); n != 0 {
		t.Fatalf("greeting carries %d primitives before generation", n)
	}

	// 2. Generating over the socket answers with a report, then the scene.
	writeWSRequest(t, c1, "generate", detachedSpec())
	report := readWS(t, c1)
	if report.Type != "report" {
		t.Fatalf("first reply type = %q, want report", report.Type)
	}
	update := readWS(t, c1)
	if update.Type != "scene" {
		t.Fatalf("second reply type = %q, want scene", update.Type)
	}
	prims := docPrimitives(t, update.Payload)
	if prims == 0 {
		t.Fatal("broadcast scene is empty after generation")
	}

	// 3. A late joiner is greeted with the generated building.
	c2 := dialWS(t, ts)
	defer c2.Close(websocket.StatusNormalClosure, "")
	if n := docPrimitives(t, readWS(t, c2).Payload); n != prims {
		t.Fatalf("late greeting has %d primitives, want %d", n, prims)
	}
	if got := srv.hub.count(); got != 2 {
		t.Fatalf("hub tracks %d clients, want 2", got)
	}

	// 4. A layer toggle from one client reaches both.
	writeWSRequest(t, c1, "layers", map[string]any{"layer": "wall", "visible": false})
	affected := readWS(t, c1)
	if affected.Type != "affected" {
		t.Fatalf("toggle reply type = %q, want affected", affected.Type)
	}
	var n int
	if err := json.Unmarshal(affected.Payload, &n); err != nil || n == 0 {
		t.Fatalf("affected payload = %s (err %v), want a positive count", affected.Payload, err)
	}
	if msg := readWS(t, c1); msg.Type != "scene" {
		t.Fatalf("toggle broadcast type = %q", msg.Type)
	}
	if msg := readWS(t, c2); msg.Type != "scene" {
		t.Fatalf("peer broadcast type = %q", msg.Type)
	}
}

func TestWebSocketRejectsMalformedAndUnknown(t *testing.T) {
	ts := httptest.NewServer(New(nil, 0).Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close(websocket.StatusNormalClosure, "")
	readWS(t, conn) // greeting

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, []byte("{not json")); err != nil {
		t.Fatalf("writing malformed frame: %v", err)
	}
	if msg := readWS(t, conn); msg.Type != "error" {
		t.Fatalf("malformed frame reply = %q, want error", msg.Type)
	}

	writeWSRequest(t, conn, "demolish", map[string]any{})
	if msg := readWS(t, conn); msg.Type != "error" {
		t.Fatalf("unknown request reply = %q, want error", msg.Type)
	}
}
