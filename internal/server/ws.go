package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

// request frames client-to-server websocket messages. The payload shape
// depends on the type: "generate" carries a building spec, "extension" an
// extension spec, "layers" a layer toggle.
type request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// envelope frames server-to-client messages.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	s.hub.add(conn)

	// New clients receive the current scene immediately.
	s.writeWS(conn, envelope{Type: "scene", Payload: s.document()})

	go s.readLoop(conn)
}

// readLoop serves one client's requests until the connection drops. Every
// successful mutation broadcasts the fresh document to all clients, the
// sender included; errors go back to the sender only.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.hub.remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		var req request
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeWS(conn, envelope{Type: "error", Payload: "malformed request"})
			continue
		}

		switch req.Type {
		case "generate":
			var bs spec.BuildingSpec
			if err := json.Unmarshal(req.Payload, &bs); err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			doc, report, err := s.generate(&bs)
			if err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			s.writeWS(conn, envelope{Type: "report", Payload: report})
			s.broadcastDocument(doc)

		case "extension":
			var ext spec.ExtensionSpec
			if err := json.Unmarshal(req.Payload, &ext); err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			doc, extensions, err := s.extend(ext)
			if err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			s.writeWS(conn, envelope{Type: "extensions", Payload: extensions})
			s.broadcastDocument(doc)

		case "layers":
			var toggle struct {
				Layer   string `json:"layer"`
				Visible bool   `json:"visible"`
			}
			if err := json.Unmarshal(req.Payload, &toggle); err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			layer, err := scene.ParseLayer(toggle.Layer)
			if err != nil {
				s.writeWS(conn, envelope{Type: "error", Payload: err.Error()})
				continue
			}
			doc, affected := s.toggleLayer(layer, toggle.Visible)
			s.writeWS(conn, envelope{Type: "affected", Payload: affected})
			s.broadcastDocument(doc)

		default:
			s.writeWS(conn, envelope{Type: "error", Payload: "unknown request type"})
		}
	}
}

// broadcastDocument pushes a scene document to every websocket client.
// Encoding happens once, outside the hub lock.
func (s *Server) broadcastDocument(doc *scene.Document) {
	data, err := json.Marshal(envelope{Type: "scene", Payload: doc})
	if err != nil {
		log.Printf("encoding broadcast document: %v", err)
		return
	}
	s.hub.broadcast(data)
}

// writeWS sends one envelope to one client through the hub, which serializes
// writes per connection.
func (s *Server) writeWS(conn *websocket.Conn, env envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	s.hub.send(conn, data)
}
