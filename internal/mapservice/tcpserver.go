package mapservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"dungeonforge/internal/wireproto"
)

// requestMapPayload is the JSON body of a RequestMap frame.
type requestMapPayload struct {
	Kind     string `json:"kind"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Seed     *int64 `json:"seed,omitempty"`
	MinRooms int    `json:"minRooms,omitempty"`
	MaxRooms int    `json:"maxRooms,omitempty"`
}

// Server accepts TCP connections framed per internal/wireproto and serves
// RequestMap with a generated MapData frame. It follows the familiar
// per-connection handler shape — registry add, read loop, write pump,
// registry remove — but built on net.Conn framing instead of a WebSocket,
// since this collaborator uses a raw TCP envelope rather than an HTTP
// upgrade.
type Server struct {
	logger   *slog.Logger
	registry *Registry
}

// NewServer returns a Server backed by its own client registry.
func NewServer(logger *slog.Logger) *Server {
	return &Server{logger: logger, registry: NewRegistry()}
}

// ListenAndServe listens on addr and serves connections until the listener
// errors or the process exits.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mapservice: listen: %w", err)
	}
	defer ln.Close()
	s.logger.Info("map service listening", "addr", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("mapservice: accept: %w", err)
		}
		go s.handleConn(conn)
	}
}

// handleConn drives one client's frame loop until it disconnects or sends a
// malformed frame. A per-client I/O error tears down only that client, per
// the propagation policy: a connection's own errors never affect others.
func (s *Server) handleConn(conn net.Conn) {
	id := conn.RemoteAddr().String()
	client := &Client{ID: id, Send: make(chan wireproto.Frame, 8)}
	s.registry.Add(id, client)
	defer func() {
		s.registry.Remove(id)
		conn.Close()
	}()

	go s.writePump(conn, client)

	for {
		frame, err := wireproto.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("client read error", "client", id, "error", err)
			}
			return
		}
		s.handleFrame(client, frame)
	}
}

func (s *Server) writePump(conn net.Conn, client *Client) {
	for frame := range client.Send {
		if err := wireproto.WriteFrame(conn, frame); err != nil {
			s.logger.Warn("client write error", "client", client.ID, "error", err)
			return
		}
	}
}

func (s *Server) handleFrame(client *Client, frame wireproto.Frame) {
	switch frame.Type {
	case wireproto.RequestMap:
		s.handleRequestMap(client, frame.Payload)
	case wireproto.PlayerMove, wireproto.PlayerJoin, wireproto.PlayerLeave:
		s.sendError(client, "player state is outside this service's scope")
	default:
		s.sendError(client, fmt.Sprintf("unknown message type %d", frame.Type))
	}
}

func (s *Server) handleRequestMap(client *Client, payload []byte) {
	var req requestMapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendError(client, fmt.Sprintf("malformed request: %v", err))
		return
	}

	g, err := Generate(Request{
		Kind: Kind(req.Kind), Width: req.Width, Height: req.Height,
		Seed: req.Seed, MinRooms: req.MinRooms, MaxRooms: req.MaxRooms,
	})
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	data, err := Encode(g)
	if err != nil {
		s.logger.Error("serialization failure", "client", client.ID, "error", err)
		s.sendError(client, err.Error())
		return
	}
	client.Send <- wireproto.Frame{Type: wireproto.MapData, Payload: data}
}

func (s *Server) sendError(client *Client, message string) {
	payload, _ := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: message})
	select {
	case client.Send <- wireproto.Frame{Type: wireproto.ErrorFrame, Payload: payload}:
	default:
	}
}
