package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/julienschmidt/httprouter"

	"tabu-server/internal/tabu"
)

func (s *Server) RegisterRoutes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/health", s.healthHandler)
	router.HandlerFunc(http.MethodGet, "/ws", s.websocketHandler)
	router.GET("/rooms/:id/qr", s.qrHandler)

	// Open CORS: clients are served from arbitrary origins.
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type"}),
	)(router)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := json.Marshal(map[string]interface{}{
		"status": "ok",
		"rooms":  s.registry.Count(),
	})
	if err != nil {
		http.Error(w, "Failed to marshal health check response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	socket, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		http.Error(w, "Failed to open websocket", http.StatusInternalServerError)
		return
	}
	defer socket.Close(websocket.StatusGoingAway, "Server closing")

	ctx := r.Context()

	// The connection id is the participant's identity for the whole
	// session.
	connectionID := uuid.New().String()
	log.Printf("New connection: %s", connectionID)
	s.connectionManager.AddConnection(connectionID, socket)

	defer func() {
		roomID := s.connectionManager.RoomOf(connectionID)
		s.connectionManager.RemoveConnection(connectionID)
		s.limiter.Forget(connectionID)
		log.Printf("Connection closed: %s", connectionID)

		// Abrupt disconnect doubles as leave.
		if roomID != "" {
			if snap, ok := s.registry.RemoveParticipant(roomID, connectionID); ok {
				s.broadcastState(snap)
			}
		}
	}()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			if ctx.Err() == nil && websocket.CloseStatus(err) == -1 {
				log.Printf("Connection %s read error: %v", connectionID, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			log.Printf("Non-text input from %s", connectionID)
			continue
		}

		if !s.limiter.Allow(connectionID) {
			s.sendError(socket, ctx, "Rate limit exceeded")
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Invalid JSON from %s: %v", connectionID, err)
			s.sendError(socket, ctx, "Invalid JSON")
			continue
		}

		switch msg.Type {
		case "ping":
			s.handlePing(socket, ctx, connectionID)

		case "join_room":
			s.handleJoinRoom(socket, ctx, connectionID, msg.Payload)

		case "leave_room":
			s.handleLeaveRoom(connectionID)

		case "admin":
			s.handleAdmin(connectionID, msg.Payload)

		case "set_team_name":
			s.handleSetTeamName(connectionID, msg.Payload)

		case "set_captain", "set_controller", "set_narrator":
			s.handleRoleAssign(connectionID, msg.Type, msg.Payload)

		case "see_card":
			s.handleSeeCard(socket, ctx, connectionID, msg.Payload)

		case "press_action":
			s.handlePressAction(connectionID, msg.Payload)

		case "force_switch":
			s.handleForceSwitch(connectionID, msg.Payload)

		default:
			log.Printf("Unknown message type '%s' from %s", msg.Type, connectionID)
			s.sendError(socket, ctx, "Unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handlePing(socket *websocket.Conn, ctx context.Context, connectionID string) {
	response := ServerMessage{
		Type:    "pong",
		Payload: struct{}{},
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send pong to %s: %v", connectionID, err)
	}
}

func (s *Server) handleJoinRoom(socket *websocket.Conn, ctx context.Context, connectionID string, payload json.RawMessage) {
	var req JoinRoomRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.sendError(socket, ctx, "Invalid join_room payload")
		return
	}

	// A session belongs to at most one room for its lifetime.
	if s.connectionManager.RoomOf(connectionID) != "" {
		log.Printf("Rejected join from %s: already in a room", connectionID)
		return
	}

	snap, err := s.registry.JoinOrCreate(req.RoomID, connectionID, req.Name, tabu.TeamKey(req.Team), req.Create)
	if err != nil {
		// The join-without-create miss is the one rejection surfaced to
		// the requester; everything else stays silent.
		if errors.Is(err, ErrRoomNotFound) {
			s.sendError(socket, ctx, "Oda bulunamadı.")
		} else {
			log.Printf("Rejected join from %s: %v", connectionID, err)
		}
		return
	}

	s.connectionManager.SetRoom(connectionID, snap.ID)
	log.Printf("Participant %s (%s) joined room %s", connectionID, req.Name, snap.ID)

	response := ServerMessage{
		Type: "room_joined",
		Payload: JoinRoomResponse{
			RoomID:        snap.ID,
			ParticipantID: connectionID,
		},
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send room_joined: %v", err)
	}

	s.broadcastState(snap)
}

func (s *Server) handleLeaveRoom(connectionID string) {
	roomID := s.connectionManager.RoomOf(connectionID)
	if roomID == "" {
		return
	}

	s.connectionManager.ClearRoom(connectionID)
	if snap, ok := s.registry.RemoveParticipant(roomID, connectionID); ok {
		log.Printf("Participant %s left room %s", connectionID, roomID)
		s.broadcastState(snap)
	}
}

func (s *Server) handleAdmin(connectionID string, payload json.RawMessage) {
	var req AdminRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}

	room.Lock()
	out := room.Admin(connectionID, tabu.AdminAction(req.Action), req.Value, req.TargetID)
	var snap tabu.RoomSnapshot
	if out.Applied {
		snap = room.Snapshot()
	}
	room.Unlock()

	if !out.Applied {
		log.Printf("Rejected admin %q from %s: %s", req.Action, connectionID, out.Reason)
		return
	}
	s.broadcastState(snap)
}

func (s *Server) handleSetTeamName(connectionID string, payload json.RawMessage) {
	var req TeamNameRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}

	room.Lock()
	out := room.SetTeamName(connectionID, tabu.TeamKey(req.Team), req.Name)
	var snap tabu.RoomSnapshot
	if out.Applied {
		snap = room.Snapshot()
	}
	room.Unlock()

	if out.Applied {
		s.broadcastState(snap)
	}
}

func (s *Server) handleRoleAssign(connectionID, msgType string, payload json.RawMessage) {
	var req RoleAssignRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}
	team := tabu.TeamKey(req.Team)

	room.Lock()
	var out tabu.Outcome
	switch msgType {
	case "set_captain":
		out = room.SetCaptain(connectionID, team, req.TargetID)
	case "set_controller":
		out = room.SetController(connectionID, team, req.TargetID)
	case "set_narrator":
		out = room.SetNarrator(connectionID, team, req.TargetID)
	}
	var snap tabu.RoomSnapshot
	if out.Applied {
		snap = room.Snapshot()
	}
	room.Unlock()

	if !out.Applied {
		log.Printf("Rejected %s from %s: %s", msgType, connectionID, out.Reason)
		return
	}
	s.broadcastState(snap)
}

func (s *Server) handleSeeCard(socket *websocket.Conn, ctx context.Context, connectionID string, payload json.RawMessage) {
	var req RoomOnlyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}

	room.Lock()
	view, known := room.SeeCard(connectionID)
	room.Unlock()
	if !known {
		return
	}

	response := ServerMessage{
		Type:    "card_visibility",
		Payload: view,
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send card_visibility to %s: %v", connectionID, err)
	}
}

func (s *Server) handlePressAction(connectionID string, payload json.RawMessage) {
	var req PressActionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}

	room.Lock()
	out := room.PressAction(connectionID, tabu.ActionType(req.Type))
	var snap tabu.RoomSnapshot
	if out.Applied {
		snap = room.Snapshot()
	}
	room.Unlock()

	if !out.Applied {
		log.Printf("Rejected action %q from %s: %s", req.Type, connectionID, out.Reason)
		return
	}

	if out.Ended != nil {
		log.Printf("Game ended in room %s: winner %q (%d-%d)", snap.ID, out.Ended.Winner, out.Ended.Blue, out.Ended.Red)
		s.broadcastToRoom(snap, "game_ended", out.Ended)
	}
	s.broadcastState(snap)
}

func (s *Server) handleForceSwitch(connectionID string, payload json.RawMessage) {
	var req RoomOnlyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}
	room, ok := s.registry.Get(req.RoomID)
	if !ok {
		return
	}

	room.Lock()
	out := room.ForceSwitch(connectionID)
	var snap tabu.RoomSnapshot
	if out.Applied {
		snap = room.Snapshot()
	}
	room.Unlock()

	if out.Applied {
		s.broadcastState(snap)
	}
}

func (s *Server) sendMessage(socket *websocket.Conn, ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return socket.Write(ctx, websocket.MessageText, data)
}

func (s *Server) sendError(socket *websocket.Conn, ctx context.Context, msg string) {
	response := ServerMessage{
		Type:    "error",
		Payload: ErrorMessage{Message: msg},
	}
	if err := s.sendMessage(socket, ctx, response); err != nil {
		log.Printf("Failed to send error message: %v", err)
	}
}

// broadcastState fans the room snapshot out to every participant of the
// room.
func (s *Server) broadcastState(snap tabu.RoomSnapshot) {
	s.broadcastToRoom(snap, "room_state", snap)
}

func (s *Server) broadcastToRoom(snap tabu.RoomSnapshot, messageType string, payload interface{}) {
	ids := make([]string, 0, len(snap.Users))
	for _, u := range snap.Users {
		ids = append(ids, u.ID)
	}

	msg := ServerMessage{
		Type:    messageType,
		Payload: payload,
	}
	for _, conn := range s.connectionManager.Connections(ids) {
		// Broadcasts are not tied to any one request's lifetime.
		if err := s.sendMessage(conn, context.Background(), msg); err != nil {
			log.Printf("Failed to broadcast %s: %v", messageType, err)
		}
	}
}
