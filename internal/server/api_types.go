package server

// ============================================================================
// ERROR RESPONSES
// ============================================================================
type ErrorMessage struct {
	Message string `json:"message"`
}

// ============================================================================
// JOIN ROOM (join_room)
// ============================================================================
type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Create bool   `json:"create"`
}

type JoinRoomResponse struct {
	RoomID        string `json:"roomId"`
	ParticipantID string `json:"participantId"`
}

// ============================================================================
// ADMIN (admin)
// ============================================================================
type AdminRequest struct {
	RoomID   string `json:"roomId"`
	Action   string `json:"action"`
	Value    int    `json:"value,omitempty"`
	TargetID string `json:"targetId,omitempty"`
}

// ============================================================================
// TEAM / ROLE COMMANDS (set_team_name, set_captain, set_controller, set_narrator)
// ============================================================================
type TeamNameRequest struct {
	RoomID string `json:"roomId"`
	Team   string `json:"team"`
	Name   string `json:"name"`
}

type RoleAssignRequest struct {
	RoomID   string `json:"roomId"`
	Team     string `json:"team"`
	TargetID string `json:"targetId"`
}

// ============================================================================
// PLAY COMMANDS (press_action, force_switch, see_card)
// ============================================================================
type PressActionRequest struct {
	RoomID string `json:"roomId"`
	Type   string `json:"type"`
}

type RoomOnlyRequest struct {
	RoomID string `json:"roomId"`
}
