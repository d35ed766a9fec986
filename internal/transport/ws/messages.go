package ws

import (
	"encoding/json"
	"fmt"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/scene"
)

// Message types
const (
	MessageTypePose    = "pose"
	MessageTypeCommand = "command"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
	MessageTypeFrame   = "frame"
	MessageTypeError   = "error"
)

// ClientMessage is anything a client sends. Pose is set for "pose"
// messages and Command for "command" messages.
type ClientMessage struct {
	Type    string      `json:"type"`
	Pose    *scene.Pose `json:"pose,omitempty"`
	Command string      `json:"command,omitempty"`
}

// ServerMessage is anything the server sends back
type ServerMessage struct {
	Type  string       `json:"type"`
	Frame *scene.Frame `json:"frame,omitempty"`
	Error string       `json:"error,omitempty"`
}

// SceneInfo describes the static scene for GET /scene
type SceneInfo struct {
	Name     string             `json:"name"`
	Walls    []geometry.Segment `json:"walls"`
	Viewport [2]int             `json:"size"`
	Origin   geometry.Origin    `json:"origin"`
	Start    scene.Pose         `json:"start"`
}

// ParseMessage decodes and checks a client message
func ParseMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	switch msg.Type {
	case MessageTypePose:
		if msg.Pose == nil {
			return nil, fmt.Errorf("pose message without a pose")
		}
	case MessageTypeCommand:
		if msg.Command == "" {
			return nil, fmt.Errorf("command message without a command")
		}
	case MessageTypePing:
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return &msg, nil
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MessageTypeError, Error: err.Error()}
}
