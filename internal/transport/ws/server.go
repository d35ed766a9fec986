// Package ws streams rendered frames over websocket connections. Each
// connection keeps its own observer pose; the scene is shared read-only.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chosenoffset.com/slatcaster/internal/control"
	"chosenoffset.com/slatcaster/internal/scene"
)

const (
	DefaultWriteTimeout = 5 * time.Second
	maxMessageSize      = 4096
)

// Server upgrades HTTP requests to websocket frame streams
type Server struct {
	scene        *scene.Scene
	upgrader     websocket.Upgrader
	writeTimeout time.Duration

	mu      sync.Mutex
	clients int
}

// NewServer creates a server for s. Any origin may connect.
func NewServer(s *scene.Scene) *Server {
	return &Server{
		scene: s,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout: DefaultWriteTimeout,
	}
}

// Handler routes /ws to the stream and /scene to the wall list
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/scene", s.handleScene)
	return mux
}

// Clients returns the number of open connections
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	size := s.scene.Viewport()
	info := SceneInfo{
		Name:     s.scene.Name(),
		Walls:    s.scene.Walls(),
		Viewport: [2]int{size.X, size.Y},
		Origin:   s.scene.Origin(),
		Start:    s.scene.StartPose(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		log.Printf("[ws] Failed to write scene info: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()
	log.Printf("[ws] Client connected from %s", r.RemoteAddr)

	sess := &session{
		server: s,
		conn:   conn,
		ctrl:   control.ForScene(s.scene),
		pose:   s.scene.StartPose(),
	}

	if err := sess.sendFrame(sess.pose); err != nil {
		log.Printf("[ws] Failed to send initial frame: %v", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] Read error: %v", err)
			}
			break
		}
		if err := sess.handle(data); err != nil {
			log.Printf("[ws] Write error: %v", err)
			break
		}
	}
	log.Printf("[ws] Client %s disconnected", r.RemoteAddr)
}

// session is one connection's observer state. It is only touched by the
// connection's read loop.
type session struct {
	server *Server
	conn   *websocket.Conn
	ctrl   *control.Controller
	pose   scene.Pose
}

// handle answers one client message. The returned error is a transport
// failure; bad requests are reported to the client instead.
func (c *session) handle(data []byte) error {
	msg, err := ParseMessage(data)
	if err != nil {
		return c.write(errorMessage(err))
	}

	switch msg.Type {
	case MessageTypePing:
		return c.write(ServerMessage{Type: MessageTypePong})
	case MessageTypeCommand:
		cmd, err := control.ParseCommand(msg.Command)
		if err != nil {
			return c.write(errorMessage(err))
		}
		return c.sendFrame(c.ctrl.Apply(c.pose, cmd))
	default:
		return c.sendFrame(*msg.Pose)
	}
}

// sendFrame renders p and, if it is valid, makes it the session pose
func (c *session) sendFrame(p scene.Pose) error {
	frame, err := c.server.scene.RenderFrame(p)
	if err != nil {
		return c.write(errorMessage(err))
	}
	c.pose = p
	return c.write(ServerMessage{Type: MessageTypeFrame, Frame: frame})
}

func (c *session) write(msg ServerMessage) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.server.writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}
