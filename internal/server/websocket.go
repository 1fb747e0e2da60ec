package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/schedule"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message types sent to the client.
const (
	MessageHello = "hello"
	MessageView  = "view"
)

// Message is one frame sent to the client.
type Message struct {
	Type   string    `json:"type"`
	UserID string    `json:"userId,omitempty"`
	View   *lsn.View `json:"view,omitempty"`
}

// lessonSocket plays one session per connection. The client sends
// lesson.Input frames and receives a view after every change.
func (s *Server) lessonSocket(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Query("user")
	if s.opts.Store != nil {
		u, err := s.opts.Store.EnsureUser(ctx, userID)
		if err != nil {
			s.fail(c, "ensure user", err)
			return
		}
		userID = u.ID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := schedule.NewReal()
	sess := lsn.NewSession(s.opts.Catalog, lsn.Options{
		UserID:    userID,
		Config:    s.opts.Config,
		Logger:    s.opts.Logger,
		Store:     s.opts.Store,
		Events:    s.opts.Store,
		Scheduler: clock,
	})
	log := s.log.With("session", sess.ID(), "user", userID)
	log.Info("websocket session opened")

	if err := writeMessage(conn, Message{Type: MessageHello, UserID: userID}); err != nil {
		log.Warn("write hello", "error", err)
		return
	}

	inputs := make(chan lsn.Input)
	go s.readInputs(ctx, cancel, conn, inputs)
	go keepAlive(ctx, conn)

	err = lsn.Run(ctx, sess, clock, inputs, func(v lsn.View) error {
		return writeMessage(conn, Message{Type: MessageView, View: &v})
	})
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		log.Info("websocket session closed", "finished", sess.Finished())
	default:
		log.Warn("websocket session ended", "error", err)
	}
}

// readInputs decodes client frames until the connection fails. Frames
// that are not valid inputs are skipped.
func (s *Server) readInputs(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, inputs chan<- lsn.Input) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read", "error", err)
			}
			return
		}

		var in lsn.Input
		if err := json.Unmarshal(data, &in); err != nil {
			s.log.Debug("skip malformed input", "error", err)
			continue
		}

		select {
		case inputs <- in:
		case <-ctx.Done():
			return
		}
	}
}

func keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, m Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(m)
}
