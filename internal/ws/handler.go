package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/antonelli94/Pinguino/internal/game"
	apperr "github.com/antonelli94/Pinguino/pkg/errors"
	"github.com/antonelli94/Pinguino/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	rooms       *game.Registry
	defaultAnte float64
}

func NewHandler(rooms *game.Registry, defaultAnte float64) *Handler {
	return &Handler{rooms: rooms, defaultAnte: defaultAnte}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

func (h *Handler) HandleRoomWS(c *gin.Context) {
	roomCode := strings.TrimSpace(c.Param("code"))
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
		return
	}

	rt := h.rooms.GetOrCreate(roomCode)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	logger.Log.Info("New WebSocket connection",
		zap.String("roomCode", roomCode),
		zap.String("connID", connID),
	)

	client := newClient(conn, connID, roomCode, rt, h.defaultAnte)
	client.run()
}

type client struct {
	conn        *websocket.Conn
	connID      string
	roomCode    string
	rt          *game.RoomRuntime
	outbound    <-chan game.OutgoingMessage
	done        chan struct{}
	pingEvery   time.Duration
	defaultAnte float64

	// token of the seat bound by this connection's join frame; used as a
	// fallback for leave frames without an explicit token.
	token string
}

func newClient(conn *websocket.Conn, connID, roomCode string, rt *game.RoomRuntime, defaultAnte float64) *client {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:        conn,
		connID:      connID,
		roomCode:    roomCode,
		rt:          rt,
		outbound:    rt.Subscribe(connID),
		done:        make(chan struct{}),
		pingEvery:   25 * time.Second,
		defaultAnte: defaultAnte,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

type joinPayload struct {
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}

type leavePayload struct {
	Token string `json:"token"`
}

type playerActionPayload struct {
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
}

type adminActionPayload struct {
	Type    string `json:"type"`
	Payload struct {
		Ante      *float64 `json:"ante"`
		Token     string   `json:"token"`
		Amount    float64  `json:"amount"`
		Direction string   `json:"direction"`
	} `json:"payload"`
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		// Dropping the connection only stops broadcasts; the seat and its
		// chips survive until an explicit leave frame.
		c.rt.Unsubscribe(c.connID)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.String("connID", c.connID), zap.String("roomCode", c.roomCode))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.notice("invalid payload")
			continue
		}
		if incoming.Type == "" {
			continue
		}

		c.dispatch(incoming.Type, incoming.Data)
	}
}

func (c *client) dispatch(frameType string, data json.RawMessage) {
	switch frameType {
	case "join":
		var p joinPayload
		if err := json.Unmarshal(data, &p); err != nil || p.Token == "" || p.DisplayName == "" {
			c.notice("join requires displayName and token")
			return
		}
		c.token = p.Token
		c.rt.Join(p.DisplayName, p.Token, c.connID)

	case "leave":
		var p leavePayload
		if len(data) > 0 {
			_ = json.Unmarshal(data, &p)
		}
		token := p.Token
		if token == "" {
			token = c.token
		}
		c.reject(c.rt.Leave(token))

	case "playerAction":
		var p playerActionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			c.notice("invalid action payload")
			return
		}
		kind, ok := game.ParseActionKind(p.Action)
		if !ok {
			c.notice("unknown action")
			return
		}
		c.reject(c.rt.HandleAction(c.token, kind, p.Amount))

	case "adminAction":
		var p adminActionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			c.notice("invalid admin payload")
			return
		}
		kind, ok := game.ParseAdminKind(p.Type)
		if !ok {
			c.notice("unknown admin command")
			return
		}
		ante := c.defaultAnte
		if p.Payload.Ante != nil {
			ante = *p.Payload.Ante
		}
		c.reject(c.rt.HandleAdmin(c.token, game.AdminCommand{
			Kind:      kind,
			Ante:      ante,
			Token:     p.Payload.Token,
			Amount:    p.Payload.Amount,
			Direction: game.MoveDirection(p.Payload.Direction),
		}))

	case "ping":
		c.safeWrite(game.OutgoingMessage{Type: "pong"})
	}
}

// reject surfaces a rejection to this caller only. Precondition failures
// (wrong turn, wrong sender, missing room) stay silent because they are
// benign races; business-rule rejections get a notice.
func (c *client) reject(err error) {
	if err == nil || apperr.Silent(err) {
		if err != nil {
			logger.Log.Debug("command silently rejected",
				zap.Error(err),
				zap.String("connID", c.connID),
				zap.String("roomCode", c.roomCode),
			)
		}
		return
	}
	c.notice(err.Error())
}

func (c *client) notice(text string) {
	c.safeWrite(game.OutgoingMessage{Type: "notice", Data: game.NoticeData{Text: text}})
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbound:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.String("connID", c.connID), zap.String("roomCode", c.roomCode))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) safeWrite(msg game.OutgoingMessage) {
	if err := c.conn.WriteJSON(msg); err != nil {
		logger.Log.Info("WS write error", zap.Error(err), zap.String("connID", c.connID), zap.String("roomCode", c.roomCode))
	}
}
