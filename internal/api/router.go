package api

import (
	"net/http"
	"strings"

	"github.com/antonelli94/Pinguino/internal/game"
	"github.com/antonelli94/Pinguino/internal/ws"
	"github.com/antonelli94/Pinguino/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	rooms *game.Registry
}

func RegisterRoutes(r *gin.Engine, rooms *game.Registry, defaultAnte float64) {
	handler := &Handler{rooms: rooms}
	wsHandler := ws.NewHandler(rooms, defaultAnte)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/rooms/:code", handler.GetRoom)
	}

	r.GET("/ws/rooms/:code", wsHandler.HandleRoomWS)
}

// GetRoom serves a read-only snapshot. Advisory only; the websocket
// broadcast remains the source of truth.
func (h *Handler) GetRoom(c *gin.Context) {
	roomCode := strings.TrimSpace(c.Param("code"))
	rt, ok := h.rooms.Get(roomCode)
	if !ok {
		response.Error(c, http.StatusNotFound, "room not found")
		return
	}
	response.Success(c, gin.H{"room": rt.Snapshot()})
}
