package handler

import (
	"log"
	"net/http"

	"nyayadhaar/backend/internal/assistant"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is origin-agnostic; CORS policy is handled at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewChatSession mints the session id for one assistant widget activation.
func (h *Handler) NewChatSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session_id": assistant.NewSessionID()})
}

type chatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Chat answers one assistant message over plain HTTP.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	response := h.Assistant.ClassifyAndRespond(currentProfile(c), req.SessionID, req.Message)
	c.JSON(http.StatusOK, gin.H{"response": response})
}

type chatFrame struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
	Response  string `json:"response,omitempty"`
}

// ServeChatSocket upgrades the connection for the assistant widget. One
// session id is minted per connection and announced in the first frame; each
// inbound message is answered synchronously on the same socket.
func (h *Handler) ServeChatSocket(c *gin.Context) {
	profile, ok := h.profileFromToken(bearerToken(c))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upgrade"})
		return
	}
	defer conn.Close()

	sessionID := assistant.NewSessionID()
	if err := conn.WriteJSON(chatFrame{SessionID: sessionID}); err != nil {
		return
	}

	for {
		var frame chatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARNING: chat socket closed unexpectedly for user %s: %v", profile.ID, err)
			}
			return
		}
		if frame.Message == "" {
			continue
		}
		response := h.Assistant.ClassifyAndRespond(profile, sessionID, frame.Message)
		if err := conn.WriteJSON(chatFrame{SessionID: sessionID, Response: response}); err != nil {
			return
		}
	}
}
