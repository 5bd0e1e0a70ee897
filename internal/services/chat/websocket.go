package chat

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// WebSocketHandler reproduces original_source/services/chat/main.py's
// per-connection behavior: accept a connection, echo every inbound
// frame back to the same socket, and close with code 1008 (policy
// violation) if the request reached here without an authenticated
// principal. Broadcasting to other conversation participants is
// explicitly out of scope (SPEC_FULL §6.10, spec §9 Open Question #2).
type WebSocketHandler struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request, conversationID string) {
	principal, ok := ctxutil.PrincipalFromContext(r.Context())
	if !ok {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "missing credential")
		_ = conn.WriteControl(websocket.CloseMessage, closeMsg, deadlineNow())
		_ = conn.Close()
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err), zap.String("conversation_id", conversationID))
		return
	}
	defer conn.Close()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(messageType, payload); err != nil {
			return
		}
		h.logger.Debug("echoed chat frame",
			zap.String("conversation_id", conversationID),
			zap.String("user_id", principal.UserID),
		)
	}
}
