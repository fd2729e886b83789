package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"foliogate/internal/domain"
	"foliogate/internal/service"
)

// WebSocket message types of the import event stream.
const (
	MsgTypeSnapshot = "snapshot"
	MsgTypePing     = "ping"
	MsgTypePong     = "pong"
	MsgTypeClosed   = "closed"
)

const wsWriteTimeout = 10 * time.Second

// WSMessage is one frame of the import event stream. Pipeline events use
// their event type (file_status, review_ready, file_cleared,
// pipeline_cleared) as Type.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// ImportEventsHandler streams pipeline events of one import session over a
// websocket.
type ImportEventsHandler struct {
	importService service.ImportService
	upgrader      websocket.Upgrader
}

// NewImportEventsHandler creates a new ImportEventsHandler. Browsers from
// allowedOrigins may connect; requests without an Origin header are allowed.
func NewImportEventsHandler(importService service.ImportService, allowedOrigins []string) *ImportEventsHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &ImportEventsHandler{
		importService: importService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Stream handles GET /api/v1/imports/:id/events
// @Summary Stream import events
// @Description Websocket stream of file_status, review_ready, file_cleared and pipeline_cleared events. The first frame is a snapshot of the session. A slow client may miss file_status events but always receives review_ready; refetch the session to resync. Browsers may pass the bearer token as access_token.
// @Tags imports
// @Param id path string true "Import session ID"
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 {object} WSMessage "Switching protocols"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /imports/{id}/events [get]
func (h *ImportEventsHandler) Stream(c *gin.Context) {
	principal, ok := extractPrincipal(c)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(c, "id", "INVALID_ID")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	events, cancel, err := h.importService.Subscribe(ctx, principal.Subject, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer cancel()

	snap, err := h.importService.Get(ctx, principal.Subject, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("importEventsHandler.Stream: upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer func() { _ = ws.Close() }()
	// The stream outlives the server read timeout.
	_ = ws.SetReadDeadline(time.Time{})

	if err := writeWS(ws, MsgTypeSnapshot, snap); err != nil {
		return
	}

	pings := make(chan struct{}, 1)
	gone := make(chan struct{})
	go readWS(ws, pings, gone)

	for {
		select {
		case ev, open := <-events:
			if !open {
				_ = writeWS(ws, MsgTypeClosed, nil)
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			if err := writeEvent(ws, ev); err != nil {
				log.Printf("importEventsHandler.Stream: session %s: %v", sessionID, err)
				return
			}
		case <-pings:
			if err := writeWS(ws, MsgTypePong, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

// readWS drains client frames, forwarding pings, until the connection drops.
func readWS(ws *websocket.Conn, pings chan<- struct{}, gone chan<- struct{}) {
	defer close(gone)
	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("importEventsHandler.readWS: %v", err)
			}
			return
		}
		if msg.Type == MsgTypePing {
			select {
			case pings <- struct{}{}:
			default:
			}
		}
	}
}

func writeEvent(ws *websocket.Conn, ev domain.Event) error {
	return writeWS(ws, string(ev.Type), ev)
}

func writeWS(ws *websocket.Conn, msgType string, payload interface{}) error {
	msg := WSMessage{Type: msgType, Timestamp: time.Now().UnixMilli()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		msg.Payload = data
	}
	_ = ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return ws.WriteJSON(msg)
}
