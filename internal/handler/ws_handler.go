package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/response"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams announcement mutations to connected clients, such as
// the hallway display boards. One-way: the server pushes, clients listen.
type WSHandler struct {
	events   *cache.Cache
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(events *cache.Cache, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		events:   events,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AnnouncementStream godoc
// WS /ws/announcements/stream
// Upgrades to WebSocket and forwards announcement events from the pub/sub
// channel. Requires Redis; responds 503 when it is not configured.
func (h *WSHandler) AnnouncementStream(c *gin.Context) {
	if !h.events.Enabled() {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
		return
	}

	sub := h.events.Subscribe(c.Request.Context(), config.CacheKey.AnnouncementEventsChannel())
	if sub == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Feed client connected")

	// Drain the connection so client closes are noticed. Inbound payloads
	// are ignored; the feed is one-way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			h.log.Debug().Msg("Feed client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
		}
	}
}
