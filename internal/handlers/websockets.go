package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 5 * time.Second
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000
	streamRowLimit   = 30
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream plant metrics
// @Description  WebSocket pushing {"type":"metrics","data":[...]} every interval (default 5s, max 60s).
// @Tags         plants
// @Param        plant        path   string  true   "Plant ID"
// @Param        interval     query  string  false  "Go duration, e.g. 10s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/plants/{plant}/stream [get]
// @Security     BearerAuth
func (h *Handler) streamMetrics(c *gin.Context) {
	interval := h.parseInterval(c)
	actor := currentSession(c)
	filter := service.MetricsFilter{
		Plant: strings.TrimSpace(c.Param("plant")),
		Limit: streamRowLimit,
	}

	// First fetch happens before the upgrade so scope and warehouse
	// errors still reach the client as plain HTTP statuses.
	first, err := h.services.Metrics.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.respondServiceError(c, err, "ws_metrics_failed_initial", "plant", filter.Plant)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := writeMetrics(conn, first); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendMetrics(c.Request.Context(), conn, actor, filter); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err, "plant", filter.Plant)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendMetrics fetches the latest rows and writes them. A fetch failure is
// reported to the client as an error envelope before the stream closes.
func (h *Handler) sendMetrics(ctx context.Context, conn *websocket.Conn, actor models.Session, f service.MetricsFilter) error {
	rows, err := h.services.Metrics.List(ctx, actor, f)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_metrics_failed", "err", err, "plant", f.Plant)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: errWarehouse})
		return err
	}
	return writeMetrics(conn, rows)
}

func writeMetrics(conn *websocket.Conn, rows []models.PlantMetric) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "metrics", Data: rows})
}
