package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseLimit reads ?limit; anything unparsable yields 0 and the service default applies.
func parseLimit(c *gin.Context) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	if err != nil {
		return 0
	}
	return n
}

// @Summary      List plant metrics
// @Description  Filter daily plant figures by plant and date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         plants
// @Produce      json
// @Param        plant  query   string  false  "Plant ID"
// @Param        from   query   string  false  "Start of range"  example(2025-08-01)
// @Param        to     query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        limit  query   int     false  "Max rows (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, metrics"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/plants/metrics [get]
// @Security     BearerAuth
func (h *Handler) listMetrics(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	f := service.MetricsFilter{
		Plant: strings.TrimSpace(c.Query("plant")),
		From:  from,
		To:    to,
		Limit: parseLimit(c),
	}
	rows, err := h.services.Metrics.List(c.Request.Context(), currentSession(c), f)
	if err != nil {
		h.respondServiceError(c, err, "metrics_list_failed", "plant", f.Plant, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(rows),
		"metrics": rows,
	})
}

// @Summary      Plant summaries
// @Description  Per-plant totals, average uptime and kWh per ton.
// @Tags         plants
// @Produce      json
// @Param        plant  query   string  false  "Plant ID"
// @Success      200    {object}  map[string]interface{}  "count, plants"
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/plants/summary [get]
// @Security     BearerAuth
func (h *Handler) plantSummary(c *gin.Context) {
	plant := strings.TrimSpace(c.Query("plant"))
	sums, err := h.services.Metrics.Summaries(c.Request.Context(), currentSession(c), plant)
	if err != nil {
		h.respondServiceError(c, err, "metrics_summary_failed", "plant", plant)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(sums),
		"plants": sums,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
