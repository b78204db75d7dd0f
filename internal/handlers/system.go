package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bannerText = "Backend connected to Databricks"

// @Summary  Banner
// @Tags     system
// @Produce  plain
// @Success  200  {string}  string
// @Router   / [get]
func (h *Handler) home(c *gin.Context) {
	c.String(http.StatusOK, bannerText)
}

// @Summary  Liveness
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Warehouse connectivity
// @Description  Opens a session against the warehouse and runs a trivial query.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /test-connection [get]
func (h *Handler) testConnection(c *gin.Context) {
	if err := h.services.Warehouse.Ping(c.Request.Context()); err != nil {
		if h.log != nil {
			h.log.Errorw("warehouse_ping_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected"})
}

// @Summary      Preview table
// @Description  Returns the first rows of an allow-listed table as key-value records.
// @Tags         system
// @Produce      json
// @Param        table  query   string  false  "Table"  Enums(customer,plant_metrics)
// @Param        limit  query   int     false  "Rows (default 10, max 1000)"
// @Success      200    {array}   models.Record
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/data [get]
// @Security     BearerAuth
func (h *Handler) previewData(c *gin.Context) {
	table := strings.ToLower(strings.TrimSpace(c.Query("table")))
	records, err := h.services.Warehouse.Preview(c.Request.Context(), table, parseLimit(c))
	if err != nil {
		h.respondServiceError(c, err, "data_preview_failed", "table", table)
		return
	}
	c.JSON(http.StatusOK, records)
}
