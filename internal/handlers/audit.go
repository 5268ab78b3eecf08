package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs handles GET /api/audit?limit=.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	if h.audit == nil {
		respondError(c, http.StatusNotFound, "audit log is not kept by this backend")
		return
	}

	limit := 200
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	logs, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("audit log read failed", "error", err)
		respondError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, logs)
}
