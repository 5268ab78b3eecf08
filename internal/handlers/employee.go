package handlers

import (
	"net/http"
	"strings"

	"kit-allocator/internal/models"

	"github.com/gin-gonic/gin"
)

type assignRequest struct {
	EmployeeName string `json:"employeeName"`
	JobTitle     string `json:"jobTitle" binding:"required"`
}

// AssignStarterKit handles POST /api/employees/:id/starter-kit.
//
// Every domain outcome is a 200 with the result body; only an unavailable
// store is a 503.
func (h *Handler) AssignStarterKit(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("id"))

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "jobTitle is required")
		return
	}

	res := h.service.AutoAssignStarterKit(c.Request.Context(), employeeID, req.EmployeeName, req.JobTitle)

	switch res.Outcome {
	case models.OutcomeInvalidRequest:
		c.JSON(http.StatusBadRequest, res)
	case models.OutcomeStoreUnavailable:
		c.JSON(http.StatusServiceUnavailable, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}

// ListEmployeeAssets handles GET /api/employees/:id/assets.
func (h *Handler) ListEmployeeAssets(c *gin.Context) {
	held, err := h.service.Holdings(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("holdings lookup failed", "employee_id", c.Param("id"), "error", err)
		respondError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, held)
}
