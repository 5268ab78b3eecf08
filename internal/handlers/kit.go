package handlers

import (
	"fmt"
	"net/http"

	"kit-allocator/internal/models"

	"github.com/gin-gonic/gin"
)

// ListKits handles GET /api/kits.
func (h *Handler) ListKits(c *gin.Context) {
	kits, err := h.kits.ListKits(c.Request.Context())
	if err != nil {
		h.logger.Error("kit catalog read failed", "error", err)
		respondError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, kits)
}

// GetKit handles GET /api/kits/:jobTitle. Only active kits are returned.
func (h *Handler) GetKit(c *gin.Context) {
	kit, err := h.kits.GetActiveKitByJobTitle(c.Request.Context(), c.Param("jobTitle"))
	if err != nil {
		respondError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, kit)
}

type kitLineRequest struct {
	AssetType      string `json:"assetType"`
	Category       string `json:"category"`
	Quantity       *int   `json:"quantity"`
	IsRequired     bool   `json:"isRequired"`
	Specifications string `json:"specifications"`
}

type saveKitRequest struct {
	JobTitle   string           `json:"jobTitle"`
	Department string           `json:"department"`
	IsActive   *bool            `json:"isActive"`
	Assets     []kitLineRequest `json:"assets"`
}

// SaveKit handles PUT /api/kits. A kit with the same normalized job title
// is replaced. isActive defaults to true and quantity to 1.
func (h *Handler) SaveKit(c *gin.Context) {
	var req saveKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid kit body")
		return
	}

	kit := models.StarterKit{
		JobTitle:   req.JobTitle,
		Department: req.Department,
		IsActive:   req.IsActive == nil || *req.IsActive,
	}
	for _, l := range req.Assets {
		qty := 1
		if l.Quantity != nil {
			qty = *l.Quantity
		}
		kit.Assets = append(kit.Assets, models.StarterKitAsset{
			AssetType:      l.AssetType,
			Category:       l.Category,
			Quantity:       qty,
			IsRequired:     l.IsRequired,
			Specifications: l.Specifications,
		})
	}

	saved, err := h.kits.SaveKit(c.Request.Context(), kit)
	if err != nil {
		respondError(c, statusFor(err), err.Error())
		return
	}

	h.recordAudit(c, "starter_kit", fmt.Sprint(saved.ID), "kit_saved",
		fmt.Sprintf("%s with %d line(s), active=%t", saved.Label(), len(saved.Assets), saved.IsActive))
	c.JSON(http.StatusOK, saved)
}
