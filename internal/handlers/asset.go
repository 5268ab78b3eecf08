package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"kit-allocator/internal/models"

	"github.com/gin-gonic/gin"
)

// СПИСОК ОБОРУДОВАНИЯ

// ListAssets handles GET /api/assets, optionally filtered by ?status=.
func (h *Handler) ListAssets(c *gin.Context) {
	var filter models.AssetStatus
	if raw := c.Query("status"); raw != "" {
		st, err := models.ParseAssetStatus(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter = st
	}

	assets, err := h.store.ListAssets(c.Request.Context())
	if err != nil {
		h.logger.Error("inventory read failed", "error", err)
		respondError(c, statusFor(err), err.Error())
		return
	}

	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if filter == "" || a.Status == filter {
			out = append(out, a)
		}
	}
	c.JSON(http.StatusOK, out)
}

// ПРИЁМКА НОВОГО ОБОРУДОВАНИЯ

type createAssetRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name"`
	AssetType string `json:"assetType"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
}

// CreateAsset handles POST /api/assets.
func (h *Handler) CreateAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "id is required")
		return
	}

	if strings.TrimSpace(req.AssetType) == "" && strings.TrimSpace(req.Category) == "" {
		respondError(c, http.StatusBadRequest, "assetType or category is required")
		return
	}

	asset := models.Asset{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		AssetType: strings.TrimSpace(req.AssetType),
		Category:  strings.TrimSpace(req.Category),
	}
	if req.Status != "" {
		st, err := models.ParseAssetStatus(req.Status)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if st == models.StatusAssigned {
			respondError(c, http.StatusBadRequest, "new assets cannot be registered as assigned")
			return
		}
		asset.Status = st
	}
	if req.Priority != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		asset.Priority = p
	}

	created, err := h.store.CreateAsset(c.Request.Context(), asset)
	if err != nil {
		respondError(c, statusFor(err), err.Error())
		return
	}

	label := created.AssetType
	if label == "" {
		label = created.Category
	}
	h.recordAudit(c, "asset", created.ID, "create", fmt.Sprintf("%s registered as %s", label, created.Status))
	c.JSON(http.StatusCreated, created)
}
