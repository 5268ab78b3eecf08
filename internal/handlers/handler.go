package handlers

import (
	"context"
	"errors"
	"net/http"

	"kit-allocator/internal/allocation"
	"kit-allocator/internal/catalog"
	"kit-allocator/internal/inventory"
	"kit-allocator/internal/logging"
	"kit-allocator/internal/middleware"
	"kit-allocator/internal/models"

	"github.com/gin-gonic/gin"
)

// AuditLog is the audit table as seen by the HTTP layer.
type AuditLog interface {
	Record(ctx context.Context, entry models.AuditLog) error
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// Handler serves the allocator JSON API.
type Handler struct {
	service *allocation.Service
	store   inventory.Store
	kits    catalog.Catalog
	audit   AuditLog
	logger  logging.Logger
}

// New builds a Handler. audit may be nil when the backend keeps no audit table.
func New(service *allocation.Service, store inventory.Store, kits catalog.Catalog, audit AuditLog, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		kits:    kits,
		audit:   audit,
		logger:  logging.OrNop(logger),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// statusFor maps store and validation errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrAssetNotFound), errors.Is(err, catalog.ErrKitNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrAssetExists), errors.Is(err, inventory.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidAsset), errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPriority), errors.Is(err, models.ErrInvalidKit):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusServiceUnavailable
}

func (h *Handler) recordAudit(c *gin.Context, entity, entityID, action, details string) {
	if h.audit == nil {
		return
	}
	entry := models.AuditLog{
		Actor:    middleware.Actor(c),
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := h.audit.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
		h.logger.Warn("audit log write failed", "entity", entity, "entity_id", entityID, "error", err)
	}
}
