package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

type ProviderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProviderHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ProviderHandler {
	return &ProviderHandler{db: db, audit: dispatcher}
}

type UpdateProviderRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone             *string `json:"phone" binding:"omitempty,max=20"`
	Address           *string `json:"address" binding:"omitempty,max=255"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"minAdvanceMinutes"`
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	provider, ok := h.load(c, id.ProviderID)
	if !ok {
		return
	}

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	provider, ok := h.load(c, id.ProviderID)
	if !ok {
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		provider.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Address != nil {
		provider.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		provider.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive (minutes).")
			return
		}
		provider.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(provider).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "provider_updated", "provider", &provider.ID, req)

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) load(c *gin.Context, providerID uint) (*models.Provider, bool) {
	var provider models.Provider
	if err := h.db.WithContext(c.Request.Context()).First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Business not found.")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &provider, true
}
