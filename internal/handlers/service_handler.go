package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description" binding:"max=255"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=1,max=1440"`
	Price           float64 `json:"price" binding:"min=0"`
	Category        string  `json:"category" binding:"max=50"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description     *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" binding:"omitempty,min=1,max=1440"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	IsActive        *bool    `json:"isActive,omitempty"`
	Category        *string  `json:"category,omitempty" binding:"omitempty,max=50"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ? AND deleted = ?", id.ProviderID, false)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	services := []models.Service{}
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	service := models.Service{
		ProviderID:  id.ProviderID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMinutes,
		Price:       req.Price,
		IsActive:    true,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "service_created", "service", &service.ID, nil)

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	service, ok := h.find(c, id.ProviderID)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMin = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "service_updated", "service", &service.ID, nil)

	httpresp.OK(c, service)
}

// Delete hides the service from listings and slot generation. Existing
// appointments keep pointing at it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	service, ok := h.find(c, id.ProviderID)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Updates(map[string]any{"deleted": true, "is_active": false}).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "service_deleted", "service", &service.ID, nil)

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) find(c *gin.Context, providerID uint) (*models.Service, bool) {
	serviceID, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ? AND deleted = ?", serviceID, providerID, false).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &service, true
}
