package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// List returns the provider's clients, newest first, optionally matching
// name, phone or e-mail.
func (h *ClientHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("provider_id = ?", id.ProviderID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	clients := []models.Client{}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&clients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}
