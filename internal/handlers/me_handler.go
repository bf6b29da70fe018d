package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Provider").
		Where("id = ? AND provider_id = ?", id.UserID, id.ProviderID).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Authentication required.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userView(&user),
		"provider": providerView(&user.Provider),
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"role":       u.Role,
		"providerId": u.ProviderID,
		"employeeId": u.EmployeeID,
	}
}

func providerView(p *models.Provider) gin.H {
	return gin.H{
		"id":       p.ID,
		"name":     p.Name,
		"slug":     p.Slug,
		"phone":    p.Phone,
		"address":  p.Address,
		"timezone": p.Timezone,
	}
}
