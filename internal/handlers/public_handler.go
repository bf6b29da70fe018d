package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db   *gorm.DB
	repo domain.Repository

	availability *appointment.GetAvailability
	daySummary   *appointment.GetDaySummary
	monthSummary *appointment.GetMonthSummary
	book         *appointment.BookAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		availability: appointment.NewGetAvailability(repo),
		daySummary:   appointment.NewGetDaySummary(repo),
		monthSummary: appointment.NewGetMonthSummary(repo),
		book:         appointment.NewBookAppointment(repo, dispatcher, log),
	}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

// ListServices returns the bookable services of a provider.
func (h *PublicHandler) ListServices(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ? AND is_active = ? AND deleted = ?", provider.ID, true, false)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
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

	c.JSON(http.StatusOK, gin.H{
		"provider": gin.H{
			"id":       provider.ID,
			"name":     provider.Name,
			"slug":     provider.Slug,
			"phone":    provider.Phone,
			"address":  provider.Address,
			"timezone": provider.Timezone,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	serviceID, employeeID, ok := scopeQuery(c)
	if !ok {
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		ProviderSlug: c.Param("slug"),
		ServiceID:    serviceID,
		EmployeeID:   employeeID,
		Date:         c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *PublicHandler) DaySummary(c *gin.Context) {
	serviceID, employeeID, ok := scopeQuery(c)
	if !ok {
		return
	}

	res, err := h.daySummary.Execute(c.Request.Context(), appointment.DaySummaryInput{
		ProviderSlug: c.Param("slug"),
		ServiceID:    serviceID,
		EmployeeID:   employeeID,
		Date:         c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *PublicHandler) MonthSummary(c *gin.Context) {
	serviceID, employeeID, ok := scopeQuery(c)
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	days, err := h.monthSummary.Execute(c.Request.Context(), appointment.MonthSummaryInput{
		ProviderSlug: c.Param("slug"),
		ServiceID:    serviceID,
		EmployeeID:   employeeID,
		Year:         year,
		Month:        month,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), req.input(provider.ID, nil))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment": gin.H{
			"id":         ap.ID,
			"date":       ap.Date,
			"status":     ap.Status,
			"serviceId":  ap.ServiceID,
			"employeeId": ap.EmployeeID,
		},
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) provider(c *gin.Context) (*models.Provider, bool) {
	provider, err := h.repo.GetProviderBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Business not found.")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return provider, true
}

func scopeQuery(c *gin.Context) (uint, *uint, bool) {
	serviceID, ok := requiredUintQuery(c, "serviceId")
	if !ok {
		return 0, nil, false
	}
	employeeID, ok := optionalUintQuery(c, "employeeId")
	if !ok {
		return 0, nil, false
	}
	return serviceID, employeeID, true
}
