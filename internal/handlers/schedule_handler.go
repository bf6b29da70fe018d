package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/service-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	listSchedules *appointment.ListSchedules
	getHours      *ucSchedule.GetBusinessHours
	updateHours   *ucSchedule.UpdateBusinessHours
	assign        *ucSchedule.AssignService
	unassign      *ucSchedule.UnassignService
}

func NewScheduleHandler(
	appointments domain.Repository,
	schedules schedule.Repository,
	dispatcher *audit.Dispatcher,
) *ScheduleHandler {
	return &ScheduleHandler{
		listSchedules: appointment.NewListSchedules(appointments),
		getHours:      ucSchedule.NewGetBusinessHours(schedules),
		updateHours:   ucSchedule.NewUpdateBusinessHours(schedules, dispatcher),
		assign:        ucSchedule.NewAssignService(schedules, dispatcher),
		unassign:      ucSchedule.NewUnassignService(schedules, dispatcher),
	}
}

type BusinessHoursUpdateRequest struct {
	Days []ucSchedule.BusinessDay `json:"days" binding:"required,dive"`
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	f := schedule.Filter{ProviderID: id.ProviderID}

	var ok bool
	if f.EmployeeID, ok = optionalUintQuery(c, "employeeId"); !ok {
		return
	}
	if f.ServiceID, ok = optionalUintQuery(c, "serviceId"); !ok {
		return
	}
	if raw := strings.TrimSpace(c.Query("dayOfWeek")); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_dayOfWeek", "Invalid dayOfWeek.")
			return
		}
		f.DayOfWeek = &day
	}

	items, err := h.listSchedules.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// BUSINESS HOURS
// ======================================================

func (h *ScheduleHandler) GetBusinessHours(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	hours, err := h.getHours.Execute(c.Request.Context(), id.ProviderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, hours)
}

func (h *ScheduleHandler) UpdateBusinessHours(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	hours, err := h.updateHours.Execute(c.Request.Context(), id.ProviderID, actorID(id), req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, hours)
}

// ======================================================
// SERVICE ASSIGNMENT
// ======================================================

func (h *ScheduleHandler) AssignService(c *gin.Context) {
	in, ok := assignmentInput(c)
	if !ok {
		return
	}

	schedules, err := h.assign.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"employeeId": in.EmployeeID,
		"serviceId":  in.ServiceID,
		"schedules":  schedules,
	})
}

func (h *ScheduleHandler) UnassignService(c *gin.Context) {
	in, ok := assignmentInput(c)
	if !ok {
		return
	}

	if err := h.unassign.Execute(c.Request.Context(), in); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func assignmentInput(c *gin.Context) (ucSchedule.AssignmentInput, bool) {
	id := middleware.CurrentIdentity(c)

	employeeID, ok := uintParam(c, "id")
	if !ok {
		return ucSchedule.AssignmentInput{}, false
	}
	serviceID, ok := uintParam(c, "serviceId")
	if !ok {
		return ucSchedule.AssignmentInput{}, false
	}

	return ucSchedule.AssignmentInput{
		ProviderID: id.ProviderID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		ActorID:    actorID(id),
	}, true
}
