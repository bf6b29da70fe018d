package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list     *appointment.ListAppointments
	book     *appointment.BookAppointment
	confirm  *appointment.ConfirmAppointment
	complete *appointment.CompleteAppointment
	cancel   *appointment.CancelAppointment
}

func NewAppointmentHandler(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:     appointment.NewListAppointments(repo),
		book:     appointment.NewBookAppointment(repo, dispatcher, log),
		confirm:  appointment.NewConfirmAppointment(repo, dispatcher),
		complete: appointment.NewCompleteAppointment(repo, dispatcher),
		cancel:   appointment.NewCancelAppointment(repo, dispatcher),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID       uint   `json:"serviceId" binding:"required"`
	EmployeeID      *uint  `json:"employeeId"`
	ClientName      string `json:"clientName"`
	ClientPhone     string `json:"clientPhone"`
	ClientEmail     string `json:"clientEmail"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	Notes           string `json:"notes" binding:"max=255"`
}

func (r CreateAppointmentRequest) input(providerID uint, actor *uint) appointment.BookAppointmentInput {
	return appointment.BookAppointmentInput{
		ProviderID:      providerID,
		ServiceID:       r.ServiceID,
		EmployeeID:      r.EmployeeID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientEmail:     r.ClientEmail,
		AppointmentDate: r.AppointmentDate,
		Notes:           r.Notes,
		ActorID:         actor,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	employeeID, ok := optionalUintQuery(c, "employeeId")
	if !ok {
		return
	}
	serviceID, ok := optionalUintQuery(c, "serviceId")
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		ProviderID:       id.ProviderID,
		Role:             id.Role,
		CallerEmployeeID: id.EmployeeID,
		EmployeeID:       employeeID,
		ServiceID:        serviceID,
		Date:             c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), req.input(id.ProviderID, actorID(id)))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"appointment": ap})
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel.Execute)
}

func (h *AppointmentHandler) changeStatus(
	c *gin.Context,
	run func(ctx context.Context, in appointment.StatusChangeInput) (*models.Appointment, error),
) {
	id := middleware.CurrentIdentity(c)

	appointmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	in := appointment.StatusChangeInput{
		ProviderID:    id.ProviderID,
		AppointmentID: appointmentID,
		ActorID:       actorID(id),
	}
	if !id.IsOwner() {
		in.EmployeeID = id.EmployeeID
		if in.EmployeeID == nil {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
	}

	ap, err := run(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}
