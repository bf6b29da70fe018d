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
	"github.com/BruksfildServices01/service-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: dispatcher}
}

type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateEmployeeLoginRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"max=20"`
}

// EmployeeView is an employee with the ids of the services it performs.
type EmployeeView struct {
	models.Employee
	ServiceIDs []uint `json:"serviceIds"`
}

// ======================================================
// LIST
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	db := h.db.WithContext(c.Request.Context())

	var employees []models.Employee
	if err := db.
		Where("provider_id = ?", id.ProviderID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	var links []models.EmployeeService
	if len(ids) > 0 {
		if err := db.
			Where("employee_id IN ?", ids).
			Order("service_id ASC").
			Find(&links).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	byEmployee := make(map[uint][]uint, len(employees))
	for _, l := range links {
		byEmployee[l.EmployeeID] = append(byEmployee[l.EmployeeID], l.ServiceID)
	}

	views := make([]EmployeeView, 0, len(employees))
	for _, e := range employees {
		serviceIDs := byEmployee[e.ID]
		if serviceIDs == nil {
			serviceIDs = []uint{}
		}
		views = append(views, EmployeeView{Employee: e, ServiceIDs: serviceIDs})
	}

	httpresp.List(c, views)
}

// ======================================================
// CREATE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	employee := models.Employee{ProviderID: id.ProviderID, Name: name}
	if err := h.db.WithContext(c.Request.Context()).Create(&employee).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "employee_created", "employee", &employee.ID, nil)

	httpresp.Created(c, employee)
}

// CreateLogin creates the staff user linked to an employee. A staff
// login only sees and changes that employee's appointments.
func (h *EmployeeHandler) CreateLogin(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	employeeID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateEmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmail(email) {
		httperr.BadRequest(c, "invalid_email", "Invalid e-mail.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var employee models.Employee
	if err := db.
		Where("id = ? AND provider_id = ?", employeeID, id.ProviderID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = employee.Name
	}

	user := models.User{
		ProviderID:   id.ProviderID,
		EmployeeID:   &employee.ID,
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         models.RoleStaff,
	}

	if err := db.Omit("Provider").Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Write(c, http.StatusConflict, "email_already_exists", "E-mail already in use.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, id, "staff_login_created", "employee", &employee.ID, gin.H{"userId": user.ID})

	httpresp.Created(c, gin.H{"user": userView(&user)})
}
