package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProviderByID(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetProviderBySlug(
	ctx context.Context,
	slug string,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Service / Employee
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	providerID uint,
	serviceID uint,
) (*models.Service, error) {
	return findService(ctx, r.db, providerID, serviceID)
}

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	providerID uint,
	employeeID uint,
) (*models.Employee, error) {
	return findEmployee(ctx, r.db, providerID, employeeID)
}

func (r *AppointmentGormRepository) IsEmployeeAssigned(
	ctx context.Context,
	employeeID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeService{}).
		Where("employee_id = ? AND service_id = ?", employeeID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListServiceEmployees(
	ctx context.Context,
	serviceID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeService{}).
		Where("service_id = ?", serviceID).
		Order("employee_id ASC").
		Pluck("employee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *AppointmentGormRepository) ListSchedules(
	ctx context.Context,
	f schedule.Filter,
) ([]models.Schedule, error) {
	return listSchedules(ctx, r.db, f)
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// UpsertClient matches an existing client of the provider by e-mail or
// phone. A match gets the latest name and any contact field it lacked.
func (r *AppointmentGormRepository) UpsertClient(
	ctx context.Context,
	providerID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.ToLower(strings.TrimSpace(email))

	q := r.db.WithContext(ctx).Where("provider_id = ?", providerID)
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = q.Where("phone = ?", phone)
	}

	var client models.Client
	err := q.Order("id ASC").First(&client).Error

	switch {
	case err == nil:
		client.Name = name
		if client.Phone == "" {
			client.Phone = phone
		}
		if client.Email == "" {
			client.Email = email
		}
		if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
			return nil, err
		}
		return &client, nil

	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	client = models.Client{
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.Date = timezone.Instant(ap.Date)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) HasActiveAppointmentAt(
	ctx context.Context,
	employeeID uint,
	at time.Time,
) (bool, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND date = ? AND status IN ?",
			employeeID,
			timezone.Instant(at),
			domain.ActiveStatuses,
		).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}

	return len(ids) > 0, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee").
		Where("provider_id = ?", f.ProviderID)

	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", timezone.Instant(*f.From))
	}
	if f.To != nil {
		q = q.Where("date < ?", timezone.Instant(*f.To))
	}
	if f.ActiveOnly {
		q = q.Where("status IN ?", domain.ActiveStatuses)
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC").
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
