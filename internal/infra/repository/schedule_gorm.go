package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) ListSchedules(
	ctx context.Context,
	f schedule.Filter,
) ([]models.Schedule, error) {
	return listSchedules(ctx, r.db, f)
}

func (r *ScheduleGormRepository) GetEmployee(
	ctx context.Context,
	providerID uint,
	employeeID uint,
) (*models.Employee, error) {
	return findEmployee(ctx, r.db, providerID, employeeID)
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	providerID uint,
	serviceID uint,
) (*models.Service, error) {
	return findService(ctx, r.db, providerID, serviceID)
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	providerID uint,
) ([]models.BusinessHours, error) {

	var hours []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *ScheduleGormRepository) ReplaceBusinessHours(
	ctx context.Context,
	providerID uint,
	hours []models.BusinessHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}

		for i := range hours {
			hours[i].ID = 0
			hours[i].ProviderID = providerID
		}
		return tx.Create(&hours).Error
	})
}

// --------------------------------------------------
// Assignment
// --------------------------------------------------

// AssignService links the employee to the service and stores its copied
// schedules. Re-assigning replaces the previous copy.
func (r *ScheduleGormRepository) AssignService(
	ctx context.Context,
	link models.EmployeeService,
	schedules []models.Schedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&link).Error; err != nil {
			return err
		}

		if err := tx.
			Where("employee_id = ? AND service_id = ?", link.EmployeeID, link.ServiceID).
			Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		if len(schedules) == 0 {
			return nil
		}
		return tx.Create(&schedules).Error
	})
}

func (r *ScheduleGormRepository) UnassignService(
	ctx context.Context,
	employeeID uint,
	serviceID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("employee_id = ? AND service_id = ?", employeeID, serviceID).
			Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		res := tx.
			Where("employee_id = ? AND service_id = ?", employeeID, serviceID).
			Delete(&models.EmployeeService{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
