package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Migrate creates the schema. Both postgres and sqlite accept the partial
// index below, which is what makes a second active appointment for the
// same employee and instant impossible.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Provider{},
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.EmployeeService{},
		&models.BusinessHours{},
		&models.Schedule{},
		&models.Client{},
		&models.Appointment{},
		&models.RoundRobinCursor{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_employee_date_active
        ON appointments (employee_id, date)
        WHERE status <> 'CANCELLED'
    `).Error; err != nil {
		return fmt.Errorf("create active appointment index: %w", err)
	}

	return nil
}
