package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// --------------------------------------------------
// Round-robin cursor
// --------------------------------------------------

func (r *AppointmentGormRepository) LockCursor(
	ctx context.Context,
	serviceID uint,
) (*models.RoundRobinCursor, error) {

	seed := models.RoundRobinCursor{ServiceID: serviceID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error; err != nil {
		return nil, err
	}

	var cur models.RoundRobinCursor
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("service_id = ?", serviceID).
		First(&cur).Error; err != nil {
		return nil, err
	}
	return &cur, nil
}

// AdvanceCursor is a compare-and-swap on last_index.
func (r *AppointmentGormRepository) AdvanceCursor(
	ctx context.Context,
	serviceID uint,
	expected int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.RoundRobinCursor{}).
		Where("service_id = ? AND last_index = ?", serviceID, expected).
		Update("last_index", gorm.Expr("last_index + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCursorMoved
	}
	return nil
}
