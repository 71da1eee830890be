package repository

import (
	"context"
	"dental-academy-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error
	FindByUser(ctx context.Context, userID string) ([]*model.Enrollment, error)
}

type enrollmentRepoImpl struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepoImpl{
		db: db,
	}
}

// Upsert grants the course once; re-verifying a payment for an already
// enrolled course is a no-op.
func (r *enrollmentRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(enrollment).Error
}

func (r *enrollmentRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Enrollment, error) {
	var enrollments []*model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&enrollments).Error

	if err != nil {
		return nil, err
	}

	return enrollments, nil
}
