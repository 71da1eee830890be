package repository

import (
	"context"
	"dental-academy-store/internal/model"

	"gorm.io/gorm"
)

type CourseRepository interface {
	List(ctx context.Context) ([]*model.Course, error)
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	FindMany(ctx context.Context, ids []uint) ([]*model.Course, error)
}

type courseRepoImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepoImpl{
		db: db,
	}
}

func (r *courseRepoImpl) List(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).Find(&courses).Error
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepoImpl) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error

	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepoImpl) FindMany(ctx context.Context, ids []uint) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&courses).Error

	if err != nil {
		return nil, err
	}

	return courses, nil
}
