package repository

import (
	"context"
	"dental-academy-store/internal/model"

	"gorm.io/gorm"
)

type InstructorRepository interface {
	List(ctx context.Context) ([]*model.Instructor, error)
	FindByID(ctx context.Context, id uint) (*model.Instructor, error)
	FindMany(ctx context.Context, ids []uint) ([]*model.Instructor, error)
}

type instructorRepoImpl struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) InstructorRepository {
	return &instructorRepoImpl{
		db: db,
	}
}

func (r *instructorRepoImpl) List(ctx context.Context) ([]*model.Instructor, error) {
	var instructors []*model.Instructor
	err := r.db.WithContext(ctx).Find(&instructors).Error
	if err != nil {
		return nil, err
	}

	return instructors, nil
}

func (r *instructorRepoImpl) FindByID(ctx context.Context, id uint) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&instructor).Error

	if err != nil {
		return nil, err
	}

	return &instructor, nil
}

func (r *instructorRepoImpl) FindMany(ctx context.Context, ids []uint) ([]*model.Instructor, error) {
	var instructors []*model.Instructor
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&instructors).Error

	if err != nil {
		return nil, err
	}

	return instructors, nil
}
