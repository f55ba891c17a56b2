package repository

import (
	"context"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

type ApplicationFilter struct {
	Status   string
	Position string
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	Find(ctx context.Context, filter ApplicationFilter, limit, skip int) ([]*model.Application, error)
	Count(ctx context.Context, filter ApplicationFilter) (int64, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Application, error)
	Delete(ctx context.Context, id uint) (*model.Application, error)
}

type applicationRepoImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepoImpl{db: db}
}

func (r *applicationRepoImpl) scope(ctx context.Context, filter ApplicationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Application{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Position != "" {
		q = q.Where("position = ?", filter.Position)
	}
	return q
}

func (r *applicationRepoImpl) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepoImpl) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepoImpl) Find(ctx context.Context, filter ApplicationFilter, limit, skip int) ([]*model.Application, error) {
	var apps []*model.Application
	err := r.scope(ctx, filter).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepoImpl) Count(ctx context.Context, filter ApplicationFilter) (int64, error) {
	var count int64
	err := r.scope(ctx, filter).Count(&count).Error
	return count, err
}

func (r *applicationRepoImpl) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Application{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&app, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepoImpl) Delete(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Application{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}
