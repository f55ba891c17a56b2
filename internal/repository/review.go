package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

// ReviewFilter narrows review queries. Only visible reviews are ever
// matched; ProductID and Rating are optional.
type ReviewFilter struct {
	ProductID *uint
	Rating    *int
}

type RatingCount struct {
	Rating int
	Count  int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	Find(ctx context.Context, filter ReviewFilter, limit, skip int) ([]*model.Review, error)
	Count(ctx context.Context, filter ReviewFilter) (int64, error)
	AverageRating(ctx context.Context, filter ReviewFilter) (float64, error)
	RatingBreakdown(ctx context.Context, filter ReviewFilter) ([]RatingCount, error)
	Save(ctx context.Context, review *model.Review) error
	AddReply(ctx context.Context, reply *model.ReviewReply) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{db: db}
}

func (r *reviewRepoImpl) scope(ctx context.Context, filter ReviewFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Review{}).Where("visible = ?", true)
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Rating != nil {
		q = q.Where("rating = ?", *filter.Rating)
	}
	return q
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepoImpl) Find(ctx context.Context, filter ReviewFilter, limit, skip int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.scope(ctx, filter).
		Preload("Images").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepoImpl) Count(ctx context.Context, filter ReviewFilter) (int64, error) {
	var count int64
	err := r.scope(ctx, filter).Count(&count).Error
	return count, err
}

func (r *reviewRepoImpl) AverageRating(ctx context.Context, filter ReviewFilter) (float64, error) {
	var avg sql.NullFloat64
	err := r.scope(ctx, filter).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *reviewRepoImpl) RatingBreakdown(ctx context.Context, filter ReviewFilter) ([]RatingCount, error) {
	var rows []RatingCount
	err := r.scope(ctx, filter).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reviewRepoImpl) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepoImpl) AddReply(ctx context.Context, reply *model.ReviewReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *reviewRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
