package repository

import (
	"context"

	"gorm.io/gorm"

	"canela-backend/internal/model"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	FindAll(ctx context.Context) ([]*model.Recipe, error)
	Save(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uint) error
}

type recipeRepoImpl struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepoImpl{db: db}
}

func (r *recipeRepoImpl) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepoImpl) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepoImpl) FindAll(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepoImpl) Save(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Recipe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
