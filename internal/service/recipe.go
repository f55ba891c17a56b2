package service

import (
	"context"
	"fmt"
	"strings"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type RecipeService interface {
	Create(ctx context.Context, createdBy string, req *dto.RecipeRequest, image []byte, imageName string) (*model.Recipe, error)
	Get(ctx context.Context, id uint) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	Update(ctx context.Context, id uint, req *dto.RecipeRequest, image []byte, imageName string) (*model.Recipe, error)
	Delete(ctx context.Context, id uint) error
}

type recipeServiceImpl struct {
	recipeRepo repository.RecipeRepository
	uploader   client.Uploader
}

func NewRecipeService(recipeRepo repository.RecipeRepository, uploader client.Uploader) RecipeService {
	return &recipeServiceImpl{recipeRepo: recipeRepo, uploader: uploader}
}

func splitList(value, sep string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *recipeServiceImpl) Create(ctx context.Context, createdBy string, req *dto.RecipeRequest, image []byte, imageName string) (*model.Recipe, error) {
	if req.Title == "" || req.Description == "" {
		return nil, ErrMissingFields
	}

	imageURL := ""
	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, imageName, "recipes")
		if err != nil {
			return nil, fmt.Errorf("upload recipe image: %w", err)
		}
		imageURL = url
	}

	recipe := &model.Recipe{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		Ingredients: splitList(req.Ingredients, ","),
		Steps:       splitList(req.Steps, ";"),
		CreatedBy:   createdBy,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeServiceImpl) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	return s.recipeRepo.FindByID(ctx, id)
}

func (s *recipeServiceImpl) List(ctx context.Context) ([]*model.Recipe, error) {
	return s.recipeRepo.FindAll(ctx)
}

func (s *recipeServiceImpl) Update(ctx context.Context, id uint, req *dto.RecipeRequest, image []byte, imageName string) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	recipe.Ingredients = splitList(req.Ingredients, ",")
	recipe.Steps = splitList(req.Steps, ";")

	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, imageName, "recipes")
		if err != nil {
			return nil, fmt.Errorf("upload recipe image: %w", err)
		}
		recipe.ImageURL = url
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.recipeRepo.Delete(ctx, id)
}
