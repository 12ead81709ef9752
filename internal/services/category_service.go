package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

type categoryService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCategoryService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CategoryService {
	return &categoryService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *categoryService) Create(ctx context.Context, req *CategoryCreateRequest) (*models.Category, error) {
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Category().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.Category().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.Category().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req *CategoryUpdateRequest) (*models.Category, error) {
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	category, err := s.repo.Category().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.repo.Category().Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category updated", "category_id", category.ID)
	return category, nil
}

// Delete removes a category and every course in it
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Category().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return ErrCategoryNotFound
	}

	if err := s.repo.Category().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}
