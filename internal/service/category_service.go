package service

import (
	"context"

	"cookbook/internal/models"
	"cookbook/internal/repository"
	"cookbook/internal/validation"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput carries a partial update; nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID  uint
	Name        *string
	Description *string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context, limit, offset int) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateCategoryName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category. Recipes tagged with it keep existing
// and simply lose the tag.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
