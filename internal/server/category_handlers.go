package server

import (
	"cookbook/internal/models"
	"cookbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /categories
func (s *Server) ListCategories(c *fiber.Ctx) error {
	page := parsePagination(c)

	categories, err := s.categoryService.ListCategories(c.Context(), page.Limit, page.Skip)
	if err != nil {
		return mapServiceError(c, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return c.JSON(categories)
}

// GetCategory handles GET /categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(category)
}

// CreateCategory handles POST /categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(category)
}

// UpdateCategory handles PUT /categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.Context(), service.UpdateCategoryInput{
		CategoryID:  id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
