package server

import (
	"cookbook/internal/models"
	"cookbook/internal/repository"
	"cookbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	page := parsePagination(c)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Skip)
	if err != nil {
		return mapServiceError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserRecipes handles GET /users/:id/recipes. The recipes carry the same
// aggregated view (counts, categories) as the main recipe listing.
func (s *Server) GetUserRecipes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c)
	currentID, _ := s.optionalUserID(c)

	// 404 for unknown authors rather than an empty list.
	if _, err := s.userService.GetUserByID(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}

	recipes, err := s.recipeService.ListRecipes(c.Context(), service.ListRecipesInput{
		Filter:        repository.RecipeFilter{AuthorID: id},
		Limit:         page.Limit,
		Offset:        page.Skip,
		CurrentUserID: currentID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	return c.JSON(recipes)
}

// UpdateMyProfile handles PUT /users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /users/me. Everything the user owns goes
// with the account.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}
