package server

import (
	"cookbook/internal/models"
	"cookbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content  string `json:"content"`
		RecipeID uint   `json:"recipe_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}
	if req.RecipeID == 0 {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("recipe_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		RecipeID: req.RecipeID,
		Content:  req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comment)
}

// GetComment handles GET /comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentRepo.GetByID(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comment)
}

// GetCommentsByRecipe handles GET /comments/recipe/:recipeId
func (s *Server) GetCommentsByRecipe(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "recipeId")
	if err != nil {
		return nil
	}
	page := parsePagination(c)

	comments, err := s.commentService.ListComments(c.Context(), recipeID, page.Limit, page.Skip)
	if err != nil {
		return mapServiceError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// UpdateComment handles PUT /comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
	}); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}
