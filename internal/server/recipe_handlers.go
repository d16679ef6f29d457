package server

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"

	"cookbook/internal/models"
	"cookbook/internal/repository"
	"cookbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListRecipes handles GET /recipes
func (s *Server) ListRecipes(c *fiber.Ctx) error {
	page := parsePagination(c)
	userID, _ := s.optionalUserID(c)

	filter := repository.RecipeFilter{
		Search: c.Query("search"),
	}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		filter.CategoryID = uint(categoryID)
	}

	recipes, err := s.recipeService.ListRecipes(c.Context(), service.ListRecipesInput{
		Filter:        filter,
		Limit:         page.Limit,
		Offset:        page.Skip,
		CurrentUserID: userID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	return c.JSON(recipes)
}

// GetRecipe handles GET /recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipe)
}

// CreateRecipe handles POST /recipes (multipart form).
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.CreateRecipeInput{
		UserID:      userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Difficulty:  c.FormValue("difficulty"),
	}

	var err error
	if in.Ingredients, err = parseStringListField(c.FormValue("ingredients"), "ingredients"); err != nil {
		return mapServiceError(c, err)
	}
	if in.Steps, err = parseStringListField(c.FormValue("steps"), "steps"); err != nil {
		return mapServiceError(c, err)
	}
	if in.CategoryIDs, err = parseIDListField(c.FormValue("category_ids"), "category_ids"); err != nil {
		return mapServiceError(c, err)
	}
	if in.PrepTime, err = parseOptionalIntField(c.FormValue("prep_time"), "prep_time"); err != nil {
		return mapServiceError(c, err)
	}
	if in.CookTime, err = parseOptionalIntField(c.FormValue("cook_time"), "cook_time"); err != nil {
		return mapServiceError(c, err)
	}
	if in.Servings, err = parseOptionalIntField(c.FormValue("servings"), "servings"); err != nil {
		return mapServiceError(c, err)
	}

	if fileHeader, fileErr := c.FormFile("image"); fileErr == nil && fileHeader != nil {
		imageURL, saveErr := s.saveUploadedImage(fileHeader)
		if saveErr != nil {
			return mapServiceError(c, saveErr)
		}
		in.ImageURL = imageURL
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipe)
}

// UpdateRecipe handles PUT /recipes/:id (multipart form, partial).
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Invalid multipart form"))
	}

	in := service.UpdateRecipeInput{
		UserID:      currentUserID(c),
		RecipeID:    id,
		Title:       formString(form, "title"),
		Description: formString(form, "description"),
		Difficulty:  formString(form, "difficulty"),
	}

	if raw := formString(form, "ingredients"); raw != nil {
		if in.Ingredients, err = parseStringListField(*raw, "ingredients"); err != nil {
			return mapServiceError(c, err)
		}
	}
	if raw := formString(form, "steps"); raw != nil {
		if in.Steps, err = parseStringListField(*raw, "steps"); err != nil {
			return mapServiceError(c, err)
		}
	}
	if raw := formString(form, "category_ids"); raw != nil {
		if in.CategoryIDs, err = parseIDListField(*raw, "category_ids"); err != nil {
			return mapServiceError(c, err)
		}
		if in.CategoryIDs == nil {
			in.CategoryIDs = []uint{}
		}
	}
	if raw := formString(form, "prep_time"); raw != nil {
		if in.PrepTime, err = parseOptionalIntField(*raw, "prep_time"); err != nil {
			return mapServiceError(c, err)
		}
	}
	if raw := formString(form, "cook_time"); raw != nil {
		if in.CookTime, err = parseOptionalIntField(*raw, "cook_time"); err != nil {
			return mapServiceError(c, err)
		}
	}
	if raw := formString(form, "servings"); raw != nil {
		if in.Servings, err = parseOptionalIntField(*raw, "servings"); err != nil {
			return mapServiceError(c, err)
		}
	}

	if files := form.File["image"]; len(files) > 0 {
		imageURL, saveErr := s.saveUploadedImage(files[0])
		if saveErr != nil {
			return mapServiceError(c, saveErr)
		}
		in.ImageURL = &imageURL
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), currentUserID(c), id); err != nil {
		return mapServiceError(c, err)
	}

	// Best-effort cleanup of the stored image file.
	if recipe.ImageURL != "" {
		_ = s.imageService.Remove(recipe.ImageURL)
	}

	return c.JSON(fiber.Map{
		"message": "Recipe deleted successfully",
	})
}

// LikeRecipe handles POST /recipes/:id/like
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.recipeService.LikeRecipe(c.Context(), currentUserID(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Recipe liked",
	})
}

// UnlikeRecipe handles DELETE /recipes/:id/like
func (s *Server) UnlikeRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.recipeService.UnlikeRecipe(c.Context(), currentUserID(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Like removed",
	})
}

// GetIsLiked handles GET /recipes/:id/is-liked
func (s *Server) GetIsLiked(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	liked, err := s.recipeService.IsLiked(c.Context(), currentUserID(c), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"recipe_id": id,
		"is_liked":  liked,
	})
}

// GetLikesCount handles GET /recipes/:id/likes/count
func (s *Server) GetLikesCount(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	count, err := s.recipeService.CountLikes(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"recipe_id":   id,
		"likes_count": count,
	})
}

// GetRecipeComments handles GET /recipes/:id/comments
func (s *Server) GetRecipeComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c)

	comments, err := s.commentService.ListComments(c.Context(), id, page.Limit, page.Skip)
	if err != nil {
		return mapServiceError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// saveUploadedImage reads the multipart file and hands it to the image service.
func (s *Server) saveUploadedImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	return s.imageService.Save(service.UploadImageInput{
		Filename: fileHeader.Filename,
		Content:  content,
	})
}

// formString returns the first value for key, or nil when the field is absent.
func formString(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// parseStringListField decodes a JSON array form field. An empty field means
// an empty list; malformed JSON is a 400-level error.
func parseStringListField(raw, field string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, models.NewBadRequestError("Invalid " + field + ": expected a JSON array of strings")
	}
	return list, nil
}

// parseIDListField decodes a JSON array of positive integers.
func parseIDListField(raw, field string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	var list []uint
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, models.NewBadRequestError("Invalid " + field + ": expected a JSON array of IDs")
	}
	return list, nil
}

// parseOptionalIntField parses an optional integer form field.
func parseOptionalIntField(raw, field string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.NewBadRequestError("Invalid " + field + ": expected an integer")
	}
	return &value, nil
}
