package server

import (
	"errors"
	"strings"
	"unicode"

	"cookbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed skip/limit query parameters.
type Pagination struct {
	Limit int
	Skip  int
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 100
)

// parsePagination extracts skip and limit query parameters.
func parsePagination(c *fiber.Ctx) Pagination {
	limit := c.QueryInt("limit", defaultPaginationLimit)
	if limit <= 0 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	return Pagination{
		Limit: limit,
		Skip:  skip,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 422 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "recipeId" -> "recipe ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// statusForErrorCode maps AppError machine codes to HTTP status codes.
func statusForErrorCode(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return fiber.StatusUnprocessableEntity
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	case "BAD_REQUEST":
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// mapServiceError writes the HTTP response for an error coming out of the
// service or repository layer.
func mapServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, statusForErrorCode(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// currentUserID reads the authenticated user's ID placed in locals by
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
