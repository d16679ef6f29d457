package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cookbook/internal/models"
	"cookbook/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "cookbook-api"
	tokenAudience = "cookbook-client"
)

// Register handles POST /auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Email, username, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(err.Error()))
	}

	// Duplicate identity is a 400 on this endpoint, not a 409.
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return mapServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Email already registered"))
	}
	existing, err = s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return mapServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Username already taken"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		// A concurrent registration can still trip the unique constraint.
		var appErr *models.AppError
		if errors.As(createErr, &appErr) && appErr.Code == "CONFLICT" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewBadRequestError("User already exists"))
		}
		return mapServiceError(c, createErr)
	}

	return c.JSON(user)
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return mapServiceError(c, err)
	}
	// Same message for unknown email and wrong password.
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect email or password"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect email or password"))
	}
	if !user.IsActive {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Inactive user"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me handles GET /auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /auth/logout. The token's jti is blacklisted until its
// natural expiry; without Redis logout is a no-op on the server side.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis != nil {
		if claims, ok := c.Locals("jwtClaims").(jwt.MapClaims); ok {
			jti, _ := claims["jti"].(string)
			exp, _ := claims["exp"].(float64)
			if jti != "" && exp > 0 {
				ttl := time.Until(time.Unix(int64(exp), 0))
				if ttl > 0 {
					s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
				}
			}
		}
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	expires := now.Add(time.Duration(s.config.JWTExpireMinutes) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      expires.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
