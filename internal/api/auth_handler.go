package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"department-service/internal/model"
	"department-service/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

type SignupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	StudentID   *string `json:"studentId"`
	Institution *string `json:"institution"`
	Major       *string `json:"major"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var request SignupRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	newUser := &model.User{
		Name:        request.Name,
		Email:       request.Email,
		Role:        model.RoleStudent,
		StudentID:   request.StudentID,
		Institution: request.Institution,
		Major:       request.Major,
	}

	user, sessionToken, err := h.authService.Register(c.Context(), newUser, request.Password)

	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			return fail(c, fiber.StatusBadRequest, CodeValidation, "User with this email already exists")
		}
		return failStore(c, "Server error during registration", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully!",
		"token":   sessionToken,
		"user":    user,
	})
}

type AdminSignupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Institution *string `json:"institution"`
	Position    *string `json:"position"`
}

// AdminSignup creates an account with the admin role. The route is itself
// admin-gated; the very first admin comes from the bootstrap-admin subcommand.
func (h *AuthHandler) AdminSignup(c *fiber.Ctx) error {
	var request AdminSignupRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	newUser := &model.User{
		Name:        request.Name,
		Email:       request.Email,
		Role:        model.RoleAdmin,
		Institution: request.Institution,
	}

	user, sessionToken, err := h.authService.Register(c.Context(), newUser, request.Password)

	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			return fail(c, fiber.StatusBadRequest, CodeValidation, "User with this email already exists")
		}
		return failStore(c, "Server error during admin registration", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Admin account created successfully!",
		"token":   sessionToken,
		"user":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	user, sessionToken, err := h.authService.Login(c.Context(), request.Email, request.Password)

	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "Invalid email or password")
		}
		return failStore(c, "Server error during login", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful!",
		"token":   sessionToken,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "Invalid user claims")
	}

	userID, err := claims.UserID()
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "Invalid user claims")
	}

	user, err := h.authService.GetProfile(c.Context(), userID)

	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, CodeNotFound, "User not found")
		}
		return failStore(c, "Server error", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
