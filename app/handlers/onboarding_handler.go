// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/app/dto"
	businessflow "github.com/megaphone-app/megaphone/business_flow"
	"github.com/megaphone-app/megaphone/utils"
)

// OnboardingHandlerInterface defines the contract for onboarding, profile and
// privacy handlers
type OnboardingHandlerInterface interface {
	CompleteOnboarding(c fiber.Ctx) error
	GetProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
	GetPrivacySettings(c fiber.Ctx) error
	UpdatePrivacySettings(c fiber.Ctx) error
}

// OnboardingHandler handles onboarding, profile and privacy HTTP requests
type OnboardingHandler struct {
	onboardingFlow businessflow.OnboardingFlow
	validator      *validator.Validate
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingFlow businessflow.OnboardingFlow) *OnboardingHandler {
	handler := &OnboardingHandler{
		onboardingFlow: onboardingFlow,
		validator:      validator.New(),
	}

	handler.setupCustomValidations()

	return handler
}

func (h *OnboardingHandler) setupCustomValidations() {
	// weekday_mask: 7 characters, Monday first, each either 0 or 1
	_ = h.validator.RegisterValidation("weekday_mask", func(fl validator.FieldLevel) bool {
		mask := fl.Field().String()
		if len(mask) != 7 {
			return false
		}
		for _, ch := range mask {
			if ch != '0' && ch != '1' {
				return false
			}
		}
		return true
	})
}

func (h *OnboardingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OnboardingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CompleteOnboarding creates or updates the caller's profile and privacy
// settings and replaces their daily action plans
func (h *OnboardingHandler) CompleteOnboarding(c fiber.Ctx) error {
	var req dto.CompleteOnboardingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.onboardingFlow.CompleteOnboarding(h.createRequestContext(c, "/api/v1/onboarding/complete"), accountID, &req)
	if err != nil {
		if businessflow.IsUsernameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Username is required", "USERNAME_REQUIRED", nil)
		}
		if businessflow.IsUsernameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username is already taken", "USERNAME_TAKEN", nil)
		}
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "One or more selected campaigns were not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Onboarding failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to complete onboarding", "ONBOARDING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Onboarding completed successfully", res)
}

// GetProfile returns the authenticated user's profile
func (h *OnboardingHandler) GetProfile(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.onboardingFlow.GetProfile(h.createRequestContext(c, "/api/v1/profile/me"), accountID)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", "PROFILE_NOT_FOUND", nil)
		}

		log.Println("Profile retrieval failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get profile", "GET_PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", res)
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (h *OnboardingHandler) UpdateProfile(c fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.onboardingFlow.UpdateProfile(h.createRequestContext(c, "/api/v1/profile/me"), accountID, &req)
	if err != nil {
		if businessflow.IsUsernameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Username is required", "USERNAME_REQUIRED", nil)
		}
		if businessflow.IsUsernameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username is already taken", "USERNAME_TAKEN", nil)
		}

		log.Println("Profile update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile", "UPDATE_PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", res)
}

// GetPrivacySettings returns the authenticated user's privacy settings,
// creating the default row on first read
func (h *OnboardingHandler) GetPrivacySettings(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.onboardingFlow.GetPrivacySettings(h.createRequestContext(c, "/api/v1/privacy/me"), accountID)
	if err != nil {
		log.Println("Privacy retrieval failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get privacy settings", "GET_PRIVACY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Privacy settings retrieved successfully", res)
}

// UpdatePrivacySettings applies a partial update to the authenticated user's
// privacy settings
func (h *OnboardingHandler) UpdatePrivacySettings(c fiber.Ctx) error {
	var req dto.UpdatePrivacySettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.onboardingFlow.UpdatePrivacySettings(h.createRequestContext(c, "/api/v1/privacy/me"), accountID, &req)
	if err != nil {
		log.Println("Privacy update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update privacy settings", "UPDATE_PRIVACY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Privacy settings updated successfully", res)
}

func (h *OnboardingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *OnboardingHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
