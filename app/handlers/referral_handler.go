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

// ReferralHandlerInterface defines the contract for referral handlers
type ReferralHandlerInterface interface {
	CreateLink(c fiber.Ctx) error
	Claim(c fiber.Ctx) error
	ListMine(c fiber.Ctx) error
	Assists(c fiber.Ctx) error
}

// ReferralHandler handles referral HTTP requests
type ReferralHandler struct {
	referralFlow businessflow.ReferralFlow
	validator    *validator.Validate
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralFlow businessflow.ReferralFlow) *ReferralHandler {
	return &ReferralHandler{
		referralFlow: referralFlow,
		validator:    validator.New(),
	}
}

func (h *ReferralHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReferralHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateLink issues a new referral code for the authenticated user
func (h *ReferralHandler) CreateLink(c fiber.Ctx) error {
	var req dto.CreateReferralLinkRequest
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

	res, err := h.referralFlow.CreateLink(h.createRequestContext(c, "/api/v1/referrals/link"), accountID, &req)
	if err != nil {
		if businessflow.IsReferralTrackingDisabled(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Referral tracking is disabled in your privacy settings", "REFERRAL_TRACKING_DISABLED", nil)
		}

		log.Println("Referral link creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create referral link", "CREATE_REFERRAL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Referral link created successfully", res)
}

// Claim binds a referral code to the authenticated user
func (h *ReferralHandler) Claim(c fiber.Ctx) error {
	var req dto.ClaimReferralRequest
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

	if err := h.referralFlow.Claim(h.createRequestContext(c, "/api/v1/referrals/claim"), accountID, &req); err != nil {
		if businessflow.IsReferralCodeNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Referral code not found", "REFERRAL_CODE_NOT_FOUND", nil)
		}
		if businessflow.IsSelfReferral(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "You cannot claim your own referral code", "SELF_REFERRAL", nil)
		}
		if businessflow.IsReferralAlreadyClaimedByUser(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "User has already claimed a referral", "REFERRAL_ALREADY_CLAIMED_BY_USER", nil)
		}
		if businessflow.IsReferralCodeAlreadyClaimed(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Referral code was already claimed", "REFERRAL_CODE_ALREADY_CLAIMED", nil)
		}

		log.Println("Referral claim failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to claim referral", "CLAIM_REFERRAL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Referral claimed successfully", nil)
}

// ListMine returns the authenticated user's issued referrals
func (h *ReferralHandler) ListMine(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	skip, limit := parsePagination(c)

	res, err := h.referralFlow.ListMine(h.createRequestContext(c, "/api/v1/referrals/me"), accountID, skip, limit)
	if err != nil {
		log.Println("Referral listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list referrals", "LIST_REFERRALS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Referrals retrieved successfully", res)
}

// Assists returns recruited-user and assisted-action counts for a trailing window
func (h *ReferralHandler) Assists(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	window := c.Query("window", utils.DefaultStatsWindow)

	res, err := h.referralFlow.Assists(h.createRequestContext(c, "/api/v1/referrals/me/assists"), accountID, window)
	if err != nil {
		if businessflow.IsInvalidWindowFormat(err) || businessflow.IsWindowOutOfRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErrorMessage(err), "INVALID_WINDOW", nil)
		}

		log.Println("Referral assists failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute referral assists", "REFERRAL_ASSISTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Referral assists retrieved successfully", res)
}

func (h *ReferralHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *ReferralHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
