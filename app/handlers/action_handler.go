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

// ActionHandlerInterface defines the contract for action handlers
type ActionHandlerInterface interface {
	TodayActions(c fiber.Ctx) error
	LogAction(c fiber.Ctx) error
	ListMyActions(c fiber.Ctx) error
	MyStats(c fiber.Ctx) error
}

// ActionHandler handles daily feed and action logging HTTP requests
type ActionHandler struct {
	actionFlow businessflow.ActionFlow
	validator  *validator.Validate
}

// NewActionHandler creates a new action handler
func NewActionHandler(actionFlow businessflow.ActionFlow) *ActionHandler {
	return &ActionHandler{
		actionFlow: actionFlow,
		validator:  validator.New(),
	}
}

func (h *ActionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ActionHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// TodayActions returns the authenticated user's action feed for today
func (h *ActionHandler) TodayActions(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	res, err := h.actionFlow.TodayActions(h.createRequestContext(c, "/api/v1/actions/today"), accountID)
	if err != nil {
		log.Println("Today feed failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build today feed", "TODAY_FEED_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Today feed retrieved successfully", res)
}

// LogAction records a completed or skipped action for the authenticated user
func (h *ActionHandler) LogAction(c fiber.Ctx) error {
	var req dto.LogActionRequest
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

	res, err := h.actionFlow.LogAction(h.createRequestContext(c, "/api/v1/actions/log"), accountID, &req)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		if businessflow.IsTemplateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Action template not found", "TEMPLATE_NOT_FOUND", nil)
		}
		if businessflow.IsTargetCampaignMismatch(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Target does not belong to campaign", "TARGET_CAMPAIGN_MISMATCH", nil)
		}
		if businessflow.IsTemplateCampaignMismatch(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Action template does not belong to campaign", "TEMPLATE_CAMPAIGN_MISMATCH", nil)
		}

		log.Println("Action logging failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log action", "LOG_ACTION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Action logged successfully", res)
}

// ListMyActions returns the authenticated user's action log, newest first
func (h *ActionHandler) ListMyActions(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	skip, limit := parsePagination(c)

	res, err := h.actionFlow.ListMyActions(h.createRequestContext(c, "/api/v1/actions/me"), accountID, skip, limit)
	if err != nil {
		log.Println("Action listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list actions", "LIST_ACTIONS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Actions retrieved successfully", res)
}

// MyStats returns the authenticated user's aggregate counts for a trailing window
func (h *ActionHandler) MyStats(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	window := c.Query("window", utils.DefaultStatsWindow)

	res, err := h.actionFlow.MyStats(h.createRequestContext(c, "/api/v1/actions/me/stats"), accountID, window)
	if err != nil {
		if businessflow.IsInvalidWindowFormat(err) || businessflow.IsWindowOutOfRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErrorMessage(err), "INVALID_WINDOW", nil)
		}

		log.Println("Stats computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute stats", "STATS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Stats retrieved successfully", res)
}

func (h *ActionHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *ActionHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
