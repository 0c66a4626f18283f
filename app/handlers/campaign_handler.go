// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/megaphone-app/megaphone/app/dto"
	businessflow "github.com/megaphone-app/megaphone/business_flow"
	"github.com/megaphone-app/megaphone/utils"
)

// CampaignHandlerInterface defines the contract for campaign catalog handlers
type CampaignHandlerInterface interface {
	ListCampaigns(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
	ListTargets(c fiber.Ctx) error
	ListTemplates(c fiber.Ctx) error
}

// CampaignHandler handles campaign catalog HTTP requests
type CampaignHandler struct {
	campaignFlow businessflow.CampaignFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		validator:    validator.New(),
	}
}

func (h *CampaignHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CampaignHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCampaigns returns the campaign catalog with optional status filtering
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	skip, limit := parsePagination(c)

	req := dto.ListCampaignsRequest{
		Status: c.Query("status"),
		Skip:   skip,
		Limit:  limit,
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	res, err := h.campaignFlow.ListCampaigns(h.createRequestContext(c, "/api/v1/campaigns"), &req)
	if err != nil {
		log.Println("Campaign listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list campaigns", "LIST_CAMPAIGNS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaigns retrieved successfully", res)
}

// GetCampaign returns a single campaign by id
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	campaignID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign ID", "INVALID_CAMPAIGN_ID", nil)
	}

	res, err := h.campaignFlow.GetCampaign(h.createRequestContext(c, "/api/v1/campaigns/:id"), campaignID)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Campaign retrieval failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get campaign", "GET_CAMPAIGN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign retrieved successfully", res)
}

// ListTargets returns a campaign's representative targets
func (h *CampaignHandler) ListTargets(c fiber.Ctx) error {
	campaignID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign ID", "INVALID_CAMPAIGN_ID", nil)
	}

	skip, limit := parsePagination(c)

	res, err := h.campaignFlow.ListTargets(h.createRequestContext(c, "/api/v1/campaigns/:id/targets"), campaignID, skip, limit)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Target listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list targets", "LIST_TARGETS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Targets retrieved successfully", res)
}

// ListTemplates returns a campaign's action templates
func (h *CampaignHandler) ListTemplates(c fiber.Ctx) error {
	campaignID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign ID", "INVALID_CAMPAIGN_ID", nil)
	}

	skip, limit := parsePagination(c)

	res, err := h.campaignFlow.ListTemplates(h.createRequestContext(c, "/api/v1/campaigns/:id/templates"), campaignID, skip, limit)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Template listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list templates", "LIST_TEMPLATES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Templates retrieved successfully", res)
}

func (h *CampaignHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CampaignHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
