// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/app/dto"
	businessflow "github.com/megaphone-app/megaphone/business_flow"
	"github.com/megaphone-app/megaphone/utils"
)

// ImpactHandlerInterface defines the contract for impact aggregation handlers
type ImpactHandlerInterface interface {
	PlatformImpact(c fiber.Ctx) error
	CampaignImpact(c fiber.Ctx) error
	RepresentativeImpact(c fiber.Ctx) error
	MyShareCard(c fiber.Ctx) error
	ExportCampaignImpact(c fiber.Ctx) error
}

// ImpactHandler handles windowed impact aggregation HTTP requests
type ImpactHandler struct {
	impactFlow businessflow.ImpactFlow
}

// NewImpactHandler creates a new impact handler
func NewImpactHandler(impactFlow businessflow.ImpactFlow) *ImpactHandler {
	return &ImpactHandler{impactFlow: impactFlow}
}

func (h *ImpactHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ImpactHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// PlatformImpact returns platform-wide aggregate counts for a trailing window
func (h *ImpactHandler) PlatformImpact(c fiber.Ctx) error {
	window := c.Query("window", utils.DefaultStatsWindow)

	res, err := h.impactFlow.PlatformImpact(h.createRequestContext(c, "/api/v1/impact/platform"), window)
	if err != nil {
		if businessflow.IsInvalidWindowFormat(err) || businessflow.IsWindowOutOfRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, businessErrorMessage(err), "INVALID_WINDOW", nil)
		}

		log.Println("Platform impact failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute platform impact", "PLATFORM_IMPACT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Platform impact retrieved successfully", res)
}

// CampaignImpact returns aggregate counts for one campaign
func (h *ImpactHandler) CampaignImpact(c fiber.Ctx) error {
	campaignID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign ID", "INVALID_CAMPAIGN_ID", nil)
	}

	window := c.Query("window", utils.DefaultImpactWindow)

	res, err := h.impactFlow.CampaignImpact(h.createRequestContext(c, "/api/v1/impact/campaign/:id"), campaignID, window)
	if err != nil {
		return h.mapImpactError(c, err, "Failed to compute campaign impact", "CAMPAIGN_IMPACT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign impact retrieved successfully", res)
}

// RepresentativeImpact returns aggregate counts for one representative target
func (h *ImpactHandler) RepresentativeImpact(c fiber.Ctx) error {
	targetID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid target ID", "INVALID_TARGET_ID", nil)
	}

	window := c.Query("window", utils.DefaultImpactWindow)

	res, err := h.impactFlow.RepresentativeImpact(h.createRequestContext(c, "/api/v1/impact/representative/:id"), targetID, window)
	if err != nil {
		return h.mapImpactError(c, err, "Failed to compute representative impact", "REPRESENTATIVE_IMPACT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Representative impact retrieved successfully", res)
}

// MyShareCard returns the authenticated user's privacy-gated share card
func (h *ImpactHandler) MyShareCard(c fiber.Ctx) error {
	accountID, ok := c.Locals("account_id").(uuid.UUID)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account ID not found in context", "MISSING_ACCOUNT_ID", nil)
	}

	window := c.Query("window", utils.DefaultStatsWindow)

	res, err := h.impactFlow.MyShareCard(h.createRequestContext(c, "/api/v1/impact/me/share-card"), accountID, window)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", "PROFILE_NOT_FOUND", nil)
		}

		return h.mapImpactError(c, err, "Failed to build share card", "SHARE_CARD_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Share card retrieved successfully", res)
}

// ExportCampaignImpact streams an XLSX workbook of a campaign's windowed logs
func (h *ImpactHandler) ExportCampaignImpact(c fiber.Ctx) error {
	campaignID, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign ID", "INVALID_CAMPAIGN_ID", nil)
	}

	window := c.Query("window", utils.DefaultImpactWindow)

	filename, data, err := h.impactFlow.ExportCampaignImpact(h.createRequestContext(c, "/api/v1/impact/campaign/:id/export"), campaignID, window)
	if err != nil {
		return h.mapImpactError(c, err, "Failed to generate XLSX", "EXPORT_FAILED")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// mapImpactError translates shared impact flow failures into HTTP responses
func (h *ImpactHandler) mapImpactError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsInvalidWindowFormat(err) || businessflow.IsWindowOutOfRange(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, businessErrorMessage(err), "INVALID_WINDOW", nil)
	}
	if businessflow.IsCampaignNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}
	if businessflow.IsTargetNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Representative target not found", "TARGET_NOT_FOUND", nil)
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

func (h *ImpactHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *ImpactHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
