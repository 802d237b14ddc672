package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stringdesk/internal/domain"
	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

type StatusService interface {
	GetByToken(ctx context.Context, token string) (*domain.ItemDetail, error)
	GetByID(ctx context.Context, id uint) (*domain.Item, error)
	StaffAdvance(ctx context.Context, token string) (*domain.Item, error)
	AdminSetStatus(ctx context.Context, id uint, statusString string) (*domain.Item, error)
	SetScheduledTime(ctx context.Context, id uint, scheduled time.Time) (*domain.Item, error)
}

type TrackingController struct {
	service StatusService
	logger  *zap.Logger
}

func NewTrackingController(service StatusService, logger *zap.Logger) *TrackingController {
	return &TrackingController{
		service: service,
		logger:  logger,
	}
}

// PublicLookup serves the unauthenticated customer view. Only the restricted
// projection leaves this handler.
func (c *TrackingController) PublicLookup(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	detail, err := c.service.GetByToken(r.Context(), token)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.PublicItemResponse{
		Name:         detail.CustomerName,
		StringType:   detail.StringType,
		TensionMain:  detail.TensionMain,
		TensionCross: detail.TensionCross,
		DoneTime:     detail.DoneTime().Format(domain.DisplayTimeLayout),
	})
}

func (c *TrackingController) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.itemID(w, r)
	if !ok {
		return
	}

	item, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (c *TrackingController) StaffAdvance(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	token := chi.URLParam(r, "token")

	item, err := c.service.StaffAdvance(r.Context(), token)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.StaffAdvanceResponse{
		Token:  item.Token,
		Status: string(item.Status),
	})
}

func (c *TrackingController) SetStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.itemID(w, r)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.service.AdminSetStatus(r.Context(), id, req.Status)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (c *TrackingController) SetScheduledTime(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.itemID(w, r)
	if !ok {
		return
	}

	var req dto.SetScheduledTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	scheduled, err := parseTimestamp(req.ScheduledTime)
	if err != nil {
		c.writeValidationError(w, "invalid scheduledTime", apperrors.ValidationDetail{
			Field:   "scheduledTime",
			Message: "scheduledTime must be formatted as 2006-01-02 15:04",
		})
		return
	}

	item, err := c.service.SetScheduledTime(r.Context(), id, scheduled)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (c *TrackingController) itemID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "itemId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid itemId", apperrors.ValidationDetail{
			Field:   "itemId",
			Message: "itemId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(domain.DisplayTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}

func itemToResponse(item *domain.Item) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:            item.ID,
		OrderID:       item.OrderID,
		Token:         item.Token,
		Status:        string(item.Status),
		StringType:    item.StringType,
		TensionMain:   item.TensionMain,
		TensionCross:  item.TensionCross,
		ScheduledTime: item.ScheduledTime.Format(domain.DisplayTimeLayout),
	}
	if item.CompletedTime != nil {
		resp.CompletedTime = item.CompletedTime.Format(domain.DisplayTimeLayout)
	}
	return resp
}

func (c *TrackingController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsInvalidStatusError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "INVALID_STATUS",
			"message": err.Error(),
		})
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *TrackingController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *TrackingController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
