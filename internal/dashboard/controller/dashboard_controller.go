package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

type DashboardUseCase interface {
	ListByDate(ctx context.Context, date string) ([]dto.ItemSummary, error)
	Search(ctx context.Context, keyword string) ([]dto.ItemSummary, error)
	SummaryByDate(ctx context.Context, date string) (*dto.DaySummaryResponse, error)
	MonthUnfinished(ctx context.Context, yearMonth string) (*dto.MonthUnfinishedResponse, error)
}

type DashboardController struct {
	useCase DashboardUseCase
	logger  *zap.Logger
}

func NewDashboardController(useCase DashboardUseCase, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *DashboardController) ListByDate(w http.ResponseWriter, r *http.Request) {
	items, err := c.useCase.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, items)
}

func (c *DashboardController) Search(w http.ResponseWriter, r *http.Request) {
	items, err := c.useCase.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, items)
}

func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.useCase.SummaryByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, summary)
}

func (c *DashboardController) MonthUnfinished(w http.ResponseWriter, r *http.Request) {
	counts, err := c.useCase.MonthUnfinished(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, counts)
}

func (c *DashboardController) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}

	c.logger.Error("dashboard query failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *DashboardController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
