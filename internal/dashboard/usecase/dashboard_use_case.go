package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stringdesk/internal/dashboard/repository"
	"stringdesk/internal/domain"
	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

// SearchLimit caps keyword search results.
const SearchLimit = 200

type QueryRepository interface {
	ListByDate(ctx context.Context, day time.Time) ([]domain.ItemDetail, error)
	Search(ctx context.Context, keyword string, limit int) ([]domain.ItemDetail, error)
	SummaryByDate(ctx context.Context, day time.Time) (*repository.DaySummary, error)
	MonthUnfinished(ctx context.Context, firstOfMonth time.Time) (map[string]int, error)
}

type DashboardUseCase struct {
	repo QueryRepository
}

func NewDashboardUseCase(repo QueryRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

func (uc *DashboardUseCase) ListByDate(ctx context.Context, date string) ([]dto.ItemSummary, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	details, err := uc.repo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	return toSummaries(details), nil
}

// Search returns an empty list for a blank keyword; "match all" is never
// what the dashboard wants.
func (uc *DashboardUseCase) Search(ctx context.Context, keyword string) ([]dto.ItemSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []dto.ItemSummary{}, nil
	}

	details, err := uc.repo.Search(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, err
	}

	return toSummaries(details), nil
}

// SummaryByDate zero-fills every status and every hour bucket so the
// response shape is identical on quiet and busy days.
func (uc *DashboardUseCase) SummaryByDate(ctx context.Context, date string) (*dto.DaySummaryResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	summary, err := uc.repo.SummaryByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		byStatus[string(st)] = summary.ByStatus[st]
	}

	byHour := make(map[string]int, 24)
	for hour := 0; hour < 24; hour++ {
		byHour[fmt.Sprintf("%02d", hour)] = summary.ByHour[hour]
	}

	return &dto.DaySummaryResponse{
		Total:    summary.Total,
		ByStatus: byStatus,
		ByHour:   byHour,
	}, nil
}

func (uc *DashboardUseCase) MonthUnfinished(ctx context.Context, yearMonth string) (*dto.MonthUnfinishedResponse, error) {
	first, err := time.ParseInLocation("2006-01", strings.TrimSpace(yearMonth), time.Local)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid month", apperrors.ValidationDetail{
			Field:   "month",
			Message: "month must be formatted as 2006-01",
		})
	}

	counts, err := uc.repo.MonthUnfinished(ctx, first)
	if err != nil {
		return nil, err
	}

	return &dto.MonthUnfinishedResponse{Days: counts}, nil
}

func parseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must be formatted as 2006-01-02",
		})
	}
	return day, nil
}

func toSummaries(details []domain.ItemDetail) []dto.ItemSummary {
	summaries := make([]dto.ItemSummary, 0, len(details))
	for _, d := range details {
		s := dto.ItemSummary{
			ID:            d.ID,
			Token:         d.Token,
			Status:        string(d.Status),
			StringType:    d.StringType,
			TensionMain:   d.TensionMain,
			TensionCross:  d.TensionCross,
			ScheduledTime: d.ScheduledTime.Format(domain.DisplayTimeLayout),
			CustomerName:  d.CustomerName,
			CustomerPhone: d.CustomerPhone,
		}
		if d.CompletedTime != nil {
			s.CompletedTime = d.CompletedTime.Format(domain.DisplayTimeLayout)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
