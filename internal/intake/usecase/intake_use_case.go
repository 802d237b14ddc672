package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"stringdesk/internal/domain"
	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

type IntakeService interface {
	CreateCustomer(ctx context.Context, name, phone string) (*domain.Customer, error)
	CreateOrder(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error)
	CreateOne(ctx context.Context, name, phone string, note *string, spec dto.ItemSpec) (*dto.AdminCreateOneResponse, error)
}

type CustomerFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Customer, error)
}

type IntakeUseCase struct {
	service      IntakeService
	customerRepo CustomerFinder
	logger       *zap.Logger
}

func NewIntakeUseCase(service IntakeService, customerRepo CustomerFinder, logger *zap.Logger) *IntakeUseCase {
	return &IntakeUseCase{
		service:      service,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (uc *IntakeUseCase) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		return nil, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	customer, err := uc.service.CreateCustomer(ctx, name, phone)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt.Format(domain.DisplayTimeLayout),
	}, nil
}

func (uc *IntakeUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.ItemResponse, error) {
	spec, err := validateItemSpec(req.StringType, req.TensionMain, req.TensionCross, req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	if req.CustomerID == 0 {
		return nil, apperrors.NewValidationError("customerId is required", apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
	}

	// Existence check outside the transaction, like all pre-validations.
	if _, err := uc.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	item, err := uc.createOrderWithRetry(ctx, req.CustomerID, trimNote(req.Note), *spec)
	if err != nil {
		return nil, err
	}

	return itemToResponse(item), nil
}

func (uc *IntakeUseCase) CreateOne(ctx context.Context, req dto.AdminCreateOneRequest) (*dto.AdminCreateOneResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		return nil, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	spec, err := validateItemSpec(req.StringType, req.TensionMain, req.TensionCross, req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	resp, err := uc.service.CreateOne(ctx, name, phone, trimNote(req.Note), *spec)
	if err != nil {
		if isDuplicateTokenError(err) {
			uc.logger.Warn("duplicate token at commit, retrying intake once")
			resp, err = uc.service.CreateOne(ctx, name, phone, trimNote(req.Note), *spec)
		}
		if err != nil {
			if isDuplicateTokenError(err) {
				return nil, apperrors.NewTokenExhaustedError("failed to generate unique token")
			}
			return nil, err
		}
	}

	return resp, nil
}

// createOrderWithRetry runs the whole intake again with fresh tokens when
// the unique index rejects the first attempt; a second rejection surfaces as
// exhaustion.
func (uc *IntakeUseCase) createOrderWithRetry(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
	item, err := uc.service.CreateOrder(ctx, customerID, note, spec)
	if err == nil {
		return item, nil
	}

	if !isDuplicateTokenError(err) {
		return nil, err
	}

	uc.logger.Warn("duplicate token at commit, retrying intake once", zap.Uint("customerId", customerID))

	item, err = uc.service.CreateOrder(ctx, customerID, note, spec)
	if err != nil {
		if isDuplicateTokenError(err) {
			return nil, apperrors.NewTokenExhaustedError("failed to generate unique token")
		}
		return nil, err
	}

	return item, nil
}

func validateItemSpec(stringType string, tensionMain, tensionCross int, scheduledTime *string) (*dto.ItemSpec, error) {
	var details []apperrors.ValidationDetail

	stringType = strings.TrimSpace(stringType)
	if stringType == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stringType",
			Message: "stringType must not be empty",
		})
	}

	if tensionMain <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "tensionMain",
			Message: "tensionMain must be a positive integer",
		})
	}

	if tensionCross <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "tensionCross",
			Message: "tensionCross must be a positive integer",
		})
	}

	var scheduled *time.Time
	if scheduledTime != nil && strings.TrimSpace(*scheduledTime) != "" {
		parsed, err := parseTimestamp(*scheduledTime)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   "scheduledTime",
				Message: "scheduledTime must be formatted as 2006-01-02 15:04",
			})
		} else {
			scheduled = &parsed
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &dto.ItemSpec{
		StringType:    stringType,
		TensionMain:   tensionMain,
		TensionCross:  tensionCross,
		ScheduledTime: scheduled,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(domain.DisplayTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func itemToResponse(item *domain.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
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

// Token uniqueness is ultimately enforced by the unique index; MySQL reports
// its violation as error 1062.
func isDuplicateTokenError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
