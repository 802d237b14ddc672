package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stringdesk/internal/domain"
	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

// Mock implementations

type mockIntakeService struct {
	CreateCustomerFunc func(ctx context.Context, name, phone string) (*domain.Customer, error)
	CreateOrderFunc    func(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error)
	CreateOneFunc      func(ctx context.Context, name, phone string, note *string, spec dto.ItemSpec) (*dto.AdminCreateOneResponse, error)
}

func (m *mockIntakeService) CreateCustomer(ctx context.Context, name, phone string) (*domain.Customer, error) {
	return m.CreateCustomerFunc(ctx, name, phone)
}

func (m *mockIntakeService) CreateOrder(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
	return m.CreateOrderFunc(ctx, customerID, note, spec)
}

func (m *mockIntakeService) CreateOne(ctx context.Context, name, phone string, note *string, spec dto.ItemSpec) (*dto.AdminCreateOneResponse, error) {
	return m.CreateOneFunc(ctx, name, phone, note, spec)
}

type mockCustomerFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Customer, error)
}

func (m *mockCustomerFinder) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func foundCustomer() *mockCustomerFinder {
	return &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return &domain.Customer{ID: id, Name: "王小明", Phone: "0911111111"}, nil
		},
	}
}

func validOrderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID:   1,
		StringType:   "尼龍線",
		TensionMain:  26,
		TensionCross: 24,
	}
}

// Tests

func TestCreateCustomer_TrimsInput(t *testing.T) {
	var gotName, gotPhone string
	svc := &mockIntakeService{
		CreateCustomerFunc: func(ctx context.Context, name, phone string) (*domain.Customer, error) {
			gotName, gotPhone = name, phone
			return &domain.Customer{ID: 1, Name: name, Phone: phone, CreatedAt: time.Now()}, nil
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		Name:  "  王小明  ",
		Phone: " 0911111111 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "王小明", gotName)
	assert.Equal(t, "0911111111", gotPhone)
	assert.Equal(t, uint(1), resp.ID)
}

func TestCreateCustomer_EmptyNameRejected(t *testing.T) {
	uc := NewIntakeUseCase(&mockIntakeService{}, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{Name: "   "})
	assert.Nil(t, resp)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)
}

func TestCreateOrder_Success(t *testing.T) {
	svc := &mockIntakeService{
		CreateOrderFunc: func(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
			return &domain.Item{
				ID:            3,
				OrderID:       2,
				Token:         "K7PQ2XWM",
				StringType:    spec.StringType,
				TensionMain:   spec.TensionMain,
				TensionCross:  spec.TensionCross,
				ScheduledTime: time.Now(),
				Status:        domain.StatusReceived,
			}, nil
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, "K7PQ2XWM", resp.Token)
	assert.Equal(t, "RECEIVED", resp.Status)
	assert.Empty(t, resp.CompletedTime)
}

func TestCreateOrder_ValidationFailures(t *testing.T) {
	uc := NewIntakeUseCase(&mockIntakeService{}, foundCustomer(), zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
		field  string
	}{
		{"missing customerId", func(r *dto.CreateOrderRequest) { r.CustomerID = 0 }, "customerId"},
		{"blank stringType", func(r *dto.CreateOrderRequest) { r.StringType = "  " }, "stringType"},
		{"zero tensionMain", func(r *dto.CreateOrderRequest) { r.TensionMain = 0 }, "tensionMain"},
		{"negative tensionCross", func(r *dto.CreateOrderRequest) { r.TensionCross = -3 }, "tensionCross"},
		{"malformed scheduledTime", func(r *dto.CreateOrderRequest) {
			bad := "next tuesday"
			r.ScheduledTime = &bad
		}, "scheduledTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(&req)

			resp, err := uc.CreateOrder(context.Background(), req)
			assert.Nil(t, resp)
			require.Error(t, err)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			found := false
			for _, d := range ve.Details {
				if d.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected detail for field %s", tt.field)
		})
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	finder := &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer with id 42 not found")
		},
	}

	uc := NewIntakeUseCase(&mockIntakeService{}, finder, zap.NewNop())

	req := validOrderRequest()
	req.CustomerID = 42

	resp, err := uc.CreateOrder(context.Background(), req)
	assert.Nil(t, resp)
	require.Error(t, err)

	nfe, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestCreateOrder_ParsesScheduledTime(t *testing.T) {
	var gotSpec dto.ItemSpec
	svc := &mockIntakeService{
		CreateOrderFunc: func(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
			gotSpec = spec
			return &domain.Item{Status: domain.StatusReceived, ScheduledTime: *spec.ScheduledTime}, nil
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	req := validOrderRequest()
	scheduled := "2024-03-12 15:30"
	req.ScheduledTime = &scheduled

	_, err := uc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, gotSpec.ScheduledTime)
	assert.Equal(t, time.Date(2024, 3, 12, 15, 30, 0, 0, time.Local), *gotSpec.ScheduledTime)
}

func TestCreateOrder_RetriesOnceOnDuplicateToken(t *testing.T) {
	calls := 0
	svc := &mockIntakeService{
		CreateOrderFunc: func(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
			calls++
			if calls == 1 {
				return nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
			}
			return &domain.Item{ID: 9, Token: "FRESHTOK", Status: domain.StatusReceived, ScheduledTime: time.Now()}, nil
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "FRESHTOK", resp.Token)
}

func TestCreateOrder_SecondDuplicateIsExhaustion(t *testing.T) {
	calls := 0
	svc := &mockIntakeService{
		CreateOrderFunc: func(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
			calls++
			return nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateOrder(context.Background(), validOrderRequest())
	assert.Nil(t, resp)
	assert.Equal(t, 2, calls)
	require.Error(t, err)

	tee, ok := apperrors.IsTokenExhaustedError(err)
	assert.True(t, ok)
	assert.NotNil(t, tee)
}

func TestCreateOne_Success(t *testing.T) {
	svc := &mockIntakeService{
		CreateOneFunc: func(ctx context.Context, name, phone string, note *string, spec dto.ItemSpec) (*dto.AdminCreateOneResponse, error) {
			return &dto.AdminCreateOneResponse{CustomerID: 5, ItemID: 7, Token: "K7PQ2XWM"}, nil
		},
	}

	uc := NewIntakeUseCase(svc, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateOne(context.Background(), dto.AdminCreateOneRequest{
		Name:         "林小美",
		Phone:        "0933333333",
		StringType:   "羽球線",
		TensionMain:  28,
		TensionCross: 26,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), resp.CustomerID)
	assert.Equal(t, uint(7), resp.ItemID)
	assert.Equal(t, "K7PQ2XWM", resp.Token)
}

func TestCreateOne_EmptyNameRejected(t *testing.T) {
	uc := NewIntakeUseCase(&mockIntakeService{}, foundCustomer(), zap.NewNop())

	resp, err := uc.CreateOne(context.Background(), dto.AdminCreateOneRequest{
		Name:         "",
		StringType:   "羽球線",
		TensionMain:  28,
		TensionCross: 26,
	})
	assert.Nil(t, resp)
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}
