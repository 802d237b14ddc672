package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"stringdesk/internal/domain"
	"stringdesk/internal/dto"
	apperrors "stringdesk/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CustomerRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, customer domain.Customer) (uint, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type ItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.Item) (uint, error)
	TokenExists(ctx context.Context, tx *sql.Tx, token string) (bool, error)
}

type TokenGenerator interface {
	New() (string, error)
}

type IntakeService struct {
	db            TransactionManager
	customerRepo  CustomerRepository
	orderRepo     OrderRepository
	itemRepo      ItemRepository
	tokens        TokenGenerator
	logger        *zap.Logger
	txTimeout     time.Duration
	tokenAttempts int
}

func NewIntakeService(
	db TransactionManager,
	customerRepo CustomerRepository,
	orderRepo OrderRepository,
	itemRepo ItemRepository,
	tokens TokenGenerator,
	logger *zap.Logger,
	txTimeout time.Duration,
	tokenAttempts int,
) *IntakeService {
	return &IntakeService{
		db:            db,
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
		itemRepo:      itemRepo,
		tokens:        tokens,
		logger:        logger,
		txTimeout:     txTimeout,
		tokenAttempts: tokenAttempts,
	}
}

func (s *IntakeService) CreateCustomer(ctx context.Context, name, phone string) (*domain.Customer, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	customer := domain.Customer{Name: name, Phone: phone, CreatedAt: time.Now()}

	id, err := s.customerRepo.Insert(txCtx, tx, customer)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	customer.ID = id
	s.logger.Info("customer created", zap.Uint("customerId", id))
	return &customer, nil
}

// CreateOrder creates the Order row and one Item in a single transaction.
// The order insert runs first so the item can reference its id; nothing is
// visible until the final commit.
func (s *IntakeService) CreateOrder(ctx context.Context, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	item, err := s.createOrderInTx(txCtx, tx, customerID, note, spec)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("customerId", customerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint("orderId", item.OrderID),
		zap.Uint("itemId", item.ID),
		zap.String("token", item.Token),
	)
	return item, nil
}

// CreateOne is the walk-up intake shortcut: customer, order and item in one
// transaction.
func (s *IntakeService) CreateOne(ctx context.Context, name, phone string, note *string, spec dto.ItemSpec) (*dto.AdminCreateOneResponse, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	customerID, err := s.customerRepo.Insert(txCtx, tx, domain.Customer{
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	item, err := s.createOrderInTx(txCtx, tx, customerID, note, spec)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("customerId", customerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("walk-up intake created",
		zap.Uint("customerId", customerID),
		zap.Uint("itemId", item.ID),
		zap.String("token", item.Token),
	)
	return &dto.AdminCreateOneResponse{
		CustomerID: customerID,
		ItemID:     item.ID,
		Token:      item.Token,
	}, nil
}

func (s *IntakeService) createOrderInTx(ctx context.Context, tx *sql.Tx, customerID uint, note *string, spec dto.ItemSpec) (*domain.Item, error) {
	orderID, err := s.orderRepo.Insert(ctx, tx, domain.Order{
		CustomerID: customerID,
		Note:       note,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.uniqueToken(ctx, tx)
	if err != nil {
		return nil, err
	}

	scheduled := time.Now()
	if spec.ScheduledTime != nil {
		scheduled = *spec.ScheduledTime
	}

	item := domain.Item{
		OrderID:       orderID,
		Token:         token,
		StringType:    spec.StringType,
		TensionMain:   spec.TensionMain,
		TensionCross:  spec.TensionCross,
		ScheduledTime: scheduled,
		CompletedTime: nil,
		Status:        domain.StatusReceived,
	}

	itemID, err := s.itemRepo.Insert(ctx, tx, item)
	if err != nil {
		return nil, err
	}

	item.ID = itemID
	return &item, nil
}

// uniqueToken draws candidates until one misses the store. The check is a
// read-then-write race under concurrency, so the caller must still treat a
// duplicate-key violation on insert as exhaustion of this budget.
func (s *IntakeService) uniqueToken(ctx context.Context, tx *sql.Tx) (string, error) {
	for attempt := 1; attempt <= s.tokenAttempts; attempt++ {
		candidate, err := s.tokens.New()
		if err != nil {
			return "", err
		}

		exists, err := s.itemRepo.TokenExists(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		s.logger.Warn("token collision, retrying",
			zap.String("token", candidate),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", s.tokenAttempts),
		)
	}

	return "", apperrors.NewTokenExhaustedError("failed to generate unique token")
}
