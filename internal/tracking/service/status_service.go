package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"stringdesk/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ItemRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Item, error)
	FindByTokenForUpdate(ctx context.Context, tx *sql.Tx, token string) (*domain.Item, error)
	FindDetailByToken(ctx context.Context, token string) (*domain.ItemDetail, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.Status, completedTime *time.Time) error
	UpdateScheduledTime(ctx context.Context, tx *sql.Tx, id uint, scheduled time.Time) error
}

// StatusService owns both transition policies. Every mutation reads the item
// under lock, applies the policy through the domain type, and commits status
// and completed time as one write.
type StatusService struct {
	db        TransactionManager
	itemRepo  ItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewStatusService(db TransactionManager, itemRepo ItemRepository, logger *zap.Logger, txTimeout time.Duration) *StatusService {
	return &StatusService{
		db:        db,
		itemRepo:  itemRepo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// NormalizeToken makes token lookups survive hand-typed input.
func NormalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

func (s *StatusService) GetByToken(ctx context.Context, token string) (*domain.ItemDetail, error) {
	return s.itemRepo.FindDetailByToken(ctx, NormalizeToken(token))
}

func (s *StatusService) GetByID(ctx context.Context, id uint) (*domain.Item, error) {
	return s.itemRepo.FindByID(ctx, id)
}

// StaffAdvance applies the scan ring:
// RECEIVED -> WORKING -> DONE -> PICKED_UP -> RECEIVED.
func (s *StatusService) StaffAdvance(ctx context.Context, token string) (*domain.Item, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	item, err := s.itemRepo.FindByTokenForUpdate(txCtx, tx, NormalizeToken(token))
	if err != nil {
		return nil, err
	}

	previous := item.Status
	item.Advance(time.Now())

	if err := s.itemRepo.UpdateStatus(txCtx, tx, item.ID, item.Status, item.CompletedTime); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("itemId", item.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("staff advanced item",
		zap.Uint("itemId", item.ID),
		zap.String("token", item.Token),
		zap.String("from", string(previous)),
		zap.String("to", string(item.Status)),
	)
	return item, nil
}

// AdminSetStatus jumps the item to an exact state, no adjacency check. The
// status string is validated before anything is read or written.
func (s *StatusService) AdminSetStatus(ctx context.Context, id uint, statusString string) (*domain.Item, error) {
	target, err := domain.ParseStatus(statusString)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	item, err := s.itemRepo.FindByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	previous := item.Status
	item.ApplyStatus(target, time.Now())

	if err := s.itemRepo.UpdateStatus(txCtx, tx, item.ID, item.Status, item.CompletedTime); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("itemId", item.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("admin set item status",
		zap.Uint("itemId", item.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(item.Status)),
	)
	return item, nil
}

func (s *StatusService) SetScheduledTime(ctx context.Context, id uint, scheduled time.Time) (*domain.Item, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	item, err := s.itemRepo.FindByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateScheduledTime(txCtx, tx, item.ID, scheduled); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("itemId", item.ID), zap.Error(err))
		return nil, err
	}

	item.ScheduledTime = scheduled
	s.logger.Info("admin set scheduled time",
		zap.Uint("itemId", item.ID),
		zap.Time("scheduledTime", scheduled),
	)
	return item, nil
}
