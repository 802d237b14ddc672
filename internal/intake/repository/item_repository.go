package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stringdesk/internal/domain"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

func (r *MySQLItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.Item) (uint, error) {
	query := `
		INSERT INTO order_items
			(orderId, token, stringType, tensionMain, tensionCross, scheduledTime, completedTime, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.Token, item.StringType,
		item.TensionMain, item.TensionCross,
		item.ScheduledTime, item.CompletedTime, string(item.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// TokenExists is the pre-commit collision check. It runs inside the intake
// transaction; the unique index on order_items.token stays the real guard.
func (r *MySQLItemRepository) TokenExists(ctx context.Context, tx *sql.Tx, token string) (bool, error) {
	query := `SELECT id FROM order_items WHERE token = ? LIMIT 1`

	var id uint
	err := tx.QueryRowContext(ctx, query, token).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking token existence: %w", err)
	}

	return true, nil
}
