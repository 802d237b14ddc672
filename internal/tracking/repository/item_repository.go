package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stringdesk/internal/domain"
	"stringdesk/internal/errors"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

const itemColumns = `id, orderId, token, stringType, tensionMain, tensionCross, scheduledTime, completedTime, status`

func scanItem(row *sql.Row) (*domain.Item, error) {
	var item domain.Item
	var completed sql.NullTime
	var status string

	err := row.Scan(
		&item.ID, &item.OrderID, &item.Token, &item.StringType,
		&item.TensionMain, &item.TensionCross,
		&item.ScheduledTime, &completed, &status,
	)
	if err != nil {
		return nil, err
	}

	if completed.Valid {
		t := completed.Time
		item.CompletedTime = &t
	}
	item.Status = domain.Status(status)

	return &item, nil
}

func (r *MySQLItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE id = ?`, itemColumns)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by id: %w", err)
	}

	return item, nil
}

func (r *MySQLItemRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE id = ? FOR UPDATE`, itemColumns)

	item, err := scanItem(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by id for update: %w", err)
	}

	return item, nil
}

func (r *MySQLItemRepository) FindByTokenForUpdate(ctx context.Context, tx *sql.Tx, token string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE token = ? FOR UPDATE`, itemColumns)

	item, err := scanItem(tx.QueryRowContext(ctx, query, token))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item with token %s not found", token))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by token for update: %w", err)
	}

	return item, nil
}

// FindDetailByToken joins the item with its customer for the public
// tracking view.
func (r *MySQLItemRepository) FindDetailByToken(ctx context.Context, token string) (*domain.ItemDetail, error) {
	query := `
		SELECT i.id, i.orderId, i.token, i.stringType, i.tensionMain, i.tensionCross,
		       i.scheduledTime, i.completedTime, i.status,
		       c.name, c.phone
		FROM order_items i
		JOIN orders o ON o.id = i.orderId
		JOIN customers c ON c.id = o.customerId
		WHERE i.token = ?
	`

	var detail domain.ItemDetail
	var completed sql.NullTime
	var status string

	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&detail.ID, &detail.OrderID, &detail.Token, &detail.StringType,
		&detail.TensionMain, &detail.TensionCross,
		&detail.ScheduledTime, &completed, &status,
		&detail.CustomerName, &detail.CustomerPhone,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item with token %s not found", token))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item detail by token: %w", err)
	}

	if completed.Valid {
		t := completed.Time
		detail.CompletedTime = &t
	}
	detail.Status = domain.Status(status)

	return &detail, nil
}

// UpdateStatus writes status and completedTime in one statement; a row is
// never left with a DONE status and a stale completedTime.
func (r *MySQLItemRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.Status, completedTime *time.Time) error {
	query := `UPDATE order_items SET status = ?, completedTime = ? WHERE id = ?`

	// Existence is established by the FOR UPDATE read in the same
	// transaction. RowsAffected is no signal here: MySQL reports zero for
	// an idempotent rewrite of the same values.
	if _, err := tx.ExecContext(ctx, query, string(status), completedTime, id); err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}

	return nil
}

func (r *MySQLItemRepository) UpdateScheduledTime(ctx context.Context, tx *sql.Tx, id uint, scheduled time.Time) error {
	query := `UPDATE order_items SET scheduledTime = ? WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query, scheduled, id); err != nil {
		return fmt.Errorf("updating item scheduled time: %w", err)
	}

	return nil
}
