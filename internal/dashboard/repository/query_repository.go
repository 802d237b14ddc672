package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stringdesk/internal/domain"
)

type MySQLQueryRepository struct {
	db *sql.DB
}

func NewMySQLQueryRepository(db *sql.DB) *MySQLQueryRepository {
	return &MySQLQueryRepository{db: db}
}

const detailColumns = `
	i.id, i.orderId, i.token, i.stringType, i.tensionMain, i.tensionCross,
	i.scheduledTime, i.completedTime, i.status,
	c.name, c.phone
`

const detailJoins = `
	FROM order_items i
	JOIN orders o ON o.id = i.orderId
	JOIN customers c ON c.id = o.customerId
`

func scanDetails(rows *sql.Rows) ([]domain.ItemDetail, error) {
	defer rows.Close()

	var details []domain.ItemDetail
	for rows.Next() {
		var d domain.ItemDetail
		var completed sql.NullTime
		var status string

		err := rows.Scan(
			&d.ID, &d.OrderID, &d.Token, &d.StringType,
			&d.TensionMain, &d.TensionCross,
			&d.ScheduledTime, &completed, &status,
			&d.CustomerName, &d.CustomerPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item detail row: %w", err)
		}

		if completed.Valid {
			t := completed.Time
			d.CompletedTime = &t
		}
		d.Status = domain.Status(status)

		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item detail rows: %w", err)
	}

	return details, nil
}

// ListByDate returns the daily worklist: every item scheduled on the given
// calendar day, earliest first.
func (r *MySQLQueryRepository) ListByDate(ctx context.Context, day time.Time) ([]domain.ItemDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE DATE(i.scheduledTime) = ?
		ORDER BY i.scheduledTime ASC
	`

	rows, err := r.db.QueryContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying items by date: %w", err)
	}

	return scanDetails(rows)
}

// Search matches the keyword as a substring of token, customer name or
// customer phone, most recent schedule first.
func (r *MySQLQueryRepository) Search(ctx context.Context, keyword string, limit int) ([]domain.ItemDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE i.token LIKE ? OR c.name LIKE ? OR c.phone LIKE ?
		ORDER BY i.scheduledTime DESC
		LIMIT ?
	`

	pattern := "%" + keyword + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}

	return scanDetails(rows)
}

type DaySummary struct {
	Total    int
	ByStatus map[domain.Status]int
	ByHour   map[int]int
}

func (r *MySQLQueryRepository) SummaryByDate(ctx context.Context, day time.Time) (*DaySummary, error) {
	summary := &DaySummary{
		ByStatus: make(map[domain.Status]int),
		ByHour:   make(map[int]int),
	}
	dayArg := day.Format("2006-01-02")

	statusQuery := `
		SELECT status, COUNT(*)
		FROM order_items
		WHERE DATE(scheduledTime) = ?
		GROUP BY status
	`
	rows, err := r.db.QueryContext(ctx, statusQuery, dayArg)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		summary.ByStatus[domain.Status(status)] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	hourQuery := `
		SELECT HOUR(scheduledTime), COUNT(*)
		FROM order_items
		WHERE DATE(scheduledTime) = ?
		GROUP BY HOUR(scheduledTime)
	`
	hourRows, err := r.db.QueryContext(ctx, hourQuery, dayArg)
	if err != nil {
		return nil, fmt.Errorf("querying hour counts: %w", err)
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var hour, count int
		if err := hourRows.Scan(&hour, &count); err != nil {
			return nil, fmt.Errorf("scanning hour count: %w", err)
		}
		summary.ByHour[hour] = count
	}
	if err := hourRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hour counts: %w", err)
	}

	return summary, nil
}

// MonthUnfinished counts items scheduled on each day of the month that are
// still RECEIVED or WORKING. Days without such items are absent.
func (r *MySQLQueryRepository) MonthUnfinished(ctx context.Context, firstOfMonth time.Time) (map[string]int, error) {
	nextMonth := firstOfMonth.AddDate(0, 1, 0)

	query := `
		SELECT DATE(scheduledTime), COUNT(*)
		FROM order_items
		WHERE scheduledTime >= ? AND scheduledTime < ?
		  AND status IN (?, ?)
		GROUP BY DATE(scheduledTime)
	`

	rows, err := r.db.QueryContext(ctx, query,
		firstOfMonth.Format("2006-01-02"), nextMonth.Format("2006-01-02"),
		string(domain.StatusReceived), string(domain.StatusWorking),
	)
	if err != nil {
		return nil, fmt.Errorf("querying month unfinished counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scanning unfinished count: %w", err)
		}
		counts[day.Format("2006-01-02")] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unfinished counts: %w", err)
	}

	return counts, nil
}
