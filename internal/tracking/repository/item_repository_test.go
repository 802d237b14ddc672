package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringdesk/internal/domain"
	"stringdesk/internal/errors"
	"stringdesk/internal/testutil"
)

func TestNewMySQLItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func seedItem(t *testing.T, db *sql.DB, token, status string) uint {
	customerID := testutil.InsertCustomer(t, db, "王小明", "0911111111")
	orderID := testutil.InsertOrder(t, db, customerID)
	return testutil.InsertItem(t, db, orderID, token, "尼龍線", "2024-03-12 15:30:00", status)
}

func TestItemRepository_FindByID_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	id := seedItem(t, db, "K7PQ2XWM", "RECEIVED")

	item, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)
	assert.Equal(t, "K7PQ2XWM", item.Token)
	assert.Equal(t, domain.StatusReceived, item.Status)
	assert.Equal(t, 26, item.TensionMain)
	assert.Equal(t, 24, item.TensionCross)
	assert.Nil(t, item.CompletedTime)
}

func TestItemRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)

	item, err := repo.FindByID(context.Background(), uint(9999))
	assert.Error(t, err)
	assert.Nil(t, item)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestItemRepository_FindDetailByToken_JoinsCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	seedItem(t, db, "K7PQ2XWM", "WORKING")

	detail, err := repo.FindDetailByToken(context.Background(), "K7PQ2XWM")
	require.NoError(t, err)
	assert.Equal(t, "王小明", detail.CustomerName)
	assert.Equal(t, "0911111111", detail.CustomerPhone)
	assert.Equal(t, domain.StatusWorking, detail.Status)
	assert.Equal(t, "尼龍線", detail.StringType)
}

func TestItemRepository_FindDetailByToken_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)

	detail, err := repo.FindDetailByToken(context.Background(), "MISSINGT")
	assert.Error(t, err)
	assert.Nil(t, detail)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestItemRepository_UpdateStatus_WritesBothFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	id := seedItem(t, db, "K7PQ2XWM", "WORKING")

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	completed := time.Date(2024, 3, 12, 17, 0, 0, 0, time.Local)
	err = repo.UpdateStatus(context.Background(), tx, id, domain.StatusDone, &completed)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var status string
	var gotCompleted sql.NullTime
	err = db.QueryRow(`SELECT status, completedTime FROM order_items WHERE id = ?`, id).Scan(&status, &gotCompleted)
	require.NoError(t, err)
	assert.Equal(t, "DONE", status)
	assert.True(t, gotCompleted.Valid)
}

func TestItemRepository_UpdateStatus_ClearsCompletedTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	id := seedItem(t, db, "K7PQ2XWM", "DONE")
	_, err := db.Exec(`UPDATE order_items SET completedTime = NOW() WHERE id = ?`, id)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpdateStatus(context.Background(), tx, id, domain.StatusPickedUp, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var status string
	var gotCompleted sql.NullTime
	err = db.QueryRow(`SELECT status, completedTime FROM order_items WHERE id = ?`, id).Scan(&status, &gotCompleted)
	require.NoError(t, err)
	assert.Equal(t, "PICKED_UP", status)
	assert.False(t, gotCompleted.Valid)
}

func TestItemRepository_UpdateScheduledTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	id := seedItem(t, db, "K7PQ2XWM", "RECEIVED")

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	scheduled := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	err = repo.UpdateScheduledTime(context.Background(), tx, id, scheduled)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var got time.Time
	err = db.QueryRow(`SELECT scheduledTime FROM order_items WHERE id = ?`, id).Scan(&got)
	require.NoError(t, err)
	assert.Equal(t, scheduled.Format("2006-01-02 15:04"), got.Format("2006-01-02 15:04"))
}

func TestItemRepository_FindByTokenForUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLItemRepository(db)
	id := seedItem(t, db, "K7PQ2XWM", "RECEIVED")

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	item, err := repo.FindByTokenForUpdate(context.Background(), tx, "K7PQ2XWM")
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)

	missing, err := repo.FindByTokenForUpdate(context.Background(), tx, "MISSINGT")
	assert.Error(t, err)
	assert.Nil(t, missing)
}
