package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a local MySQL
// with a database named 'stringdesk_test'; tests skip when it is missing.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/stringdesk_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB wipes the test tables, children first.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_items", "orders", "customers"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema used by the repositories.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS customers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(80) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customerId INT UNSIGNED NOT NULL,
		note TEXT,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (customerId) REFERENCES customers(id),
		INDEX idx_customer (customerId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		token VARCHAR(16) NOT NULL,
		stringType VARCHAR(80) NOT NULL,
		tensionMain INT NOT NULL,
		tensionCross INT NOT NULL,
		scheduledTime DATETIME NOT NULL,
		completedTime DATETIME NULL,
		status ENUM('RECEIVED','WORKING','DONE','PICKED_UP') NOT NULL DEFAULT 'RECEIVED',
		UNIQUE INDEX idx_token (token),
		FOREIGN KEY (orderId) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_scheduled (scheduledTime)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"customers", createCustomersTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertCustomer seeds one customer row and returns its id.
func InsertCustomer(t *testing.T, db *sql.DB, name, phone string) uint {
	result, err := db.Exec(`INSERT INTO customers (name, phone) VALUES (?, ?)`, name, phone)
	if err != nil {
		t.Fatalf("failed to insert customer: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get customer id: %v", err)
	}
	return uint(id)
}

// InsertOrder seeds one order row and returns its id.
func InsertOrder(t *testing.T, db *sql.DB, customerID uint) uint {
	result, err := db.Exec(`INSERT INTO orders (customerId) VALUES (?)`, customerID)
	if err != nil {
		t.Fatalf("failed to insert order: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get order id: %v", err)
	}
	return uint(id)
}

// InsertItem seeds one item row and returns its id.
func InsertItem(t *testing.T, db *sql.DB, orderID uint, token, stringType string, scheduledTime, status string) uint {
	result, err := db.Exec(`
		INSERT INTO order_items (orderId, token, stringType, tensionMain, tensionCross, scheduledTime, status)
		VALUES (?, ?, ?, 26, 24, ?, ?)
	`, orderID, token, stringType, scheduledTime, status)
	if err != nil {
		t.Fatalf("failed to insert item: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get item id: %v", err)
	}
	return uint(id)
}
