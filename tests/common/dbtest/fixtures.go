//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a conn or a tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedProduct inserts a product with the given available stock.
func SeedProduct(t *testing.T, db DBLike, name string, available int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, available) VALUES ($1, $2, $3)", id, name, available)
	require.NoError(t, err)
	return id
}

// StockOf returns the available, reserved and sold counters of a product.
func StockOf(t *testing.T, db DBLike, productID uuid.UUID) (available, reserved, sold int) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT available, reserved, sold FROM products WHERE id = $1", productID).Scan(&available, &reserved, &sold)
	require.NoError(t, err)
	return available, reserved, sold
}

// OrderStatus reads the persisted status of an order.
func OrderStatus(t *testing.T, db DBLike, orderID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	require.NoError(t, err)
	return status
}

// CountOrdersFor counts the orders owned by a session.
func CountOrdersFor(t *testing.T, db DBLike, sessionID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM orders WHERE owner_kind = 'session' AND owner_id = $1", sessionID).Scan(&n)
	require.NoError(t, err)
	return n
}

// ExpireReservations backdates every held reservation of an order so the sweeper picks it up.
func ExpireReservations(t *testing.T, db DBLike, orderID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE inventory_reservations SET expires_at = now() - interval '1 minute' WHERE order_id = $1 AND status = 'reserved'",
		orderID)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table except the migration bookkeeping.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
