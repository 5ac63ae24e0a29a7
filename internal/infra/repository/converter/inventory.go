package converter

import (
	"order-core/internal/domain/inventory"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
)

func ReservationFromRow(row sqlc.InventoryReservations) inventory.Reservation {
	return inventory.Reservation{
		OrderID:     row.OrderID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    int(row.Quantity),
		Status:      inventory.Status(row.Status),
		ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func ReservationToInsertParams(r inventory.Reservation) sqlc.InsertReservationParams {
	return sqlc.InsertReservationParams{
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    pgconv.IntToInt32(r.Quantity),
		Status:      string(r.Status),
		ExpiresAt:   pgconv.TimeToPgtype(r.ExpiresAt),
		CreatedAt:   pgconv.TimeToPgtype(r.CreatedAt),
		UpdatedAt:   pgconv.TimeToPgtype(r.UpdatedAt),
	}
}

func StockFromRow(row sqlc.Products) inventory.Stock {
	return inventory.Stock{
		ProductID: row.ID,
		Name:      row.Name,
		Available: int(row.Available),
		Reserved:  int(row.Reserved),
		Sold:      int(row.Sold),
	}
}
