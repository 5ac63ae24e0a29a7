package inventory

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCommitted Status = "committed"
	StatusReleased  Status = "released"
	StatusExpired   Status = "expired"
	StatusRestocked Status = "restocked"
)

// IsSettled reports whether the reservation no longer holds stock for checkout.
func (s Status) IsSettled() bool {
	return s != StatusReserved
}

type Reservation struct {
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Status      Status
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Result is what a successful reserve call hands back to checkout.
type Result struct {
	OrderID      uuid.UUID
	Reservations []Reservation
	ExpiresAt    time.Time
}

func (r Result) ProductNames() map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(r.Reservations))
	for _, res := range r.Reservations {
		names[res.ProductID] = res.ProductName
	}
	return names
}

// Stock is the per-product counter set. available + reserved + sold is the recorded stock.
type Stock struct {
	ProductID uuid.UUID
	Name      string
	Available int
	Reserved  int
	Sold      int
}

func (s Stock) OnHand() int {
	return s.Available + s.Reserved + s.Sold
}

type ShortLine struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

type OutOfStockError struct {
	Lines []ShortLine
}

func (e *OutOfStockError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		parts[i] = fmt.Sprintf("%s (requested %d, available %d)", l.ProductID, l.Requested, l.Available)
	}
	return "out of stock: " + strings.Join(parts, ", ")
}

func (e *OutOfStockError) Unwrap() error {
	return errs.ErrOutOfStock
}

// NormalizeLines validates lines and sorts them by product so every reserver
// touches product rows in the same order.
func NormalizeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, errs.ErrEmptyCart
	}
	out := append([]Line(nil), lines...)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].ProductID[:], out[j].ProductID[:]) < 0
	})
	for i, l := range out {
		if l.Quantity <= 0 {
			return nil, errs.Mark(errs.Newf("product %s: quantity %d", l.ProductID, l.Quantity), errs.ErrInvalidCart)
		}
		if i > 0 && out[i-1].ProductID == l.ProductID {
			return nil, errs.Mark(errs.Newf("product %s listed twice", l.ProductID), errs.ErrInvalidCart)
		}
	}
	return out, nil
}
