package response

import (
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/queries"
)

type DeadLetterResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	DedupKey      string    `json:"dedup_key"`
	Status        string    `json:"status"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
	NextAttemptAt time.Time `json:"next_attempt_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromDeadLetters(views []*queries.OutboxEntryView) ([]DeadLetterResponse, error) {
	res := make([]DeadLetterResponse, 0, len(views))
	if err := copyView(&res, views); err != nil {
		return nil, err
	}
	return res, nil
}

type StockResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Reserved  int    `json:"reserved"`
	Sold      int    `json:"sold"`
}

func FromStockViews(views []*queries.StockView) ([]StockResponse, error) {
	res := make([]StockResponse, 0, len(views))
	if err := copyView(&res, views); err != nil {
		return nil, err
	}
	return res, nil
}

func FromStock(s inventory.Stock) StockResponse {
	return StockResponse{
		ProductID: s.ProductID.String(),
		Name:      s.Name,
		Available: s.Available,
		Reserved:  s.Reserved,
		Sold:      s.Sold,
	}
}

type ReconcileResponse struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Outcome   string `json:"outcome"`
	OrderID   string `json:"order_id,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

func FromReconcileResult(r *commands.ReconcileResult) ReconcileResponse {
	res := ReconcileResponse{
		EventID:   r.EventID,
		EventType: r.EventType,
		Outcome:   string(r.Outcome),
		From:      r.From,
		To:        r.To,
		Detail:    r.Detail,
		Duplicate: r.Duplicate,
	}
	if r.OrderID != nil {
		res.OrderID = r.OrderID.String()
	}
	return res
}
