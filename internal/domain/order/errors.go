package order

import (
	"fmt"

	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type InvalidTransitionError struct {
	OrderID uuid.UUID
	From    Status
	To      Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s: transition %s -> %s is not allowed", e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrInvalidTransition
}
