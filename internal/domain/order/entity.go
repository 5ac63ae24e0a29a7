package order

import (
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Item struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   money.Money
}

func (i Item) LineTotal() money.Money {
	return i.UnitPrice.Mul(int64(i.Quantity))
}

type Timestamps struct {
	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	FailedAt    *time.Time
	CanceledAt  *time.Time
	RefundedAt  *time.Time
}

// Order is immutable after creation except for its status and status timestamps,
// which change only through Transition.
type Order struct {
	id         uuid.UUID
	number     string
	owner      cart.Owner
	currency   money.Currency
	items      []Item
	shipping   Address
	billing    Address
	totals     Totals
	status     Status
	timestamps Timestamps
	createdAt  time.Time
	updatedAt  time.Time
}

type NewOrderParams struct {
	// ID is generated when zero. Checkout fixes it up front so reservations can reference it.
	ID       uuid.UUID
	Owner    cart.Owner
	Currency money.Currency
	Items    []Item
	Shipping Address
	Billing  Address
	Totals   Totals
}

func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, errs.ErrEmptyCart
	}
	if p.Owner.IsZero() {
		return nil, errs.Mark(errs.New("order has no owner"), errs.ErrInvalidCart)
	}
	if err := p.Shipping.Validate(AddressShipping); err != nil {
		return nil, err
	}
	if err := p.Billing.Validate(AddressBilling); err != nil {
		return nil, err
	}
	if !p.Totals.Consistent() {
		return nil, errs.Newf("totals do not add up: %s + %s + %s != %s",
			p.Totals.Subtotal, p.Totals.Tax, p.Totals.Shipping, p.Totals.Total)
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Order{
		id:        id,
		number:    NewNumber(),
		owner:     p.Owner,
		currency:  p.Currency,
		items:     append([]Item(nil), p.Items...),
		shipping:  p.Shipping,
		billing:   p.Billing,
		totals:    p.Totals,
		status:    StatusPendingPayment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewNumber returns a sortable, human-facing order number.
func NewNumber() string {
	return "ORD-" + ulid.Make().String()
}

type ReconstructParams struct {
	ID         uuid.UUID
	Number     string
	Owner      cart.Owner
	Currency   money.Currency
	Items      []Item
	Shipping   Address
	Billing    Address
	Totals     Totals
	Status     Status
	Timestamps Timestamps
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:         p.ID,
		number:     p.Number,
		owner:      p.Owner,
		currency:   p.Currency,
		items:      append([]Item(nil), p.Items...),
		shipping:   p.Shipping,
		billing:    p.Billing,
		totals:     p.Totals,
		status:     p.Status,
		timestamps: p.Timestamps,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
	}
}

// Params is the inverse of Reconstruct and is what storage persists.
func (o *Order) Params() ReconstructParams {
	return ReconstructParams{
		ID:         o.id,
		Number:     o.number,
		Owner:      o.owner,
		Currency:   o.currency,
		Items:      append([]Item(nil), o.items...),
		Shipping:   o.shipping,
		Billing:    o.billing,
		Totals:     o.totals,
		Status:     o.status,
		Timestamps: o.Timestamps(),
		CreatedAt:  o.createdAt,
		UpdatedAt:  o.updatedAt,
	}
}

// Transition records a single applied status change.
type Transition struct {
	OrderID uuid.UUID
	From    Status
	To      Status
	At      time.Time
	Effects []Effect
}

func (t Transition) Has(e Effect) bool {
	for _, got := range t.Effects {
		if got == e {
			return true
		}
	}
	return false
}

// Transition moves the order to target if the table allows it. On rejection the
// order is left untouched.
func (o *Order) Transition(target Status, at time.Time) (Transition, error) {
	from := o.status
	if !from.CanTransitionTo(target) {
		return Transition{}, &InvalidTransitionError{OrderID: o.id, From: from, To: target}
	}

	o.status = target
	o.updatedAt = at
	o.stamp(target, at)

	return Transition{
		OrderID: o.id,
		From:    from,
		To:      target,
		At:      at,
		Effects: EffectsFor(from, target),
	}, nil
}

func (o *Order) stamp(target Status, at time.Time) {
	setOnce := func(p **time.Time) {
		if *p == nil {
			*p = ptr.To(at)
		}
	}
	switch target {
	case StatusPaid:
		setOnce(&o.timestamps.PaidAt)
	case StatusShipped:
		setOnce(&o.timestamps.ShippedAt)
	case StatusDelivered:
		setOnce(&o.timestamps.DeliveredAt)
	case StatusFailed:
		setOnce(&o.timestamps.FailedAt)
	case StatusCanceled:
		setOnce(&o.timestamps.CanceledAt)
	case StatusRefunded:
		setOnce(&o.timestamps.RefundedAt)
	}
}

func (o *Order) ReservationLines() []PricedLine {
	lines := make([]PricedLine, len(o.items))
	for i, it := range o.items {
		lines[i] = PricedLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return lines
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) Number() string              { return o.number }
func (o *Order) Owner() cart.Owner           { return o.owner }
func (o *Order) Currency() money.Currency    { return o.currency }
func (o *Order) Items() []Item               { return append([]Item(nil), o.items...) }
func (o *Order) ShippingAddress() Address    { return o.shipping }
func (o *Order) BillingAddress() Address     { return o.billing }
func (o *Order) Totals() Totals              { return o.totals }
func (o *Order) Status() Status              { return o.status }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }
func (o *Order) IsOwnedBy(c cart.Owner) bool { return o.owner == c }

func (o *Order) Timestamps() Timestamps {
	t := o.timestamps
	return Timestamps{
		PaidAt:      ptr.TimeUTC(t.PaidAt),
		ShippedAt:   ptr.TimeUTC(t.ShippedAt),
		DeliveredAt: ptr.TimeUTC(t.DeliveredAt),
		FailedAt:    ptr.TimeUTC(t.FailedAt),
		CanceledAt:  ptr.TimeUTC(t.CanceledAt),
		RefundedAt:  ptr.TimeUTC(t.RefundedAt),
	}
}
