package memstore

import (
	"context"
	"time"

	"order-core/internal/domain/payment"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type intentRepo struct{ tx *memTx }

func (r *intentRepo) Create(_ context.Context, in payment.Intent) error {
	if err := r.tx.writable("create payment intent"); err != nil {
		return err
	}
	st := r.tx.st()
	if _, ok := st.intents[in.OrderID]; ok {
		return r.tx.duplicate("payment intent for order " + in.OrderID.String())
	}
	st.intents[in.OrderID] = in
	return nil
}

func (r *intentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*payment.Intent, error) {
	in, ok := r.tx.st().intents[orderID]
	if !ok {
		return nil, r.tx.notFound("payment intent for order " + orderID.String())
	}
	return &in, nil
}

func (r *intentRepo) FindByGatewayReference(_ context.Context, ref string) (*payment.Intent, error) {
	for _, in := range r.tx.st().intents {
		if in.GatewayReference == ref {
			found := in
			return &found, nil
		}
	}
	return nil, r.tx.notFound("payment intent " + ref)
}

func (r *intentRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status payment.IntentStatus, at time.Time) error {
	if err := r.tx.writable("update payment intent"); err != nil {
		return err
	}
	st := r.tx.st()
	in, ok := st.intents[orderID]
	if !ok {
		return r.tx.notFound("payment intent for order " + orderID.String())
	}
	in.Status = status
	in.UpdatedAt = at
	st.intents[orderID] = in
	return nil
}

type webhookRepo struct{ tx *memTx }

func (r *webhookRepo) Insert(_ context.Context, ev payment.Event) (bool, error) {
	if err := r.tx.writable("insert webhook event"); err != nil {
		return false, err
	}
	st := r.tx.st()
	if _, ok := st.webhooks[ev.ID]; ok {
		return false, nil
	}
	st.webhooks[ev.ID] = webhookRow{event: ev}
	return true, nil
}

func (r *webhookRepo) SetOutcome(_ context.Context, eventID string, outcome shared.ReconcileOutcome, orderID *uuid.UUID) error {
	if err := r.tx.writable("set webhook outcome"); err != nil {
		return err
	}
	st := r.tx.st()
	row, ok := st.webhooks[eventID]
	if !ok {
		return r.tx.notFound("webhook event " + eventID)
	}
	row.outcome = outcome
	row.orderID = orderID
	st.webhooks[eventID] = row
	return nil
}
