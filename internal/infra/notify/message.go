package notify

import (
	"encoding/json"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/errs"
)

const contentType = "application/json"

// message is the wire form shared by every broker. The order id is the partition
// key so consumers see one order's transitions in order.
type message struct {
	Key       string
	EventType string
	Body      []byte
}

func newMessage(n outbox.NotificationPayload) (message, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return message{}, errs.Wrapf(err, "encode notification for order %s", n.OrderID)
	}
	return message{
		Key:       n.OrderID.String(),
		EventType: "order." + n.To,
		Body:      body,
	}, nil
}
