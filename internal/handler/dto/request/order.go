package request

import (
	"order-core/internal/domain/order"
	"order-core/internal/usecase/queries"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

type ListOrdersQuery struct {
	Status string `form:"status"`
	After  string `form:"after"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ListOrdersQuery) ToParams() (queries.ListOrdersParams, error) {
	params := queries.ListOrdersParams{Limit: q.Limit}
	if params.Limit == 0 {
		params.Limit = DefaultListLimit
	}
	if q.Status != "" {
		st, err := order.ParseStatus(q.Status)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.Status = &st
	}
	if q.After != "" {
		params.After = &queries.Cursor{After: q.After}
	}
	return params, nil
}
