package api

import (
	"net/http"

	"order-core/internal/domain/inventory"
	"order-core/internal/handler/httperr"
	"order-core/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type shortLineDetail struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type errorMapping struct {
	target error
	status int
	code   string
	msg    string
}

// Ordered: the first matching sentinel decides the response.
var errorMappings = []errorMapping{
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "idempotency_key_required", "Idempotency-Key header is required"},
	{errs.ErrEmptyCart, http.StatusBadRequest, "empty_cart", "Cart is empty"},
	{errs.ErrInvalidCart, http.StatusBadRequest, "invalid_cart", "Cart is invalid"},
	{errs.ErrInvalidAddress, http.StatusBadRequest, "invalid_address", "Address is invalid"},
	{errs.ErrUnsupportedCurrency, http.StatusBadRequest, "unsupported_currency", "Currency is not supported"},
	{errs.ErrOutOfStock, http.StatusConflict, "out_of_stock", "Insufficient stock"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "idempotency_in_progress", "A request with this Idempotency-Key is still in progress"},
	{errs.ErrIdempotencyKeyReused, http.StatusConflict, "idempotency_key_reused", "Idempotency-Key was already used for a different request"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "Order cannot move to the requested status"},
	{errs.ErrOrderNotFound, http.StatusNotFound, "order_not_found", "Order not found"},
	{errs.ErrOutboxEntryNotFound, http.StatusNotFound, "outbox_entry_not_found", "Outbox entry not found"},
	{errs.ErrProductNotFound, http.StatusNotFound, "product_not_found", "Product not found"},
	{errs.ErrGatewayRejected, http.StatusBadGateway, "gateway_rejected", "Payment gateway rejected the request"},
	{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "gateway_unavailable", "Payment gateway is unavailable"},
}

// abortWithDomainError translates usecase errors into the public error shape.
func abortWithDomainError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if !errs.Is(err, m.target) {
			continue
		}
		var detail any
		var short *inventory.OutOfStockError
		if m.target == errs.ErrOutOfStock && errs.As(err, &short) {
			lines := make([]shortLineDetail, len(short.Lines))
			for i, l := range short.Lines {
				lines[i] = shortLineDetail{ProductID: l.ProductID.String(), Requested: l.Requested, Available: l.Available}
			}
			detail = gin.H{"lines": lines}
		}
		httperr.AbortWithCode(c, m.status, m.code, err, m.msg, detail)
		return
	}
	httperr.AbortWithCode(c, http.StatusInternalServerError, "internal_error", err, fallback, nil)
}
