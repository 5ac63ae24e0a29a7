package api

import (
	"net/http"
	"strings"

	reqdto "order-core/internal/handler/dto/request"
	resdto "order-core/internal/handler/dto/response"
	"order-core/internal/handler/httperr"
	"order-core/internal/handler/middleware"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

var errOwnerMissing = errs.New("owner missing from request context")

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Check out the current cart
// @Description Freezes the caller's cart, reserves stock and opens a payment intent.
// @Description A repeated Idempotency-Key returns the original order with Idempotent-Replayed: true.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Client generated idempotency key"
// @Param X-Session-ID header string false "Anonymous storefront session"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errOwnerMissing, "Unauthorized", nil)
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("idempotency key of %d bytes", len(key)),
			"Idempotency-Key is too long", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	shipping, billing, err := req.Addresses()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid address", nil)
		return
	}

	result, err := h.cmds.Checkout(c.Request.Context(), commands.CheckoutRequest{
		Owner:          owner,
		IdempotencyKey: key,
		Shipping:       shipping,
		Billing:        billing,
		Currency:       req.NormalizedCurrency(),
	})
	if err != nil {
		abortWithDomainError(c, err, "Checkout failed")
		return
	}

	res, err := resdto.FromCheckoutResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render order", nil)
		return
	}
	if result.Replayed {
		c.Header(ReplayedHeader, "true")
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}
