package api

import (
	"context"
	"net/http"

	"order-core/internal/domain/order"
	reqdto "order-core/internal/handler/dto/request"
	resdto "order-core/internal/handler/dto/response"
	"order-core/internal/handler/httperr"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	orders commands.OrderCommands
	admin  commands.AdminCommands
	orderQ queries.OrderQueries
	adminQ queries.AdminQueries
}

func NewAdminHandler(
	orders commands.OrderCommands,
	admin commands.AdminCommands,
	orderQ queries.OrderQueries,
	adminQ queries.AdminQueries,
) *AdminHandler {
	return &AdminHandler{orders: orders, admin: admin, orderQ: orderQ, adminQ: adminQ}
}

type operatorAction func(ctx context.Context, id uuid.UUID, reason string) (*order.Order, error)

func (h *AdminHandler) transition(c *gin.Context, action operatorAction) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err = c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if _, err = action(c.Request.Context(), id, req.Reason); err != nil {
		abortWithDomainError(c, err, "Transition failed")
		return
	}
	view, err := h.orderQ.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	renderOrder(c, http.StatusOK, view)
}

// @Summary Ship an order
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/ship [post]
func (h *AdminHandler) Ship(c *gin.Context) {
	h.transition(c, h.orders.Ship)
}

// @Summary Mark an order delivered
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/deliver [post]
func (h *AdminHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orders.Deliver)
}

// @Summary Refund a paid order
// @Description Queues the gateway refund and the restock
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/refund [post]
func (h *AdminHandler) Refund(c *gin.Context) {
	h.transition(c, h.orders.Refund)
}

// @Summary Cancel an order as operator
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/cancel [post]
func (h *AdminHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orders.CancelAsOperator)
}

// @Summary List dead-lettered outbox entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (1-500)"
// @Success 200 {array} resdto.DeadLetterResponse
// @Router /api/admin/outbox/dead-letters [get]
func (h *AdminHandler) DeadLetters(c *gin.Context) {
	var query reqdto.DeadLettersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.adminQ.DeadLetters(c.Request.Context(), query.Normalized())
	if err != nil {
		abortWithDomainError(c, err, "Failed to list dead letters")
		return
	}
	res, err := resdto.FromDeadLetters(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render dead letters", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Requeue a dead-lettered entry
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Outbox entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/admin/outbox/{id}/requeue [post]
func (h *AdminHandler) Requeue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.admin.RequeueDeadLetter(c.Request.Context(), id); err != nil {
		abortWithDomainError(c, err, "Requeue failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Show stock levels
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StockResponse
// @Router /api/admin/stock [get]
func (h *AdminHandler) Stock(c *gin.Context) {
	views, err := h.adminQ.Stock(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err, "Failed to load stock")
		return
	}
	res, err := resdto.FromStockViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render stock", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Set available stock for a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product_id path string true "Product ID"
// @Param request body reqdto.SetStockRequest true "Stock level"
// @Success 200 {object} resdto.StockResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/stock/{product_id} [put]
func (h *AdminHandler) SetStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	var req reqdto.SetStockRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	stock, err := h.admin.SetStock(c.Request.Context(), id, req.Name, *req.Available)
	if err != nil {
		if errs.Is(err, commands.ErrNegativeStock) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Stock must not be negative", nil)
			return
		}
		abortWithDomainError(c, err, "Failed to set stock")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStock(stock))
}
