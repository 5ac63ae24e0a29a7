package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"order-core/internal/domain/payment"
	resdto "order-core/internal/handler/dto/response"
	"order-core/internal/handler/httperr"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	cmds      commands.WebhookCommands
	secret    string
	tolerance time.Duration
	clock     clock.Clock
	logger    *slog.Logger
}

func NewWebhookHandler(cmds commands.WebhookCommands, cfg config.Config, clk clock.Clock, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cmds:      cmds,
		secret:    cfg.Gateway.WebhookSecret,
		tolerance: cfg.Gateway.SignatureTolerance,
		clock:     clk,
		logger:    logger,
	}
}

// @Summary Receive a payment gateway event
// @Description Verifies the Gateway-Signature header, records the event once and reconciles the order.
// @Description Every verified event is acknowledged with 200; 503 asks the gateway to redeliver.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Gateway-Signature header string true "t=<unix>,v1=<hex hmac>"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/webhooks/gateway [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	now := h.clock.Now()
	if err = payment.VerifySignature(h.secret, c.GetHeader(payment.SignatureHeader), body, now, h.tolerance); err != nil {
		h.logger.Warn("webhook signature rejected", "error", err, "client_ip", c.ClientIP())
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", nil)
		return
	}

	ev, err := payment.ParseEvent(body, now)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payload", nil)
		return
	}

	result, err := h.cmds.Handle(c.Request.Context(), ev)
	if err != nil {
		h.logger.Error("webhook reconciliation failed", "event_id", ev.ID, "event_type", ev.Type, "error", err)
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Event could not be recorded", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
