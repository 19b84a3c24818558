package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ladenbot/laden/internal/domain/models"
	"github.com/ladenbot/laden/internal/service/lookup"
	"github.com/ladenbot/laden/pkg/clients/fonnte"
)

// WebhookHandler handles inbound gateway callbacks and outbound sends.
type WebhookHandler struct {
	svc    lookup.Resolver
	sender fonnte.Client
	logger *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc lookup.Resolver, sender fonnte.Client, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, sender: sender, logger: logger}
}

// Receive ingests webhook POST callbacks from the Fonnte gateway. The
// gateway retries on non-200 responses, so processing failures are logged
// and acknowledged anyway.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.svc.HandleInbound(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed processing webhook", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SendMessage allows sending outbound automation or manual responses.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.sender.Send(c.Request.Context(), req.To, req.Message); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
