package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asbridge/airtable-slack-bridge/application/dto"
	"github.com/asbridge/airtable-slack-bridge/application/usecase"
	"github.com/asbridge/airtable-slack-bridge/pkg/signing"
)

const (
	HeaderSlackSignature = "X-Slack-Signature"
	HeaderSlackTimestamp = "X-Slack-Request-Timestamp"
	HeaderWebhookSecret  = "X-Webhook-Secret"
)

type NotifyUseCase interface {
	Execute(ctx context.Context, input dto.NotifyInput) error
}

type InteractionUseCase interface {
	Execute(ctx context.Context, input dto.SlackInteractionInput)
}

// WebhookHandler owns the single inbound endpoint. The presence of the chat
// platform's signature header selects the pipeline; both pipelines
// authenticate on the raw body before anything else touches it.
type WebhookHandler struct {
	notify        NotifyUseCase
	interaction   InteractionUseCase
	verifier      *signing.Verifier
	webhookSecret string
	logger        *slog.Logger
}

func NewWebhookHandler(
	notify NotifyUseCase,
	interaction InteractionUseCase,
	verifier *signing.Verifier,
	webhookSecret string,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		notify:        notify,
		interaction:   interaction,
		verifier:      verifier,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	if c.GetHeader(HeaderSlackSignature) != "" {
		h.handleInteraction(c, body)
		return
	}
	h.handleNotify(c, body)
}

func (h *WebhookHandler) handleInteraction(c *gin.Context, body []byte) {
	sig := c.GetHeader(HeaderSlackSignature)
	ts := c.GetHeader(HeaderSlackTimestamp)

	// The MAC covers the exact raw bytes; verification has to happen before
	// the body is parsed as form data.
	if err := h.verifier.Verify(sig, ts, body); err != nil {
		h.logger.Warn("Rejected interaction request",
			slog.String("error", err.Error()),
		)
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		h.logger.Error("Failed to parse interaction form", slog.String("error", err.Error()))
		c.String(http.StatusOK, "Interaction handled")
		return
	}

	var input dto.SlackInteractionInput
	if err := json.Unmarshal([]byte(form.Get("payload")), &input); err != nil {
		// Permanently malformed; a non-200 would only make the platform
		// replay it.
		h.logger.Error("Failed to parse interaction payload", slog.String("error", err.Error()))
		c.String(http.StatusOK, "Interaction handled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	h.interaction.Execute(ctx, input)

	c.String(http.StatusOK, "Interaction handled")
}

func (h *WebhookHandler) handleNotify(c *gin.Context, body []byte) {
	if !signing.SecretsEqual(c.GetHeader(HeaderWebhookSecret), h.webhookSecret) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var input dto.NotifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Failed to parse notify payload", slog.String("error", err.Error()))
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.notify.Execute(ctx, input); err != nil {
		if errors.Is(err, usecase.ErrInvalidNotification) {
			c.String(http.StatusBadRequest, "Invalid request body")
			return
		}
		c.String(http.StatusInternalServerError, "Internal error")
		return
	}

	c.String(http.StatusOK, "Webhook processed")
}
