package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/asbridge/airtable-slack-bridge/application/dto"
	"github.com/asbridge/airtable-slack-bridge/application/port"
	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/pkg/logger"
)

// ErrInvalidNotification marks caller mistakes that should come back as a
// client error rather than a server one.
var ErrInvalidNotification = errors.New("invalid notification")

// DeliveryResult is the outcome of one channel's post attempt. Failures are
// collected here and inspected, never propagated as a pipeline failure.
type DeliveryResult struct {
	ChannelID string
	Receipt   message.DeliveryReceipt
	Err       error
}

type HandleNotifyUseCase struct {
	slack          port.SlackClient
	msgBuilder     port.MessageBuilder
	defaultBaseID  string
	defaultTableID string
	logger         *slog.Logger
}

func NewHandleNotifyUseCase(
	slack port.SlackClient,
	msgBuilder port.MessageBuilder,
	defaultBaseID string,
	defaultTableID string,
	logger *slog.Logger,
) *HandleNotifyUseCase {
	return &HandleNotifyUseCase{
		slack:          slack,
		msgBuilder:     msgBuilder,
		defaultBaseID:  defaultBaseID,
		defaultTableID: defaultTableID,
		logger:         logger,
	}
}

// Execute renders the message and fans it out to every configured channel.
// A channel failing does not fail the request: the upstream automation has
// no safe way to retry a partial fan-out without double-posting, so partial
// delivery is logged and swallowed.
func (uc *HandleNotifyUseCase) Execute(ctx context.Context, input dto.NotifyInput) error {
	cfg := input.Config.ToDomain(uc.defaultBaseID, uc.defaultTableID)

	notificationsReceivedCounter.Inc()
	uc.logger.Info("Notification received",
		logger.ApplicationFields("notification_received",
			slog.String("record_id", input.Record.ID),
			slog.Int("channels", len(cfg.ChannelIDs)),
		),
	)

	rendered, err := uc.msgBuilder.BuildNotification(input.Record, cfg)
	if err != nil {
		return fmt.Errorf("%w: build message: %v", ErrInvalidNotification, err)
	}

	results := uc.fanOut(ctx, cfg.ChannelIDs, rendered)

	delivered := make([]message.DeliveryReceipt, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			deliveryFailedCounter(r.ChannelID).Inc()
			uc.logger.Error("Channel delivery failed",
				slog.String("channel_id", r.ChannelID),
				slog.String("record_id", input.Record.ID),
				slog.String("error", r.Err.Error()),
			)
			continue
		}
		messagesPostedCounter(r.ChannelID).Inc()
		delivered = append(delivered, r.Receipt)
	}

	// A click on any copy must be able to edit the others, so once all
	// posts have settled the full receipt list is attached to each copy.
	// One copy, or no buttons, needs no sibling lookup.
	if rendered.HasControls() && len(delivered) > 1 {
		uc.attachReceipts(ctx, delivered, rendered)
	}

	uc.logger.Info("Notification processed",
		logger.ApplicationFields("notification_processed",
			slog.String("record_id", input.Record.ID),
			slog.Int("delivered", len(delivered)),
			slog.Int("failed", len(results)-len(delivered)),
		),
	)

	return nil
}

func (uc *HandleNotifyUseCase) fanOut(ctx context.Context, channelIDs []string, rendered message.Rendered) []DeliveryResult {
	results := make([]DeliveryResult, len(channelIDs))

	var g errgroup.Group
	for i, channelID := range channelIDs {
		i, channelID := i, channelID
		g.Go(func() error {
			receipt, err := uc.slack.PostMessage(ctx, channelID, rendered)
			results[i] = DeliveryResult{ChannelID: channelID, Receipt: receipt, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *HandleNotifyUseCase) attachReceipts(ctx context.Context, delivered []message.DeliveryReceipt, rendered message.Rendered) {
	list := &message.ReceiptList{Receipts: delivered}
	for _, receipt := range delivered {
		if err := uc.slack.UpdateMessage(ctx, receipt, rendered, list); err != nil {
			uc.logger.Error("Failed to attach receipt metadata",
				slog.String("channel_id", receipt.ChannelID),
				slog.String("ts", receipt.Timestamp),
				slog.String("error", err.Error()),
			)
			continue
		}
		receiptsAttachedCounter.Inc()
	}
}
