package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asbridge/airtable-slack-bridge/application/dto"
	"github.com/asbridge/airtable-slack-bridge/application/port"
	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/pkg/logger"
)

type HandleInteractionUseCase struct {
	airtable   port.AirtableClient
	slack      port.SlackClient
	msgBuilder port.MessageBuilder
	logger     *slog.Logger
}

func NewHandleInteractionUseCase(
	airtable port.AirtableClient,
	slack port.SlackClient,
	msgBuilder port.MessageBuilder,
	logger *slog.Logger,
) *HandleInteractionUseCase {
	return &HandleInteractionUseCase{
		airtable:   airtable,
		slack:      slack,
		msgBuilder: msgBuilder,
		logger:     logger,
	}
}

// Execute processes one button click. It never reports failure upward: the
// chat platform retries non-200 responses, and a retried click against a
// half-applied update would double-patch the record. Everything past
// signature verification is log-and-continue.
func (uc *HandleInteractionUseCase) Execute(ctx context.Context, input dto.SlackInteractionInput) {
	if input.Type != dto.InteractionTypeBlockActions {
		interactionsIgnoredCounter.Inc()
		uc.logger.Info("Ignoring interaction of unsupported type",
			slog.String("type", input.Type),
		)
		return
	}

	action, ok := input.FirstAction()
	if !ok {
		interactionsIgnoredCounter.Inc()
		uc.logger.Warn("Interaction carried no actions")
		return
	}
	interactionsReceivedCounter(action.ActionID).Inc()

	env, err := message.DecodeEnvelope(action.Value)
	if err != nil {
		// A malformed envelope is permanent; surfacing it as an error would
		// only make the platform replay it.
		envelopeDecodeFailCounter.Inc()
		uc.logger.Error("Failed to decode control context",
			slog.String("action_id", action.ActionID),
			slog.String("error", err.Error()),
		)
		return
	}

	userName := input.User.DisplayName()

	uc.logger.Info("Interaction received",
		logger.ApplicationFields("interaction_received",
			slog.String("control", action.ActionID),
			slog.String("record_id", env.RecordID),
			slog.String("user", userName),
		),
	)

	uc.patchRecord(ctx, env)
	uc.rewriteMessage(ctx, input, env, userName)
}

// patchRecord applies the button's field update, when it has one. The
// rewrite must still happen on failure so the user sees the click land;
// reconciling a missed patch is a manual operation, not a retry loop.
func (uc *HandleInteractionUseCase) patchRecord(ctx context.Context, env message.Envelope) {
	if !env.Button.UpdatesRecord() {
		return
	}

	err := uc.airtable.PatchRecord(ctx, env.BaseID, env.TableID, env.RecordID, env.Button.Field, *env.Button.Value)
	if err != nil {
		recordPatchCounter("error").Inc()
		uc.logger.Error("Failed to patch record",
			slog.String("record_id", env.RecordID),
			slog.String("field", env.Button.Field),
			slog.String("error", err.Error()),
		)
		return
	}
	recordPatchCounter("ok").Inc()
}

func (uc *HandleInteractionUseCase) rewriteMessage(ctx context.Context, input dto.SlackInteractionInput, env message.Envelope, userName string) {
	ackText := fmt.Sprintf("%s by %s", env.Button.Label, userName)
	rewritten := uc.msgBuilder.BuildAcknowledgment(input.Message.Rendered(), env.Button.Label, userName)

	receipts := input.Message.Receipts()
	if len(receipts) == 0 {
		receipts = []message.DeliveryReceipt{input.Origin()}
	}

	for _, receipt := range receipts {
		if err := uc.slack.UpdateMessage(ctx, receipt, rewritten, nil); err != nil {
			messageRewriteCounter("error").Inc()
			uc.logger.Error("Failed to rewrite message",
				slog.String("channel_id", receipt.ChannelID),
				slog.String("ts", receipt.Timestamp),
				slog.String("error", err.Error()),
			)
			continue
		}
		messageRewriteCounter("ok").Inc()
	}

	uc.logger.Info("Interaction processed",
		logger.ApplicationFields("interaction_processed",
			slog.String("record_id", env.RecordID),
			slog.String("acknowledgment", ackText),
			slog.Int("copies", len(receipts)),
		),
	)
}
