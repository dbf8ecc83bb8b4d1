package port

import (
	"context"

	"github.com/asbridge/airtable-slack-bridge/domain/message"
)

// SlackClient is the outbound chat-platform contract: post a rendered
// message to a channel, edit a previously posted copy in place, and verify
// the bot credential for readiness probes.
type SlackClient interface {
	// PostMessage delivers one rendered message and returns the receipt
	// addressing the posted copy.
	PostMessage(ctx context.Context, channelID string, msg message.Rendered) (message.DeliveryReceipt, error)

	// UpdateMessage replaces the content of the copy addressed by receipt.
	// A non-nil receipts list is attached as message metadata so sibling
	// copies stay discoverable from any one of them.
	UpdateMessage(ctx context.Context, receipt message.DeliveryReceipt, msg message.Rendered, receipts *message.ReceiptList) error

	Ping(ctx context.Context) error
}
