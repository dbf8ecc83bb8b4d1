package port

import (
	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/domain/record"
)

type MessageBuilder interface {
	// BuildNotification renders the outbound message for one record and one
	// message config: template substitution, optional footer, and a single
	// trailing actions block carrying the encoded click context.
	BuildNotification(rec record.SourceRecord, cfg message.Config) (message.Rendered, error)

	// BuildAcknowledgment rewrites an already delivered message after a
	// click, replacing its controls with a static "{label} by {user}" line.
	BuildAcknowledgment(original message.Rendered, label, userName string) message.Rendered
}

// MessageStyle supplies the presentation knobs loaded from file config.
type MessageStyle interface {
	PrimaryButtonStyle() string
	SecondaryButtonStyle() string
	FooterText() string
}
