package dto

import (
	"encoding/json"

	"github.com/asbridge/airtable-slack-bridge/domain/message"
)

// InteractionTypeBlockActions is the only interaction kind the bridge
// processes; everything else is acknowledged and dropped.
const InteractionTypeBlockActions = "block_actions"

// SlackInteractionInput is the JSON carried in the url-encoded `payload`
// form field of an interaction request.
type SlackInteractionInput struct {
	Type      string         `json:"type"`
	User      SlackUser      `json:"user"`
	Channel   SlackChannel   `json:"channel"`
	Container SlackContainer `json:"container"`
	Message   SlackMessage   `json:"message"`
	Actions   []SlackAction  `json:"actions"`
}

type SlackUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// DisplayName prefers the username, falling back to the profile name and
// finally the raw user id so the acknowledgment line is never blank.
func (u SlackUser) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

type SlackChannel struct {
	ID string `json:"id"`
}

type SlackContainer struct {
	ChannelID string `json:"channel_id"`
	MessageTS string `json:"message_ts"`
}

type SlackAction struct {
	ActionID string `json:"action_id"`
	Value    string `json:"value"`
}

type SlackMessage struct {
	TS       string         `json:"ts"`
	Text     string         `json:"text"`
	Blocks   []SlackBlock   `json:"blocks"`
	Metadata *SlackMetadata `json:"metadata"`
}

type SlackBlock struct {
	Type     string         `json:"type"`
	Text     *SlackText     `json:"text,omitempty"`
	Elements []SlackElement `json:"elements,omitempty"`
}

type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type SlackElement struct {
	Type     string     `json:"type"`
	ActionID string     `json:"action_id"`
	Text     *SlackText `json:"text,omitempty"`
	Value    string     `json:"value,omitempty"`
	Style    string     `json:"style,omitempty"`
}

type SlackMetadata struct {
	EventType    string          `json:"event_type"`
	EventPayload json.RawMessage `json:"event_payload"`
}

// FirstAction returns the clicked action. Slack sends one action per click;
// anything past the first is not a supported case and is ignored.
func (in SlackInteractionInput) FirstAction() (SlackAction, bool) {
	if len(in.Actions) == 0 {
		return SlackAction{}, false
	}
	return in.Actions[0], true
}

// Origin addresses the message copy the click happened on.
func (in SlackInteractionInput) Origin() message.DeliveryReceipt {
	channelID := in.Container.ChannelID
	if channelID == "" {
		channelID = in.Channel.ID
	}
	ts := in.Container.MessageTS
	if ts == "" {
		ts = in.Message.TS
	}
	return message.DeliveryReceipt{ChannelID: channelID, Timestamp: ts}
}

// Rendered converts the message body echoed in the payload back into the
// domain shape, so the rewriter can preserve every non-actions block.
func (m SlackMessage) Rendered() message.Rendered {
	out := message.Rendered{FallbackText: m.Text}
	for _, b := range m.Blocks {
		switch b.Type {
		case "actions":
			controls := make([]message.Control, 0, len(b.Elements))
			for _, el := range b.Elements {
				label := ""
				if el.Text != nil {
					label = el.Text.Text
				}
				controls = append(controls, message.Control{
					ID:      message.ControlID(el.ActionID),
					Label:   label,
					Style:   el.Style,
					Context: el.Value,
				})
			}
			out.Blocks = append(out.Blocks, message.ActionBlock(controls...))
		default:
			text := ""
			if b.Text != nil {
				text = b.Text.Text
			}
			out.Blocks = append(out.Blocks, message.TextBlock(text))
		}
	}
	return out
}

// Receipts decodes the sibling receipt list attached during the fan-out.
// Returns nil when the message carries no bridge metadata.
func (m SlackMessage) Receipts() []message.DeliveryReceipt {
	if m.Metadata == nil || m.Metadata.EventType != message.MetadataEventType {
		return nil
	}
	var list message.ReceiptList
	if err := json.Unmarshal(m.Metadata.EventPayload, &list); err != nil {
		return nil
	}
	return list.Receipts
}
