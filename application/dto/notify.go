package dto

import (
	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/domain/record"
)

// NotifyInput is the body of an inbound notify request as produced by the
// upstream automation: the record to announce and the message configuration
// to announce it with.
type NotifyInput struct {
	Record record.SourceRecord `json:"record" binding:"required"`
	Config NotifyConfigInput   `json:"config" binding:"required"`
}

type NotifyConfigInput struct {
	BaseID          string       `json:"baseId"`
	TableID         string       `json:"tableId"`
	MessageTemplate string       `json:"messageTemplate" binding:"required"`
	ChannelIDs      []string     `json:"channelIds"      binding:"required,min=1"`
	PrimaryButton   *ButtonInput `json:"primaryButton"`
	SecondaryButton *ButtonInput `json:"secondaryButton"`
}

type ButtonInput struct {
	Label string        `json:"label" binding:"required"`
	Field string        `json:"field"`
	Value *record.Value `json:"value"`
}

// ToDomain converts the wire config to the domain config, filling base and
// table ids from the configured defaults when the caller omitted them.
func (c NotifyConfigInput) ToDomain(defaultBaseID, defaultTableID string) message.Config {
	cfg := message.Config{
		BaseID:     c.BaseID,
		TableID:    c.TableID,
		Template:   c.MessageTemplate,
		ChannelIDs: c.ChannelIDs,
		Primary:    c.PrimaryButton.toDomain(),
		Secondary:  c.SecondaryButton.toDomain(),
	}
	if cfg.BaseID == "" {
		cfg.BaseID = defaultBaseID
	}
	if cfg.TableID == "" {
		cfg.TableID = defaultTableID
	}
	return cfg
}

func (b *ButtonInput) toDomain() *message.ButtonConfig {
	if b == nil {
		return nil
	}
	return &message.ButtonConfig{Label: b.Label, Field: b.Field, Value: b.Value}
}
