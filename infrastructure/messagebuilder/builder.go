package messagebuilder

import (
	"fmt"

	"github.com/asbridge/airtable-slack-bridge/application/port"
	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/domain/record"
)

type Builder struct {
	style port.MessageStyle
}

func NewBuilder(style port.MessageStyle) *Builder {
	return &Builder{style: style}
}

// BuildNotification is a pure transform: no network, no clock, no
// randomness. The same record and config always yield the same message.
func (b *Builder) BuildNotification(rec record.SourceRecord, cfg message.Config) (message.Rendered, error) {
	text := record.Substitute(cfg.Template, rec.Fields)

	blocks := []message.Block{message.TextBlock(text)}
	if footer := b.style.FooterText(); footer != "" {
		blocks = append(blocks, message.TextBlock(footer))
	}

	var controls []message.Control

	if ctl, err := b.buildControl(message.ControlPrimary, cfg.Primary, b.style.PrimaryButtonStyle(), rec, cfg); err != nil {
		return message.Rendered{}, err
	} else if ctl != nil {
		controls = append(controls, *ctl)
	}

	if ctl, err := b.buildControl(message.ControlSecondary, cfg.Secondary, b.style.SecondaryButtonStyle(), rec, cfg); err != nil {
		return message.Rendered{}, err
	} else if ctl != nil {
		controls = append(controls, *ctl)
	}

	if len(controls) > 0 {
		blocks = append(blocks, message.ActionBlock(controls...))
	}

	return message.Rendered{FallbackText: text, Blocks: blocks}, nil
}

func (b *Builder) buildControl(id message.ControlID, btn *message.ButtonConfig, style string, rec record.SourceRecord, cfg message.Config) (*message.Control, error) {
	if btn == nil || btn.Label == "" {
		return nil, nil
	}

	// A button with only one of field/value set must never half-apply an
	// update, so it is encoded as acknowledge-only.
	encoded := *btn
	if !encoded.UpdatesRecord() {
		encoded.Field = ""
		encoded.Value = nil
	}

	env := message.Envelope{
		BaseID:   cfg.BaseID,
		TableID:  cfg.TableID,
		RecordID: rec.ID,
		Button:   encoded,
	}
	ctx, err := env.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode %s button context: %w", id, err)
	}

	return &message.Control{ID: id, Label: btn.Label, Style: style, Context: ctx}, nil
}

// BuildAcknowledgment swaps the controls for a static line showing who
// clicked what, leaving every other block and the fallback text untouched.
func (b *Builder) BuildAcknowledgment(original message.Rendered, label, userName string) message.Rendered {
	return original.WithoutControls(fmt.Sprintf("%s by %s", label, userName))
}
