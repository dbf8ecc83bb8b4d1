package message

import (
	"encoding/json"
	"fmt"
)

// EnvelopeVersion is bumped when the encoded shape changes. Messages already
// posted keep their old envelopes, so the decoder must refuse versions it
// does not know instead of guessing.
const EnvelopeVersion = 1

// Slack rejects button values longer than this.
const maxEncodedLen = 2000

// Envelope is the full state a click needs to be processed: which record to
// patch, where it lives, and what the clicked button was configured to do.
// It travels inside the button payload so the bridge keeps no store.
type Envelope struct {
	Version  int          `json:"v"`
	BaseID   string       `json:"base_id"`
	TableID  string       `json:"table_id"`
	RecordID string       `json:"record_id"`
	Button   ButtonConfig `json:"button"`
}

// Encode serializes the envelope for embedding in a control.
func (e Envelope) Encode() (string, error) {
	e.Version = EnvelopeVersion
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	if len(data) > maxEncodedLen {
		return "", fmt.Errorf("encoded envelope is %d bytes, limit %d", len(data), maxEncodedLen)
	}
	return string(data), nil
}

// DecodeEnvelope parses a control's context string back into an Envelope.
func DecodeEnvelope(s string) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if e.Version != EnvelopeVersion {
		return Envelope{}, fmt.Errorf("unsupported envelope version %d", e.Version)
	}
	if e.RecordID == "" {
		return Envelope{}, fmt.Errorf("envelope missing record id")
	}
	if e.Button.Label == "" {
		return Envelope{}, fmt.Errorf("envelope missing button label")
	}
	return e, nil
}
