package message

import "github.com/asbridge/airtable-slack-bridge/domain/record"

// ButtonConfig describes one configured button. Label is required. Field and
// Value together give the button update-on-click semantics; with neither set
// the button only records who clicked it.
type ButtonConfig struct {
	Label string        `json:"label"`
	Field string        `json:"field,omitempty"`
	Value *record.Value `json:"value,omitempty"`
}

// UpdatesRecord reports whether a click should patch the source record.
// A config with only one of Field/Value set is a caller mistake; it is
// downgraded to acknowledge-only rather than half-applied.
func (b ButtonConfig) UpdatesRecord() bool {
	return b.Field != "" && b.Value != nil && !b.Value.Absent()
}
