package message

// ControlID identifies which configured button a control was built from.
type ControlID string

const (
	ControlPrimary   ControlID = "primary"
	ControlSecondary ControlID = "secondary"
)

const (
	StyleDefault = ""
	StylePrimary = "primary"
	StyleDanger  = "danger"
)

// MetadataEventType tags the message metadata entry that carries the
// delivery receipt list for sibling-channel edits.
const MetadataEventType = "bridge_receipts"
