package message

// Config is the per-notification message configuration supplied by the
// caller. It is never persisted; everything a later click needs is copied
// into the button envelopes at render time.
type Config struct {
	BaseID     string
	TableID    string
	Template   string
	ChannelIDs []string
	Primary    *ButtonConfig
	Secondary  *ButtonConfig
}
