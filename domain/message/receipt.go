package message

// DeliveryReceipt addresses one posted copy of a message: the channel it
// went to and the timestamp the chat platform assigned, which together form
// the handle for later edits.
type DeliveryReceipt struct {
	ChannelID string `json:"channel"`
	Timestamp string `json:"ts"`
}

// ReceiptList is attached as metadata to every posted copy after the
// fan-out completes, so a click on any one copy can find its siblings.
type ReceiptList struct {
	Receipts []DeliveryReceipt `json:"receipts"`
}
