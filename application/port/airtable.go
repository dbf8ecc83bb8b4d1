package port

import (
	"context"

	"github.com/asbridge/airtable-slack-bridge/domain/record"
)

// AirtableClient patches named fields of a record identified by
// base/table/record id.
type AirtableClient interface {
	PatchRecord(ctx context.Context, baseID, tableID, recordID, field string, value record.Value) error
}
