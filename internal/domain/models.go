package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParsedDocument is one persisted parse result: the extracted summary columns
// plus the verbatim raw input, so any document can be reprocessed or debugged
// later.
type ParsedDocument struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Processor     string          `db:"processor" json:"processor"`
	SupplierName  string          `db:"supplier_name" json:"supplier_name"`
	ReceiptDate   string          `db:"receipt_date" json:"receipt_date"`
	TotalAmount   string          `db:"total_amount" json:"total_amount"`
	Currency      string          `db:"currency" json:"currency"`
	LineItemCount int             `db:"line_item_count" json:"line_item_count"`
	RawData       json.RawMessage `db:"raw_data" json:"raw_data,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
