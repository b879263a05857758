package processor

import (
	"encoding/json"
	"fmt"

	"parsify/internal/docai"
)

func init() {
	Register("receipt", func() Processor { return &ReceiptProcessor{} })
}

// ReceiptProcessor partitions expense-extraction output into line-item groups
// and plain entities. Every record in document.entities produces exactly one
// Entity or one LineItem, never both, with source order preserved in each
// list.
type ReceiptProcessor struct{}

type rawOutput struct {
	Document struct {
		Entities []json.RawMessage `json:"entities"`
	} `json:"document"`
}

func (p *ReceiptProcessor) Process(raw json.RawMessage) (*docai.Document, error) {
	var out rawOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	entities := []*docai.Entity{}
	lineItems := []*docai.LineItem{}
	for _, rec := range out.Document.Entities {
		e := docai.ParseEntity(rec)
		if e.Kind() == docai.KindLineItem {
			lineItems = append(lineItems, docai.BuildLineItem(rec))
			continue
		}
		entities = append(entities, e)
	}
	return docai.NewDocument(entities, lineItems, raw), nil
}
