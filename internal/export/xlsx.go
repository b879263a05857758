package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"parsify/internal/docai"
)

const (
	summarySheet   = "Summary"
	lineItemsSheet = "Line Items"
)

// Workbook builds an XLSX export of a document: a summary sheet with the
// convenience fields and a sheet with one row per line item.
func Workbook(doc *docai.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("renaming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(lineItemsSheet); err != nil {
		return nil, fmt.Errorf("creating line items sheet: %w", err)
	}

	if err := writeSummary(f, doc); err != nil {
		return nil, err
	}
	if err := writeLineItems(f, doc); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, doc *docai.Document) error {
	rows := [][2]string{
		{"Supplier Name", textOr(doc.SupplierName())},
		{"Supplier Address", textOr(doc.SupplierAddress())},
		{"Supplier Phone", textOr(doc.SupplierPhone())},
		{"Receipt Date", dateOr(doc.ReceiptDate())},
		{"Total Amount", amountText(doc.TotalAmount())},
		{"Total Tax", amountText(doc.TotalTaxAmount())},
		{"Currency", textOr(doc.Currency())},
		{"Payment Type", textOr(doc.PaymentType())},
		{"Line Items", fmt.Sprintf("%d", len(doc.LineItems()))},
	}
	for i, row := range rows {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

func writeLineItems(f *excelize.File, doc *docai.Document) error {
	for col, name := range lineItemColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("writing line items header: %w", err)
		}
		if err := f.SetCellValue(lineItemsSheet, cell, name); err != nil {
			return fmt.Errorf("writing line items header: %w", err)
		}
	}
	for i, li := range doc.LineItems() {
		row := lineItemToRow(li)
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("writing line item row: %w", err)
			}
			if err := f.SetCellValue(lineItemsSheet, cell, val); err != nil {
				return fmt.Errorf("writing line item row: %w", err)
			}
		}
	}
	return nil
}

func textOr(s string, ok bool) string {
	if !ok {
		return ""
	}
	return s
}

func dateOr(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

func amountText(d decimal.Decimal, ok bool) string {
	if !ok {
		return ""
	}
	return d.String()
}
