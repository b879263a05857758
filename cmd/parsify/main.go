// Command parsify parses one extraction-output JSON file into a typed
// document and prints or exports the result.
// Usage: go run ./cmd/parsify [-processor receipt] [-format text|json|csv|xlsx] [-o out] input.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"parsify/internal/docai"
	"parsify/internal/export"
	"parsify/internal/processor"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	procName := flag.String("processor", "receipt", "processor to apply")
	format := flag.String("format", "text", "output format: text, json, csv, xlsx")
	outPath := flag.String("o", "", "output file (default stdout; required for xlsx)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: parsify [flags] input.json (use - for stdin)")
	}

	input, err := readInput(flag.Arg(0))
	if err != nil {
		return err
	}

	raw, err := processor.NormalizeInput(input)
	if err != nil {
		return err
	}
	proc, err := processor.New(*procName)
	if err != nil {
		return fmt.Errorf("%w (registered: %v)", err, processor.Names())
	}
	doc, err := proc.Process(raw)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	switch *format {
	case "text":
		return writeText(out, doc)
	case "json":
		return writeJSON(out, doc)
	case "csv":
		return writeCSV(out, doc)
	case "xlsx":
		if *outPath == "" {
			return fmt.Errorf("xlsx output requires -o")
		}
		return writeXLSX(out, doc)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeText(w io.Writer, doc *docai.Document) error {
	printField := func(name, value string) {
		fmt.Fprintf(w, "%-18s %s\n", name+":", value)
	}
	if v, ok := doc.SupplierName(); ok {
		printField("Supplier", v)
	}
	if v, ok := doc.SupplierAddress(); ok {
		printField("Address", v)
	}
	if v, ok := doc.ReceiptDate(); ok {
		printField("Date", v.Format("2006-01-02"))
	}
	if v, ok := doc.TotalAmount(); ok {
		printField("Total", v.String())
	}
	if v, ok := doc.TotalTaxAmount(); ok {
		printField("Tax", v.String())
	}
	if v, ok := doc.Currency(); ok {
		printField("Currency", v)
	}
	if v, ok := doc.PaymentType(); ok {
		printField("Payment", v)
	}
	fmt.Fprintf(w, "%-18s %d\n", "Entities:", len(doc.Entities()))
	fmt.Fprintf(w, "%-18s %d\n", "Line items:", len(doc.LineItems()))
	for _, li := range doc.LineItems() {
		desc := ""
		if li.Description != nil {
			desc = *li.Description
		}
		amount := ""
		if li.Amount != nil {
			amount = li.Amount.String()
		}
		fmt.Fprintf(w, "  - %-30s %s\n", desc, amount)
	}
	return nil
}

func writeJSON(w io.Writer, doc *docai.Document) error {
	type lineItemOut struct {
		Description *string         `json:"description,omitempty"`
		Quantity    *docai.Quantity `json:"quantity,omitempty"`
		Unit        *string         `json:"unit,omitempty"`
		UnitPrice   *string         `json:"unit_price,omitempty"`
		Amount      *string         `json:"amount,omitempty"`
		ProductCode *string         `json:"product_code,omitempty"`
	}
	type docOut struct {
		SupplierName *string       `json:"supplier_name,omitempty"`
		ReceiptDate  *string       `json:"receipt_date,omitempty"`
		TotalAmount  *string       `json:"total_amount,omitempty"`
		Currency     *string       `json:"currency,omitempty"`
		LineItems    []lineItemOut `json:"line_items"`
	}

	out := docOut{LineItems: []lineItemOut{}}
	if v, ok := doc.SupplierName(); ok {
		out.SupplierName = &v
	}
	if v, ok := doc.ReceiptDate(); ok {
		s := v.Format("2006-01-02")
		out.ReceiptDate = &s
	}
	if v, ok := doc.TotalAmount(); ok {
		s := v.String()
		out.TotalAmount = &s
	}
	if v, ok := doc.Currency(); ok {
		out.Currency = &v
	}
	for _, li := range doc.LineItems() {
		item := lineItemOut{
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			ProductCode: li.ProductCode,
		}
		if li.UnitPrice != nil {
			s := li.UnitPrice.String()
			item.UnitPrice = &s
		}
		if li.Amount != nil {
			s := li.Amount.String()
			item.Amount = &s
		}
		out.LineItems = append(out.LineItems, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCSV(w io.Writer, doc *docai.Document) error {
	if _, err := w.Write(export.BOM); err != nil {
		return err
	}
	cw := export.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteDocument(doc); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, doc *docai.Document) error {
	f, err := export.Workbook(doc)
	if err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
