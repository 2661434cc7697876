// Package export writes archive records to CSV, JSON or JSONL.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/user/aktdoclix/internal/model"
)

// Supported formats.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Header is the CSV header row, one column per akten column in table order.
var Header = []string{"ID", "Sig", "Titel", "Zeit", "Typ", "Anz", "Kat", "SubKat", "Zustand", "Tags", "Note", "Pfad", "Ort"}

// bom makes spreadsheet programs detect UTF-8.
const bom = "\ufeff"

// ParseFormat normalizes a format name.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON, FormatJSONL:
		return f, nil
	}
	return "", fmt.Errorf("invalid format '%s' (must be csv, json, or jsonl)", name)
}

// Write exports records in the given format.
func Write(w io.Writer, format string, records []model.Record) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatJSONL:
		return WriteJSONL(w, records)
	default:
		return WriteCSV(w, records)
	}
}

// WriteCSV writes a BOM, the header and one semicolon-separated row per record.
func WriteCSV(w io.Writer, records []model.Record) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'
	writer.UseCRLF = true

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(row(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func row(r model.Record) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Signature,
		r.Title,
		r.DateRange,
		r.Type,
		strconv.Itoa(r.Count),
		r.Category,
		r.Subcategory,
		r.Condition,
		r.Keywords,
		r.Notes,
		r.Path,
		r.Location,
	}
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, records []model.Record) error {
	encoder := json.NewEncoder(w)
	for _, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("failed to write JSONL: %w", err)
		}
	}
	return nil
}
