// Package catalog reads the creator book catalog and sums it up.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"creator-store-check/internal/config"
	"creator-store-check/internal/model"
)

var (
	// ErrMissingPrice is returned when a book has no price_usd field.
	ErrMissingPrice = errors.New("book has no price_usd")
	// ErrNoBooks is returned by AveragePrice for an empty catalog.
	ErrNoBooks = errors.New("catalog has no books")
	// ErrNullSection is returned for a section whose book list is null.
	ErrNullSection = errors.New("book list is null")
)

// SyntaxError wraps a JSON decoding failure of the catalog file so callers
// can tell "invalid format" apart from a missing field.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("catalog %s: invalid JSON: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Book is the part of a catalog entry the checks read.
type Book struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title,omitempty"`
	PriceUSD *float64 `json:"price_usd"`
}

// Document is the catalog file. Catalog sections are kept raw because their
// shape differs per section.
type Document struct {
	Catalog               map[string]json.RawMessage `json:"catalog"`
	LiberationVerified    Flag                       `json:"liberation_verified"`
	WernerHealthEnabled   Flag                       `json:"werner_health_enabled"`
	SpiralLogicIntegrated Flag                       `json:"spirallogic_integrated"`
}

// Flag is a loosely typed catalog switch. Absent, null, false, 0, "", []
// and {} are false; any other value is true.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag(truthy(v))
	return nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return true
}

// Load reads and decodes the catalog file. A file that is not valid JSON
// yields a *SyntaxError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

func Parse(path string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		return nil, &SyntaxError{Path: path, Err: err}
	}
	return &doc, nil
}

// Books returns the books of one section, or nil when the section is absent.
func (d *Document) Books(s config.CatalogSection) ([]Book, error) {
	raw, ok := d.Catalog[s.Key]
	if !ok {
		return nil, nil
	}
	if s.BooksField != "" {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Key, err)
		}
		inner, ok := wrapper[s.BooksField]
		if !ok {
			return nil, fmt.Errorf("section %s: missing %q", s.Key, s.BooksField)
		}
		raw = inner
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("section %s: %w", s.Key, ErrNullSection)
	}
	var books []Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("section %s: %w", s.Key, err)
	}
	return books, nil
}

// Summarize counts books and sums prices over the configured sections.
func (d *Document) Summarize(sections []config.CatalogSection) (model.CatalogSummary, error) {
	sum := model.CatalogSummary{
		CreatorSovereignty: bool(d.LiberationVerified),
		WernerHealth:       bool(d.WernerHealthEnabled),
		SpiralLogic:        bool(d.SpiralLogicIntegrated),
	}
	for _, s := range sections {
		books, err := d.Books(s)
		if err != nil {
			return model.CatalogSummary{}, err
		}
		for i, b := range books {
			if b.PriceUSD == nil {
				return model.CatalogSummary{}, fmt.Errorf("section %s book %d %s: %w", s.Key, i, b.label(), ErrMissingPrice)
			}
			sum.TotalCatalogValue += *b.PriceUSD
		}
		sum.TotalBooks += len(books)
	}
	return sum, nil
}

func (b Book) label() string {
	switch {
	case b.ID != "":
		return fmt.Sprintf("(%s)", b.ID)
	case b.Title != "":
		return fmt.Sprintf("(%q)", b.Title)
	default:
		return ""
	}
}

// AveragePrice is the mean book price of a summary.
func AveragePrice(s model.CatalogSummary) (float64, error) {
	if s.TotalBooks == 0 {
		return 0, ErrNoBooks
	}
	return s.TotalCatalogValue / float64(s.TotalBooks), nil
}
