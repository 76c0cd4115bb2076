// Package csvitems reads CSV data into container items
// and writes container views as CSV.
//
// The first CSV row names the property ids of the items,
// so nested properties like "address.city" can be loaded
// from flat CSV columns.
package csvitems

import (
	"errors"
	"fmt"
)

// Format describes the encoding and structure of CSV data.
type Format struct {
	// Encoding like "UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252", or "Macintosh"
	Encoding string `json:"encoding" yaml:"encoding"`
	// Separator is a single character like ",", ";", or "\t"
	Separator string `json:"separator" yaml:"separator"`
	// Newline is one of "\n", "\r\n", or "\n\r"
	Newline string `json:"newline" yaml:"newline"`
}

// NewFormat returns a UTF-8 Format with "\r\n" newlines
// and the passed separator.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate can be called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvitems.Format")
	case f.Encoding == "":
		return errors.New("missing csvitems.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvitems.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvitems.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvitems.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvitems.Format.Newline: %q", f.Newline)
	}
	return nil
}

// DetectionConfig configures the format detection of ParseDetectFormat.
type DetectionConfig struct {
	// Encodings to try in priority order.
	Encodings []string `json:"encodings" yaml:"encodings"`

	// EncodingTests are strings with characters that have
	// different byte representations in the Encodings.
	// An encoding is only selected if the decoded data
	// contains one of them.
	EncodingTests []string `json:"encodingTests" yaml:"encodingTests"`
}

// NewDefaultDetectionConfig returns a DetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
