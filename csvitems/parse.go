package csvitems

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat detects the encoding, newline, and separator
// of CSV data and parses it into rows of UTF-8 strings.
//
// The encoding is detected with charset.AutoDecode using config,
// a nil config uses NewDefaultDetectionConfig.
// The separator is taken from a "sep=X" first line if present,
// else the most frequent of comma, semicolon, and tab is used
// with comma winning ties.
func ParseDetectFormat(data []byte, config *DetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultDetectionConfig()
	}

	encodings := make([]charset.Encoding, 0, len(config.Encodings))
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}

	format = new(Format)
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(charset.TrimBOM(data, charset.BOMUTF8))

	// If there are \r\n line endings
	// then take those because that's the standard
	if bytes.Contains(data, []byte("\r\n")) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	firstLine, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		format.Separator = sep
		data = rest
	} else {
		format.Separator = detectSeparator(data)
	}

	rows, err = parseRecords(data, format)
	return rows, format, err
}

// ParseWithFormat parses CSV data with a known format
// into rows of UTF-8 strings.
// A "sep=X" first line must match the separator of the format.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}

	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	firstLine, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		if sep != format.Separator {
			return nil, fmt.Errorf("separator %q in header line is different from format separator %q", sep, format.Separator)
		}
		data = rest
	}

	return parseRecords(data, format)
}

func detectSeparator(data []byte) string {
	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	}
	return ","
}

// parseSepHeaderLine returns the separator of a
// "sep=X" or "SEP=X" line optionally in quotes
// or an empty string if line has a different format.
func parseSepHeaderLine(line []byte) string {
	line = bytes.TrimRight(line, "\r")
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

func parseRecords(data []byte, format *Format) ([][]string, error) {
	if format.Newline == "\n\r" {
		data = bytes.ReplaceAll(data, []byte("\n\r"), []byte("\n"))
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = rune(format.Separator[0])
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("can't parse CSV line %d: %w", parseErr.Line, parseErr.Err)
		}
		return nil, err
	}
	return rows, nil
}

func sanitizeUTF8(data []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case utf8.RuneError, '\u00a0':
				return ' '
			default:
				return r
			}
		},
		data,
	)
}
