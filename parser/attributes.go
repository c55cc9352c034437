package parser

import "strings"

// ParseAttributes splits the raw attribute text of one tag into attributes.
//
// Pieces are separated by ASCII whitespace outside double quotes, and each
// piece is split at its first '=' outside quotes. A piece without '=' is a
// valueless attribute. Quote characters only delimit spans: they are dropped
// unless keepQuotes is set, in which case they stay in the name or value
// verbatim. Duplicate names are kept in order.
func ParseAttributes(raw string, keepQuotes bool) []Attribute {
	var attrs []Attribute
	for _, piece := range splitAttributes(raw) {
		attrs = append(attrs, parseAttribute(piece, keepQuotes))
	}
	return attrs
}

func splitAttributes(raw string) []string {
	var (
		pieces  []string
		start   = -1
		inQuote bool
	)
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b == '"' {
			inQuote = !inQuote
		}
		if isASCIIWhitespace(b) && !inQuote {
			if start >= 0 {
				pieces = append(pieces, raw[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		pieces = append(pieces, raw[start:])
	}
	return pieces
}

func parseAttribute(piece string, keepQuotes bool) Attribute {
	inQuote := false
	for i := 0; i < len(piece); i++ {
		switch piece[i] {
		case '"':
			inQuote = !inQuote
		case '=':
			if inQuote {
				continue
			}
			value := unquote(piece[i+1:], keepQuotes)
			return Attribute{
				Name:  unquote(piece[:i], keepQuotes),
				Value: &value,
			}
		}
	}
	return Attribute{Name: unquote(piece, keepQuotes)}
}

func unquote(s string, keepQuotes bool) string {
	if keepQuotes {
		return s
	}
	return strings.ReplaceAll(s, `"`, "")
}
