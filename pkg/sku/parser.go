// pkg/sku/parser.go
package sku

import (
	"regexp"
	"strings"
)

// ParsedSKU is the result of splitting a raw spreadsheet SKU into the
// product-level base code and the free-form variation token. A zero Base
// means the input could not be parsed (blank input).
type ParsedSKU struct {
	Base      string // canonical product code, e.g. "WPJF 001"
	Variation string // numeric run, color word or descriptor; empty when absent
}

// IsZero reports whether parsing produced no identity at all.
func (p ParsedSKU) IsZero() bool {
	return p.Base == ""
}

// HasVariation reports whether a variation token was captured.
func (p ParsedSKU) HasVariation() bool {
	return p.Variation != ""
}

var (
	// Trailing numeric variation after a dash, with optional spaces
	// around the dash: "WPJF 001 -120" -> ("WPJF 001", "120").
	dashVariationRe = regexp.MustCompile(`^(.+?)\s*-\s*(\d+)$`)

	// Product-code prefix followed by a space-separated remainder:
	// "WPJF 0012 BLUE MEDIUM" -> ("WPJF 0012", "BLUE MEDIUM").
	codeRemainderRe = regexp.MustCompile(`^(WP[A-Z]+\s*\d+)\s+(.+)$`)
)

// Parse splits a raw SKU string into base code and variation token.
//
// Matching order: trailing-dash numeric variation first, then the
// code-prefix pattern, then the whole trimmed string as base with no
// variation. A numeric dash variation, once found, is never discarded;
// the deep-parse correction below only fills an empty variation.
//
// Parse never fails: blank input yields the zero ParsedSKU, anything
// else yields a best-effort pair with a non-empty Base.
func Parse(raw string) ParsedSKU {
	s := collapseWhitespace(raw)
	if s == "" {
		return ParsedSKU{}
	}

	var base, variation string
	if m := dashVariationRe.FindStringSubmatch(s); m != nil {
		base = strings.TrimSpace(m[1])
		variation = m[2]
	} else if m := codeRemainderRe.FindStringSubmatch(s); m != nil {
		base = strings.TrimSpace(m[1])
		variation = strings.TrimSpace(m[2])
	} else {
		base = s
	}

	// Deep-parse correction: a base like "WPMF001 ROSE" still carries an
	// embedded descriptor the dash pattern did not consume. Re-apply the
	// code-prefix pattern to the base alone; the descriptor becomes the
	// variation only when none was captured above.
	if strings.Contains(base, " ") {
		if m := codeRemainderRe.FindStringSubmatch(base); m != nil {
			base = strings.TrimSpace(m[1])
			if variation == "" {
				variation = strings.TrimSpace(m[2])
			}
		}
	}

	return ParsedSKU{Base: base, Variation: variation}
}

// BaseCode returns just the base product code for a raw SKU, or the
// empty string when the SKU does not parse.
func BaseCode(raw string) string {
	return Parse(raw).Base
}

// collapseWhitespace trims the string and reduces every internal
// whitespace run to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
