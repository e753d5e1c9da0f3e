// pkg/sku/normalize.go
package sku

import (
	"regexp"
	"strings"
)

// Identity is the cross-system matching form of a raw SKU. Key is the
// canonical lookup key used against both other SKUs and image folder
// names; two raw SKUs name the same identity iff their Keys are equal.
type Identity struct {
	Key       string // uppercase, space-free, dash-separated lookup key
	Base      string // product code with no internal space, e.g. "WPJF008"
	Variation string // variation remainder as matched, spacing preserved
}

// IsZero reports whether normalization produced no identity (blank input).
func (id Identity) IsZero() bool {
	return id.Key == ""
}

var (
	dashSpacingRe = regexp.MustCompile(`\s*-\s*`)

	// Prefix + digits with a dash-joined variation: "WPJF008-141", "WPCHF001-C1".
	normDashVariationRe = regexp.MustCompile(`^(WP[A-Z]+)\s*(\d+)-(.+)$`)
	// Prefix + digits with a space-separated variation: "WPJF 0012 BLUE MEDIUM".
	normSpaceVariationRe = regexp.MustCompile(`^(WP[A-Z]+)\s*(\d+)\s+(.+)$`)
	// Bare prefix + digits: "WPJF 0015".
	normBareRe = regexp.MustCompile(`^(WP[A-Z]+)\s*(\d+)$`)
)

// Normalize derives the canonical matching identity for a raw SKU.
//
// Unlike Parse, which targets row grouping, Normalize targets matching
// catalog SKUs against folder naming conventions: slashes become dashes,
// whitespace around dashes is stripped, and the resulting Key is
// uppercase with all variation-internal spaces removed. The Variation
// field keeps its raw spacing for display.
//
// Normalization is idempotent on the Key field: feeding a Key back in
// returns the same Key.
func Normalize(raw string) Identity {
	s := collapseWhitespace(raw)
	if s == "" {
		return Identity{}
	}

	s = strings.ReplaceAll(s, "/", "-")
	s = dashSpacingRe.ReplaceAllString(s, "-")

	if m := normDashVariationRe.FindStringSubmatch(s); m != nil {
		return newIdentity(m[1]+m[2], strings.TrimSpace(m[3]))
	}
	if m := normSpaceVariationRe.FindStringSubmatch(s); m != nil {
		return newIdentity(m[1]+m[2], strings.TrimSpace(m[3]))
	}
	if m := normBareRe.FindStringSubmatch(s); m != nil {
		return newIdentity(m[1]+m[2], "")
	}

	// Fallback for codes outside the WP vocabulary: strip spaces and
	// treat the whole thing as the base.
	flat := strings.ReplaceAll(s, " ", "")
	return Identity{
		Key:  strings.ToUpper(flat),
		Base: flat,
	}
}

func newIdentity(base, variation string) Identity {
	id := Identity{Base: base, Variation: variation}
	if variation == "" {
		id.Key = strings.ToUpper(base)
	} else {
		id.Key = strings.ToUpper(base + "-" + strings.ReplaceAll(variation, " ", ""))
	}
	return id
}
