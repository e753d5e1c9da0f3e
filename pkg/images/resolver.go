// pkg/images/resolver.go
package images

import (
	"strings"

	"woosync/pkg/sku"
)

// Resolve finds the image set for a raw SKU using a fallback cascade,
// returning the first non-empty match:
//
//  1. exact normalized key
//  2. base + "-" + variation with internal spaces removed
//  3. base alone (base-level folder, no per-variant images)
//  4. first folder key, in scan order, starting with the base
//
// No match at any stage returns an empty set; that is a normal outcome,
// not an error.
func (ix *Index) Resolve(rawSKU string) []string {
	id := sku.Normalize(rawSKU)
	if id.IsZero() {
		return nil
	}

	if entry, ok := ix.Lookup(id.Key); ok {
		return entry.Images
	}

	if id.Variation != "" {
		key := strings.ToUpper(id.Base + "-" + strings.ReplaceAll(id.Variation, " ", ""))
		if entry, ok := ix.Lookup(key); ok {
			return entry.Images
		}
	}

	base := strings.ToUpper(id.Base)
	if entry, ok := ix.Lookup(base); ok {
		return entry.Images
	}

	for _, key := range ix.keys {
		if strings.HasPrefix(key, base) {
			return ix.entries[key].Images
		}
	}

	return nil
}
