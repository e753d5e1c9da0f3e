package sku

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Normalize_FolderNamingConventions(t *testing.T) {
	tests := []struct {
		raw       string
		key       string
		base      string
		variation string
	}{
		{"WPJF 008- 141", "WPJF008-141", "WPJF008", "141"},
		{"WPJF 001 -120", "WPJF001-120", "WPJF001", "120"},
		{"WPJF 001-127", "WPJF001-127", "WPJF001", "127"},
		{"WPCHF001 /C1", "WPCHF001-C1", "WPCHF001", "C1"},
		{"WPJF 0012 BLUE MEDIUM", "WPJF0012-BLUEMEDIUM", "WPJF0012", "BLUE MEDIUM"},
		{"WPJF 0051  FASHION", "WPJF0051-FASHION", "WPJF0051", "FASHION"},
		{"WPJF 0015", "WPJF0015", "WPJF0015", ""},
		{"GR 123 X", "GR123X", "GR123X", ""}, // outside the WP vocabulary
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			id := Normalize(tc.raw)
			require.Equal(t, tc.key, id.Key)
			require.Equal(t, tc.base, id.Base)
			require.Equal(t, tc.variation, id.Variation)
		})
	}
}

func Test_Normalize_BlankInput(t *testing.T) {
	require.True(t, Normalize("").IsZero())
	require.True(t, Normalize("   ").IsZero())
}

// SKUs differing only in whitespace runs, dash spacing, case, or
// slash-vs-dash separators must collapse to the same Key.
func Test_Normalize_EquivalenceClasses(t *testing.T) {
	classes := [][]string{
		{"WPJF 001-120", "WPJF 001 -120", "WPJF 001  -  120", "WPJF001-120", "wpjf 001-120"},
		{"WPCHF001 /C1", "WPCHF001-C1", "WPCHF001 - C1", "WPCHF 001/C1"},
		{"WPJF 0012 BLUE MEDIUM", "WPJF0012 BLUE  MEDIUM"},
	}

	for _, class := range classes {
		want := Normalize(class[0]).Key
		for _, raw := range class[1:] {
			require.Equal(t, want, Normalize(raw).Key, "raw %q", raw)
		}
	}
}

func Test_Normalize_KeyIsIdempotent(t *testing.T) {
	raws := []string{
		"WPJF 008- 141",
		"WPCHF001 /C1",
		"WPJF 0012 BLUE MEDIUM",
		"WPJF 0015",
		"ODD CODE 77",
	}
	for _, raw := range raws {
		key := Normalize(raw).Key
		require.Equal(t, key, Normalize(key).Key, "raw %q", raw)
	}
}
