package sku

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Parse_WellFormedSKUs(t *testing.T) {
	tests := []struct {
		raw       string
		base      string
		variation string
	}{
		{"WPJF 001-127", "WPJF 001", "127"},
		{"WPJF 001 -120", "WPJF 001", "120"},
		{"WPJF 001- 120", "WPJF 001", "120"},
		{"WPGR 001   -226", "WPGR 001", "226"},
		{"WPMF001 ROSE -39", "WPMF001", "39"},
		{"WPJF 0012 BLUE MEDIUM", "WPJF 0012", "BLUE MEDIUM"},
		{"WPJF 0051  FASHION", "WPJF 0051", "FASHION"},
		{"WPJF 0015", "WPJF 0015", ""},
		{"WPCHF001-C1", "WPCHF001-C1", ""}, // non-numeric dash suffix is not a dash variation
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			p := Parse(tc.raw)
			require.Equal(t, tc.base, p.Base)
			require.Equal(t, tc.variation, p.Variation)
		})
	}
}

func Test_Parse_BlankInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t \n"} {
		p := Parse(raw)
		require.True(t, p.IsZero())
		require.False(t, p.HasVariation())
	}
}

func Test_Parse_NumericDashVariationWins(t *testing.T) {
	// Both a trailing dash-numeric variation and an embedded descriptor
	// are present; the numeric variation must not be discarded, and the
	// deep parse only tightens the base.
	p := Parse("WPMF 001 ROSE-39")
	require.Equal(t, "WPMF 001", p.Base)
	require.Equal(t, "39", p.Variation)
}

func Test_Parse_WhitespaceRunsCollapse(t *testing.T) {
	a := Parse("WPJF   001  -  127")
	b := Parse("WPJF 001-127")
	require.Equal(t, b, a)
}

func Test_Parse_UnrecognizedCodeFallsBackToWholeString(t *testing.T) {
	p := Parse("MYSTERY CODE")
	require.Equal(t, "MYSTERY CODE", p.Base)
	require.False(t, p.HasVariation())
}

func Test_BaseCode(t *testing.T) {
	require.Equal(t, "WPJF 001", BaseCode("WPJF 001-127"))
	require.Equal(t, "", BaseCode("  "))
}
