package sync

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Journal_RecordAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	journal, err := OpenJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	summary := NewSummary(false)
	summary.Add(ItemResult{SKU: "WPJF 001", Name: "Jean slim", ProductID: 42, Status: StatusCreated, Variations: 3})
	summary.Add(ItemResult{SKU: "WPGR 002", Status: StatusFailed, Error: "[API] Error: boom"})
	summary.Complete()

	require.NoError(t, journal.Record(context.Background(), summary))

	runs, err := journal.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, summary.RunID, runs[0].RunID)
	require.Equal(t, 2, runs[0].Processed)
	require.Equal(t, 1, runs[0].Created)
	require.Equal(t, 1, runs[0].Failed)

	items, err := journal.Items(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "WPJF 001", items[0].SKU)
	require.Equal(t, StatusCreated, items[0].Status)
	require.Equal(t, 42, items[0].ProductID)
	require.Equal(t, StatusFailed, items[1].Status)
}

func Test_Journal_KeepsRunsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	journal, err := OpenJournal(path)
	require.NoError(t, err)
	summary := NewSummary(true)
	summary.Complete()
	require.NoError(t, journal.Record(context.Background(), summary))
	require.NoError(t, journal.Close())

	journal, err = OpenJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	runs, err := journal.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.True(t, runs[0].DryRun)
}

func Test_WriteJSONLog(t *testing.T) {
	dir := t.TempDir()

	summary := NewSummary(true)
	summary.Add(ItemResult{SKU: "WPJF 001", Status: StatusPlanned})
	summary.Complete()

	path, err := WriteJSONLog(dir, summary)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, summary.RunID, decoded.RunID)
	require.Len(t, decoded.Items, 1)
	require.Equal(t, StatusPlanned, decoded.Items[0].Status)
}
