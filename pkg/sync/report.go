// pkg/sync/report.go
package sync

import (
	"time"

	"github.com/google/uuid"

	"woosync/pkg/model"
)

// ItemStatus is the outcome bucket for one product group.
type ItemStatus string

const (
	StatusCreated ItemStatus = "created"
	StatusUpdated ItemStatus = "updated"
	StatusPlanned ItemStatus = "planned" // dry run only
	StatusSkipped ItemStatus = "skipped"
	StatusFailed  ItemStatus = "failed"
)

// Skip reasons recorded per group.
const (
	SkipReasonComplete = "complete" // exists with variations and images
)

// ItemResult is the outcome of syncing one product group.
type ItemResult struct {
	SKU        string     `json:"sku" db:"sku"`
	Name       string     `json:"name,omitempty" db:"name"`
	ProductID  int        `json:"product_id,omitempty" db:"product_id"`
	Status     ItemStatus `json:"status" db:"status"`
	Reason     string     `json:"reason,omitempty" db:"reason"`
	Error      string     `json:"error,omitempty" db:"error"`
	Colors     int        `json:"colors,omitempty" db:"colors"`
	Sizes      int        `json:"sizes,omitempty" db:"sizes"`
	Variations int        `json:"variations,omitempty" db:"variations"`
}

// Summary aggregates one sync run: every run produces the three
// user-visible buckets (created/updated, skipped with reason, failed
// with error detail) plus counts and timing.
type Summary struct {
	RunID       string             `json:"run_id"`
	DryRun      bool               `json:"dry_run"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	Duration    time.Duration      `json:"duration_ns"`
	Processed   int                `json:"processed"`
	Created     int                `json:"created"`
	Updated     int                `json:"updated"`
	Skipped     int                `json:"skipped"`
	Failed      int                `json:"failed"`
	Items       []ItemResult       `json:"items"`
	SkippedRows []model.SkippedRow `json:"skipped_rows,omitempty"`
}

// NewSummary initializes a summary for a new run.
func NewSummary(dryRun bool) *Summary {
	return &Summary{
		RunID:     uuid.New().String(),
		DryRun:    dryRun,
		StartTime: time.Now(),
		Items:     make([]ItemResult, 0),
	}
}

// Add incorporates one item result into the summary counters.
func (s *Summary) Add(result ItemResult) {
	s.Items = append(s.Items, result)
	s.Processed++

	switch result.Status {
	case StatusCreated, StatusPlanned:
		s.Created++
	case StatusUpdated:
		s.Updated++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Complete marks the run as finished and calculates its duration.
func (s *Summary) Complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// Succeeded returns how many groups were created or updated.
func (s *Summary) Succeeded() int {
	return s.Created + s.Updated
}
