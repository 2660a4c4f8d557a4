package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RunKindPeriod   = "period"
	RunKindBackfill = "backfill"

	RunStatusSucceeded = "succeeded"
	RunStatusPartial   = "partial"
	RunStatusFailed    = "failed"
)

// ReconcileRun is the audit row written once per reconciliation run.
// Errors holds the per-actor failure list as json, shaped like
// [{"actor_id": "...", "error": "..."}].
type ReconcileRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string         `gorm:"column:kind;not null" json:"kind"`
	Year       int            `gorm:"column:year;not null;index:idx_reconcile_run_year" json:"year"`
	Status     string         `gorm:"column:status;not null" json:"status"`
	Processed  int            `gorm:"column:processed;not null" json:"processed"`
	Failed     int            `gorm:"column:failed;not null" json:"failed"`
	Errors     datatypes.JSON `gorm:"column:errors" json:"errors,omitempty"`
	StartedAt  time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt time.Time      `gorm:"column:finished_at;not null" json:"finished_at"`
}

func (ReconcileRun) TableName() string { return "reconcile_runs" }
