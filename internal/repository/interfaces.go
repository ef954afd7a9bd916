package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procmine/docflow/internal/domain"
)

// RunSummary is one persisted ingestion run.
type RunSummary struct {
	RunID     uuid.UUID
	Source    string
	CreatedAt time.Time
	Documents int
	Edges     int
	Warnings  int
}

// DatasetRepository persists finished datasets.
type DatasetRepository interface {
	// SaveDataset writes the whole dataset in one transaction keyed by its
	// run id. Saving the same run id twice is an error.
	SaveDataset(ctx context.Context, ds *domain.Dataset) error
	// ListRuns returns summaries of persisted runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	// DeleteRun removes a run and everything saved under it.
	DeleteRun(ctx context.Context, runID uuid.UUID) error
}
