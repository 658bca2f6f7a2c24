package repositories

import (
	"context"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// ArtifactStore persists the files produced by a pulse run
type ArtifactStore interface {
	// SaveRun writes the signals, run, report and notes files of one run
	SaveRun(ctx context.Context, artifacts entities.RunArtifacts) (entities.SavedPaths, error)
	// SaveRaw writes a single diagnostic file under the run's folder
	SaveRaw(ctx context.Context, folder, name, content string) (string, error)
}

// HistoryStore keeps a bounded, append-only log of run summaries
type HistoryStore interface {
	Append(ctx context.Context, entry entities.HistoryEntry) error
	// Recent returns up to n entries, newest first
	Recent(ctx context.Context, n int) ([]entities.HistoryEntry, error)
}

// RunRepository defines persistence operations for pulse run records
type RunRepository interface {
	Save(ctx context.Context, run *entities.PulseRun) error
	GetByRunID(ctx context.Context, runID string) (*entities.PulseRun, error)
	ListRecent(ctx context.Context, limit int) ([]*entities.PulseRun, error)
}
