package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// PulseRunRepository handles pulse run records in Postgres
type PulseRunRepository struct {
	db *gorm.DB
}

// NewPulseRunRepository creates a new pulse run repository
func NewPulseRunRepository(db *gorm.DB) *PulseRunRepository {
	return &PulseRunRepository{db: db}
}

// Save inserts a run record
func (r *PulseRunRepository) Save(ctx context.Context, run *entities.PulseRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// GetByRunID retrieves a run by its run id
func (r *PulseRunRepository) GetByRunID(ctx context.Context, runID string) (*entities.PulseRun, error) {
	var run entities.PulseRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

// ListRecent retrieves the latest runs, newest first
func (r *PulseRunRepository) ListRecent(ctx context.Context, limit int) ([]*entities.PulseRun, error) {
	if limit <= 0 {
		return []*entities.PulseRun{}, nil
	}
	var runs []*entities.PulseRun
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
