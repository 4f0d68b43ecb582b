package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"caption-studio-server/models"
)

var ErrExportJobNotFound = errors.New("export job not found")

// ExportJobRepository persists export jobs.
type ExportJobRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	Save(ctx context.Context, job *models.ExportJob) error
	Get(ctx context.Context, jobID string) (*models.ExportJob, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.ExportJob, error)
}

type gormExportJobRepository struct {
	db *gorm.DB
}

func NewExportJobRepository(db *gorm.DB) ExportJobRepository {
	return &gormExportJobRepository{db: db}
}

func (r *gormExportJobRepository) Create(ctx context.Context, job *models.ExportJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create export job: %w", err)
	}
	return nil
}

func (r *gormExportJobRepository) Save(ctx context.Context, job *models.ExportJob) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("failed to update export job %s: %w", job.JobID, err)
	}
	return nil
}

func (r *gormExportJobRepository) Get(ctx context.Context, jobID string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrExportJobNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}
	return &job, nil
}

func (r *gormExportJobRepository) ListBySession(ctx context.Context, sessionID string) ([]models.ExportJob, error) {
	var jobs []models.ExportJob
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}
	return jobs, nil
}
