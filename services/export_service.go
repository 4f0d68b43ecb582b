package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"caption-studio-server/models"
	"caption-studio-server/pkg/cache"
	"caption-studio-server/pkg/compositor"
	"caption-studio-server/pkg/encoder"
	"caption-studio-server/pkg/logger"
	"caption-studio-server/pkg/queue"
	"caption-studio-server/pkg/timeline"
)

var ErrInvalidExportSettings = errors.New("invalid export settings")

// PlanStore keeps resolved frame plans until the encoder fetches them.
type PlanStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// ExportPlan is the resolved overlay of every frame in the export range.
type ExportPlan struct {
	JobID  string             `json:"job_id"`
	From   float64            `json:"from"`
	To     float64            `json:"to"`
	FPS    int                `json:"fps"`
	Frames []compositor.Frame `json:"frames"`
}

// OverlayExportPayload is the task the encoder consumes.
type OverlayExportPayload struct {
	JobID      string                `json:"job_id"`
	SessionID  string                `json:"session_id"`
	PlanKey    string                `json:"plan_key"`
	From       float64               `json:"from"`
	To         float64               `json:"to"`
	FrameCount int                   `json:"frame_count"`
	Settings   models.ExportSettings `json:"settings"`
	Encoder    *encoder.Profile      `json:"encoder"`
}

type ExportService struct {
	editor    *EditorService
	jobs      ExportJobRepository
	plans     PlanStore
	publisher queue.Publisher
	workers   int
	maxFrames int
	planTTL   time.Duration
}

func NewExportService(editor *EditorService, jobs ExportJobRepository, plans PlanStore, publisher queue.Publisher, workers, maxFrames int, planTTL time.Duration) *ExportService {
	if maxFrames <= 0 || maxFrames > compositor.MaxPlanFrames {
		maxFrames = compositor.MaxPlanFrames
	}
	return &ExportService{
		editor:    editor,
		jobs:      jobs,
		plans:     plans,
		publisher: publisher,
		workers:   workers,
		maxFrames: maxFrames,
		planTTL:   planTTL,
	}
}

// CreateExport resolves the overlay for the requested range, stores the
// plan and hands the job to the encoder.
func (s *ExportService) CreateExport(ctx context.Context, sessionID string, req *models.ExportJobCreateRequest) (*models.ExportJob, error) {
	sess, err := s.editor.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	settings := req.Settings()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExportSettings, err)
	}

	scene := sess.Scene()
	from, to := 0.0, scene.Snapshot.Duration()
	if req.From != nil {
		from = timeline.RoundTime(*req.From)
	}
	if req.To != nil {
		to = timeline.RoundTime(*req.To)
	}
	if to < from {
		return nil, fmt.Errorf("%w: range end %.1f is before start %.1f", ErrInvalidExportSettings, to, from)
	}

	if n := compositor.FrameCount(from, to, settings.FPS); n > s.maxFrames {
		return nil, fmt.Errorf("%w: range %.1f-%.1f needs more than %d frames", ErrInvalidExportSettings, from, to, s.maxFrames)
	}

	profile, err := encoder.BuildProfile(settings, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExportSettings, err)
	}

	frames, err := compositor.PlanFrames(ctx, scene, from, to, settings.FPS, s.workers)
	if err != nil {
		if errors.Is(err, compositor.ErrEmptyRange) || errors.Is(err, compositor.ErrTooManyFrames) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExportSettings, err)
		}
		return nil, fmt.Errorf("failed to plan frames: %w", err)
	}

	jobID := "export_" + uuid.NewString()
	log := sess.log().WithField("job_id", jobID)

	planKey := cache.ExportPlanKey(jobID)
	plan := ExportPlan{JobID: jobID, From: from, To: to, FPS: settings.FPS, Frames: frames}
	if err := s.plans.Set(ctx, planKey, plan, s.planTTL); err != nil {
		return nil, fmt.Errorf("failed to store frame plan: %w", err)
	}

	job := &models.ExportJob{
		JobID:      jobID,
		SessionID:  sessionID,
		Status:     models.ExportStatusPending,
		Resolution: settings.Resolution,
		Format:     settings.Format,
		Quality:    settings.Quality,
		FrameRate:  settings.FPS,
		RangeStart: from,
		RangeEnd:   to,
		FrameCount: len(frames),
		PlanKey:    planKey,
		Encoder:    profile.Map(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	task, err := queue.NewTask(queue.TaskTypeOverlayExport, OverlayExportPayload{
		JobID:      jobID,
		SessionID:  sessionID,
		PlanKey:    planKey,
		From:       from,
		To:         to,
		FrameCount: len(frames),
		Settings:   settings,
		Encoder:    profile,
	}, 5)
	if err == nil {
		err = s.publisher.PublishTask(queue.QueueOverlayExport, task)
	}
	if err != nil {
		log.Errorf("Failed to queue export: %v", err)
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = err.Error()
		if saveErr := s.jobs.Save(ctx, job); saveErr != nil {
			log.Errorf("Failed to record export failure: %v", saveErr)
		}
		return nil, fmt.Errorf("failed to queue export: %w", err)
	}

	job.Status = models.ExportStatusQueued
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"frames": len(frames),
		"format": settings.Format,
	}).Info("Export queued")
	return job, nil
}

// GetJob returns a job only to the session that created it.
func (s *ExportService) GetJob(ctx context.Context, sessionID, jobID string) (*models.ExportJob, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.SessionID != sessionID {
		return nil, fmt.Errorf("%w: %s", ErrExportJobNotFound, jobID)
	}
	return job, nil
}

func (s *ExportService) ListJobs(ctx context.Context, sessionID string) ([]models.ExportJob, error) {
	return s.jobs.ListBySession(ctx, sessionID)
}

// HandleStatusReport applies an encoder progress report. It is the
// handler of the export status queue.
func (s *ExportService) HandleStatusReport(task *queue.Task) error {
	var report models.ExportStatusReport
	if err := queue.DecodePayload(task, &report); err != nil {
		return err
	}
	return s.ApplyStatusReport(context.Background(), report)
}

func (s *ExportService) ApplyStatusReport(ctx context.Context, report models.ExportStatusReport) error {
	job, err := s.jobs.Get(ctx, report.JobID)
	if err != nil {
		return err
	}
	if isTerminal(job.Status) {
		logger.WithJob(job.SessionID, job.JobID).WithField("status", job.Status).
			Debug("Ignoring report for finished export")
		return nil
	}

	now := time.Now()
	switch report.Status {
	case models.ExportStatusEncoding:
		if job.StartedAt == nil {
			job.StartedAt = &now
		}
	case models.ExportStatusCompleted:
		job.OutputURL = report.OutputURL
		job.CompletedAt = &now
		report.Progress = 100
	case models.ExportStatusFailed:
		job.ErrorMessage = report.Error
		job.CompletedAt = &now
	default:
		return fmt.Errorf("unknown export status %q for job %s", report.Status, report.JobID)
	}

	job.Status = report.Status
	job.Progress = clampProgress(report.Progress)
	if err := s.jobs.Save(ctx, job); err != nil {
		return err
	}

	logger.WithJob(job.SessionID, job.JobID).WithFields(logrus.Fields{
		"status":   job.Status,
		"progress": job.Progress,
	}).Info("Export status updated")
	return nil
}

func isTerminal(status string) bool {
	return status == models.ExportStatusCompleted || status == models.ExportStatusFailed
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
