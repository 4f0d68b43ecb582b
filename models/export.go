package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ExportSettings struct {
	Resolution string `json:"resolution" yaml:"resolution"`
	Format     string `json:"format" yaml:"format"`
	Quality    string `json:"quality" yaml:"quality"`
	FPS        int    `json:"fps" yaml:"fps"`
}

var (
	ExportResolutions = []string{"original", "720p", "1080p", "4k"}
	ExportFormats     = []string{"original", "mp4", "webm", "mov"}
	ExportQualities   = []string{"standard", "high", "ultra"}
	ExportFrameRates  = []int{30, 60}
)

func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Resolution: "original",
		Format:     "original",
		Quality:    "high",
		FPS:        30,
	}
}

// WithDefaults fills zero fields from DefaultExportSettings.
func (s ExportSettings) WithDefaults() ExportSettings {
	d := DefaultExportSettings()
	if s.Resolution == "" {
		s.Resolution = d.Resolution
	}
	if s.Format == "" {
		s.Format = d.Format
	}
	if s.Quality == "" {
		s.Quality = d.Quality
	}
	if s.FPS == 0 {
		s.FPS = d.FPS
	}
	return s
}

func (s ExportSettings) Validate() error {
	if !containsString(ExportResolutions, s.Resolution) {
		return fmt.Errorf("unsupported resolution %q", s.Resolution)
	}
	if !containsString(ExportFormats, s.Format) {
		return fmt.Errorf("unsupported format %q", s.Format)
	}
	if !containsString(ExportQualities, s.Quality) {
		return fmt.Errorf("unsupported quality %q", s.Quality)
	}
	for _, fps := range ExportFrameRates {
		if fps == s.FPS {
			return nil
		}
	}
	return fmt.Errorf("unsupported frame rate %d", s.FPS)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Export job states.
const (
	ExportStatusPending   = "pending"
	ExportStatusQueued    = "queued"
	ExportStatusEncoding  = "encoding"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ExportJob tracks an overlay export handed to the external encoder.
type ExportJob struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	JobID     string `json:"job_id" gorm:"uniqueIndex;not null;size:50"`
	SessionID string `json:"session_id" gorm:"index;not null;size:50"`

	Status   string `json:"status" gorm:"default:'pending';size:20"`
	Progress int    `json:"progress" gorm:"default:0"`

	Resolution string `json:"resolution" gorm:"size:20"`
	Format     string `json:"format" gorm:"size:20"`
	Quality    string `json:"quality" gorm:"size:20"`
	FrameRate  int    `json:"frame_rate"`

	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`
	FrameCount int     `json:"frame_count"`
	PlanKey    string  `json:"plan_key" gorm:"size:100"`
	Encoder    JSON    `json:"encoder" gorm:"type:json"`

	OutputURL    string `json:"output_url" gorm:"size:500"`
	ErrorMessage string `json:"error_message" gorm:"type:text"`

	StartedAt   *time.Time     `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (j *ExportJob) Settings() ExportSettings {
	return ExportSettings{
		Resolution: j.Resolution,
		Format:     j.Format,
		Quality:    j.Quality,
		FPS:        j.FrameRate,
	}
}

type ExportJobCreateRequest struct {
	Resolution string   `json:"resolution" binding:"omitempty,oneof=original 720p 1080p 4k"`
	Format     string   `json:"format" binding:"omitempty,oneof=original mp4 webm mov"`
	Quality    string   `json:"quality" binding:"omitempty,oneof=standard high ultra"`
	FPS        int      `json:"fps" binding:"omitempty,oneof=30 60"`
	From       *float64 `json:"from" binding:"omitempty,min=0"`
	To         *float64 `json:"to" binding:"omitempty,min=0"`
	Width      int      `json:"width" binding:"omitempty,min=1,max=7680"`
	Height     int      `json:"height" binding:"omitempty,min=1,max=4320"`
}

func (r *ExportJobCreateRequest) Settings() ExportSettings {
	return ExportSettings{
		Resolution: r.Resolution,
		Format:     r.Format,
		Quality:    r.Quality,
		FPS:        r.FPS,
	}.WithDefaults()
}

// ExportStatusReport is what the encoder sends back on the status queue.
type ExportStatusReport struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	OutputURL string `json:"output_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}
