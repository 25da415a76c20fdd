// Package jobs persists asynchronous translation requests so a caller can
// submit markup-bearing text and poll for the reinserted result, instead
// of holding an HTTP connection open for the whole pipeline run.
package jobs

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a Job.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one translate-and-reinsert request, persisted end to end: the
// caller polls Get until Status is StatusDone or StatusFailed.
type Job struct {
	ID         string `gorm:"primaryKey"`
	SourceLang string
	TargetLang string
	SourceText string
	TargetText string
	Status     Status
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store wraps a gorm DB handle scoped to the Job table.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) a sqlite-backed Store at path and
// migrates the Job schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening job store: %w", err)
	}
	if err := db.AutoMigrate(&Job{}); err != nil {
		return nil, fmt.Errorf("migrating job store: %w", err)
	}
	return &Store{db: db}, nil
}

// Create inserts a new pending Job for the given request and returns it.
func (s *Store) Create(sourceLang, targetLang, sourceText string) (*Job, error) {
	job := &Job{
		ID:         uuid.NewString(),
		SourceLang: sourceLang,
		TargetLang: targetLang,
		SourceText: sourceText,
		Status:     StatusPending,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return job, nil
}

// Get fetches a Job by id.
func (s *Store) Get(id string) (*Job, error) {
	var job Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", id, err)
	}
	return &job, nil
}

// MarkRunning transitions a pending job to running.
func (s *Store) MarkRunning(id string) error {
	return s.updateStatus(id, StatusRunning, "", "")
}

// MarkDone transitions a job to done, recording its translated text.
func (s *Store) MarkDone(id, targetText string) error {
	return s.updateStatus(id, StatusDone, targetText, "")
}

// MarkFailed transitions a job to failed, recording the error message.
func (s *Store) MarkFailed(id string, cause error) error {
	return s.updateStatus(id, StatusFailed, "", cause.Error())
}

func (s *Store) updateStatus(id string, status Status, targetText, errMsg string) error {
	updates := map[string]any{"status": status, "updated_at": time.Now()}
	if targetText != "" {
		updates["target_text"] = targetText
	}
	if errMsg != "" {
		updates["error"] = errMsg
	}
	if err := s.db.Model(&Job{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}
	return nil
}
