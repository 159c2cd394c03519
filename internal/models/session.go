package models

import (
	"time"

	"gorm.io/gorm"
)

// Session statuses. Completed and cancelled are terminal.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Session represents one timed focus attempt against a project
type Session struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID   uint      `gorm:"not null" json:"project_id"`
	Status      string    `gorm:"default:active" json:"status"`
	GoalMinutes int       `gorm:"not null" json:"goal_minutes"`
	StartedAt   time.Time `gorm:"not null" json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`

	// TargetEndAt is StartedAt + goal, pushed forward by extends and by
	// paused spans so the countdown stays frozen while paused.
	TargetEndAt time.Time `gorm:"not null" json:"target_end_at"`

	// PausedAt is set while status is paused; PausedSeconds accumulates
	// total paused time across pause/resume cycles.
	PausedAt      *time.Time `json:"paused_at"`
	PausedSeconds int        `json:"paused_seconds"`

	// Counters only ever increment.
	DriftCount       int `gorm:"default:0" json:"drift_count"`
	DistractionCount int `gorm:"default:0" json:"distraction_count"`

	// Set at finalization only.
	ActualDurationMinutes int `json:"actual_duration_minutes"`
	FocusScore            int `json:"focus_score"`

	// Relationships
	Project Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project"`
}

// Terminal reports whether the session can no longer change state.
func (s *Session) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}
