package models

import "time"

// Event types appended to a session's history.
const (
	EventStart       = "start"
	EventPause       = "pause"
	EventResume      = "resume"
	EventEnd         = "end"
	EventExtend      = "extend"
	EventDrift       = "drift"
	EventReturn      = "return"
	EventDistraction = "distraction"
	EventNudgeSoft   = "nudge_soft"
	EventNudgeHard   = "nudge_hard"
	EventRegulation  = "regulation"
)

// Event is an immutable fact in a session's timeline. Rows are only ever
// inserted; ordering is by At ascending, ties broken by ID.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID uint              `gorm:"not null;index" json:"session_id"`
	At        time.Time         `gorm:"not null;index" json:"at"`
	Type      string            `gorm:"not null" json:"type"`
	Metadata  map[string]string `gorm:"serializer:json" json:"metadata"`
}

// Drift types classifying what pulled the user away.
const (
	DriftOffshoot    = "offshoot"
	DriftSideProject = "side_project"
	DriftExternal    = "external_distraction"
)

// DriftEntry records one drift period. It is open while EndedAt is nil;
// at most one entry per session may be open at a time.
type DriftEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SessionID       uint       `gorm:"not null;index" json:"session_id"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Type            string     `gorm:"not null" json:"type"`
	Context         string     `json:"context"`
	Note            string     `json:"note"`
}

// Distraction types a user can self-report.
const (
	DistractionPhone        = "phone"
	DistractionSocialMedia  = "social_media"
	DistractionConversation = "conversation"
	DistractionSnack        = "snack"
	DistractionOther        = "other"
)

// Distraction is a logged self-report, independent of drift.
type Distraction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID uint      `gorm:"not null;index" json:"session_id"`
	At        time.Time `gorm:"not null" json:"at"`
	Type      string    `gorm:"not null" json:"type"`
	Note      string    `json:"note"`
}
