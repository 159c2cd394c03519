package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a focus context that sessions are tracked against
type Project struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"unique;not null" json:"name"`
	Description string     `json:"description"`
	Archived    bool       `gorm:"default:false" json:"archived"`
	ArchivedAt  *time.Time `json:"archived_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:ProjectID" json:"sessions"`
}
