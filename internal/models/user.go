// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered Creationity member.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"_id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Content   []ContentItem  `gorm:"foreignKey:UserID" json:"content,omitempty"`
}

// Author is the read-only projection of a user embedded in content items.
// It carries only what the item views need to render and to decide whether
// the edit/delete controls are offered.
type Author struct {
	ID       uint   `json:"_id"`
	Username string `json:"username"`
}
