// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Content types. The free-form category string is scoped per type.
const (
	TypeJoke       = "joke"
	TypePoem       = "poem"
	TypeStory      = "story"
	TypePickupLine = "pickup-line"
)

// ContentTypes lists every valid content type key.
var ContentTypes = []string{TypeJoke, TypePoem, TypeStory, TypePickupLine}

// IsValidContentType reports whether t is a known content type key.
func IsValidContentType(t string) bool {
	for _, v := range ContentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// StringList stores a slice of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// ContentItem is one posted joke, poem, story or pickup line.
//
// Author identity is immutable after creation: edits and deletes are
// restricted to the author, and the author projection is never mutated from
// the content side. LikeCount and Likes are computed at query time from the
// likes table; the server tally is authoritative and clients never compute
// counts locally.
type ContentItem struct {
	ID        uint           `gorm:"primaryKey" json:"_id"`
	Type      string         `gorm:"not null;index" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Category  string         `gorm:"index" json:"category"`
	Tags      StringList     `gorm:"type:text" json:"tags"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Views     uint64         `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Computed at query time, not persisted.
	Author    Author `gorm:"-" json:"author"`
	Likes     []uint `gorm:"-" json:"likes"`
	LikeCount int    `gorm:"-" json:"likeCount"`
}

// Like records one user's like on one content item.
// The (UserID, ContentID) pair is unique; liking is a toggle.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_content" json:"user_id"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_user_content" json:"content_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User        `gorm:"foreignKey:UserID" json:"-"`
	Content ContentItem `gorm:"foreignKey:ContentID" json:"-"`
}

// UserStats aggregates one user's posting footprint for the dashboard.
type UserStats struct {
	TotalContent  int64            `json:"totalContent"`
	TotalLikes    int64            `json:"totalLikes"`
	TotalViews    int64            `json:"totalViews"`
	ContentByType map[string]int64 `json:"contentByType"`
}
