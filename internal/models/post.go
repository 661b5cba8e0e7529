package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a user-authored text record, optionally tagged with a Group.
// AuthorID and CreatedAt are set once at creation and never change; Text
// and GroupID are the only fields the edit flow may touch.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID   *uint          `gorm:"index" json:"group_id,omitempty"`
	Group     *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
