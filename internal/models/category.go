package models

import (
	"strings"
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameKey   string    `gorm:"size:100;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryKey is the case-insensitive identity of a category name.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
