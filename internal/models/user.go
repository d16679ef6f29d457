// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account on the Cookbook platform.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Recipes   []Recipe  `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
}
