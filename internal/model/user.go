package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"_id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	Name         string    `json:"name" bson:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" bson:"password" gorm:"size:255;not null"` // Never expose in JSON
	Avatar       string    `json:"avatar" bson:"avatar" gorm:"size:512"`
	Date         time.Time `json:"date" bson:"date"`
}

// BeforeCreate sets the ID and creation date when the caller left them empty.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ensureDefaults()
	return nil
}

func (u *User) ensureDefaults() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
}

// PrepareInsert fills generated fields for stores without gorm hooks.
func (u *User) PrepareInsert() { u.ensureDefaults() }

// Summary returns the public subset embedded into profiles.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// UserSummary is the populated owner reference of a profile.
type UserSummary struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
