package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public résumé of a user. Sub-lists are stored inline with the
// document: as JSON columns on SQL drivers and as arrays on MongoDB.
type Profile struct {
	ID             string       `json:"_id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	UserID         string       `json:"-" bson:"user" gorm:"type:varchar(36);uniqueIndex;not null"`
	User           *UserSummary `json:"user,omitempty" bson:"-" gorm:"-"`
	Username       string       `json:"username" bson:"username" gorm:"size:255;index"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty" gorm:"size:255"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty" gorm:"size:512"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty" gorm:"size:255"`
	Status         string       `json:"status" bson:"status" gorm:"size:255;not null"`
	Skills         []string     `json:"skills" bson:"skills" gorm:"serializer:json;type:text"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty" gorm:"type:text"`
	GitHubUsername string       `json:"githubusername,omitempty" bson:"githubusername,omitempty" gorm:"size:255"`
	Social         Social       `json:"social" bson:"social" gorm:"embedded;embeddedPrefix:social_"`
	Experience     []Experience `json:"experience" bson:"experience" gorm:"serializer:json;type:text"`
	Education      []Education  `json:"education" bson:"education" gorm:"serializer:json;type:text"`
	Date           time.Time    `json:"date" bson:"date"`
}

// Social holds the profile's social network links.
type Social struct {
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty" gorm:"size:512"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty" gorm:"size:512"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty" gorm:"size:512"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty" gorm:"size:512"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty" gorm:"size:512"`
	TikTok    string `json:"tiktok,omitempty" bson:"tiktok,omitempty" gorm:"size:512"`
}

// Experience is a single job entry.
type Experience struct {
	ID          string     `json:"_id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

// Education is a single school entry.
type Education struct {
	ID           string     `json:"_id" bson:"_id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

// BeforeCreate sets the ID and creation date when the caller left them empty.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	p.PrepareInsert()
	return nil
}

// PrepareInsert fills generated fields and normalises nil lists.
func (p *Profile) PrepareInsert() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}

// ExperienceIndex returns the position of the entry with id, or -1.
func (p *Profile) ExperienceIndex(id string) int {
	for i, exp := range p.Experience {
		if exp.ID == id {
			return i
		}
	}
	return -1
}

// EducationIndex returns the position of the entry with id, or -1.
func (p *Profile) EducationIndex(id string) int {
	for i, edu := range p.Education {
		if edu.ID == id {
			return i
		}
	}
	return -1
}
