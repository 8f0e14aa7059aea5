package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. Author name and avatar are copied at creation time so the
// feed renders without joining users.
type Post struct {
	ID       string    `json:"_id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	UserID   string    `json:"user" bson:"user" gorm:"type:varchar(36);index;not null"`
	Text     string    `json:"text" bson:"text" gorm:"type:text;not null"`
	Name     string    `json:"name" bson:"name" gorm:"size:255"`
	Avatar   string    `json:"avatar" bson:"avatar" gorm:"size:512"`
	Likes    []Like    `json:"likes" bson:"likes" gorm:"serializer:json;type:text"`
	Comments []Comment `json:"comments" bson:"comments" gorm:"serializer:json;type:text"`
	Date     time.Time `json:"date" bson:"date" gorm:"index"`
}

// Like records that a user liked a post.
type Like struct {
	ID     string `json:"_id" bson:"_id"`
	UserID string `json:"user" bson:"user"`
}

// Comment is a reply on a post.
type Comment struct {
	ID     string    `json:"_id" bson:"_id"`
	UserID string    `json:"user" bson:"user"`
	Text   string    `json:"text" bson:"text"`
	Name   string    `json:"name" bson:"name"`
	Avatar string    `json:"avatar" bson:"avatar"`
	Date   time.Time `json:"date" bson:"date"`
}

// BeforeCreate sets the ID and creation date when the caller left them empty.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	p.PrepareInsert()
	return nil
}

// PrepareInsert fills generated fields and normalises nil lists.
func (p *Post) PrepareInsert() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// LikedBy reports whether userID already likes the post.
func (p *Post) LikedBy(userID string) bool {
	return p.likeIndex(userID) >= 0
}

// AddLike prepends a like for userID.
func (p *Post) AddLike(userID string) {
	p.Likes = append([]Like{{ID: uuid.NewString(), UserID: userID}}, p.Likes...)
}

// RemoveLike drops the like of userID and reports whether one existed.
func (p *Post) RemoveLike(userID string) bool {
	i := p.likeIndex(userID)
	if i < 0 {
		return false
	}
	p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
	return true
}

func (p *Post) likeIndex(userID string) int {
	for i, like := range p.Likes {
		if like.UserID == userID {
			return i
		}
	}
	return -1
}

// CommentIndex returns the position of the comment with id, or -1.
func (p *Post) CommentIndex(id string) int {
	for i, c := range p.Comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}
