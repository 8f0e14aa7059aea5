package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_Likes(t *testing.T) {
	post := &Post{}
	post.PrepareInsert()

	assert.False(t, post.LikedBy("u1"))

	post.AddLike("u1")
	post.AddLike("u2")
	assert.True(t, post.LikedBy("u1"))
	assert.Equal(t, "u2", post.Likes[0].UserID, "newest like first")

	assert.True(t, post.RemoveLike("u1"))
	assert.False(t, post.LikedBy("u1"))
	assert.False(t, post.RemoveLike("u1"))
	assert.Len(t, post.Likes, 1)
}

func TestPost_PrepareInsert(t *testing.T) {
	post := &Post{ID: "fixed"}
	post.PrepareInsert()

	assert.Equal(t, "fixed", post.ID)
	assert.False(t, post.Date.IsZero())
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
}

func TestProfile_Indexes(t *testing.T) {
	profile := &Profile{
		Experience: []Experience{{ID: "e1"}, {ID: "e2"}},
		Education:  []Education{{ID: "d1"}},
	}

	assert.Equal(t, 1, profile.ExperienceIndex("e2"))
	assert.Equal(t, -1, profile.ExperienceIndex("nope"))
	assert.Equal(t, 0, profile.EducationIndex("d1"))
	assert.Equal(t, -1, profile.EducationIndex("nope"))
}
