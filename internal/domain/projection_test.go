package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tazhibayda/posts-service/internal/domain"
)

var (
	alice = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60001", Name: "Alice", Surname: "Doe", Avatar: "alice.png"}
	bob   = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60002", Name: "Bob", Surname: "Roe", Avatar: "bob.png"}
	carol = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60003", Name: "Carol", Surname: "Poe", Avatar: "carol.png"}
)

func samplePost() domain.Post {
	now := time.Now().UTC()
	return domain.Post{
		ID:    "64b5f1e0a1b2c3d4e5f61111",
		Body:  "hello",
		Owner: alice,
		Comments: []domain.Comment{
			{ID: "64b5f1e0a1b2c3d4e5f62221", Body: "hi", Owner: bob, CreatedAt: now, UpdatedAt: now},
			{ID: "64b5f1e0a1b2c3d4e5f62222", Body: "hey", Owner: alice, CreatedAt: now, UpdatedAt: now},
		},
		Likes:     []domain.Like{{Owner: bob, CreatedAt: now, UpdatedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProject_OwnerViewer(t *testing.T) {
	v := domain.Project(samplePost(), alice.ID)

	assert.True(t, v.UserIsOwner)
	assert.False(t, v.UserHasLiked)
	assert.Len(t, v.Comments, 2)
	assert.False(t, v.Comments[0].UserIsOwner)
	assert.True(t, v.Comments[1].UserIsOwner)
}

func TestProject_LikerViewer(t *testing.T) {
	v := domain.Project(samplePost(), bob.ID)

	assert.False(t, v.UserIsOwner)
	assert.True(t, v.UserHasLiked)
	assert.True(t, v.Comments[0].UserIsOwner)
	assert.False(t, v.Comments[1].UserIsOwner)
}

// Every comment carries its flag, even for a viewer unrelated to the post.
func TestProject_Complete(t *testing.T) {
	p := samplePost()
	v := domain.Project(p, carol.ID)

	assert.False(t, v.UserIsOwner)
	assert.False(t, v.UserHasLiked)
	assert.Len(t, v.Comments, len(p.Comments))
	for i, c := range v.Comments {
		assert.Equal(t, p.Comments[i].ID, c.ID)
		assert.False(t, c.UserIsOwner)
	}
}

func TestProject_EmptyCollections(t *testing.T) {
	p := samplePost()
	p.Comments = nil
	p.Likes = nil

	v := domain.Project(p, alice.ID)

	assert.True(t, v.UserIsOwner)
	assert.False(t, v.UserHasLiked)
	assert.NotNil(t, v.Comments)
	assert.Empty(t, v.Comments)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	p := samplePost()
	_ = domain.Project(p, bob.ID)

	assert.Equal(t, samplePost().Comments[0].Body, p.Comments[0].Body)
	assert.Len(t, p.Likes, 1)
}
