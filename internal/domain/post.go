package domain

import "time"

// Owner is the public profile of the user who created a post, comment or
// like, copied at creation time. It is never refreshed afterwards: if the
// user renames themselves, existing content keeps the old snapshot.
type Owner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Avatar  string `json:"avatar"`
}

type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Owner     Owner     `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like carries no body of its own; it is identified by its owner id,
// one like per user per post.
type Like struct {
	Owner     Owner     `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is the aggregate root: comments and likes live inside the post and
// are persisted and fetched together with it.
type Post struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Owner     Owner     `json:"owner"`
	Comments  []Comment `json:"comments"`
	Likes     []Like    `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeByOwnerID returns the like belonging to ownerID, or nil.
func (p *Post) LikeByOwnerID(ownerID string) *Like {
	for i := range p.Likes {
		if p.Likes[i].Owner.ID == ownerID {
			return &p.Likes[i]
		}
	}
	return nil
}
