package queue

// Routing keys on the posts.events exchange.
const (
	Exchange         = "posts.events"
	KeyPostCreated   = "post.created"
	KeyPostDeleted   = "post.deleted"
	KeyPostCommented = "post.commented"
	KeyPostLiked     = "post.liked"
)

type PostCreated struct {
	PostID  string `json:"post_id"`
	OwnerID string `json:"owner_id"`
}

type PostDeleted struct {
	PostID  string `json:"post_id"`
	OwnerID string `json:"owner_id"`
}

type PostCommented struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
	OwnerID   string `json:"owner_id"`
}

type PostLiked struct {
	PostID  string `json:"post_id"`
	OwnerID string `json:"owner_id"`
}
