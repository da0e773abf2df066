package domain

// Viewer projection: annotate an already fetched post with flags relative to
// the requesting user. Pure functions, no I/O — the persistence layer stays
// viewer-agnostic and the viewer-relative logic lives here in one place.

// CommentView is a Comment plus the viewer-relative ownership flag.
type CommentView struct {
	Comment
	UserIsOwner bool `json:"user_is_owner"`
}

// PostView is a Post plus the viewer-relative flags. Comments shadows the
// embedded Post.Comments so the serialized form carries annotated comments.
type PostView struct {
	Post
	UserIsOwner  bool          `json:"user_is_owner"`
	UserHasLiked bool          `json:"user_has_liked"`
	Comments     []CommentView `json:"comments"`
}

// AnnotateOwnership sets UserIsOwner on the post itself.
func AnnotateOwnership(v PostView, viewerID string) PostView {
	v.UserIsOwner = v.Owner.ID == viewerID
	return v
}

// AnnotateLiked sets UserHasLiked from the embedded likes.
func AnnotateLiked(v PostView, viewerID string) PostView {
	v.UserHasLiked = v.LikeByOwnerID(viewerID) != nil
	return v
}

// AnnotateComments replaces every comment with a copy carrying the viewer's
// ownership flag for that comment.
func AnnotateComments(v PostView, viewerID string) PostView {
	out := make([]CommentView, 0, len(v.Post.Comments))
	for _, c := range v.Post.Comments {
		out = append(out, CommentView{Comment: c, UserIsOwner: c.Owner.ID == viewerID})
	}
	v.Comments = out
	return v
}

// Project applies all three annotations. Callers always get a fully
// annotated view, never a partial one.
func Project(p Post, viewerID string) PostView {
	v := PostView{Post: p}
	v = AnnotateOwnership(v, viewerID)
	v = AnnotateLiked(v, viewerID)
	v = AnnotateComments(v, viewerID)
	return v
}
