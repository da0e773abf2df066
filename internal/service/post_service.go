package service

import (
	"context"
	"time"

	"github.com/tazhibayda/posts-service/internal/domain"
)

// PostRepository is the persistence contract the service runs on. Every
// method returns absence as nil — turning absence into an error happens
// here, and only here.
type PostRepository interface {
	Insert(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	DeleteByID(ctx context.Context, id string) error
	AppendComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error)
	FindComment(ctx context.Context, postID, commentID string) (*domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) error
	AppendLike(ctx context.Context, postID string, l domain.Like) (*domain.Post, error)
	FindLikeByOwnerID(ctx context.Context, postID, ownerID string) (*domain.Like, error)
	RemoveLikeByOwnerID(ctx context.Context, postID, ownerID string) error
}

type PostService struct {
	repo PostRepository
}

func NewPostService(r PostRepository) *PostService { return &PostService{repo: r} }

func (s *PostService) GetAllPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.NewOpError("get all posts", "", err)
	}
	return posts, nil
}

// GetAllExtendedPosts returns every post annotated for the viewer.
func (s *PostService) GetAllExtendedPosts(ctx context.Context, viewerID string) ([]domain.PostView, error) {
	posts, err := s.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, domain.Project(p, viewerID))
	}
	return out, nil
}

// GetExtendedPostByID returns one post annotated for the viewer; a missing
// post is ErrPostNotFound, same as the bare read.
func (s *PostService) GetExtendedPostByID(ctx context.Context, id, viewerID string) (*domain.PostView, error) {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.Project(*post, viewerID)
	return &view, nil
}

// GetPostByID is the one read that guarantees existence: a missing post is
// ErrPostNotFound, not an empty result.
func (s *PostService) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewOpError("get post by id", id, err)
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, owner domain.Owner, body string) (*domain.Post, error) {
	post := &domain.Post{Body: body, Owner: owner}
	stored, err := s.repo.Insert(ctx, post)
	if err != nil {
		return nil, domain.NewOpError("create post", owner.ID, err)
	}
	return stored, nil
}

func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) error {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Owner.ID != requesterID {
		return domain.ErrUnauthorizedPostDeleting
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return domain.NewOpError("delete post", id, err)
	}
	return nil
}

// GetPostComment resolves the post first, so an unknown post id surfaces as
// ErrPostNotFound. A missing comment inside a live post is nil, not an error.
func (s *PostService) GetPostComment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.repo.FindComment(ctx, postID, commentID)
	if err != nil {
		return nil, domain.NewOpError("get post comment", commentID, err)
	}
	return comment, nil
}

func (s *PostService) CreatePostComment(ctx context.Context, postID, body string, owner domain.Owner) (*domain.PostView, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	comment := domain.Comment{Body: body, Owner: owner, CreatedAt: now, UpdatedAt: now}
	updated, err := s.repo.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, domain.NewOpError("create post comment", postID, err)
	}
	if updated == nil {
		// the post vanished between the existence check and the append
		return nil, domain.ErrPostNotFound
	}
	view := domain.Project(*updated, owner.ID)
	return &view, nil
}

func (s *PostService) DeletePostComment(ctx context.Context, postID, commentID, requesterID string) (*domain.PostView, error) {
	comment, err := s.GetPostComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrPostCommentNotFound
	}
	if comment.Owner.ID != requesterID {
		return nil, domain.ErrUnauthorizedPostCommentDeleting
	}
	if err := s.repo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, domain.NewOpError("delete post comment", commentID, err)
	}
	updated, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	view := domain.Project(*updated, requesterID)
	return &view, nil
}

// GetPostLikeByOwnerID returns the like or nil. No post existence check:
// a missing post and a missing like are indistinguishable here.
func (s *PostService) GetPostLikeByOwnerID(ctx context.Context, postID, ownerID string) (*domain.Like, error) {
	like, err := s.repo.FindLikeByOwnerID(ctx, postID, ownerID)
	if err != nil {
		return nil, domain.NewOpError("get post like", postID, err)
	}
	return like, nil
}

// LikePost appends the like unconditionally. Duplicate prevention is the
// caller's job, via GetPostLikeByOwnerID.
func (s *PostService) LikePost(ctx context.Context, postID string, owner domain.Owner) (*domain.PostView, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	like := domain.Like{Owner: owner, CreatedAt: now, UpdatedAt: now}
	updated, err := s.repo.AppendLike(ctx, postID, like)
	if err != nil {
		return nil, domain.NewOpError("like post", postID, err)
	}
	if updated == nil {
		return nil, domain.ErrPostNotFound
	}
	view := domain.Project(*updated, owner.ID)
	return &view, nil
}

// DislikePost derives the like from the already fetched post rather than a
// second store read. Disliking a post the user never liked is
// ErrPostDislikeUser, and the likes collection is left untouched.
func (s *PostService) DislikePost(ctx context.Context, postID, likeOwnerID string) (*domain.Post, error) {
	post, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikeByOwnerID(likeOwnerID) == nil {
		return nil, domain.ErrPostDislikeUser
	}
	if err := s.repo.RemoveLikeByOwnerID(ctx, postID, likeOwnerID); err != nil {
		return nil, domain.NewOpError("dislike post", postID, err)
	}
	return s.GetPostByID(ctx, postID)
}
