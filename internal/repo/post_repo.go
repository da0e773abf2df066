package repo

import (
	"context"

	"github.com/tazhibayda/posts-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepo mirrors the store operations one to one and translates between
// the storage shape and the domain shape. Absence stays data here: a missing
// post or item is returned as nil, never as an error. Business rules
// (ownership, existence guarantees) belong to the service above.
type PostRepo struct {
	store *Store
}

func NewPostRepo(s *Store) *PostRepo { return &PostRepo{store: s} }

func (r *PostRepo) Insert(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	doc, err := postToDoc(p)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.insertPost(ctx, doc)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrPostNotStored
	}
	out := docToPost(stored)
	return &out, nil
}

func (r *PostRepo) FindAll(ctx context.Context) ([]domain.Post, error) {
	docs, err := r.store.findAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, docToPost(&docs[i]))
	}
	return out, nil
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil // no post can exist under a malformed id
	}
	doc, err := r.store.findPostByID(ctx, oid)
	if err != nil || doc == nil {
		return nil, err
	}
	out := docToPost(doc)
	return &out, nil
}

func (r *PostRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return r.store.deletePostByID(ctx, oid)
}

func (r *PostRepo) AppendComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil
	}
	doc, err := commentToDoc(c)
	if err != nil {
		return nil, err
	}
	updated, err := r.store.pushComment(ctx, oid, doc)
	if err != nil || updated == nil {
		return nil, err
	}
	out := docToPost(updated)
	return &out, nil
}

func (r *PostRepo) FindComment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, nil
	}
	doc, err := r.store.findComment(ctx, pid, cid)
	if err != nil || doc == nil {
		return nil, err
	}
	out := docToComment(doc)
	return &out, nil
}

func (r *PostRepo) RemoveComment(ctx context.Context, postID, commentID string) error {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil
	}
	return r.store.pullComment(ctx, pid, cid)
}

func (r *PostRepo) AppendLike(ctx context.Context, postID string, l domain.Like) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil
	}
	doc, err := likeToDoc(l)
	if err != nil {
		return nil, err
	}
	updated, err := r.store.pushLike(ctx, oid, doc)
	if err != nil || updated == nil {
		return nil, err
	}
	out := docToPost(updated)
	return &out, nil
}

func (r *PostRepo) FindLikeByOwnerID(ctx context.Context, postID, ownerID string) (*domain.Like, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil
	}
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}
	doc, err := r.store.findLikeByOwnerID(ctx, pid, uid)
	if err != nil || doc == nil {
		return nil, err
	}
	out := docToLike(doc)
	return &out, nil
}

func (r *PostRepo) RemoveLikeByOwnerID(ctx context.Context, postID, ownerID string) error {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil
	}
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil
	}
	return r.store.pullLikeByOwnerID(ctx, pid, uid)
}
