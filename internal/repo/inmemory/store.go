// Package inmemory is a map-backed PostRepository used by tests. It mirrors
// the Mongo store's contract: absence is nil, sub-array mutations are atomic
// under one lock, and readers get copies, never aliases into the stored
// aggregate.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tazhibayda/posts-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

func New() *Store {
	return &Store{posts: make(map[string]*domain.Post)}
}

func copyPost(p *domain.Post) *domain.Post {
	out := *p
	out.Comments = append([]domain.Comment(nil), p.Comments...)
	out.Likes = append([]domain.Like(nil), p.Likes...)
	return &out
}

func (s *Store) Insert(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := copyPost(p)
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Comments == nil {
		stored.Comments = []domain.Comment{}
	}
	if stored.Likes == nil {
		stored.Likes = []domain.Like{}
	}
	s.posts[stored.ID] = stored
	return copyPost(stored), nil
}

func (s *Store) FindAll(ctx context.Context) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *copyPost(p))
	}
	// map iteration order varies; keep repeated reads stable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(p), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *Store) AppendComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	p.Comments = append(p.Comments, c)
	p.UpdatedAt = time.Now().UTC()
	return copyPost(p), nil
}

func (s *Store) FindComment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			c := p.Comments[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) RemoveComment(ctx context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}

func (s *Store) AppendLike(ctx context.Context, postID string, l domain.Like) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	p.Likes = append(p.Likes, l)
	p.UpdatedAt = time.Now().UTC()
	return copyPost(p), nil
}

func (s *Store) FindLikeByOwnerID(ctx context.Context, postID, ownerID string) (*domain.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	if l := p.LikeByOwnerID(ownerID); l != nil {
		out := *l
		return &out, nil
	}
	return nil, nil
}

func (s *Store) RemoveLikeByOwnerID(ctx context.Context, postID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil
	}
	for i := range p.Likes {
		if p.Likes[i].Owner.ID == ownerID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}
