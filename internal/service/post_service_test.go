package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/posts-service/internal/domain"
	"github.com/tazhibayda/posts-service/internal/repo/inmemory"
	"github.com/tazhibayda/posts-service/internal/service"
)

var (
	alice = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60001", Name: "Alice", Surname: "Doe", Avatar: "alice.png"}
	bob   = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60002", Name: "Bob", Surname: "Roe", Avatar: "bob.png"}
	carol = domain.Owner{ID: "64b5f1e0a1b2c3d4e5f60003", Name: "Carol", Surname: "Poe", Avatar: "carol.png"}
)

func newService(t *testing.T) (*service.PostService, *domain.Post) {
	t.Helper()
	svc := service.NewPostService(inmemory.New())
	post, err := svc.CreatePost(context.Background(), alice, "first post")
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	return svc, post
}

func TestGetPostByID_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetPostByID(context.Background(), "64b5f1e0a1b2c3d4e5f6ffff")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCreatePost_SnapshotsOwner(t *testing.T) {
	svc, post := newService(t)

	assert.Equal(t, alice, post.Owner)
	assert.Empty(t, post.Comments)
	assert.Empty(t, post.Likes)

	got, err := svc.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first post", got.Body)
}

func TestDeletePost_OwnershipGated(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	err := svc.DeletePost(ctx, post.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedPostDeleting)

	// the failed delete left the post untouched
	got, err := svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	require.NoError(t, svc.DeletePost(ctx, post.ID, alice.ID))
	_, err = svc.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeletePost_NotFound(t *testing.T) {
	svc, _ := newService(t)

	err := svc.DeletePost(context.Background(), "64b5f1e0a1b2c3d4e5f6ffff", alice.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCreatePostComment_ProjectsForCommenter(t *testing.T) {
	svc, post := newService(t)

	view, err := svc.CreatePostComment(context.Background(), post.ID, "hi", bob)
	require.NoError(t, err)

	require.Len(t, view.Comments, 1)
	c := view.Comments[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "hi", c.Body)
	assert.Equal(t, bob.ID, c.Owner.ID)
	assert.True(t, c.UserIsOwner, "commenter owns the comment")
	assert.False(t, view.UserIsOwner, "commenter does not own the post")
	assert.False(t, view.UserHasLiked)
}

func TestCreatePostComment_MonotonicAppend(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		view, err := svc.CreatePostComment(ctx, post.ID, "comment", bob)
		require.NoError(t, err)
		require.Len(t, view.Comments, i+1)
		ids = append(ids, view.Comments[i].ID)
	}

	got, err := svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 5)
	for i, c := range got.Comments {
		assert.Equal(t, ids[i], c.ID, "earlier comments keep their ids")
	}
}

// Two users commenting on the same post at the same time: both appends land,
// neither is lost to a read-modify-write race.
func TestCreatePostComment_ConcurrentAppends(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, u := range []domain.Owner{bob, carol} {
		wg.Add(1)
		go func(owner domain.Owner) {
			defer wg.Done()
			_, err := svc.CreatePostComment(ctx, post.ID, "from "+owner.Name, owner)
			errs <- err
		}(u)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)

	owners := map[string]bool{}
	for _, c := range got.Comments {
		owners[c.Owner.ID] = true
	}
	assert.True(t, owners[bob.ID], "bob's comment survived")
	assert.True(t, owners[carol.ID], "carol's comment survived")
}

func TestGetPostComment_AbsenceSplit(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	// unknown post id: post existence is checked first
	_, err := svc.GetPostComment(ctx, "64b5f1e0a1b2c3d4e5f6ffff", "64b5f1e0a1b2c3d4e5f62221")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	// live post, unknown comment: absence is data, not an error
	c, err := svc.GetPostComment(ctx, post.ID, "64b5f1e0a1b2c3d4e5f62221")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeletePostComment_OwnershipGated(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	view, err := svc.CreatePostComment(ctx, post.ID, "hi", bob)
	require.NoError(t, err)
	commentID := view.Comments[0].ID

	_, err = svc.DeletePostComment(ctx, post.ID, commentID, carol.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedPostCommentDeleting)

	updated, err := svc.DeletePostComment(ctx, post.ID, commentID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Comments)
}

func TestDeletePostComment_NotFound(t *testing.T) {
	svc, post := newService(t)

	_, err := svc.DeletePostComment(context.Background(), post.ID, "64b5f1e0a1b2c3d4e5f62221", bob.ID)
	assert.ErrorIs(t, err, domain.ErrPostCommentNotFound)
}

func TestLikePost_AppendsUnconditionally(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	view, err := svc.LikePost(ctx, post.ID, bob)
	require.NoError(t, err)
	assert.True(t, view.UserHasLiked)
	assert.Len(t, view.Likes, 1)

	// no duplicate check inside LikePost: the guard lives in the caller
	view, err = svc.LikePost(ctx, post.ID, bob)
	require.NoError(t, err)
	assert.Len(t, view.Likes, 2)
}

func TestGetPostLikeByOwnerID(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	like, err := svc.GetPostLikeByOwnerID(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, like)

	_, err = svc.LikePost(ctx, post.ID, bob)
	require.NoError(t, err)

	like, err = svc.GetPostLikeByOwnerID(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, like)
	assert.Equal(t, bob.ID, like.Owner.ID)
}

func TestDislikePost_RequiresPriorLike(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	_, err := svc.DislikePost(ctx, post.ID, carol.ID)
	assert.ErrorIs(t, err, domain.ErrPostDislikeUser)

	got, err := svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes, "failed dislike leaves likes untouched")
}

func TestDislikePost_RemovesLike(t *testing.T) {
	svc, post := newService(t)
	ctx := context.Background()

	_, err := svc.LikePost(ctx, post.ID, bob)
	require.NoError(t, err)

	updated, err := svc.DislikePost(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Likes)
}

func TestDislikePost_UnknownPost(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.DislikePost(context.Background(), "64b5f1e0a1b2c3d4e5f6ffff", bob.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

// failRepo fails every operation, standing in for an unreachable store.
type failRepo struct{}

var errDown = errors.New("connection reset by peer")

func (failRepo) Insert(context.Context, *domain.Post) (*domain.Post, error) { return nil, errDown }
func (failRepo) FindAll(context.Context) ([]domain.Post, error)             { return nil, errDown }
func (failRepo) FindByID(context.Context, string) (*domain.Post, error)     { return nil, errDown }
func (failRepo) DeleteByID(context.Context, string) error                   { return errDown }
func (failRepo) AppendComment(context.Context, string, domain.Comment) (*domain.Post, error) {
	return nil, errDown
}
func (failRepo) FindComment(context.Context, string, string) (*domain.Comment, error) {
	return nil, errDown
}
func (failRepo) RemoveComment(context.Context, string, string) error { return errDown }
func (failRepo) AppendLike(context.Context, string, domain.Like) (*domain.Post, error) {
	return nil, errDown
}
func (failRepo) FindLikeByOwnerID(context.Context, string, string) (*domain.Like, error) {
	return nil, errDown
}
func (failRepo) RemoveLikeByOwnerID(context.Context, string, string) error { return errDown }

func TestInfrastructureFailuresAreWrapped(t *testing.T) {
	svc := service.NewPostService(failRepo{})
	ctx := context.Background()

	_, err := svc.GetPostByID(ctx, "64b5f1e0a1b2c3d4e5f61111")
	require.Error(t, err)

	var op *domain.OpError
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "get post by id", op.Op)
	assert.Contains(t, op.Desc, "connection reset")

	// the raw store error never crosses the service boundary
	assert.NotErrorIs(t, err, errDown)
	assert.NotErrorIs(t, err, domain.ErrPostNotFound)
}
