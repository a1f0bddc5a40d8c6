package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/models"
	"github.com/valeryfun/mern-dev-connector/internal/repository"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

type fakeUsers map[bson.ObjectID]models.UserProfile

func (f fakeUsers) FindProfile(_ context.Context, id bson.ObjectID) (*models.UserProfile, error) {
	u, ok := f[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &u, nil
}

type brokenUsers struct{}

func (brokenUsers) FindProfile(context.Context, bson.ObjectID) (*models.UserProfile, error) {
	return nil, errors.New("connection reset")
}

type fixture struct {
	svc   *services.PostService
	store *repository.MemoryPostStore
	alice bson.ObjectID
	bob   bson.ObjectID
	clock *fakeClock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: repository.NewMemoryPostStore(),
		alice: bson.NewObjectID(),
		bob:   bson.NewObjectID(),
		clock: &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	users := fakeUsers{
		f.alice: {ID: f.alice, Name: "Alice", Avatar: "//gravatar/alice"},
		f.bob:   {ID: f.bob, Name: "Bob", Avatar: "//gravatar/bob"},
	}
	log, _ := test.NewNullLogger()
	f.svc = services.NewPostService(f.store, users, services.WithClock(f.clock.Now), services.WithLogger(log))
	return f
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "  hello world  ")
	require.NoError(t, err)

	assert.False(t, post.ID.IsZero())
	assert.Equal(t, f.alice, post.User)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, "//gravatar/alice", post.Avatar)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)

	stored, err := f.svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Text, stored.Text)
	assert.Equal(t, post.Date, stored.Date)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"empty", "", "Text is required"},
		{"whitespace", " \n\t ", "Text is required"},
		{"too long", strings.Repeat("x", services.MaxTextLength+1), "Text must be at most 2000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreatePost(ctx, f.alice, tt.text)
			require.Error(t, err)

			var valErr *services.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "text", valErr.Field)
			assert.Equal(t, tt.msg, valErr.Message)
			assert.True(t, services.IsValidationError(err))
		})
	}

	posts, err := f.svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts, "rejected posts must not be stored")
}

func TestCreatePostMaxLengthCountsRunes(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePost(context.Background(), f.alice, strings.Repeat("é", services.MaxTextLength))
	assert.NoError(t, err)
}

func TestCreatePostUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePost(context.Background(), bson.NewObjectID(), "hi")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestCreatePostDirectoryFailureIsWrapped(t *testing.T) {
	svc := services.NewPostService(repository.NewMemoryPostStore(), brokenUsers{})

	_, err := svc.CreatePost(context.Background(), bson.NewObjectID(), "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUserNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestListPostsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	posts, err := f.svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	first, err := f.svc.CreatePost(ctx, f.alice, "first")
	require.NoError(t, err)
	second, err := f.svc.CreatePost(ctx, f.bob, "second")
	require.NoError(t, err)
	third, err := f.svc.CreatePost(ctx, f.alice, "third")
	require.NoError(t, err)

	posts, err = f.svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, first.ID, posts[2].ID)
}

func TestGetPostNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPost(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "mine")
	require.NoError(t, err)

	err = f.svc.DeletePost(ctx, f.bob, post.ID)
	assert.ErrorIs(t, err, services.ErrNotAuthorized)
	_, err = f.svc.GetPost(ctx, post.ID)
	require.NoError(t, err, "post must survive a rejected delete")

	require.NoError(t, f.svc.DeletePost(ctx, f.alice, post.ID))
	_, err = f.svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	err = f.svc.DeletePost(ctx, f.alice, post.ID)
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestLikeAndUnlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "like me")
	require.NoError(t, err)

	likes, err := f.svc.LikePost(ctx, f.bob, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.bob, likes[0].User)

	_, err = f.svc.LikePost(ctx, f.bob, post.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyLiked)

	likes, err = f.svc.LikePost(ctx, f.alice, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, f.alice, likes[0].User, "newest like goes first")
	assert.Equal(t, f.bob, likes[1].User)

	likes, err = f.svc.UnlikePost(ctx, f.bob, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.alice, likes[0].User)

	_, err = f.svc.UnlikePost(ctx, f.bob, post.ID)
	assert.ErrorIs(t, err, services.ErrNotLiked)

	stored, err := f.svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, likes, stored.Likes)
}

func TestLikeMissingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LikePost(ctx, f.bob, bson.NewObjectID())
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	_, err = f.svc.UnlikePost(ctx, f.bob, bson.NewObjectID())
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestConcurrentLikesKeepOneEntryPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "race")
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, dup int
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.LikePost(ctx, f.bob, post.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, services.ErrAlreadyLiked):
				dup++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	stored, err := f.svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "discuss")
	require.NoError(t, err)

	comments, err := f.svc.AddComment(ctx, f.bob, post.ID, "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, "//gravatar/bob", comments[0].Avatar)
	assert.False(t, comments[0].ID.IsZero())

	comments, err = f.svc.AddComment(ctx, f.alice, post.ID, "second")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text, "newest comment goes first")
	assert.True(t, comments[0].Date.After(comments[1].Date))

	_, err = f.svc.AddComment(ctx, f.bob, post.ID, "   ")
	var valErr *services.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = f.svc.AddComment(ctx, f.bob, bson.NewObjectID(), "lost")
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	_, err = f.svc.AddComment(ctx, bson.NewObjectID(), post.ID, "who am i")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestDeleteComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "discuss")
	require.NoError(t, err)
	comments, err := f.svc.AddComment(ctx, f.bob, post.ID, "bob says")
	require.NoError(t, err)
	bobComment := comments[0].ID

	_, err = f.svc.DeleteComment(ctx, f.bob, bson.NewObjectID(), bobComment)
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	_, err = f.svc.DeleteComment(ctx, f.bob, post.ID, bson.NewObjectID())
	assert.ErrorIs(t, err, services.ErrCommentNotFound)

	// the post author cannot remove someone else's comment
	_, err = f.svc.DeleteComment(ctx, f.alice, post.ID, bobComment)
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	comments, err = f.svc.DeleteComment(ctx, f.bob, post.ID, bobComment)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestDeleteCommentRemovesOnlyAddressedComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.alice, "discuss")
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, f.bob, post.ID, "one")
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, f.bob, post.ID, "two")
	require.NoError(t, err)
	comments, err := f.svc.AddComment(ctx, f.bob, post.ID, "three")
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// comments are newest first: three, two, one
	target := comments[1]
	require.Equal(t, "two", target.Text)

	comments, err = f.svc.DeleteComment(ctx, f.bob, post.ID, target.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "three", comments[0].Text)
	assert.Equal(t, "one", comments[1].Text)
}

func TestNewPostServiceDefaults(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(logrus.InfoLevel)

	alice := bson.NewObjectID()
	svc := services.NewPostService(repository.NewMemoryPostStore(), fakeUsers{alice: {ID: alice, Name: "Alice"}})

	before := time.Now().UTC()
	post, err := svc.CreatePost(context.Background(), alice, "hi")
	require.NoError(t, err)
	assert.False(t, post.Date.Before(before.Add(-time.Second)))
	assert.Equal(t, time.UTC, post.Date.Location())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "post created", hook.LastEntry().Message)
	assert.Equal(t, post.ID.Hex(), hook.LastEntry().Data["post_id"])
}
