package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/models"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

// testPostStore runs the behaviour every PostStore must share against the
// store returned by newStore. Each subtest gets a fresh store.
func testPostStore(t *testing.T, newStore func(t *testing.T) services.PostStore) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	alice := bson.NewObjectID()
	bob := bson.NewObjectID()

	newPost := func(author bson.ObjectID, text string, at time.Time) *models.Post {
		return &models.Post{
			ID:     bson.NewObjectID(),
			User:   author,
			Text:   text,
			Name:   "n",
			Avatar: "a",
			Date:   at,
		}
	}

	t.Run("create and find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := newPost(alice, "hello", base)
		require.NoError(t, s.Create(ctx, p))

		got, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, alice, got.User)
		assert.Equal(t, "hello", got.Text)
		assert.True(t, base.Equal(got.Date))
		assert.NotNil(t, got.Likes)
		assert.NotNil(t, got.Comments)

		_, err = s.FindByID(ctx, bson.NewObjectID())
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})

	t.Run("find all newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		old := newPost(alice, "old", base)
		mid := newPost(bob, "mid", base.Add(time.Minute))
		fresh := newPost(alice, "new", base.Add(2*time.Minute))
		for _, p := range []*models.Post{mid, old, fresh} {
			require.NoError(t, s.Create(ctx, p))
		}

		all, err = s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Text, all[1].Text, all[2].Text})
	})

	t.Run("delete checks author", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := newPost(alice, "mine", base)
		require.NoError(t, s.Create(ctx, p))

		assert.ErrorIs(t, s.Delete(ctx, p.ID, bob), services.ErrNotAuthorized)
		require.NoError(t, s.Delete(ctx, p.ID, alice))
		assert.ErrorIs(t, s.Delete(ctx, p.ID, alice), services.ErrPostNotFound)
	})

	t.Run("likes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := newPost(alice, "like", base)
		require.NoError(t, s.Create(ctx, p))

		likes, err := s.AddLike(ctx, p.ID, bob)
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.False(t, likes[0].ID.IsZero())

		_, err = s.AddLike(ctx, p.ID, bob)
		assert.ErrorIs(t, err, services.ErrAlreadyLiked)

		likes, err = s.AddLike(ctx, p.ID, alice)
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, alice, likes[0].User)

		likes, err = s.RemoveLike(ctx, p.ID, alice)
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, bob, likes[0].User)

		_, err = s.RemoveLike(ctx, p.ID, alice)
		assert.ErrorIs(t, err, services.ErrNotLiked)

		likes, err = s.RemoveLike(ctx, p.ID, bob)
		require.NoError(t, err)
		assert.NotNil(t, likes)
		assert.Empty(t, likes)

		_, err = s.AddLike(ctx, bson.NewObjectID(), bob)
		assert.ErrorIs(t, err, services.ErrPostNotFound)
		_, err = s.RemoveLike(ctx, bson.NewObjectID(), bob)
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})

	t.Run("comments", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := newPost(alice, "talk", base)
		require.NoError(t, s.Create(ctx, p))

		c1 := models.Comment{ID: bson.NewObjectID(), User: bob, Text: "one", Date: base.Add(time.Second)}
		c2 := models.Comment{ID: bson.NewObjectID(), User: bob, Text: "two", Date: base.Add(2 * time.Second)}

		comments, err := s.InsertComment(ctx, p.ID, c1)
		require.NoError(t, err)
		require.Len(t, comments, 1)

		comments, err = s.InsertComment(ctx, p.ID, c2)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, c2.ID, comments[0].ID)

		_, err = s.InsertComment(ctx, bson.NewObjectID(), c1)
		assert.ErrorIs(t, err, services.ErrPostNotFound)

		_, err = s.DeleteComment(ctx, p.ID, c1.ID, alice)
		assert.ErrorIs(t, err, services.ErrNotAuthorized)

		_, err = s.DeleteComment(ctx, p.ID, bson.NewObjectID(), bob)
		assert.ErrorIs(t, err, services.ErrCommentNotFound)

		_, err = s.DeleteComment(ctx, bson.NewObjectID(), c1.ID, bob)
		assert.ErrorIs(t, err, services.ErrPostNotFound)

		comments, err = s.DeleteComment(ctx, p.ID, c1.ID, bob)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, c2.ID, comments[0].ID)
	})

	t.Run("returned posts are copies", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := newPost(alice, "copy", base)
		require.NoError(t, s.Create(ctx, p))
		_, err := s.AddLike(ctx, p.ID, bob)
		require.NoError(t, err)

		got, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		got.Likes[0].User = alice
		got.Text = "changed"

		again, err := s.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, bob, again.Likes[0].User)
		assert.Equal(t, "copy", again.Text)
	})
}
