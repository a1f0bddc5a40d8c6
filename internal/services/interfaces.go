package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/models"
)

// PostStore persists posts. Likes and comments are changed with single
// conditional operations so concurrent requests cannot overwrite each other.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]models.Post, error)
	// Delete removes the post only if author owns it.
	Delete(ctx context.Context, id, author bson.ObjectID) error

	// AddLike prepends a like unless userID already liked the post
	// (ErrAlreadyLiked).
	AddLike(ctx context.Context, id, userID bson.ObjectID) ([]models.Like, error)
	// RemoveLike drops userID's like, ErrNotLiked if there is none.
	RemoveLike(ctx context.Context, id, userID bson.ObjectID) ([]models.Like, error)

	InsertComment(ctx context.Context, id bson.ObjectID, comment models.Comment) ([]models.Comment, error)
	// DeleteComment removes the comment with commentID if author wrote it.
	DeleteComment(ctx context.Context, id, commentID, author bson.ObjectID) ([]models.Comment, error)
}

// UserDirectory resolves the display data copied onto posts and comments.
type UserDirectory interface {
	FindProfile(ctx context.Context, id bson.ObjectID) (*models.UserProfile, error)
}
