package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/models"
)

// MaxTextLength bounds post and comment bodies, in runes.
const MaxTextLength = 2000

type PostService struct {
	store PostStore
	users UserDirectory
	now   func() time.Time
	log   logrus.FieldLogger
}

type Option func(*PostService)

// WithClock overrides the time source used for post and comment dates.
func WithClock(now func() time.Time) Option {
	return func(s *PostService) { s.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *PostService) { s.log = log }
}

func NewPostService(store PostStore, users UserDirectory, opts ...Option) *PostService {
	s := &PostService{
		store: store,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewValidationError("text", "Text is required")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", NewValidationError("text", fmt.Sprintf("Text must be at most %d characters", MaxTextLength))
	}
	return text, nil
}

func (s *PostService) author(ctx context.Context, userID bson.ObjectID) (*models.UserProfile, error) {
	profile, err := s.users.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// CreatePost stores a new post authored by userID with a snapshot of the
// author's name and avatar.
func (s *PostService) CreatePost(ctx context.Context, userID bson.ObjectID, text string) (*models.Post, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	profile, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       bson.NewObjectID(),
		User:     userID,
		Text:     text,
		Name:     profile.Name,
		Avatar:   profile.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     s.now(),
	}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": post.ID.Hex(), "user_id": userID.Hex()}).Debug("post created")
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post owned by userID.
func (s *PostService) DeletePost(ctx context.Context, userID, id bson.ObjectID) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.User != userID {
		return ErrNotAuthorized
	}

	if err := s.store.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrNotAuthorized) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": id.Hex(), "user_id": userID.Hex()}).Debug("post deleted")
	return nil
}

func (s *PostService) LikePost(ctx context.Context, userID, id bson.ObjectID) ([]models.Like, error) {
	likes, err := s.store.AddLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrAlreadyLiked) {
			return nil, err
		}
		return nil, fmt.Errorf("like post: %w", err)
	}
	return likes, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, id bson.ObjectID) ([]models.Like, error) {
	likes, err := s.store.RemoveLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrNotLiked) {
			return nil, err
		}
		return nil, fmt.Errorf("unlike post: %w", err)
	}
	return likes, nil
}

// AddComment prepends a comment written by userID to the post.
func (s *PostService) AddComment(ctx context.Context, userID, id bson.ObjectID, text string) ([]models.Comment, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	profile, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:     bson.NewObjectID(),
		User:   userID,
		Text:   text,
		Name:   profile.Name,
		Avatar: profile.Avatar,
		Date:   s.now(),
	}
	comments, err := s.store.InsertComment(ctx, id, comment)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comments, nil
}

// DeleteComment removes the comment addressed by commentID. The comment is
// always matched by its own id, never by its author, so a user with several
// comments on the same post only loses the one asked for.
func (s *PostService) DeleteComment(ctx context.Context, userID, id, commentID bson.ObjectID) ([]models.Comment, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comment, ok := post.FindComment(commentID)
	if !ok {
		return nil, ErrCommentNotFound
	}
	if comment.User != userID {
		return nil, ErrNotAuthorized
	}

	comments, err := s.store.DeleteComment(ctx, id, commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrNotAuthorized):
			return nil, err
		default:
			return nil, fmt.Errorf("delete comment: %w", err)
		}
	}
	return comments, nil
}
