package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/valeryfun/mern-dev-connector/internal/models"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

const PostsCollection = "posts"

// PostRepository stores posts in MongoDB. Like and comment changes are single
// conditional updates; when the condition misses, a follow-up read decides
// which error the caller gets.
type PostRepository struct {
	col *mongo.Collection
}

var _ services.PostStore = (*PostRepository)(nil)

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(PostsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	post.Normalize()
	if _, err := r.col.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id, author bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user": author})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount > 0 {
		return nil
	}

	found, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if found {
		return services.ErrNotAuthorized
	}
	return services.ErrPostNotFound
}

func (r *PostRepository) AddLike(ctx context.Context, id, userID bson.ObjectID) ([]models.Like, error) {
	like := models.Like{ID: bson.NewObjectID(), User: userID}
	filter := bson.M{"_id": id, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": bson.M{
		"$each":     bson.A{like},
		"$position": 0,
	}}}

	var out struct {
		Likes []models.Like `bson:"likes"`
	}
	err := r.col.FindOneAndUpdate(ctx, filter, update, afterWith("likes")).Decode(&out)
	if err == nil {
		return nonNil(out.Likes), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add like: %w", err)
	}
	return nil, r.classifyMiss(ctx, id, services.ErrAlreadyLiked)
}

func (r *PostRepository) RemoveLike(ctx context.Context, id, userID bson.ObjectID) ([]models.Like, error) {
	filter := bson.M{"_id": id, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}

	var out struct {
		Likes []models.Like `bson:"likes"`
	}
	err := r.col.FindOneAndUpdate(ctx, filter, update, afterWith("likes")).Decode(&out)
	if err == nil {
		return nonNil(out.Likes), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("remove like: %w", err)
	}
	return nil, r.classifyMiss(ctx, id, services.ErrNotLiked)
}

func (r *PostRepository) InsertComment(ctx context.Context, id bson.ObjectID, comment models.Comment) ([]models.Comment, error) {
	update := bson.M{"$push": bson.M{"comments": bson.M{
		"$each":     bson.A{comment},
		"$position": 0,
	}}}

	var out struct {
		Comments []models.Comment `bson:"comments"`
	}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterWith("comments")).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrPostNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return nonNil(out.Comments), nil
}

func (r *PostRepository) DeleteComment(ctx context.Context, id, commentID, author bson.ObjectID) ([]models.Comment, error) {
	filter := bson.M{
		"_id":      id,
		"comments": bson.M{"$elemMatch": bson.M{"_id": commentID, "user": author}},
	}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}

	var out struct {
		Comments []models.Comment `bson:"comments"`
	}
	err := r.col.FindOneAndUpdate(ctx, filter, update, afterWith("comments")).Decode(&out)
	if err == nil {
		return nonNil(out.Comments), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := post.FindComment(commentID); !ok {
		return nil, services.ErrCommentNotFound
	}
	return nil, services.ErrNotAuthorized
}

func (r *PostRepository) exists(ctx context.Context, id bson.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count post: %w", err)
	}
	return n > 0, nil
}

// classifyMiss turns a conditional update that matched nothing into either
// ErrPostNotFound or the precondition error.
func (r *PostRepository) classifyMiss(ctx context.Context, id bson.ObjectID, precondition error) error {
	found, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return services.ErrPostNotFound
	}
	return precondition
}

func afterWith(field string) *options.FindOneAndUpdateOptionsBuilder {
	return options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{field: 1})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
