package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/valeryfun/mern-dev-connector/internal/repository"
)

// PostIndexes backs the newest-first listing, the author-scoped delete and
// comment lookups by id.
func PostIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("date_desc"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user"),
		},
		{
			Keys:    bson.D{{Key: "comments._id", Value: 1}},
			Options: options.Index().SetName("comments_id"),
		},
	}
}

func EnsurePostIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.PostsCollection).Indexes().CreateMany(ctx, PostIndexes())
	if err != nil {
		return fmt.Errorf("ensure post indexes: %w", err)
	}
	return nil
}
