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

const UsersCollection = "users"

// UserRepository reads author profiles. The collection is written by the
// account module; this service never modifies it.
type UserRepository struct {
	col *mongo.Collection
}

var _ services.UserDirectory = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(UsersCollection)}
}

func (r *UserRepository) FindProfile(ctx context.Context, id bson.ObjectID) (*models.UserProfile, error) {
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "avatar": 1})

	var u models.UserProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
