package models

import "go.mongodb.org/mongo-driver/v2/bson"

// UserProfile is the read-only view of a user that posts and comments copy
// their author snapshot from. The users collection is owned elsewhere.
type UserProfile struct {
	ID     bson.ObjectID `bson:"_id"    json:"_id"`
	Name   string        `bson:"name"   json:"name"`
	Email  string        `bson:"email"  json:"email,omitempty"`
	Avatar string        `bson:"avatar" json:"avatar"`
}
