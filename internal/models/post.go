package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is stored as a single document; likes and comments are embedded and
// kept newest-first. Name and Avatar are copied from the author's profile
// when the post is written and are not kept in sync afterwards.
type Post struct {
	ID       bson.ObjectID `json:"_id"      bson:"_id"`
	User     bson.ObjectID `json:"user"     bson:"user"`
	Text     string        `json:"text"     bson:"text"`
	Name     string        `json:"name"     bson:"name"`
	Avatar   string        `json:"avatar"   bson:"avatar"`
	Likes    []Like        `json:"likes"    bson:"likes"`
	Comments []Comment     `json:"comments" bson:"comments"`
	Date     time.Time     `json:"date"     bson:"date"`
}

type Like struct {
	ID   bson.ObjectID `json:"_id"  bson:"_id"`
	User bson.ObjectID `json:"user" bson:"user"`
}

type Comment struct {
	ID     bson.ObjectID `json:"_id"    bson:"_id"`
	User   bson.ObjectID `json:"user"   bson:"user"`
	Text   string        `json:"text"   bson:"text"`
	Name   string        `json:"name"   bson:"name"`
	Avatar string        `json:"avatar" bson:"avatar"`
	Date   time.Time     `json:"date"   bson:"date"`
}

// Normalize replaces nil slices so the document always carries arrays.
func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

func (p *Post) LikedBy(userID bson.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

func (p *Post) FindComment(commentID bson.ObjectID) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return Comment{}, false
}
