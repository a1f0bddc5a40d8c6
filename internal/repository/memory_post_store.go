package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/internal/models"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

// MemoryPostStore keeps posts in process memory. It follows the same
// contract as PostRepository and backs the service and HTTP tests.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[bson.ObjectID]models.Post
}

var _ services.PostStore = (*MemoryPostStore)(nil)

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[bson.ObjectID]models.Post)}
}

func clonePost(p models.Post) models.Post {
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	p.Normalize()
	return p
}

func (s *MemoryPostStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	post.Normalize()
	s.posts[post.ID] = clonePost(*post)
	return nil
}

func (s *MemoryPostStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (s *MemoryPostStore) FindAll(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryPostStore) Delete(_ context.Context, id, author bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return services.ErrPostNotFound
	}
	if p.User != author {
		return services.ErrNotAuthorized
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryPostStore) AddLike(_ context.Context, id, userID bson.ObjectID) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	if p.LikedBy(userID) {
		return nil, services.ErrAlreadyLiked
	}
	p.Likes = append([]models.Like{{ID: bson.NewObjectID(), User: userID}}, p.Likes...)
	s.posts[id] = p
	return slices.Clone(p.Likes), nil
}

func (s *MemoryPostStore) RemoveLike(_ context.Context, id, userID bson.ObjectID) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	idx := slices.IndexFunc(p.Likes, func(l models.Like) bool { return l.User == userID })
	if idx < 0 {
		return nil, services.ErrNotLiked
	}
	p.Likes = slices.Delete(slices.Clone(p.Likes), idx, idx+1)
	s.posts[id] = p
	return slices.Clone(p.Likes), nil
}

func (s *MemoryPostStore) InsertComment(_ context.Context, id bson.ObjectID, comment models.Comment) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	p.Comments = append([]models.Comment{comment}, p.Comments...)
	s.posts[id] = p
	return slices.Clone(p.Comments), nil
}

func (s *MemoryPostStore) DeleteComment(_ context.Context, id, commentID, author bson.ObjectID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	idx := slices.IndexFunc(p.Comments, func(c models.Comment) bool { return c.ID == commentID })
	if idx < 0 {
		return nil, services.ErrCommentNotFound
	}
	if p.Comments[idx].User != author {
		return nil, services.ErrNotAuthorized
	}
	p.Comments = slices.Delete(slices.Clone(p.Comments), idx, idx+1)
	s.posts[id] = p
	return slices.Clone(p.Comments), nil
}
