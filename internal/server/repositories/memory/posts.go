package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type PostRepository struct {
	s *store
}

func (r *PostRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.UserID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.s.nextPostID++
	p := *post
	p.ID = r.s.nextPostID
	r.s.posts[p.ID] = p
	return &p, nil
}

func (r *PostRepository) ListByUser(_ context.Context, userID int64) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Post{}
	for _, p := range r.s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PostRepository) Get(_ context.Context, userID, postID int64) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *PostRepository) Update(_ context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[post.ID]
	if !ok || p.UserID != post.UserID {
		return nil, common.ErrorNotFound
	}
	p.Contents = post.Contents
	r.s.posts[p.ID] = p
	return &p, nil
}

func (r *PostRepository) Delete(_ context.Context, userID, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.posts, postID)
	return nil
}

func (r *PostRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.posts {
		if p.UserID == userID {
			delete(r.s.posts, id)
		}
	}
	return nil
}
