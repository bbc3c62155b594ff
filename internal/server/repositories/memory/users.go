package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type UserRepository struct {
	s *store
}

func (r *UserRepository) nameTaken(name string, except int64) bool {
	for id, u := range r.s.users {
		if id != except && u.UserName == name {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(user.UserName, 0) {
		return nil, common.ErrDuplicateName
	}
	r.s.nextUserID++
	u := *user
	u.ID = r.s.nextUserID
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) List(context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) GetByName(_ context.Context, userName string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) Update(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	if r.nameTaken(user.UserName, user.ID) {
		return nil, common.ErrDuplicateName
	}
	u := *user
	r.s.users[u.ID] = u
	return &u, nil
}

// Delete removes the user and, like the ON DELETE CASCADE in the schema,
// the user's posts.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
		}
	}
	return nil
}
