package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CreateAndDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewManager().Users(nil)

	u, err := repo.Create(ctx, &models.User{UserName: "anonymous", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = repo.Create(ctx, &models.User{UserName: "anonymous", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrDuplicateName)

	got, err := repo.GetByName(ctx, "anonymous")
	require.NoError(t, err)
	assert.Equal(t, "h1", got.PasswordHash, "first record unaffected")
}

func TestUsers_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewManager().Users(nil)

	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	u.UserName = "mallory"

	got, err := repo.GetByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
}

func TestUsers_UpdateRules(t *testing.T) {
	ctx := context.Background()
	repo := NewManager().Users(nil)

	a, _ := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	_, _ = repo.Create(ctx, &models.User{UserName: "bob", PasswordHash: "h"})

	_, err := repo.Update(ctx, &models.User{ID: a.ID, UserName: "bob", PasswordHash: "x"})
	assert.ErrorIs(t, err, common.ErrDuplicateName)

	same, err := repo.Update(ctx, &models.User{ID: a.ID, UserName: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", same.PasswordHash)

	_, err = repo.Update(ctx, &models.User{ID: 99, UserName: "z"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUsers_ListOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewManager().Users(nil)

	for _, n := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, &models.User{UserName: n})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestDeleteUser_RemovesPosts(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	users, posts := m.Users(nil), m.Posts(nil)

	u, _ := users.Create(ctx, &models.User{UserName: "alice"})
	other, _ := users.Create(ctx, &models.User{UserName: "bob"})
	p, err := posts.Create(ctx, &models.Post{UserID: u.ID, Contents: "a"})
	require.NoError(t, err)
	_, err = posts.Create(ctx, &models.Post{UserID: other.ID, Contents: "b"})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.ID))

	_, err = posts.Get(ctx, u.ID, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	left, _ := posts.ListByUser(ctx, other.ID)
	assert.Len(t, left, 1)

	assert.ErrorIs(t, users.Delete(ctx, u.ID), common.ErrorNotFound)
}

func TestPosts_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	users, posts := m.Users(nil), m.Posts(nil)

	a, _ := users.Create(ctx, &models.User{UserName: "alice"})
	b, _ := users.Create(ctx, &models.User{UserName: "bob"})
	p, _ := posts.Create(ctx, &models.Post{UserID: a.ID, Contents: "mine"})

	_, err := posts.Update(ctx, &models.Post{ID: p.ID, UserID: b.ID, Contents: "theirs"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, posts.Delete(ctx, b.ID, p.ID), common.ErrorNotFound)

	got, err := posts.Get(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Contents)

	_, err = posts.Create(ctx, &models.Post{UserID: 42, Contents: "orphan"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPosts_GlobalSequence(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	users, posts := m.Users(nil), m.Posts(nil)

	a, _ := users.Create(ctx, &models.User{UserName: "alice"})
	b, _ := users.Create(ctx, &models.User{UserName: "bob"})

	p1, _ := posts.Create(ctx, &models.Post{UserID: a.ID})
	p2, _ := posts.Create(ctx, &models.Post{UserID: b.ID})
	p3, _ := posts.Create(ctx, &models.Post{UserID: a.ID})
	assert.Equal(t, []int64{1, 2, 3}, []int64{p1.ID, p2.ID, p3.ID})

	list, _ := posts.ListByUser(ctx, a.ID)
	assert.Equal(t, []models.Post{*p1, *p3}, list)

	empty, err := posts.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, []models.Post{}, empty)
}

func TestConcurrentRegistrationOfSameName(t *testing.T) {
	ctx := context.Background()
	repo := NewManager().Users(nil)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{UserName: "race", PasswordHash: fmt.Sprint(i)})
			if err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
}
