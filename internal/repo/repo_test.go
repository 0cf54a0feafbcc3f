package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/domain"
	"ace-marketplace/pkg/utils"
)

func newProvider(t *testing.T) *database.Provider {
	t.Helper()
	p := database.NewProvider(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, database.Migrate)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func mkUser(t *testing.T, r *UserRepo, name string) *domain.User {
	t.Helper()
	u := &domain.User{ID: utils.NewID(), Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

func f64(v float64) *float64 { return &v }

func TestUserRepoUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(newProvider(t))
	a := mkUser(t, r, "alice")

	dup := &domain.User{ID: utils.NewID(), Username: "other", Email: a.Email, Password: "x"}
	assert.ErrorIs(t, r.Create(ctx, dup), domain.ErrDuplicate)

	c, err := r.FindConflict(ctx, "nobody@example.com", "alice", "")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, a.ID, c.ID)

	c, err = r.FindConflict(ctx, a.Email, a.Username, a.ID)
	require.NoError(t, err)
	assert.Nil(t, c, "own record is not a conflict")

	missing, err := r.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoUpdateFields(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(newProvider(t))
	a := mkUser(t, r, "alice")
	b := mkUser(t, r, "bob")

	a.Bio = "commercial broker"
	a.Specialties = []string{"Retail", "Land"}
	a.Company = "not saved"
	require.NoError(t, r.UpdateFields(ctx, a, "bio", "specialties"))

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "commercial broker", got.Bio)
	assert.Equal(t, []string{"Retail", "Land"}, got.Specialties)
	assert.Empty(t, got.Company)

	b.Email = a.Email
	assert.ErrorIs(t, r.UpdateFields(ctx, b, "email"), domain.ErrDuplicate)
}

func TestPostRepoListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	users := NewUserRepo(p)
	posts := NewPostRepo(p)
	alice := mkUser(t, users, "alice")
	bob := mkUser(t, users, "bob")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []domain.Post{
		{Type: domain.PostHave, Content: "Warehouse in Dallas", UserID: alice.ID, CreatedAt: base},
		{Type: domain.PostNeed, Content: "Need office space 100% remote_ready", UserID: alice.ID, CreatedAt: base.Add(time.Hour)},
		{Type: domain.PostHave, Content: "Retail corner lot", UserID: bob.ID, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		seed[i].ID = utils.NewID()
		seed[i].Status = "active"
		require.NoError(t, posts.Create(ctx, &seed[i]))
	}

	all, err := posts.List(ctx, domain.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, seed[2].ID, all[0].ID, "newest first")
	assert.Equal(t, seed[0].ID, all[2].ID)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "bob", all[0].User.Username)
	assert.Empty(t, all[0].User.Password, "password never loaded")

	byUser, err := posts.List(ctx, domain.PostFilter{UserID: alice.ID})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byType, err := posts.List(ctx, domain.PostFilter{Type: domain.PostHave})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byQ, err := posts.List(ctx, domain.PostFilter{Q: "DALLAS"})
	require.NoError(t, err)
	require.Len(t, byQ, 1)
	assert.Equal(t, seed[0].ID, byQ[0].ID)

	// 通配符按字面匹配
	pct, err := posts.List(ctx, domain.PostFilter{Q: "100%"})
	require.NoError(t, err)
	assert.Len(t, pct, 1)
	under, err := posts.List(ctx, domain.PostFilter{Q: "o_f"})
	require.NoError(t, err)
	assert.Empty(t, under)

	none, err := posts.List(ctx, domain.PostFilter{UserID: bob.ID, Type: domain.PostNeed})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPostRepoUpdateFieldsOnlyTouchesNamedColumns(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)
	users := NewUserRepo(p)
	posts := NewPostRepo(p)
	alice := mkUser(t, users, "alice")

	post := &domain.Post{
		ID: utils.NewID(), Type: domain.PostHave, Status: "active", Content: "Lot",
		UserID:          alice.ID,
		ImageURL:        "https://img/1.png",
		PropertyDetails: &domain.PropertyDetails{PropertyType: "Land", Price: f64(250000)},
	}
	require.NoError(t, posts.Create(ctx, post))

	// 另一个请求拿到的旧副本只改 tags
	stale, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)

	post.PropertyDetails.Price = f64(300000)
	require.NoError(t, posts.UpdateFields(ctx, post, "property_details"))

	stale.Tags = []string{"corner"}
	stale.Status = "sold" // 未列出的列不写
	require.NoError(t, posts.UpdateFields(ctx, stale, "tags"))

	got, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PropertyDetails)
	assert.Equal(t, 300000.0, *got.PropertyDetails.Price)
	assert.Equal(t, []string{"corner"}, got.Tags)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "https://img/1.png", got.ImageURL)
	assert.Equal(t, "alice", got.User.Username)

	post.ImageURL = ""
	require.NoError(t, posts.UpdateFields(ctx, post, "image_url"))
	got, err = posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ImageURL)
}

func TestIsDupKey(t *testing.T) {
	assert.False(t, IsDupKey(nil))
	assert.False(t, IsDupKey(assert.AnError))
	assert.True(t, IsDupKey(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsDupKey(errors.New("Error 1062: Duplicate entry 'a' for key 'idx_users_email'")))
}
