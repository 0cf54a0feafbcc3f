package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ace-marketplace/internal/core/auth"
	"ace-marketplace/internal/core/config"
	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/core/media"
	"ace-marketplace/internal/domain"
	"ace-marketplace/internal/feature/feed"
	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/repo"
)

type testAPI struct {
	r     *gin.Engine
	users *repo.UserRepo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p := database.NewProvider(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, database.Migrate)
	t.Cleanup(func() { _ = p.Close() })

	j, err := auth.New("test-secret", "ace-marketplace", 0)
	require.NoError(t, err)
	users := repo.NewUserRepo(p)
	posts := repo.NewPostRepo(p)
	log := zap.NewNop()
	r := NewAPIEngine(Deps{
		Log: log,
		HTTP: config.HTTP{
			APIPrefix:         "/api",
			MaxBodyBytes:      1 << 20,
			RequestTimeoutSec: 5,
			MaxConcurrency:    10,
		},
		JWT:   j,
		Users: user.NewService(users, j, media.Disabled{}, log),
		Posts: post.NewService(posts, users, media.Disabled{}, log),
		Feed:  feed.NewEngine(nil),
	})
	return &testAPI{r: r, users: users}
}

func (a *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type postBody struct {
	ID              string                  `json:"_id"`
	Status          string                  `json:"status"`
	Type            string                  `json:"type"`
	PropertyDetails *domain.PropertyDetails `json:"propertyDetails"`
	UserID          struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	} `json:"userId"`
	Tags []string `json:"tags"`
}

type errBody struct {
	Error string `json:"error"`
}

func (a *testAPI) register(t *testing.T, username, email string) sessionBody {
	t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register",
		`{"username":"`+username+`","email":"`+email+`","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[sessionBody](t, w)
}

func TestRegisterLoginCreateUpdateFlow(t *testing.T) {
	a := newTestAPI(t)
	reg := a.register(t, "alice", "alice@example.com")
	assert.NotEmpty(t, reg.Token)

	w := a.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok := decodeBody[sessionBody](t, w).Token
	require.NotEmpty(t, tok)

	w = a.do(http.MethodPost, "/api/posts",
		`{"type":"HAVE","content":"Flex space for lease","propertyDetails":{"price":250000}}`, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[postBody](t, w)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, reg.User.ID, created.UserID.ID)
	assert.Equal(t, "alice", created.UserID.Username)
	assert.Equal(t, []string{}, created.Tags)

	w = a.do(http.MethodPut, "/api/posts/"+created.ID, `{"price":300000}`, tok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/posts/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[postBody](t, w)
	require.NotNil(t, got.PropertyDetails)
	require.NotNil(t, got.PropertyDetails.Price)
	assert.Equal(t, 300000.0, *got.PropertyDetails.Price)
	assert.Equal(t, "active", got.Status)

	w = a.do(http.MethodGet, "/api/posts?userId="+reg.User.ID+"&type=HAVE", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]postBody](t, w), 1)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice", "alice@example.com")
	bob := a.register(t, "bob", "bob@example.com")

	w := a.do(http.MethodPost, "/api/posts", `{"type":"NEED","content":"Need a warehouse"}`, alice.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeBody[postBody](t, w).ID

	w = a.do(http.MethodPut, "/api/posts/"+id, `{"status":"fulfilled"}`, bob.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to update this post", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodGet, "/api/posts/"+id, "", "")
	assert.Equal(t, "active", decodeBody[postBody](t, w).Status)

	w = a.do(http.MethodPut, "/api/users/"+alice.User.ID, `{"company":"Evil Corp"}`, bob.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to update this profile", decodeBody[errBody](t, w).Error)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	a := newTestAPI(t)
	first := a.register(t, "alice", "alice@example.com")

	w := a.do(http.MethodPost, "/api/auth/register", `{"username":"alice2","email":"alice@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email or username already exists", decodeBody[errBody](t, w).Error)

	u, err := a.users.FindByEmail(t.Context(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, u.ID)
	other, err := a.users.FindConflict(t.Context(), "", "alice2", "")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestAuthErrors(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/posts", `{"type":"NEED","content":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing Authorization header", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodPost, "/api/posts", `{"type":"NEED","content":"x"}`, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidationErrorsAre400(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice", "alice@example.com")

	w := a.do(http.MethodPost, "/api/posts", `{"type":"SELL","content":"x"}`, alice.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid type", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodPost, "/api/posts", `{not json`, alice.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/auth/register", `{"username":"bob"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody[errBody](t, w).Error)

	w = a.do(http.MethodGet, "/api/posts/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", decodeBody[errBody](t, w).Error)
}

func TestProfileEndpoints(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice", "alice@example.com")

	w := a.do(http.MethodPut, "/api/users/"+alice.User.ID,
		`{"isRealtor":true,"company":"Acme","specialties":["Retail"," ","Land"]}`, alice.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/users/"+alice.User.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	body := decodeBody[map[string]any](t, w)
	assert.NotContains(t, body, "password")
	assert.Equal(t, true, body["isRealtor"])
	assert.Equal(t, []any{"Retail", "Land"}, body["specialties"])

	w = a.do(http.MethodGet, "/api/users/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody[errBody](t, w).Error)
}

func TestFeedEndpoint(t *testing.T) {
	a := newTestAPI(t)
	alice := a.register(t, "alice", "alice@example.com")
	for _, body := range []string{
		`{"type":"HAVE","content":"Corner office","propertyDetails":{"propertyType":"Office","location":{"city":"Austin","state":"TX"},"price":250000}}`,
		`{"type":"HAVE","content":"Endcap retail","propertyDetails":{"propertyType":"Retail","location":{"city":"Austin","state":"TX"},"price":2000000}}`,
		`{"type":"NEED","content":"Need office in Dallas","propertyDetails":{"propertyType":"Office","location":{"city":"Dallas","state":"TX"}}}`,
	} {
		w := a.do(http.MethodPost, "/api/posts", body, alice.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := a.do(http.MethodGet, "/api/feed?search=office+austin", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[[]postBody](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "HAVE", got[0].Type)

	w = a.do(http.MethodGet, "/api/feed?type=HAVE&price=1000000_5000000", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]postBody](t, w), 1)

	w = a.do(http.MethodGet, "/api/feed?price=CHEAP", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionsAndHealth(t *testing.T) {
	a := newTestAPI(t)

	for _, path := range []string{"/api/posts", "/api/posts/abc", "/anything/at/all"} {
		w := a.do(http.MethodOptions, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
	}

	for _, path := range []string{"/health", "/api/health"} {
		w := a.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}

	w := a.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodDelete, "/api/posts/abc", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
