package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisync/user-service/internal/application"
	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/domain/repository"
	"github.com/medisync/user-service/pkg/helpers"
	"github.com/medisync/user-service/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserRepo struct {
	users map[primitive.ObjectID]entity.User
}

func (r *memUserRepo) Save(_ context.Context, u *entity.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email != "" && u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, activeOnly bool) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		if activeOnly && !u.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hash, err := helpers.HashPassword("admin123")
	require.NoError(t, err)
	repo := &memUserRepo{users: map[primitive.ObjectID]entity.User{}}
	admin := &entity.User{
		Username: "admin",
		Password: hash,
		Role:     entity.Role{ID: primitive.NewObjectID(), Name: "ADMIN", Active: true},
		Active:   true,
	}
	require.NoError(t, repo.Save(context.Background(), admin))

	users := application.NewUserService(repo, nil, logger, nil, "")
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 168*time.Hour)
	auth := application.NewAuthService(users, jwt, nil, logger)
	h := NewAuthHandler(auth, logger)

	r := gin.New()
	grp := r.Group("/api/v1/auth")
	grp.POST("/login", h.Login)
	grp.POST("/refresh", h.Refresh)
	grp.POST("/validate", h.Validate)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLoginEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data["accessToken"])
	assert.NotEmpty(t, env.Data["refreshToken"])
	assert.EqualValues(t, 3600, env.Data["expiresIn"])

	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", user["username"])
	_, leaked := user["password"]
	assert.False(t, leaked, "password hash must not be serialized")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	wrongPw := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "wrong",
	})
	unknown := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "nobody", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// identical body shape and message for both failure modes
	assert.Equal(t, decodeEnvelope(t, wrongPw).Message, decodeEnvelope(t, unknown).Message)
}

func TestLoginEndpointValidation(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	login := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, login.Code)
	refreshToken := decodeEnvelope(t, login).Data["refreshToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": refreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	assert.NotEmpty(t, env.Data["accessToken"])
	assert.Equal(t, refreshToken, env.Data["refreshToken"])

	bad := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestValidateEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	login := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, login.Code)
	accessToken := decodeEnvelope(t, login).Data["accessToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/validate", gin.H{"token": accessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	assert.Equal(t, "admin", env.Data["username"])
	assert.Equal(t, "ADMIN", env.Data["role"])

	bad := doJSON(t, r, http.MethodPost, "/api/v1/auth/validate", gin.H{"token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}
