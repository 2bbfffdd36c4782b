package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandlers "github.com/tasklist/core/internal/adapters/http"
	"github.com/tasklist/core/internal/application/services"
	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/infrastructure/config"
	"github.com/tasklist/core/internal/infrastructure/logger"
	"github.com/tasklist/core/internal/ports"
)

// fixedUserRepo authenticates a single known user.
type fixedUserRepo struct {
	user entities.User
}

func (r *fixedUserRepo) Create(context.Context, *entities.User) error {
	return nil
}

func (r *fixedUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if id != r.user.ID {
		return nil, entities.ErrUserNotFound
	}
	u := r.user
	return &u, nil
}

func (r *fixedUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if email != r.user.Email {
		return nil, entities.ErrUserNotFound
	}
	u := r.user
	return &u, nil
}

func (r *fixedUserRepo) Authenticate(_ context.Context, login, _ string) (*entities.User, error) {
	if login != r.user.Email {
		return nil, entities.ErrInvalidCredentials
	}
	u := r.user
	return &u, nil
}

func newAuthTestServer(t *testing.T) (*Server, *services.AuthService, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	repo := &fixedUserRepo{user: entities.User{
		ID:    userID,
		Name:  "Maria Silva",
		Email: "maria@exemplo.com.br",
	}}

	authService := services.NewAuthService(repo, config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "tasklist-test",
	}, logger.NewNop())

	srv := &Server{
		echo:   echo.New(),
		logger: logger.NewNop(),
	}
	return srv, authService, userID
}

func issueToken(t *testing.T, authService *services.AuthService) string {
	t.Helper()
	data, err := authService.Login(context.Background(), ports.LoginRequest{
		Login:    "maria@exemplo.com.br",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	return data.Token
}

func runProtected(srv *Server, authService *services.AuthService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	var (
		gotUser uuid.UUID
		reached bool
	)

	handler := srv.authMiddleware(authService)(func(c echo.Context) error {
		reached = true
		gotUser = httpHandlers.UserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	err := handler(c)
	if err != nil {
		srv.echo.HTTPErrorHandler(err, c)
	}
	return rec, gotUser, reached
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	srv, authService, _ := newAuthTestServer(t)

	rec, _, reached := runProtected(srv, authService, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	srv, authService, _ := newAuthTestServer(t)
	token := issueToken(t, authService)

	for _, header := range []string{"Basic abc", token, "bearer " + token} {
		rec, _, reached := runProtected(srv, authService, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.False(t, reached, header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	srv, authService, _ := newAuthTestServer(t)

	rec, _, reached := runProtected(srv, authService, "Bearer not-a-real-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddlewareResolvesIdentity(t *testing.T) {
	srv, authService, userID := newAuthTestServer(t)
	token := issueToken(t, authService)

	rec, gotUser, reached := runProtected(srv, authService, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, userID, gotUser)
}
