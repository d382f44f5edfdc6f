package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan_tracker/internal/model"
	"loan_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubUserRepo struct {
	users map[int]*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	return s.users[id], nil
}

func newTestRouter(jwtUtil *utils.JWTUtil, repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(jwtUtil, repo), func(c *gin.Context) {
		user, ok := AuthUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	router := newTestRouter(jwtUtil, &stubUserRepo{users: map[int]*model.User{}})

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	router := newTestRouter(jwtUtil, &stubUserRepo{users: map[int]*model.User{}})

	for _, header := range []string{"sometoken", "Basic abc123", "bearer lowercase-scheme", "Bearer too many parts"} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	}
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	router := newTestRouter(jwtUtil, &stubUserRepo{users: map[int]*model.User{}})

	w := doRequest(router, "Bearer not.a.valid-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAuthMiddleware_TamperedSignature(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	otherUtil := utils.NewJWTUtil("other-secret", 30)
	repo := &stubUserRepo{users: map[int]*model.User{1: {ID: 1, Username: "alice"}}}
	router := newTestRouter(jwtUtil, repo)

	token, err := otherUtil.GenerateToken(1)
	assert.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := utils.NewJWTUtil("secret", -1)
	verifier := utils.NewJWTUtil("secret", 30)
	repo := &stubUserRepo{users: map[int]*model.User{1: {ID: 1, Username: "alice"}}}
	router := newTestRouter(verifier, repo)

	token, err := issuer.GenerateToken(1)
	assert.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestJWTAuthMiddleware_UnknownSubject(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	router := newTestRouter(jwtUtil, &stubUserRepo{users: map[int]*model.User{}})

	token, err := jwtUtil.GenerateToken(99)
	assert.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	// Token subject no longer in the store: the request must fail closed
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown token subject")
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 30)
	repo := &stubUserRepo{users: map[int]*model.User{7: {ID: 7, Username: "alice"}}}
	router := newTestRouter(jwtUtil, repo)

	token, err := jwtUtil.GenerateToken(7)
	assert.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
