package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/config"
	"yatube/internal/pkg"
	"yatube/internal/repository/redis"
)

func setup(t *testing.T) (*gin.Engine, *pkg.JWTManager, *redis.TokenRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	jwt := pkg.NewJWTManager(config.Default().JWT)
	tokens := &redis.TokenRepository{RDB: rdb, TTL: jwt.AccessTTL()}

	r := gin.New()
	whoami := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64(ContextUserIDKey)}) }
	r.GET("/private", AuthMiddleware(jwt, tokens), whoami)
	r.GET("/public", OptionalAuth(jwt, tokens), whoami)
	return r, jwt, tokens
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, jwt, tokens := setup(t)
	pair, err := jwt.GeneratePair(7)
	require.NoError(t, err)

	// not stored yet: treated as a dropped session
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", pair.AccessToken).Code)

	require.NoError(t, tokens.Add(context.Background(), 7, pair.AccessToken))
	w := get(r, "/private", pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "garbage").Code)
	// refresh tokens are not access tokens
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", pair.RefreshToken).Code)
}

func TestOptionalAuth(t *testing.T) {
	r, jwt, tokens := setup(t)
	pair, err := jwt.GeneratePair(9)
	require.NoError(t, err)
	require.NoError(t, tokens.Add(context.Background(), 9, pair.AccessToken))

	assert.JSONEq(t, `{"user_id":0}`, get(r, "/public", "").Body.String())
	assert.JSONEq(t, `{"user_id":9}`, get(r, "/public", pair.AccessToken).Body.String())
	assert.JSONEq(t, `{"user_id":0}`, get(r, "/public", "garbage").Body.String())
}
