package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/redis"
)

func register(t *testing.T, e *testEnv, username string) *model.User {
	t.Helper()
	u, err := e.userSvc.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := register(t, e, "leo")
	assert.NotEqual(t, "password123", u.Password)

	pair, err := e.userSvc.Login(ctx, "leo", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := e.mr.Get(redis.UserTokenPrefix + ":" + itoa(u.ID))
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, stored)

	_, err = e.userSvc.Login(ctx, "leo", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = e.userSvc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	register(t, e, "leo")

	_, err := e.userSvc.Register(ctx, RegisterInput{Username: "leo", Password: "password123"})
	assert.ErrorIs(t, err, pkg.ErrConstraintViolation)

	_, err = e.userSvc.Register(ctx, RegisterInput{Username: " ", Password: "password123"})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = e.userSvc.Register(ctx, RegisterInput{Username: "max", Password: "short"})
	var verr *pkg.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = e.userSvc.Register(ctx, RegisterInput{Username: "max", Password: "password123", Email: "nope"})
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestRefreshAndLogout(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := register(t, e, "leo")
	pair, err := e.userSvc.Login(ctx, "leo", "password123")
	require.NoError(t, err)

	next, err := e.userSvc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	key := redis.UserTokenPrefix + ":" + itoa(u.ID)
	stored, err := e.mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, next.AccessToken, stored)

	_, err = e.userSvc.Refresh(ctx, pair.AccessToken)
	assert.Error(t, err)

	require.NoError(t, e.userSvc.Logout(ctx, u.ID))
	assert.False(t, e.mr.Exists(key))
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := register(t, e, "leo")
	_, err := e.userSvc.Login(ctx, "leo", "password123")
	require.NoError(t, err)

	assert.ErrorIs(t, e.userSvc.ChangePassword(ctx, u.ID, "bad", "newpassword1"), ErrWrongOldPassword)
	assert.ErrorIs(t, e.userSvc.ChangePassword(ctx, u.ID, "password123", "tiny"), pkg.ErrValidation)

	require.NoError(t, e.userSvc.ChangePassword(ctx, u.ID, "password123", "newpassword1"))
	assert.False(t, e.mr.Exists(redis.UserTokenPrefix+":"+itoa(u.ID)))

	_, err = e.userSvc.Login(ctx, "leo", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = e.userSvc.Login(ctx, "leo", "newpassword1")
	assert.NoError(t, err)
}

func TestRequireAdminAndSetRole(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := register(t, e, "leo")

	assert.ErrorIs(t, e.userSvc.RequireAdmin(ctx, 0), pkg.ErrUnauthenticated)
	assert.ErrorIs(t, e.userSvc.RequireAdmin(ctx, u.ID), pkg.ErrForbidden)

	require.NoError(t, e.userSvc.SetRole(ctx, "leo", model.RoleAdmin))
	assert.NoError(t, e.userSvc.RequireAdmin(ctx, u.ID))

	assert.ErrorIs(t, e.userSvc.SetRole(ctx, "ghost", model.RoleAdmin), pkg.ErrNotFound)
}

func TestDeleteUserCascadesPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	leo := register(t, e, "leo")
	e.rawPosts(t, leo, nil, 3)

	require.NoError(t, e.userSvc.Delete(ctx, "leo"))

	n, err := e.posts.Count(ctx, postFilterAll)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = e.userSvc.GetByUsername(ctx, "leo")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
