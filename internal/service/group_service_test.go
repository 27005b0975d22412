package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/pkg"
	"yatube/internal/repository/redis"
)

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestCreateGroup(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	g, err := e.groupSvc.CreateGroup(ctx, GroupInput{Slug: "cats", Title: "Cats", Description: "all about cats"})
	require.NoError(t, err)
	assert.Equal(t, "Cats", g.String())

	_, err = e.groupSvc.CreateGroup(ctx, GroupInput{Slug: "cats", Title: "Again"})
	assert.ErrorIs(t, err, pkg.ErrConstraintViolation)

	_, err = e.groupSvc.CreateGroup(ctx, GroupInput{Slug: "no spaces", Title: "Bad"})
	var verr *pkg.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)

	_, err = e.groupSvc.CreateGroup(ctx, GroupInput{Slug: "dogs"})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	list, err := e.groupSvc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cats", list[0].Slug)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	author := e.user(t, "leo")
	cats := e.group(t, "cats")
	e.rawPosts(t, author, cats, 4)

	_, err := e.feedSvc.RenderGlobal(ctx, 1)
	require.NoError(t, err)
	require.True(t, e.mr.Exists(redis.GlobalFeedKey))

	require.NoError(t, e.groupSvc.DeleteGroup(ctx, "cats"))
	assert.False(t, e.mr.Exists(redis.GlobalFeedKey))

	feed, err := e.feedSvc.Assemble(ctx, GlobalScope(), 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 4)
	for _, p := range feed.Posts {
		assert.Nil(t, p.GroupID)
		assert.Nil(t, p.Group)
	}

	assert.ErrorIs(t, e.groupSvc.DeleteGroup(ctx, "cats"), pkg.ErrNotFound)
	_, err = e.groupSvc.GetBySlug(ctx, "cats")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
