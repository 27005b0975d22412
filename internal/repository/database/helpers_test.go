package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yatube/internal/config"
	"yatube/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.Database{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x", Email: username + "@example.com"}
	require.NoError(t, (&UserRepository{DB: db}).Create(context.Background(), u))
	return u
}

func mustGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Slug: slug, Title: "Group " + slug, Description: "about " + slug}
	require.NoError(t, (&GroupRepository{DB: db}).Create(context.Background(), g))
	return g
}

func mustPost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, n int) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: author.ID, Text: fmt.Sprintf("post %d", n)}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, (&PostRepository{DB: db}).Create(context.Background(), p))
	return p
}
