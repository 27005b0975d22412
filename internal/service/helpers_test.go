package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yatube/internal/config"
	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
	"yatube/internal/repository/redis"
)

const testPageSize = 10

type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	cache *redis.FeedCache

	users    *database.UserRepository
	groups   *database.GroupRepository
	posts    *database.PostRepository
	comments *database.CommentRepository
	follows  *database.FollowRepository
	images   *memImages

	userSvc    *UserService
	groupSvc   *GroupService
	postSvc    *PostService
	commentSvc *CommentService
	followSvc  *FollowService
	feedSvc    *FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(config.Database{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := &testEnv{
		db:       db,
		mr:       mr,
		cache:    &redis.FeedCache{RDB: rdb, TTL: 20 * time.Second},
		users:    &database.UserRepository{DB: db},
		groups:   &database.GroupRepository{DB: db},
		posts:    &database.PostRepository{DB: db},
		comments: &database.CommentRepository{DB: db},
		follows:  &database.FollowRepository{DB: db},
		images:   &memImages{objects: map[string][]byte{}},
	}
	jwt := pkg.NewJWTManager(config.Default().JWT)
	tokens := &redis.TokenRepository{RDB: rdb, TTL: jwt.AccessTTL()}
	lock := &redis.DistLock{RDB: rdb}

	e.userSvc = NewUserService(e.users, tokens, jwt)
	e.groupSvc = NewGroupService(e.groups, e.cache)
	e.postSvc = NewPostService(e.posts, e.groups, e.users, e.comments, e.images, e.cache)
	e.commentSvc = NewCommentService(e.comments, e.posts)
	e.followSvc = NewFollowService(e.follows, e.users)
	e.feedSvc = NewFeedService(e.posts, e.users, e.groups, e.follows, testPageSize, e.cache, lock)
	return e
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x", Email: username + "@example.com"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Slug: slug, Title: "Group " + slug}
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

// rawPost 绕过 PostService 直接写库，不会清理缓存
func (e *testEnv) rawPost(t *testing.T, author *model.User, group *model.Group, text string) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: author.ID, Text: text}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, e.posts.Create(context.Background(), p))
	return p
}

func (e *testEnv) rawPosts(t *testing.T, author *model.User, group *model.Group, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		e.rawPost(t, author, group, fmt.Sprintf("post %d", i))
	}
}

func ids(posts []model.Post) []uint64 {
	out := make([]uint64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

type memImages struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memImages) Save(_ context.Context, up *pkg.Upload) (string, error) {
	b, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	name := pkg.ObjectName(up.Filename)
	m.mu.Lock()
	m.objects[name] = b
	m.mu.Unlock()
	return name, nil
}

func (m *memImages) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	delete(m.objects, ref)
	m.mu.Unlock()
	return nil
}
