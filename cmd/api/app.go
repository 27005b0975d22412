package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"yatube/internal/config"
	"yatube/internal/pkg"
	"yatube/internal/repository/database"
	"yatube/internal/repository/redis"
	"yatube/internal/router"
	"yatube/internal/service"
)

// app 组装好的依赖；rdb 为空时不走缓存
type app struct {
	db   *gorm.DB
	rdb  *goredis.Client
	deps router.Deps
}

// bootstrap 建立连接并组装服务。requireRedis=false 时 redis 连不上只告警
func bootstrap(ctx context.Context, cfg *config.Config, requireRedis bool) (*app, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		if requireRedis {
			return nil, err
		}
		slog.Warn("redis unavailable, feed cache disabled", "addr", cfg.Redis.Addr, "err", err)
		rdb = nil
	}

	var images pkg.ImageStore
	if cfg.Minio.Endpoint != "" {
		store, err := pkg.NewMinioStore(cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			slog.Warn("image bucket unavailable, uploads disabled", "bucket", cfg.Minio.Bucket, "err", err)
		} else {
			images = store
		}
	}

	users := &database.UserRepository{DB: db}
	groups := &database.GroupRepository{DB: db}
	posts := &database.PostRepository{DB: db}
	comments := &database.CommentRepository{DB: db}
	follows := &database.FollowRepository{DB: db}

	jwt := pkg.NewJWTManager(cfg.JWT)
	var (
		tokens *redis.TokenRepository
		cache  service.GlobalFeedCache
		lock   service.Locker
	)
	if rdb != nil {
		tokens = &redis.TokenRepository{RDB: rdb, TTL: jwt.AccessTTL()}
		cache = &redis.FeedCache{RDB: rdb, TTL: cfg.Feed.CacheTTL}
		lock = &redis.DistLock{RDB: rdb}
	}

	return &app{
		db:  db,
		rdb: rdb,
		deps: router.Deps{
			JWT:      jwt,
			Tokens:   tokens,
			Users:    service.NewUserService(users, tokens, jwt),
			Groups:   service.NewGroupService(groups, cache),
			Posts:    service.NewPostService(posts, groups, users, comments, images, cache),
			Comments: service.NewCommentService(comments, posts),
			Follows:  service.NewFollowService(follows, users),
			Feed:     service.NewFeedService(posts, users, groups, follows, cfg.Feed.PageSize, cache, lock),
		},
	}, nil
}

func (a *app) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
