package router

import (
	"github.com/gin-gonic/gin"

	"yatube/internal/handler"
	"yatube/internal/middleware"
	"yatube/internal/pkg"
	"yatube/internal/repository/redis"
	"yatube/internal/service"
)

// Deps 路由需要的服务，由 cmd 组装
type Deps struct {
	JWT      *pkg.JWTManager
	Tokens   *redis.TokenRepository
	Users    *service.UserService
	Groups   *service.GroupService
	Posts    *service.PostService
	Comments *service.CommentService
	Follows  *service.FollowService
	Feed     *service.FeedService
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()
	// multipart 在内存中最多保留 8MB
	r.MaxMultipartMemory = 8 << 20

	auth := middleware.AuthMiddleware(d.JWT, d.Tokens)
	optional := middleware.OptionalAuth(d.JWT, d.Tokens)

	user := handler.NewUserHandler(d.Users)
	group := handler.NewGroupHandler(d.Groups, d.Users)
	post := handler.NewPostHandler(d.Posts, d.Comments)
	follow := handler.NewFollowHandler(d.Follows)
	feed := handler.NewFeedHandler(d.Feed)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/logout", auth, user.Logout)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 信息流
	feedGroup := r.Group("/api/feed")
	{
		feedGroup.GET("", feed.Global)
		feedGroup.GET("/group/:slug", feed.Group)
		feedGroup.GET("/author/:username", feed.Author)
		feedGroup.GET("/following", auth, feed.Following)
	}
	r.GET("/api/profile/:username", optional, feed.Profile)

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	{
		postGroup.GET("/:id", post.GetPost)
		postGroup.POST("/create", auth, post.CreatePost)
		postGroup.POST("/:id/edit", auth, post.EditPost)
		postGroup.DELETE("/:id", auth, post.DeletePost)
		postGroup.POST("/:id/comment", auth, post.AddComment)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(auth)
	{
		followGroup.GET("/followings", follow.ListFollowings)
		followGroup.GET("/followers", follow.ListFollowers)
		followGroup.GET("/relation", follow.Relation)
		followGroup.POST("/:username", follow.Follow)
		followGroup.DELETE("/:username", follow.Unfollow)
	}

	// 分组
	groupGroup := r.Group("/api/group")
	{
		groupGroup.GET("/list", group.List)
		groupGroup.POST("/create", auth, group.Create)
	}

	return r
}
