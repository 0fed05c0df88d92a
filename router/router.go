package router

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/Gravitalia/forum/database"
	"github.com/Gravitalia/forum/helpers"
	"github.com/Gravitalia/forum/translation"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// Handler holds what route handlers depend on
type Handler struct {
	store     database.Store
	gateway   *translation.Gateway
	publisher helpers.Publisher
	config    helpers.Config
	started   time.Time
}

// New builds the gin engine serving the forum API
func New(store database.Store, gateway *translation.Gateway, publisher helpers.Publisher, config helpers.Config) *gin.Engine {
	if publisher == nil {
		publisher = &helpers.Nats{}
	}

	h := &Handler{
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		config:    config,
		started:   time.Now(),
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors(config.CorsOrigin))

	if config.Prometheus {
		p := ginprometheus.NewPrometheus("forum")
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			url := c.Request.URL.Path
			for _, p := range c.Params {
				url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
			}
			return url
		}
		p.Use(r)
	}

	r.GET("/", Index)

	api := r.Group("/api")
	api.GET("/health", h.Health)

	limited := api.Group("")
	if config.RateLimitMax > 0 {
		limited.Use(limiter(config.RateLimitMax, config.RateLimitWindow))
	}

	posts := limited.Group("/posts")
	handle(posts, http.MethodGet, "/", h.ListPosts)
	handle(posts, http.MethodPost, "/", h.CreatePost)
	posts.GET("/stats/summary", h.Stats)
	posts.GET("/:id", h.GetPost)
	posts.DELETE("/:id", h.DeletePost)
	posts.PUT("/:id/like", h.LikePost)
	posts.POST("/:id/reply", h.Reply)

	translate := limited.Group("/translate")
	handle(translate, http.MethodPost, "/", h.Translate)
	translate.GET("/languages", Languages)

	auth := limited.Group("/auth")
	auth.POST("/login", h.Login)
	auth.GET("/me", h.Me)
	auth.PUT("/preferences", h.Preferences)

	users := limited.Group("/users")
	handle(users, http.MethodGet, "/", h.ListUsers)
	users.GET("/:id", h.GetUser)

	return r
}

// handle registers the group root both with and without
// trailing slash
func handle(group *gin.RouterGroup, method string, path string, handler gin.HandlerFunc) {
	group.Handle(method, path, handler)
	group.Handle(method, strings.TrimSuffix(path, "/"), handler)
}

// cors allows browser clients from origin
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-user-id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// limiter allows max requests per IP on each window
func limiter(max uint, window time.Duration) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  window,
		Limit: max,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(info.ResetTime).Seconds())+1))
			abort(c, http.StatusTooManyRequests, ErrorTooManyRequests)
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
