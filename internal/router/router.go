package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/todo/api/handler"
	"github.com/fastygo/todo/internal/middleware"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New registers the application routes and wraps them in the given
// middleware. The first middleware is the outermost.
func New(handlers Handlers, mw ...Middleware) fasthttp.RequestHandler {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.GET("/register", handlers.Auth.RegisterPage)
	r.POST("/register", handlers.Auth.Register)
	r.GET("/login", handlers.Auth.LoginPage)
	r.POST("/login", handlers.Auth.Login)
	r.GET("/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/", middleware.RequireAuth(handlers.Task.Index))
	r.GET("/filter/{priority}", middleware.RequireAuth(handlers.Task.Index))
	r.GET("/active", middleware.RequireAuth(handlers.Task.Active))
	r.GET("/completed", middleware.RequireAuth(handlers.Task.Completed))
	r.POST("/submit", middleware.RequireAuth(handlers.Task.Submit))
	r.GET("/success", middleware.RequireAuth(handlers.Task.Success))
	r.POST("/delete/{id:[0-9]+}", middleware.RequireAuth(handlers.Task.Delete))
	r.POST("/complete/{id:[0-9]+}", middleware.RequireAuth(handlers.Task.Complete))

	h := r.Handler
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
