package middleware

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/session"
	"github.com/fastygo/todo/pkg/httpcontext"
	appLogger "github.com/fastygo/todo/pkg/logger"
)

const sessionUserValue = "middleware.session"

// LoginPath is where unauthenticated visitors of protected routes are sent.
const LoginPath = "/login"

// AuthedHandler is a request handler that runs only for an authenticated identity.
type AuthedHandler func(ctx *fasthttp.RequestCtx, identity domain.Identity)

// Sessions loads the client's session before the handler runs and persists it afterwards.
func Sessions(manager *session.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()
			log := appLogger.WithRequestID(stdCtx, logger)

			token := string(ctx.Request.Header.Cookie(manager.CookieName()))
			handle, err := manager.Load(stdCtx, token)
			if err != nil {
				log.Error("session load failed", zap.Error(err))
				ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
				return
			}
			ctx.SetUserValue(sessionUserValue, handle)

			next(ctx)

			cookie, err := manager.Commit(stdCtx, handle)
			if err != nil {
				log.Error("session commit failed", zap.Error(err))
				ctx.Response.Header.Del(fasthttp.HeaderLocation)
				ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
				return
			}
			if cookie != nil {
				setCookie(ctx, cookie)
			}
		}
	}
}

// SessionFrom returns the session handle attached by Sessions, or nil.
func SessionFrom(ctx *fasthttp.RequestCtx) *session.Handle {
	handle, _ := ctx.UserValue(sessionUserValue).(*session.Handle)
	return handle
}

// RequireAuth guards a handler: anonymous visitors get a warning notice and a
// redirect to the login page, and the wrapped handler never runs.
func RequireAuth(next AuthedHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		handle := SessionFrom(ctx)
		result := handle.Authorize()
		if !result.Authorized {
			if handle != nil {
				handle.Flash(domain.FlashWarning, "Please log in to access this page")
			}
			ctx.Response.Header.Set(fasthttp.HeaderLocation, LoginPath)
			ctx.SetStatusCode(fasthttp.StatusFound)
			return
		}
		next(ctx, result.Identity)
	}
}

func setCookie(ctx *fasthttp.RequestCtx, c *session.Cookie) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(c.Name)
	cookie.SetValue(c.Value)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(c.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	if !c.Expires.IsZero() {
		cookie.SetExpire(c.Expires)
	}
	ctx.Response.Header.SetCookie(cookie)
}
