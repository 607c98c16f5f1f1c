package handler

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/api/view"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/pkg/httpcontext"
	authUC "github.com/fastygo/todo/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, views *view.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, views, logger),
		uc:          uc,
	}
}

// RegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) RegisterPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, view.PageRegister, h.page(ctx, "Register", "register"))
}

// Register creates an account from the submitted form.
// POST /register
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	form := transport.RegisterForm{
		Username: formValue(ctx, "username"),
		Password: formValue(ctx, "password"),
		Email:    formValue(ctx, "email"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.Register(stdCtx, authUC.RegisterInput{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
	})
	switch {
	case err == nil:
		h.notify(ctx, domain.FlashSuccess, "Registration successful! Please log in.", "/login")
	case errors.Is(err, domain.ErrMissingFields):
		h.notify(ctx, domain.FlashError, "All fields are required!", "/register")
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		h.notify(ctx, domain.FlashError, "Username or email already exists!", "/register")
	default:
		h.fail(ctx, err)
	}
}

// LoginPage renders the login form.
// GET /login
func (h *AuthHandler) LoginPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, view.PageLogin, h.page(ctx, "Log in", "login"))
}

// Login checks the credentials and binds the user to the session.
// POST /login
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	form := transport.LoginForm{
		Username: formValue(ctx, "username"),
		Password: formValue(ctx, "password"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Authenticate(stdCtx, form.Username, form.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCredentialsRequired):
		h.notify(ctx, domain.FlashError, "Username and password are required!", "/login")
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.log(stdCtx).Info("login rejected", zap.String("username", form.Username))
		h.notify(ctx, domain.FlashError, "Invalid username or password!", "/login")
		return
	default:
		h.fail(ctx, err)
		return
	}

	sess := middleware.SessionFrom(ctx)
	if sess == nil {
		h.fail(ctx, errors.New("no session attached to request"))
		return
	}
	sess.Login(user)
	h.notify(ctx, domain.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Username), "/")
}

// Logout drops the identity from the session.
// GET /logout
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if sess := middleware.SessionFrom(ctx); sess != nil {
		sess.Logout()
	}
	h.notify(ctx, domain.FlashInfo, "You have been logged out.", "/login")
}
