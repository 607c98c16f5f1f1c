package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/api/view"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/middleware"
	"github.com/fastygo/todo/pkg/httpcontext"
	appLogger "github.com/fastygo/todo/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
	views   *view.Renderer
}

func newBaseHandler(adapter *httpcontext.Adapter, views *view.Renderer, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, views: views}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// page builds the common view data and consumes the pending notices.
func (h baseHandler) page(ctx *fasthttp.RequestCtx, title, active string) transport.Page {
	p := transport.Page{Title: title, ActivePage: active}
	if sess := middleware.SessionFrom(ctx); sess != nil {
		if res := sess.Authorize(); res.Authorized {
			p.Username = res.Identity.Username
		}
		p.Flashes = sess.Flashes()
	}
	return p
}

func (h baseHandler) render(ctx *fasthttp.RequestCtx, page string, data interface{}) {
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(http.StatusOK)
	if err := h.views.Render(ctx, page, data); err != nil {
		h.fail(ctx, err)
	}
}

func (h baseHandler) redirect(ctx *fasthttp.RequestCtx, path string) {
	ctx.Response.Header.Set(fasthttp.HeaderLocation, path)
	ctx.SetStatusCode(http.StatusFound)
}

// notify queues a one-shot notice and redirects.
func (h baseHandler) notify(ctx *fasthttp.RequestCtx, level domain.FlashLevel, message, path string) {
	if sess := middleware.SessionFrom(ctx); sess != nil {
		sess.Flash(level, message)
	}
	h.redirect(ctx, path)
}

// fail answers an unexpected error with a bare 500 for this request only.
func (h baseHandler) fail(ctx *fasthttp.RequestCtx, err error) {
	h.logger.Error("request failed",
		zap.String("request_id", httpcontext.RequestID(ctx)),
		zap.ByteString("path", ctx.Path()),
		zap.Error(err))
	ctx.Response.ResetBody()
	ctx.Response.Header.Del(fasthttp.HeaderLocation)
	ctx.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h baseHandler) log(stdCtx context.Context) *zap.Logger {
	return appLogger.WithRequestID(stdCtx, h.logger)
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data))
}

func formValue(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.PostArgs().Peek(key))
}

func pathValue(ctx *fasthttp.RequestCtx, key string) string {
	v, _ := ctx.UserValue(key).(string)
	return v
}

func pathID(ctx *fasthttp.RequestCtx) (int64, bool) {
	id, err := strconv.ParseInt(pathValue(ctx, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
