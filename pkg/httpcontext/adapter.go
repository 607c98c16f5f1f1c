package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todo/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

const requestIDUserValue = "httpcontext.request_id"

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	base := context.Background()
	timeout := 5 * time.Second
	if a != nil {
		timeout = a.timeout
	}

	stdCtx, cancel := context.WithTimeout(base, timeout)
	if ctx == nil {
		return stdCtx, cancel
	}

	stdCtx = appLogger.ContextWithRequestID(stdCtx, RequestID(ctx))

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}

	return stdCtx, cancel
}

// RequestID returns the id of the current request, assigning one on first use.
// Incoming X-Request-ID headers are honoured and echoed in the response.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id, ok := ctx.UserValue(requestIDUserValue).(string); ok && id != "" {
		return id
	}

	id := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Request-ID")))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(requestIDUserValue, id)
	ctx.Response.Header.Set("X-Request-ID", id)
	return id
}
