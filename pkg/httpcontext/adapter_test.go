package httpcontext

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todo/pkg/logger"
)

func TestRequestIDIsStablePerRequest(t *testing.T) {
	var ctx fasthttp.RequestCtx

	first := RequestID(&ctx)
	second := RequestID(&ctx)
	if first == "" || first != second {
		t.Fatalf("expected stable request id, got %q and %q", first, second)
	}
	if got := string(ctx.Response.Header.Peek("X-Request-ID")); got != first {
		t.Errorf("response header = %q, want %q", got, first)
	}
}

func TestRequestIDHonoursHeader(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-Request-ID", "abc")

	if got := RequestID(&ctx); got != "abc" {
		t.Errorf("RequestID() = %q, want abc", got)
	}
}

func TestAttach(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetUserAgent("test-agent")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	if _, ok := stdCtx.Deadline(); !ok {
		t.Error("expected a deadline")
	}
	if appLogger.RequestID(stdCtx) != RequestID(&ctx) {
		t.Error("context should carry the request id")
	}
	if ua, _ := stdCtx.Value(KeyUserAgent).(string); ua != "test-agent" {
		t.Errorf("unexpected user agent %q", ua)
	}
}
