package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/locale"
	appLogger "github.com/judgmentfleet/site/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyLocale     Key = "locale"
	KeyAdminID    Key = "admin_id"
	KeySessionID  Key = "session_id"
)

// Headers carrying the authenticated identity from middleware to handlers.
const (
	HeaderAdminID   = "X-Admin-ID"
	HeaderSessionID = "X-Session-ID"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout       time.Duration
	defaultLocale domain.Locale
}

// NewAdapter constructs a new Adapter using the provided timeout and fallback locale.
func NewAdapter(timeout time.Duration, defaultLocale domain.Locale) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if !defaultLocale.Valid() {
		defaultLocale = domain.DefaultLocale
	}
	return &Adapter{
		timeout:       timeout,
		defaultLocale: defaultLocale,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
	return a.enrich(stdCtx, ctx), cancel
}

// AttachStream is Attach without a deadline, for long-lived responses.
func (a *Adapter) AttachStream(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithCancel(context.Background())
	return a.enrich(stdCtx, ctx), cancel
}

func (a *Adapter) enrich(stdCtx context.Context, ctx *fasthttp.RequestCtx) context.Context {
	reqID := getRequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	if ctx == nil {
		return stdCtx
	}
	ctx.Response.Header.Set("X-Request-ID", reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if adminID := string(ctx.Request.Header.Peek(HeaderAdminID)); adminID != "" {
		stdCtx = context.WithValue(stdCtx, KeyAdminID, adminID)
	}
	if sessionID := string(ctx.Request.Header.Peek(HeaderSessionID)); sessionID != "" {
		stdCtx = context.WithValue(stdCtx, KeySessionID, sessionID)
	}

	loc := locale.Resolve(
		string(ctx.QueryArgs().Peek("lang")),
		string(ctx.Request.Header.Peek("Accept-Language")),
		a.defaultLocale,
	)
	return context.WithValue(stdCtx, KeyLocale, loc)
}

// Locale returns the negotiated locale, or the site default.
func Locale(ctx context.Context) domain.Locale {
	if l, ok := ctx.Value(KeyLocale).(domain.Locale); ok && l.Valid() {
		return l
	}
	return domain.DefaultLocale
}

// AdminID returns the authenticated admin, if any.
func AdminID(ctx context.Context) string {
	id, _ := ctx.Value(KeyAdminID).(string)
	return id
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(KeySessionID).(string)
	return id
}

func getRequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if header := string(ctx.Request.Header.Peek("X-Request-ID")); strings.TrimSpace(header) != "" {
		return header
	}
	return uuid.NewString()
}
