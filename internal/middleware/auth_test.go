package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/httpcontext"
)

const secret = "s3cret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":    "admin-1",
		"session_id": "sess-1",
		"iss":        "judgmentfleet",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTAuthForwardsIdentity(t *testing.T) {
	var gotAdmin, gotSession string
	h := JWTAuth(secret, "judgmentfleet", nil)(func(ctx *fasthttp.RequestCtx) {
		gotAdmin = string(ctx.Request.Header.Peek(httpcontext.HeaderAdminID))
		gotSession = string(ctx.Request.Header.Peek(httpcontext.HeaderSessionID))
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+sign(t, validClaims(), secret))
	h(&ctx)

	assert.Equal(t, "admin-1", gotAdmin)
	assert.Equal(t, "sess-1", gotSession)
}

func TestJWTAuthRejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "someone-else"
	noSession := validClaims()
	delete(noSession, "session_id")

	cases := map[string]string{
		"missing":      "",
		"wrong secret": "Bearer " + sign(t, validClaims(), "other"),
		"expired":      "Bearer " + sign(t, expired, secret),
		"issuer":       "Bearer " + sign(t, wrongIssuer, secret),
		"no session":   "Bearer " + sign(t, noSession, secret),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			h := JWTAuth(secret, "judgmentfleet", nil)(func(*fasthttp.RequestCtx) { called = true })

			var ctx fasthttp.RequestCtx
			if header != "" {
				ctx.Request.Header.Set("Authorization", header)
			}
			h(&ctx)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
		})
	}
}

func TestJWTAuthDropsSpoofedHeaders(t *testing.T) {
	called := false
	h := JWTAuth(secret, "", nil)(func(*fasthttp.RequestCtx) { called = true })

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set(httpcontext.HeaderAdminID, "intruder")
	h(&ctx)

	assert.False(t, called)
	assert.Empty(t, ctx.Request.Header.Peek(httpcontext.HeaderAdminID))
}

type stubAuthorizer struct {
	err error
}

func (s stubAuthorizer) Authorize(ctx context.Context, adminID, sessionID string) (*domain.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Admin{ID: adminID, IsActive: true}, nil
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		called bool
	}{
		{"active", nil, http.StatusOK, true},
		{"inactive", domain.ErrAdminInactive, http.StatusForbidden, false},
		{"session gone", domain.ErrUnauthorized, http.StatusUnauthorized, false},
		{"admin removed", domain.ErrAdminNotFound, http.StatusUnauthorized, false},
		{"backend down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := RequireAdmin(stubAuthorizer{err: tc.err}, time.Second, nil)(func(ctx *fasthttp.RequestCtx) {
				called = true
				ctx.SetStatusCode(http.StatusOK)
			})

			var ctx fasthttp.RequestCtx
			ctx.Request.Header.Set(httpcontext.HeaderAdminID, "admin-1")
			ctx.Request.Header.Set(httpcontext.HeaderSessionID, "sess-1")
			h(&ctx)

			assert.Equal(t, tc.called, called)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}
	h := Chain(func(*fasthttp.RequestCtx) { order = append(order, "handler") }, mark("outer"), mark("inner"))

	var ctx fasthttp.RequestCtx
	h(&ctx)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
