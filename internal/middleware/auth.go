package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/api/transport"
	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	authUC "github.com/judgmentfleet/site/usecase/auth"
)

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// JWTAuth verifies the bearer token and forwards its admin and session ids as request headers.
func JWTAuth(secret, issuer string, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			// never trust identity headers sent by the client
			ctx.Request.Header.Del(httpcontext.HeaderAdminID)
			ctx.Request.Header.Del(httpcontext.HeaderSessionID)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, "missing token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				unauthorized(ctx, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(ctx, "invalid token")
				return
			}
			if issuer != "" && !claims.VerifyIssuer(issuer, true) {
				logger.Warn("jwt issuer mismatch")
				unauthorized(ctx, "invalid token")
				return
			}

			adminID, _ := claims[authUC.ClaimAdminID].(string)
			sessionID, _ := claims[authUC.ClaimSessionID].(string)
			if adminID == "" || sessionID == "" {
				unauthorized(ctx, "invalid token")
				return
			}
			ctx.Request.Header.Set(httpcontext.HeaderAdminID, adminID)
			ctx.Request.Header.Set(httpcontext.HeaderSessionID, sessionID)

			next(ctx)
		}
	}
}

// Authorizer resolves the identity forwarded by JWTAuth to an admin allowed to edit.
type Authorizer interface {
	Authorize(ctx context.Context, adminID, sessionID string) (*domain.Admin, error)
}

// RequireAdmin rejects requests whose session is gone or whose admin was deactivated.
func RequireAdmin(authz Authorizer, timeout time.Duration, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			adminID := string(ctx.Request.Header.Peek(httpcontext.HeaderAdminID))
			sessionID := string(ctx.Request.Header.Peek(httpcontext.HeaderSessionID))

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			_, err := authz.Authorize(stdCtx, adminID, sessionID)
			cancel()

			switch {
			case err == nil:
				next(ctx)
			case domain.IsDomainError(err, domain.ErrCodeForbidden):
				deny(ctx, http.StatusForbidden, domain.ErrCodeForbidden, err.Error())
			case domain.IsDomainError(err, domain.ErrCodeUnauthorized), domain.IsDomainError(err, domain.ErrCodeNotFound):
				unauthorized(ctx, "session is not valid")
			default:
				logger.Error("admin authorization failed", zap.String("admin_id", adminID), zap.Error(err))
				deny(ctx, http.StatusServiceUnavailable, domain.ErrCodeInternal, "authorization unavailable")
			}
		}
	}
}

// Chain applies middlewares so that the first one runs outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	deny(ctx, http.StatusUnauthorized, domain.ErrCodeUnauthorized, message)
}

func deny(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(transport.Failure(string(code), message).String())
}
