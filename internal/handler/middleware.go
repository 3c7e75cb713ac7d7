package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	customerIDKey contextKey = "customerID"
	roleKey       contextKey = "role"
)

// dashboardClaims are the claims the core bank's token issuer puts in access
// tokens. The BFF only validates; it never mints tokens.
type dashboardClaims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Auth validates bearer tokens issued by the core bank and gates admin
// routes.
type Auth struct {
	jwtSecret    []byte
	adminKeyHash string
	logger       *zap.Logger
}

// NewAuth creates the auth middleware set. adminKeyHash is a bcrypt hash of
// the bootstrap X-Admin-Key; empty disables the header fallback.
func NewAuth(jwtSecret, adminKeyHash string, logger *zap.Logger) *Auth {
	return &Auth{
		jwtSecret:    []byte(jwtSecret),
		adminKeyHash: adminKeyHash,
		logger:       logger,
	}
}

func (a *Auth) validateToken(tokenString string) (*dashboardClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dashboardClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*dashboardClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Type != "" && claims.Type != "access" {
		return nil, fmt.Errorf("invalid token type")
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return claims, nil
}

// RequireAuth validates the Bearer token and injects customerID and role
// into the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			a.logger.Warn("auth: missing token",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			writeError(w, http.StatusUnauthorized, "authentication token not provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			a.logger.Warn("auth: invalid token format",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			writeError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		claims, err := a.validateToken(parts[1])
		if err != nil {
			a.logger.Warn("auth: invalid or expired token",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, claims.Sub)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin passes requests whose token carries the admin role, or whose
// X-Admin-Key header matches the configured bcrypt hash. Must run after
// RequireAuth.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) == "admin" {
			next.ServeHTTP(w, r)
			return
		}
		if key := r.Header.Get("X-Admin-Key"); key != "" && a.adminKeyHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(a.adminKeyHash), []byte(key)) == nil {
				next.ServeHTTP(w, r)
				return
			}
		}
		a.logger.Warn("admin access denied",
			zap.String("path", r.URL.Path),
			zap.String("customer_id", CustomerIDFromContext(r.Context())),
		)
		writeError(w, http.StatusForbidden, "admin access required")
	})
}

// CustomerIDFromContext extracts the authenticated customer ID from context.
func CustomerIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(customerIDKey).(string)
	return v
}

// RoleFromContext extracts the authenticated role from context.
func RoleFromContext(ctx context.Context) string {
	v, _ := ctx.Value(roleKey).(string)
	return v
}
