package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/ojtportal/config"
	"github.com/lshigami/ojtportal/internal/dto"
	"github.com/rs/zerolog/log"
)

// Roles carried in the access token.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleStudent     = "student"
)

const (
	contextUserID = "userID"
	contextRole   = "userRole"
)

// Claims is the payload of tokens issued by the portal's auth service.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens signed with JWT_SECRET.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(cfg *config.Config) *Authenticator {
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Every authenticated route will reject requests.")
	}
	return &Authenticator{secret: []byte(cfg.Auth.JWTSecret)}
}

// IssueToken signs a token for userID. Used by the seed command and tests.
func (a *Authenticator) IssueToken(userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(header string) (*Claims, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" || raw == header {
		return nil, errors.New("missing bearer token")
	}
	if len(a.secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Role == "" {
		return nil, errors.New("token is missing user_id or role")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id and role on the context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := a.parse(ctx.GetHeader("Authorization"))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("RequireAuth: rejected token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		ctx.Set(contextUserID, claims.UserID)
		ctx.Set(contextRole, claims.Role)
		ctx.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(contextRole)
		for _, allowed := range roles {
			if role == allowed {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Forbidden"})
	}
}

// UserID returns the authenticated caller's user id.
func UserID(ctx *gin.Context) (uint, bool) {
	id, ok := ctx.Get(contextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := id.(uint)
	return userID, ok
}
