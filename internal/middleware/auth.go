package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"foliogate/internal/config"
	"foliogate/internal/domain"
)

const ContextKeyPrincipal = "principal"

// Claims is the subset of the portfolio API's access token the gateway reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenVerifier turns a bearer token into a Principal. Tokens are issued by
// the portfolio API. With a shared secret the signature is checked; without
// one the token is only decoded and the upstream remains the authority.
type TokenVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenVerifier creates a TokenVerifier from JWT settings.
func NewTokenVerifier(cfg *config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer, now: time.Now}
}

// NewTokenVerifierWithClock is NewTokenVerifier with an injectable clock (for testing).
func NewTokenVerifierWithClock(cfg *config.JWTConfig, now func() time.Time) *TokenVerifier {
	v := NewTokenVerifier(cfg)
	v.now = now
	return v
}

// Verify validates tokenString and returns the caller it identifies.
func (v *TokenVerifier) Verify(tokenString string) (*domain.Principal, error) {
	claims := &Claims{}
	if len(v.secret) > 0 {
		opts := []jwt.ParserOption{jwt.WithTimeFunc(v.now)}
		if v.issuer != "" {
			opts = append(opts, jwt.WithIssuer(v.issuer))
		}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		}, opts...)
		if err != nil {
			return nil, fmt.Errorf("parsing token: %w", err)
		}
		if !token.Valid {
			return nil, domain.ErrUnauthorized
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("decoding token: %w", err)
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(v.now()) {
			return nil, fmt.Errorf("decoding token: %w", jwt.ErrTokenExpired)
		}
		if v.issuer != "" && claims.Issuer != v.issuer {
			return nil, fmt.Errorf("decoding token: %w", jwt.ErrTokenInvalidIssuer)
		}
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &domain.Principal{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Token:   tokenString,
	}, nil
}

// AuthMiddleware returns Gin middleware that validates the bearer token and
// injects the caller's Principal. Websocket upgrades may carry the token in
// the access_token query parameter.
func AuthMiddleware(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && websocket.IsWebSocketUpgrade(c.Request) {
			if qt := c.Query("access_token"); qt != "" {
				authHeader = "Bearer " + qt
			}
		}
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		principal, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "SESSION_EXPIRED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyPrincipal, *principal)
		c.Next()
	}
}

// SetPrincipal stores p as the authenticated caller.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(ContextKeyPrincipal, p)
}

// GetPrincipal extracts the authenticated caller from the Gin context.
func GetPrincipal(c *gin.Context) (domain.Principal, error) {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	p, ok := val.(domain.Principal)
	if !ok || p.Subject == "" {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
