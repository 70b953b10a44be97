package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/auth"
)

const principalContextKey = "principal"

// TokenValidator resolves a bearer token to the account it was issued for.
type TokenValidator interface {
	Validate(token string) (auth.Principal, error)
}

// AuthMiddleware accepts either an Authorization bearer token or a session
// cookie and attaches the resulting principal to the request.
func AuthMiddleware(tokens TokenValidator, sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			token, ok := auth.ExtractBearerToken(header)
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
				return
			}
			principal, err := tokens.Validate(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			setPrincipal(c, principal)
			c.Next()
			return
		}

		if sessions != nil {
			if principal, ok := sessions.Principal(c.Request); ok {
				setPrincipal(c, principal)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
	}
}

func setPrincipal(c *gin.Context, p auth.Principal) {
	c.Set("userID", p.ID)
	c.Set(principalContextKey, p)
}

// PrincipalFrom returns the principal attached by AuthMiddleware.
func PrincipalFrom(c *gin.Context) auth.Principal {
	if val, ok := c.Get(principalContextKey); ok {
		if p, ok := val.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{ID: c.GetInt("userID")}
}
