package middleware

import (
	"net/http"
	"strings"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/pkg"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	identityKey   = "identity"
)

var (
	errNotAuthenticated = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errNotAdmin         = pkg.NewDomainErrorSimple("FORBIDDEN", "Administrator access required", http.StatusForbidden)
)

// Authenticator resolves a session token to the caller's identity.
type Authenticator interface {
	Authenticate(token string) (entities.Identity, error)
}

// Authenticate attaches the caller's identity to the context when the request
// carries a valid token, either as a Bearer header or the session cookie.
// Requests without one pass through anonymously.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		if token != "" {
			if id, err := auth.Authenticate(token); err == nil {
				SetIdentity(c, id)
			}
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAuthenticated() {
			c.AbortWithStatusJSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		switch {
		case !id.IsAuthenticated():
			c.AbortWithStatusJSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		case !id.IsAdmin():
			c.AbortWithStatusJSON(errNotAdmin.HTTPStatus, errNotAdmin.ToHTTPError())
		default:
			c.Next()
		}
	}
}

func SetIdentity(c *gin.Context, id entities.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller's identity, or the zero (anonymous) identity.
func IdentityFrom(c *gin.Context) entities.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(entities.Identity); ok {
			return id
		}
	}
	return entities.Identity{}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
