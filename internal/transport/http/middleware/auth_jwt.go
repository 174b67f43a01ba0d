package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"glimmr/internal/core/auth"
	resp "glimmr/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

// AuthJWT requires a valid bearer token. requireRole, when set, must match
// the token's role claim.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		tok, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || strings.TrimSpace(tok) == "" {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "No token provided"))
			return
		}
		claims, err := j.Parse(strings.TrimSpace(tok))
		if err != nil {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "Invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }
