package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-studio/salon-booking/internal/httperr"
)

// AdminGate checks the shared admin secret carried raw in the Authorization
// header.
type AdminGate struct {
	secret     []byte
	bcryptHash []byte
}

// NewAdminGate prefers bcryptHash when both are set. With neither set every
// request is rejected.
func NewAdminGate(secret, bcryptHash string) *AdminGate {
	g := &AdminGate{}
	if bcryptHash != "" {
		g.bcryptHash = []byte(bcryptHash)
	} else if secret != "" {
		g.secret = []byte(secret)
	}
	return g
}

func (g *AdminGate) Authorize(supplied string) bool {
	if supplied == "" {
		return false
	}
	if g.bcryptHash != nil {
		return bcrypt.CompareHashAndPassword(g.bcryptHash, []byte(supplied)) == nil
	}
	if g.secret == nil {
		return false
	}
	return subtle.ConstantTimeCompare(g.secret, []byte(supplied)) == 1
}

func (g *AdminGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Authorize(c.GetHeader("Authorization")) {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			return
		}
		c.Next()
	}
}
