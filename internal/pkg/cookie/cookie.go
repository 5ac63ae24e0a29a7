package cookie

import (
	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	SessionCookieName     = "session_id"
)

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// GetSessionID reads the anonymous storefront session the cart is keyed by.
func GetSessionID(c *gin.Context) string {
	id, _ := c.Cookie(SessionCookieName)
	return id
}
