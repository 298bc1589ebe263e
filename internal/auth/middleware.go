package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RiseHunter/RiseHuntBot/internal/config"
	"github.com/RiseHunter/RiseHuntBot/internal/response"
)

const secretHeader = "X-Webhook-Secret"

func Middleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(secretHeader)
		var err error
		if cfg.AuthServiceURL != "" {
			err = provider.ValidateSecretRemote(c.Request.Context(), secret)
		} else {
			err = provider.ValidateSecretLocal(secret)
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("invalid webhook secret"))
			return
		}
		c.Next()
	}
}
