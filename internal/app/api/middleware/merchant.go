package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// MerchantMiddleware extracts the calling merchant from the X-Merchant-ID
// header and stores it in both gin.Context (key: "merchant_id") and the
// request's context.Context. Handlers that require a merchant reject the
// request themselves when the header is absent.
func MerchantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID := c.GetHeader("X-Merchant-ID")
		if merchantID != "" {
			c.Set("merchant_id", merchantID)
			ctx := context.WithValue(c.Request.Context(), "merchant_id", merchantID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
