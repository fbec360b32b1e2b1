package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

// Context keys set by CallerMiddleware
const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ""
	}
	return tokenParts[1]
}

// tokenFrom resolves the caller token: JSON body first, then ?token=, then
// the Authorization header.
func tokenFrom(c *gin.Context, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	if t := c.Query("token"); t != "" {
		return t
	}
	return bearerToken(c)
}

// CallerMiddleware identifies who AI quota is charged to. A valid bearer
// token charges its subject; anonymous requests are charged by client IP.
// It never rejects a request: authorization stays with the services.
func CallerMiddleware(verifier identity.Verifier, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := "ip:" + c.ClientIP()

		if token := bearerToken(c); token != "" && verifier != nil {
			id, err := verifier.Verify(c.Request.Context(), token)
			if err == nil && id.Subject != "" {
				caller = id.Subject
				c.Set(ctxUserID, id.Subject)
				c.Set(ctxUserEmail, id.Email)
			} else if err != nil {
				utils.GetLogger(c, logger).Debug("Ignoring unverifiable bearer token", "error", err)
			}
		}

		c.Request = c.Request.WithContext(ai.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}
