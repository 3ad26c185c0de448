package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
)

const operatorContextKey = "operator"

// AdminAuthMiddleware accepts the session either as the admin_auth cookie or
// as a bearer token and rejects the request when neither validates.
func AdminAuthMiddleware(session *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie("admin_auth"); err == nil {
			token = cookie
		}
		if token == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		operator, err := session.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(operatorContextKey, operator)
		c.Next()
	}
}

// GetOperator returns the authenticated operator set by AdminAuthMiddleware.
func GetOperator(c *gin.Context) (content.Operator, bool) {
	value, exists := c.Get(operatorContextKey)
	if !exists {
		return content.Operator{}, false
	}
	operator, ok := value.(content.Operator)
	return operator, ok
}
