package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pontual.app/pontual/security"
	"pontual.app/pontual/web/common"
)

const (
	ContextSubject = "subject"
)

// Authentication checks for a valid Bearer token and puts the verified
// subject on the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("pontual.SessionCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		subject, err := security.ParseSubjectToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(ContextSubject, subject)
		c.Next()
	}
}

// RequireReviewer gates the decision endpoints to the reviewer role.
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFrom(c)
		if subject == nil || subject.Role != security.RoleReviewer {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("reviewer role required"))
			return
		}
		c.Next()
	}
}

// SubjectFrom returns the authenticated subject, or nil outside the auth
// group.
func SubjectFrom(c *gin.Context) *security.Subject {
	v, ok := c.Get(ContextSubject)
	if !ok {
		return nil
	}
	subject, ok := v.(*security.Subject)
	if !ok {
		return nil
	}
	return subject
}
