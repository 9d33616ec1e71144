package middleware

import (
	"net/http"
	"strings"

	"evidentia/backend/common"
	"evidentia/backend/model"
	"evidentia/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// authHelper is the session guard behind every protected endpoint. Each
// request re-resolves identity: the web session first, then a Bearer
// token. Nothing is cached between requests, so the check at submission
// time is as fresh as the one at view mount.
func authHelper(c *gin.Context, minRole int) {
	session := sessions.Default(c)
	email := session.Get("email")
	role := session.Get("role")
	id := session.Get("id")
	status := session.Get("status")
	if email == nil {
		claims, ok := bearerClaims(c)
		if !ok {
			common.RespErrorStr(c, http.StatusUnauthorized, "not signed in")
			c.Abort()
			return
		}
		user, err := model.GetUserById(claims.UserID)
		if err != nil {
			common.RespErrorStr(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return
		}
		email = user.Email
		role = user.Role
		id = user.ID
		status = user.Status
	}
	if status.(int) == common.UserStatusDisabled {
		common.RespErrorStr(c, http.StatusForbidden, "account is disabled")
		c.Abort()
		return
	}
	if role.(int) < minRole {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient privileges")
		c.Abort()
		return
	}
	c.Set("email", email)
	c.Set("role", role.(int))
	c.Set("id", id.(int64))
	c.Next()
}

// bearerClaims extracts and validates an Authorization: Bearer token,
// honoring the Redis logout blacklist when Redis is enabled.
func bearerClaims(c *gin.Context) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	tokenString := parts[1]
	claims, err := service.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}
	if common.RedisEnabled {
		blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
		if blacklisted > 0 {
			return nil, false
		}
	}
	return claims, true
}

// UserAuth protects the case and contact endpoints.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHelper(c, common.RoleCommonUser)
	}
}

// RootAuth protects runtime-option administration.
func RootAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHelper(c, common.RoleRootUser)
	}
}

// JWTAuth accepts only Bearer tokens, for API clients that never carry a
// web session.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}
		claims, ok := bearerClaims(c)
		if !ok {
			common.RespErrorStr(c, http.StatusUnauthorized, "token is invalid or revoked")
			c.Abort()
			return
		}
		c.Set("id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
