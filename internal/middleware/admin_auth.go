// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/service"
)

// AdminAuthMiddleware 检查用户是否具有管理员权限。
// 目录的所有写操作都走这个中间件，普通用户只有只读权限。
// 此中间件必须在 AuthMiddleware 之后使用。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
			return
		}

		currentUser, ok := user.(*model.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "用户数据类型错误"})
			return
		}

		if currentUser.Role != service.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "权限不足，需要管理员权限"})
			return
		}

		c.Next()
	}
}
