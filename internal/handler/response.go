// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// respondOK 输出统一的成功响应信封。
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    data,
	})
}

// respondPage 输出带分页信息的列表响应。
func respondPage(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"items":    items,
			"total":    total,
			"page":     page,
			"pageSize": pageSize,
		},
	})
}

// respondError 按错误类别映射 HTTP 状态码：
// 输入类错误（含空关联）返回 400，记录不存在返回 404，其余按服务端错误处理。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, model.ErrNilRelation):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": err.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "记录不存在",
		})
	default:
		log.Errorf("请求处理失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "内部服务器错误",
		})
	}
}

// pathID 解析路径中的 :id 参数。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的 id 参数",
		})
		return 0, false
	}
	return uint(id), true
}

// listQuery 解析列表接口通用的查询参数。
// includeArchived 仅对管理员生效，普通用户始终看不到已归档的记录。
func listQuery(c *gin.Context) (includeArchived bool, page, pageSize int) {
	if c.Query("includeArchived") == "true" {
		if user, exists := c.Get("user"); exists {
			if u, ok := user.(*model.User); ok && u.Role == service.RoleAdmin {
				includeArchived = true
			}
		}
	}
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return includeArchived, page, pageSize
}
