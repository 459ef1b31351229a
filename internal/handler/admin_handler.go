// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// AdminHandler 负责处理管理员专属的 API 请求。
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers 分页返回全部用户。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	users, err := h.adminService.ListUsers(page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users)
}

// UpdateUserRoleRequest 定义了修改用户角色 API 的请求体结构。
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole 修改一个用户的角色。
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载：role 不能为空"})
		return
	}
	if err := h.adminService.UpdateUserRole(id, req.Role); err != nil {
		respondError(c, err)
		return
	}
	log.Infof("User %d role updated to %s", id, req.Role)
	respondOK(c, nil)
}

// Reindex 触发整库搜索索引重建。
// 任务异步投递到消息队列，接口立即返回投递的任务数量。
func (h *AdminHandler) Reindex(c *gin.Context) {
	published, err := h.adminService.ReindexAll()
	if err != nil {
		respondError(c, err)
		return
	}
	log.Infof("Reindex: published %d index tasks", published)
	respondOK(c, gin.H{"publishedTasks": published})
}
