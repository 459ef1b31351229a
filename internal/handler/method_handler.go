// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// MethodHandler 负责处理方法目录（方法族、基础方法、完整方法）的 API 请求。
type MethodHandler struct {
	methodService service.MethodService
}

// NewMethodHandler 创建一个新的 MethodHandler 实例。
func NewMethodHandler(methodService service.MethodService) *MethodHandler {
	return &MethodHandler{methodService: methodService}
}

// --- 方法族 ---

// CreateMethodFamily 处理创建方法族的请求。
func (h *MethodHandler) CreateMethodFamily(c *gin.Context) {
	var input service.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateMethodFamily: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	family, err := h.methodService.CreateMethodFamily(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, family)
}

// UpdateMethodFamily 处理更新方法族的请求。
func (h *MethodHandler) UpdateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	family, err := h.methodService.UpdateMethodFamily(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, family)
}

// GetMethodFamily 返回单个方法族的详情。
func (h *MethodHandler) GetMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	family, err := h.methodService.GetMethodFamily(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, family)
}

// ListMethodFamilies 分页返回方法族列表。
func (h *MethodHandler) ListMethodFamilies(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	families, total, err := h.methodService.ListMethodFamilies(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, families, total, page, pageSize)
}

// MethodFamilyRecords 返回供下拉列表使用的方法族投影。
func (h *MethodHandler) MethodFamilyRecords(c *gin.Context) {
	records, err := h.methodService.MethodFamilyRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveMethodFamily 归档一个方法族。
func (h *MethodHandler) ArchiveMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.ArchiveMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreMethodFamily 取消一个方法族的归档。
func (h *MethodHandler) RestoreMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.RestoreMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// --- 基础方法 ---

// CreateBaseMethod 处理创建基础方法的请求。
func (h *MethodHandler) CreateBaseMethod(c *gin.Context) {
	var input service.BaseMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateBaseMethod: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	method, err := h.methodService.CreateBaseMethod(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// UpdateBaseMethod 处理更新基础方法的请求。
func (h *MethodHandler) UpdateBaseMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.BaseMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	method, err := h.methodService.UpdateBaseMethod(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// GetBaseMethod 返回单个基础方法的详情，内嵌完整的方法族。
func (h *MethodHandler) GetBaseMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	method, err := h.methodService.GetBaseMethod(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// ListBaseMethods 分页返回基础方法列表。
func (h *MethodHandler) ListBaseMethods(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	methods, total, err := h.methodService.ListBaseMethods(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, methods, total, page, pageSize)
}

// BaseMethodRecords 返回供下拉列表使用的基础方法投影。
func (h *MethodHandler) BaseMethodRecords(c *gin.Context) {
	records, err := h.methodService.BaseMethodRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveBaseMethod 归档一个基础方法。
func (h *MethodHandler) ArchiveBaseMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.ArchiveBaseMethod(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreBaseMethod 取消一个基础方法的归档。
func (h *MethodHandler) RestoreBaseMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.RestoreBaseMethod(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// --- 完整方法 ---

// CreateFullMethod 处理创建完整方法的请求。
func (h *MethodHandler) CreateFullMethod(c *gin.Context) {
	var input service.FullMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateFullMethod: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	method, err := h.methodService.CreateFullMethod(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// UpdateFullMethod 处理更新完整方法的请求。
func (h *MethodHandler) UpdateFullMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.FullMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	method, err := h.methodService.UpdateFullMethod(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// GetFullMethod 返回单个完整方法的详情，递归展开整个关联对象图。
func (h *MethodHandler) GetFullMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	method, err := h.methodService.GetFullMethod(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, method)
}

// ListFullMethods 分页返回完整方法列表。
func (h *MethodHandler) ListFullMethods(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	methods, total, err := h.methodService.ListFullMethods(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, methods, total, page, pageSize)
}

// FullMethodRecords 返回供下拉列表使用的完整方法投影。
func (h *MethodHandler) FullMethodRecords(c *gin.Context) {
	records, err := h.methodService.FullMethodRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveFullMethod 归档一个完整方法。
func (h *MethodHandler) ArchiveFullMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.ArchiveFullMethod(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreFullMethod 取消一个完整方法的归档。
func (h *MethodHandler) RestoreFullMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.methodService.RestoreFullMethod(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
