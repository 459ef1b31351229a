// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// MoleculeHandler 负责处理分子目录的 API 请求。
type MoleculeHandler struct {
	moleculeService service.MoleculeService
}

// NewMoleculeHandler 创建一个新的 MoleculeHandler 实例。
func NewMoleculeHandler(moleculeService service.MoleculeService) *MoleculeHandler {
	return &MoleculeHandler{moleculeService: moleculeService}
}

// Create 处理创建分子的请求。
func (h *MoleculeHandler) Create(c *gin.Context) {
	var input service.MoleculeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateMolecule: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	molecule, err := h.moleculeService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, molecule)
}

// Update 处理更新分子的请求。
func (h *MoleculeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.MoleculeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	molecule, err := h.moleculeService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, molecule)
}

// Get 返回单个分子的详情。
func (h *MoleculeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	molecule, err := h.moleculeService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, molecule)
}

// List 分页返回分子列表。
func (h *MoleculeHandler) List(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	molecules, total, err := h.moleculeService.List(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, molecules, total, page, pageSize)
}

// Records 返回供下拉列表使用的分子投影。
func (h *MoleculeHandler) Records(c *gin.Context) {
	records, err := h.moleculeService.Records()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// Archive 归档一个分子。
func (h *MoleculeHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.moleculeService.Archive(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// Restore 取消一个分子的归档。
func (h *MoleculeHandler) Restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.moleculeService.Restore(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
