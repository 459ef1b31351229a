// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/log"
)

// StateHandler 负责处理态目录（自旋态、电子态及其组合）的 API 请求。
type StateHandler struct {
	stateService service.StateService
}

// NewStateHandler 创建一个新的 StateHandler 实例。
func NewStateHandler(stateService service.StateService) *StateHandler {
	return &StateHandler{stateService: stateService}
}

// --- 自旋态 ---

// CreateSpinState 处理创建自旋态的请求。
func (h *StateHandler) CreateSpinState(c *gin.Context) {
	var input service.SpinStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateSpinState: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	state, err := h.stateService.CreateSpinState(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// UpdateSpinState 处理更新自旋态的请求。
func (h *StateHandler) UpdateSpinState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.SpinStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	state, err := h.stateService.UpdateSpinState(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// GetSpinState 返回单个自旋态的详情。
func (h *StateHandler) GetSpinState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	state, err := h.stateService.GetSpinState(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// ListSpinStates 分页返回自旋态列表。
func (h *StateHandler) ListSpinStates(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	states, total, err := h.stateService.ListSpinStates(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, states, total, page, pageSize)
}

// SpinStateRecords 返回供下拉列表使用的自旋态投影。
func (h *StateHandler) SpinStateRecords(c *gin.Context) {
	records, err := h.stateService.SpinStateRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveSpinState 归档一个自旋态。
func (h *StateHandler) ArchiveSpinState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.ArchiveSpinState(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreSpinState 取消一个自旋态的归档。
func (h *StateHandler) RestoreSpinState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.RestoreSpinState(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// --- 电子态 ---

// CreateElectronicState 处理创建电子态的请求。
func (h *StateHandler) CreateElectronicState(c *gin.Context) {
	var input service.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateElectronicState: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	state, err := h.stateService.CreateElectronicState(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// UpdateElectronicState 处理更新电子态的请求。
func (h *StateHandler) UpdateElectronicState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	state, err := h.stateService.UpdateElectronicState(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// GetElectronicState 返回单个电子态的详情。
func (h *StateHandler) GetElectronicState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	state, err := h.stateService.GetElectronicState(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, state)
}

// ListElectronicStates 分页返回电子态列表。
func (h *StateHandler) ListElectronicStates(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	states, total, err := h.stateService.ListElectronicStates(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, states, total, page, pageSize)
}

// ElectronicStateRecords 返回供下拉列表使用的电子态投影。
func (h *StateHandler) ElectronicStateRecords(c *gin.Context) {
	records, err := h.stateService.ElectronicStateRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveElectronicState 归档一个电子态。
func (h *StateHandler) ArchiveElectronicState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.ArchiveElectronicState(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreElectronicState 取消一个电子态的归档。
func (h *StateHandler) RestoreElectronicState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.RestoreElectronicState(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// --- 电子态-方法族组合 ---

// CreateElectronicStateMethodFamily 处理创建组合的请求。
func (h *StateHandler) CreateElectronicStateMethodFamily(c *gin.Context) {
	var input service.ElectronicStateMethodFamilyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateElectronicStateMethodFamily: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	combination, err := h.stateService.CreateElectronicStateMethodFamily(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, combination)
}

// UpdateElectronicStateMethodFamily 处理更新组合的请求。
func (h *StateHandler) UpdateElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.ElectronicStateMethodFamilyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	combination, err := h.stateService.UpdateElectronicStateMethodFamily(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, combination)
}

// GetElectronicStateMethodFamily 返回单个组合的详情。
func (h *StateHandler) GetElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	combination, err := h.stateService.GetElectronicStateMethodFamily(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, combination)
}

// ListElectronicStateMethodFamilies 分页返回组合列表。
func (h *StateHandler) ListElectronicStateMethodFamilies(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	combinations, total, err := h.stateService.ListElectronicStateMethodFamilies(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, combinations, total, page, pageSize)
}

// ElectronicStateMethodFamilyRecords 返回供下拉列表使用的组合投影。
func (h *StateHandler) ElectronicStateMethodFamilyRecords(c *gin.Context) {
	records, err := h.stateService.ElectronicStateMethodFamilyRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveElectronicStateMethodFamily 归档一个组合。
func (h *StateHandler) ArchiveElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.ArchiveElectronicStateMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreElectronicStateMethodFamily 取消一个组合的归档。
func (h *StateHandler) RestoreElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.RestoreElectronicStateMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// --- 自旋态-电子态-方法族三元组合 ---

// CreateSpinStateElectronicStateMethodFamily 处理创建三元组合的请求。
func (h *StateHandler) CreateSpinStateElectronicStateMethodFamily(c *gin.Context) {
	var input service.SpinStateElectronicStateMethodFamilyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warnf("CreateSpinStateElectronicStateMethodFamily: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	triple, err := h.stateService.CreateSpinStateElectronicStateMethodFamily(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, triple)
}

// UpdateSpinStateElectronicStateMethodFamily 处理更新三元组合的请求。
func (h *StateHandler) UpdateSpinStateElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input service.SpinStateElectronicStateMethodFamilyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	triple, err := h.stateService.UpdateSpinStateElectronicStateMethodFamily(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, triple)
}

// GetSpinStateElectronicStateMethodFamily 返回单个三元组合的详情。
func (h *StateHandler) GetSpinStateElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	triple, err := h.stateService.GetSpinStateElectronicStateMethodFamily(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, triple)
}

// ListSpinStateElectronicStateMethodFamilies 分页返回三元组合列表。
func (h *StateHandler) ListSpinStateElectronicStateMethodFamilies(c *gin.Context) {
	includeArchived, page, pageSize := listQuery(c)
	triples, total, err := h.stateService.ListSpinStateElectronicStateMethodFamilies(includeArchived, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, triples, total, page, pageSize)
}

// SpinStateElectronicStateMethodFamilyRecords 返回供下拉列表使用的三元组合投影。
func (h *StateHandler) SpinStateElectronicStateMethodFamilyRecords(c *gin.Context) {
	records, err := h.stateService.SpinStateElectronicStateMethodFamilyRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// ArchiveSpinStateElectronicStateMethodFamily 归档一个三元组合。
func (h *StateHandler) ArchiveSpinStateElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.ArchiveSpinStateElectronicStateMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreSpinStateElectronicStateMethodFamily 取消一个三元组合的归档。
func (h *StateHandler) RestoreSpinStateElectronicStateMethodFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.stateService.RestoreSpinStateElectronicStateMethodFamily(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
